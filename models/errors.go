package models

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrTenantNotFound           = errors.New("tenant not found")
	ErrCategoryNotFound         = errors.New("category not found")
	ErrSubCategoryNotFound      = errors.New("subcategory not found")
	ErrColorNotFound            = errors.New("color not found")
	ErrMaterialNotFound         = errors.New("material not found")
	ErrMaterialCategoryNotFound = errors.New("material category not found")
	ErrMaterialTypeNotFound     = errors.New("material type not found")
	ErrTextureNotFound          = errors.New("texture not found")
	ErrStyleNotFound            = errors.New("style not found")
	ErrRoomProfileNotFound      = errors.New("room profile not found")

	// ErrDuplicateSlug is returned when a unique slug (or hex) constraint is violated.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrMissingReference is returned when a foreign key points to a missing row.
	ErrMissingReference = errors.New("referenced record does not exist")
	// ErrInUse is returned when a delete is blocked by rows that still reference the record.
	ErrInUse = errors.New("record is still referenced")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver and gorm errors onto the package sentinels.
// notFound is returned for gorm.ErrRecordNotFound.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlug
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrMissingReference
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateSlug
		case pgForeignKeyViolation:
			return ErrMissingReference
		}
	}
	return err
}

// affected turns a zero-row mutation into notFound.
func affected(res *gorm.DB, notFound error) error {
	if res.Error != nil {
		return translateError(res.Error, notFound)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// deleted is affected for deletes, where a foreign key violation means the
// row is still in use rather than a missing parent.
func deleted(res *gorm.DB, notFound error) error {
	err := affected(res, notFound)
	if errors.Is(err, ErrMissingReference) {
		return ErrInUse
	}
	return err
}
