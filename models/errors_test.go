package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("connection reset")

	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "Nil", err: nil, expected: nil},
		{name: "Record not found", err: gorm.ErrRecordNotFound, expected: ErrStyleNotFound},
		{name: "Wrapped record not found", err: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), expected: ErrStyleNotFound},
		{name: "Gorm duplicate", err: gorm.ErrDuplicatedKey, expected: ErrDuplicateSlug},
		{name: "Gorm foreign key", err: gorm.ErrForeignKeyViolated, expected: ErrMissingReference},
		{name: "Postgres unique", err: &pgconn.PgError{Code: pgUniqueViolation}, expected: ErrDuplicateSlug},
		{name: "Postgres foreign key", err: &pgconn.PgError{Code: pgForeignKeyViolation}, expected: ErrMissingReference},
		{name: "Other postgres error", err: &pgconn.PgError{Code: "42P01"}, expected: nil},
		{name: "Passthrough", err: other, expected: other},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateError(tc.err, ErrStyleNotFound)
			if tc.err == nil {
				assert.NoError(t, got)
				return
			}
			if tc.expected == nil {
				assert.Same(t, tc.err, got)
				return
			}
			assert.ErrorIs(t, got, tc.expected)
		})
	}
}

func TestDeleted(t *testing.T) {
	assert.ErrorIs(t, deleted(&gorm.DB{Error: &pgconn.PgError{Code: pgForeignKeyViolation}}, ErrColorNotFound), ErrInUse)
	assert.ErrorIs(t, deleted(&gorm.DB{RowsAffected: 0}, ErrColorNotFound), ErrColorNotFound)
	assert.NoError(t, deleted(&gorm.DB{RowsAffected: 1}, ErrColorNotFound))
}

func TestLocalizedPick(t *testing.T) {
	testCases := []struct {
		name     string
		value    Localized
		locale   string
		expected string
	}{
		{name: "Hebrew", value: Localized{He: "עץ", En: "Wood"}, locale: LocaleHe, expected: "עץ"},
		{name: "English", value: Localized{He: "עץ", En: "Wood"}, locale: LocaleEn, expected: "Wood"},
		{name: "English falls back", value: Localized{He: "עץ"}, locale: LocaleEn, expected: "עץ"},
		{name: "Hebrew falls back", value: Localized{En: "Wood"}, locale: LocaleHe, expected: "Wood"},
		{name: "Unknown locale uses Hebrew", value: Localized{He: "עץ", En: "Wood"}, locale: "fr", expected: "עץ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.value.Pick(tc.locale))
		})
	}
	assert.Equal(t, LocaleEn, NormalizeLocale(" EN "))
	assert.Equal(t, LocaleHe, NormalizeLocale(""))
}
