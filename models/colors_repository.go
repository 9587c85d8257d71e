package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColorsRepository struct {
	db *gorm.DB
}

func NewColorsRepository(db *gorm.DB) *ColorsRepository {
	return &ColorsRepository{db: db}
}

// GetAllColors lists a tenant's colors. A nil tenantID lists every tenant.
func (r *ColorsRepository) GetAllColors(tenantID *uuid.UUID) ([]Color, error) {
	var colors []Color
	query := r.db.Order("sort_order, id")
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if err := query.Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *ColorsRepository) GetByID(tenantID uuid.UUID, id uint) (*Color, error) {
	var color Color
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&color).Error; err != nil {
		return nil, translateError(err, ErrColorNotFound)
	}
	return &color, nil
}

func (r *ColorsRepository) GetByHex(tenantID uuid.UUID, hex string) (*Color, error) {
	var color Color
	if err := r.db.Where("tenant_id = ? AND hex = ?", tenantID, hex).First(&color).Error; err != nil {
		return nil, translateError(err, ErrColorNotFound)
	}
	return &color, nil
}

func (r *ColorsRepository) CreateColor(color *Color) error {
	return translateError(r.db.Create(color).Error, ErrColorNotFound)
}

func (r *ColorsRepository) UpdateColor(color *Color) error {
	res := r.db.Model(color).
		Where("tenant_id = ?", color.TenantID).
		Select("hex", "name_he", "name_en", "family", "sort_order").
		Updates(color)
	return affected(res, ErrColorNotFound)
}

func (r *ColorsRepository) DeleteColor(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Color{}, id)
	return deleted(res, ErrColorNotFound)
}
