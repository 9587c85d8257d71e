package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TexturesRepository struct {
	db *gorm.DB
}

func NewTexturesRepository(db *gorm.DB) *TexturesRepository {
	return &TexturesRepository{db: db}
}

func (r *TexturesRepository) GetAllTextures(tenantID uuid.UUID) ([]Texture, error) {
	var textures []Texture
	if err := r.db.Where("tenant_id = ?", tenantID).Order("sort_order, id").Find(&textures).Error; err != nil {
		return nil, err
	}
	return textures, nil
}

func (r *TexturesRepository) GetByID(tenantID uuid.UUID, id uint) (*Texture, error) {
	var texture Texture
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&texture).Error; err != nil {
		return nil, translateError(err, ErrTextureNotFound)
	}
	return &texture, nil
}

func (r *TexturesRepository) CreateTexture(texture *Texture) error {
	return translateError(r.db.Create(texture).Error, ErrTextureNotFound)
}

func (r *TexturesRepository) UpdateTexture(texture *Texture) error {
	res := r.db.Model(texture).
		Where("tenant_id = ?", texture.TenantID).
		Select("slug", "name_he", "name_en", "description_he", "description_en",
			"material_category_id", "image_url", "is_abstract", "sort_order").
		Updates(texture)
	return affected(res, ErrTextureNotFound)
}

func (r *TexturesRepository) SetImage(tenantID uuid.UUID, id uint, url string, abstract bool) error {
	res := r.db.Model(&Texture{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]any{"image_url": url, "is_abstract": abstract})
	return affected(res, ErrTextureNotFound)
}

func (r *TexturesRepository) DeleteTexture(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Texture{}, id)
	return deleted(res, ErrTextureNotFound)
}
