package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialsRepository struct {
	db *gorm.DB
}

type MaterialFilters struct {
	CategorySlug string
	TypeSlug     string
	AbstractOnly bool
}

func NewMaterialsRepository(db *gorm.DB) *MaterialsRepository {
	return &MaterialsRepository{db: db}
}

// GetAllMaterials lists a tenant's materials. A nil tenantID lists every
// tenant, which the backfill jobs rely on.
func (r *MaterialsRepository) GetAllMaterials(tenantID *uuid.UUID, filters MaterialFilters) ([]Material, error) {
	var materials []Material

	query := r.db.Model(&Material{}).
		Joins("LEFT JOIN material_categories ON material_categories.id = materials.material_category_id").
		Joins("LEFT JOIN material_types ON material_types.id = materials.material_type_id").
		Preload("MaterialCategory").
		Preload("MaterialType").
		Preload("Colors")

	if tenantID != nil {
		query = query.Where("materials.tenant_id = ?", *tenantID)
	}
	if filters.CategorySlug != "" {
		query = query.Where("material_categories.slug = ?", filters.CategorySlug)
	}
	if filters.TypeSlug != "" {
		query = query.Where("material_types.slug = ?", filters.TypeSlug)
	}
	if filters.AbstractOnly {
		query = query.Where("materials.is_abstract = ?", true)
	}

	if err := query.Order("materials.sort_order, materials.id").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *MaterialsRepository) GetBySlug(tenantID uuid.UUID, slug string) (*Material, error) {
	var material Material
	if err := r.detailed().
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&material).Error; err != nil {
		return nil, translateError(err, ErrMaterialNotFound)
	}
	return &material, nil
}

func (r *MaterialsRepository) GetByID(tenantID uuid.UUID, id uint) (*Material, error) {
	var material Material
	if err := r.detailed().
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&material).Error; err != nil {
		return nil, translateError(err, ErrMaterialNotFound)
	}
	return &material, nil
}

func (r *MaterialsRepository) detailed() *gorm.DB {
	return r.db.
		Preload("MaterialCategory").
		Preload("MaterialType").
		Preload("Texture").
		Preload("Colors")
}

// CreateMaterial inserts material and links colorIDs in one transaction.
// Every color must belong to the material's tenant.
func (r *MaterialsRepository) CreateMaterial(material *Material, colorIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		colors, err := ownedBy[Color](tx, material.TenantID, colorIDs, ErrColorNotFound)
		if err != nil {
			return err
		}
		material.Colors = colors
		return tx.Omit("MaterialCategory", "MaterialType", "Texture", "Colors.*").Create(material).Error
	})
	return translateError(err, ErrMaterialNotFound)
}

// UpdateMaterial saves the scalar columns of material. A nil colorIDs keeps
// the linked colors; otherwise they are replaced in the same transaction.
func (r *MaterialsRepository) UpdateMaterial(material *Material, colorIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var colors []Color
		if colorIDs != nil {
			var err error
			if colors, err = ownedBy[Color](tx, material.TenantID, colorIDs, ErrColorNotFound); err != nil {
				return err
			}
		}

		res := tx.Model(material).
			Where("tenant_id = ?", material.TenantID).
			Select("slug", "name_he", "name_en", "description_he", "description_en",
				"material_category_id", "material_type_id", "texture_id",
				"price_per_m2", "image_url", "is_abstract", "sort_order").
			Updates(material)
		if err := affected(res, ErrMaterialNotFound); err != nil {
			return err
		}
		if colorIDs == nil {
			return nil
		}
		return tx.Omit("Colors.*").Model(material).Association("Colors").Replace(colors)
	})
	return translateError(err, ErrMaterialNotFound)
}

// ReplaceColors sets the material's colors to colorIDs, which must all
// belong to the material's tenant.
func (r *MaterialsRepository) ReplaceColors(material *Material, colorIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		colors, err := ownedBy[Color](tx, material.TenantID, colorIDs, ErrColorNotFound)
		if err != nil {
			return err
		}
		return tx.Omit("Colors.*").Model(material).Association("Colors").Replace(colors)
	})
	return translateError(err, ErrMaterialNotFound)
}

// SetImage records a generated or uploaded image for the material.
func (r *MaterialsRepository) SetImage(tenantID uuid.UUID, id uint, url string, abstract bool) error {
	res := r.db.Model(&Material{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]any{"image_url": url, "is_abstract": abstract})
	return affected(res, ErrMaterialNotFound)
}

func (r *MaterialsRepository) DeleteMaterial(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Material{}, id)
	return deleted(res, ErrMaterialNotFound)
}

// --- Material categories & types ---

func (r *MaterialsRepository) GetAllMaterialCategories(tenantID uuid.UUID) ([]MaterialCategory, error) {
	var categories []MaterialCategory
	if err := r.db.
		Preload("MaterialTypes", orderedSubCategories).
		Where("tenant_id = ?", tenantID).
		Order("sort_order, id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *MaterialsRepository) GetMaterialCategory(tenantID uuid.UUID, id uint) (*MaterialCategory, error) {
	var category MaterialCategory
	if err := r.db.
		Preload("MaterialTypes", orderedSubCategories).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&category).Error; err != nil {
		return nil, translateError(err, ErrMaterialCategoryNotFound)
	}
	return &category, nil
}

func (r *MaterialsRepository) GetMaterialCategoryBySlug(tenantID uuid.UUID, slug string) (*MaterialCategory, error) {
	var category MaterialCategory
	if err := r.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&category).Error; err != nil {
		return nil, translateError(err, ErrMaterialCategoryNotFound)
	}
	return &category, nil
}

func (r *MaterialsRepository) CreateMaterialCategory(category *MaterialCategory) error {
	return translateError(r.db.Omit("MaterialTypes").Create(category).Error, ErrMaterialCategoryNotFound)
}

func (r *MaterialsRepository) UpdateMaterialCategory(category *MaterialCategory) error {
	res := r.db.Model(category).
		Where("tenant_id = ?", category.TenantID).
		Select("slug", "name_he", "name_en", "sort_order").
		Updates(category)
	return affected(res, ErrMaterialCategoryNotFound)
}

func (r *MaterialsRepository) DeleteMaterialCategory(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&MaterialCategory{}, id)
	return deleted(res, ErrMaterialCategoryNotFound)
}

func (r *MaterialsRepository) GetMaterialType(tenantID uuid.UUID, id uint) (*MaterialType, error) {
	var materialType MaterialType
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&materialType).Error; err != nil {
		return nil, translateError(err, ErrMaterialTypeNotFound)
	}
	return &materialType, nil
}

func (r *MaterialsRepository) CreateMaterialType(materialType *MaterialType) error {
	return translateError(r.db.Create(materialType).Error, ErrMaterialTypeNotFound)
}

func (r *MaterialsRepository) UpdateMaterialType(materialType *MaterialType) error {
	res := r.db.Model(materialType).
		Where("tenant_id = ?", materialType.TenantID).
		Select("material_category_id", "slug", "name_he", "name_en", "sort_order").
		Updates(materialType)
	return affected(res, ErrMaterialTypeNotFound)
}

func (r *MaterialsRepository) DeleteMaterialType(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&MaterialType{}, id)
	return deleted(res, ErrMaterialTypeNotFound)
}
