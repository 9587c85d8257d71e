package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func orderedSubCategories(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order, id")
}

// GetAllCategories returns the tenant's categories with their subcategories,
// both ordered by sort order then id.
func (r *CategoriesRepository) GetAllCategories(tenantID uuid.UUID) ([]Category, error) {
	var categories []Category
	if err := r.db.
		Preload("SubCategories", orderedSubCategories).
		Where("tenant_id = ?", tenantID).
		Order("sort_order, id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) GetBySlug(tenantID uuid.UUID, slug string) (*Category, error) {
	var category Category
	if err := r.db.
		Preload("SubCategories", orderedSubCategories).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&category).Error; err != nil {
		return nil, translateError(err, ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *CategoriesRepository) GetByID(tenantID uuid.UUID, id uint) (*Category, error) {
	var category Category
	if err := r.db.
		Preload("SubCategories", orderedSubCategories).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&category).Error; err != nil {
		return nil, translateError(err, ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(category *Category) error {
	return translateError(r.db.Omit("SubCategories").Create(category).Error, ErrCategoryNotFound)
}

func (r *CategoriesRepository) UpdateCategory(category *Category) error {
	res := r.db.Model(category).
		Where("tenant_id = ?", category.TenantID).
		Select("slug", "name_he", "name_en", "description_he", "description_en", "sort_order", "image_url").
		Updates(category)
	return affected(res, ErrCategoryNotFound)
}

func (r *CategoriesRepository) DeleteCategory(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Category{}, id)
	return deleted(res, ErrCategoryNotFound)
}

func (r *CategoriesRepository) GetSubCategory(tenantID uuid.UUID, id uint) (*SubCategory, error) {
	var sub SubCategory
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&sub).Error; err != nil {
		return nil, translateError(err, ErrSubCategoryNotFound)
	}
	return &sub, nil
}

func (r *CategoriesRepository) CreateSubCategory(sub *SubCategory) error {
	return translateError(r.db.Create(sub).Error, ErrSubCategoryNotFound)
}

func (r *CategoriesRepository) UpdateSubCategory(sub *SubCategory) error {
	res := r.db.Model(sub).
		Where("tenant_id = ?", sub.TenantID).
		Select("category_id", "slug", "name_he", "name_en", "description_he", "description_en", "sort_order").
		Updates(sub)
	return affected(res, ErrSubCategoryNotFound)
}

func (r *CategoriesRepository) DeleteSubCategory(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&SubCategory{}, id)
	return deleted(res, ErrSubCategoryNotFound)
}
