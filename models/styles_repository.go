package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StylesRepository struct {
	db *gorm.DB
}

type StyleFilters struct {
	CategorySlug    string
	SubCategorySlug string
	ColorID         *uint
	MaterialID      *uint
	PublishedOnly   bool
}

func NewStylesRepository(db *gorm.DB) *StylesRepository {
	return &StylesRepository{
		db: db,
	}
}

func (r *StylesRepository) GetFiltered(tenantID uuid.UUID, offset, limit int, filters StyleFilters) ([]Style, int64, error) {
	var styles []Style
	var total int64

	query := r.db.Model(&Style{}).
		Joins("LEFT JOIN categories ON categories.id = styles.category_id").
		Joins("LEFT JOIN sub_categories ON sub_categories.id = styles.sub_category_id").
		Where("styles.tenant_id = ?", tenantID).
		Preload("Category").
		Preload("SubCategory").
		Preload("Color")

	// Filter
	if filters.CategorySlug != "" {
		query = query.Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.SubCategorySlug != "" {
		query = query.Where("sub_categories.slug = ?", filters.SubCategorySlug)
	}
	if filters.ColorID != nil {
		query = query.Where("styles.color_id = ?", *filters.ColorID)
	}
	if filters.MaterialID != nil {
		query = query.Where("EXISTS (SELECT 1 FROM style_materials sm WHERE sm.style_id = styles.id AND sm.material_id = ?)", *filters.MaterialID)
	}
	if filters.PublishedOnly {
		query = query.Where("styles.published = ?", true)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.Order("styles.sort_order, styles.id").Offset(offset).Limit(limit).Find(&styles).Error; err != nil {
		return nil, 0, err
	}

	return styles, total, nil
}

// GetPublishedBySlug finds a published style. Slugs are unique per category,
// so a non-empty categorySlug picks between styles sharing slug; without it
// the first published match in catalog order wins.
func (r *StylesRepository) GetPublishedBySlug(tenantID uuid.UUID, categorySlug, slug string) (*Style, error) {
	var style Style
	query := r.detailed().
		Joins("JOIN categories ON categories.id = styles.category_id").
		Where("styles.tenant_id = ? AND styles.slug = ? AND styles.published = ?", tenantID, slug, true)
	if categorySlug != "" {
		query = query.Where("categories.slug = ?", categorySlug)
	}
	if err := query.Order("styles.sort_order, styles.id").First(&style).Error; err != nil {
		return nil, translateError(err, ErrStyleNotFound)
	}
	return &style, nil
}

func (r *StylesRepository) GetByID(tenantID uuid.UUID, id uint) (*Style, error) {
	var style Style
	err := r.detailed().
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&style).Error
	if err != nil {
		return nil, translateError(err, ErrStyleNotFound)
	}
	return &style, nil
}

func (r *StylesRepository) detailed() *gorm.DB {
	return r.db.
		Preload("Category").
		Preload("SubCategory").
		Preload("Color").
		Preload("Materials").
		Preload("RoomProfiles", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		})
}

// Create inserts style and links materialIDs in one transaction. Every
// material must belong to the style's tenant.
func (r *StylesRepository) Create(style *Style, materialIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		materials, err := ownedBy[Material](tx, style.TenantID, materialIDs, ErrMaterialNotFound)
		if err != nil {
			return err
		}
		style.Materials = materials
		return tx.Omit("Category", "SubCategory", "Color", "Materials.*").Create(style).Error
	})
	return translateError(err, ErrStyleNotFound)
}

// Update saves the scalar columns of style. A nil materialIDs keeps the
// linked materials; otherwise they are replaced in the same transaction.
func (r *StylesRepository) Update(style *Style, materialIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var materials []Material
		if materialIDs != nil {
			var err error
			if materials, err = ownedBy[Material](tx, style.TenantID, materialIDs, ErrMaterialNotFound); err != nil {
				return err
			}
		}

		res := tx.Model(style).
			Where("tenant_id = ?", style.TenantID).
			Select("category_id", "sub_category_id", "color_id", "color_hex", "slug",
				"name_he", "name_en", "description_he", "description_en",
				"sort_order", "published", "images", "tags").
			Updates(style)
		if err := affected(res, ErrStyleNotFound); err != nil {
			return err
		}
		if materialIDs == nil {
			return nil
		}
		return linkMaterials(tx, style, materials)
	})
	return translateError(err, ErrStyleNotFound)
}

// ReplaceMaterials sets the style's materials to materialIDs, which must all
// belong to the style's tenant.
func (r *StylesRepository) ReplaceMaterials(style *Style, materialIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		materials, err := ownedBy[Material](tx, style.TenantID, materialIDs, ErrMaterialNotFound)
		if err != nil {
			return err
		}
		return linkMaterials(tx, style, materials)
	})
	return translateError(err, ErrStyleNotFound)
}

func (r *StylesRepository) Delete(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Style{}, id)
	return deleted(res, ErrStyleNotFound)
}

// ListMissingColor returns styles that still only carry the legacy hex color.
// A nil tenantID scans every tenant.
func (r *StylesRepository) ListMissingColor(tenantID *uuid.UUID) ([]Style, error) {
	var styles []Style
	query := r.db.Where("color_id IS NULL AND color_hex <> ''")
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if err := query.Order("id").Find(&styles).Error; err != nil {
		return nil, err
	}
	return styles, nil
}

func (r *StylesRepository) SetColor(id, colorID uint) error {
	res := r.db.Model(&Style{}).Where("id = ?", id).Update("color_id", colorID)
	return affected(res, ErrStyleNotFound)
}

// AddImage appends url to the style's image gallery.
func (r *StylesRepository) AddImage(tenantID uuid.UUID, id uint, url string) error {
	res := r.db.Model(&Style{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("images", gorm.Expr("array_append(COALESCE(images, '{}'::text[]), ?)", url))
	return affected(res, ErrStyleNotFound)
}

// linkMaterials rewrites only the join rows; the style's own columns,
// updated_at included, are left alone.
func linkMaterials(tx *gorm.DB, style *Style, materials []Material) error {
	return tx.Session(&gorm.Session{SkipHooks: true}).
		Omit("Materials.*").
		Model(style).
		Association("Materials").
		Replace(materials)
}
