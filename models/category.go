package models

import (
	"github.com/google/uuid"
)

// Category is the top level of the style catalog (e.g. "Modern", "Classic").
// Slugs are unique per tenant.
type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	TenantID      uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_categories_tenant_slug,priority:1" json:"-"`
	Slug          string        `gorm:"not null;uniqueIndex:idx_categories_tenant_slug,priority:2" json:"slug"`
	Name          Localized     `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description   Localized     `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Order         int           `gorm:"column:sort_order;not null;default:0" json:"order"`
	ImageURL      string        `gorm:"not null;default:''" json:"imageUrl"`
	SubCategories []SubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"subCategories,omitempty"`
}

func (c *Category) TableName() string {
	return "categories"
}

// SubCategory belongs to a Category. Slugs are unique within the parent category.
type SubCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	CategoryID  uint      `gorm:"not null;uniqueIndex:idx_sub_categories_category_slug,priority:1" json:"categoryId"`
	Slug        string    `gorm:"not null;uniqueIndex:idx_sub_categories_category_slug,priority:2" json:"slug"`
	Name        Localized `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description Localized `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (s *SubCategory) TableName() string {
	return "sub_categories"
}
