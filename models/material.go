package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialCategory groups materials and textures (e.g. "Wood", "Stone").
type MaterialCategory struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_material_categories_tenant_slug,priority:1" json:"-"`
	Slug          string         `gorm:"not null;uniqueIndex:idx_material_categories_tenant_slug,priority:2" json:"slug"`
	Name          Localized      `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Order         int            `gorm:"column:sort_order;not null;default:0" json:"order"`
	MaterialTypes []MaterialType `gorm:"foreignKey:MaterialCategoryID;constraint:OnDelete:CASCADE" json:"materialTypes,omitempty"`
}

func (m *MaterialCategory) TableName() string {
	return "material_categories"
}

// MaterialType narrows a MaterialCategory (e.g. "Oak" under "Wood").
type MaterialType struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	TenantID           uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	MaterialCategoryID uint      `gorm:"not null;uniqueIndex:idx_material_types_category_slug,priority:1" json:"materialCategoryId"`
	Slug               string    `gorm:"not null;uniqueIndex:idx_material_types_category_slug,priority:2" json:"slug"`
	Name               Localized `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Order              int       `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (m *MaterialType) TableName() string {
	return "material_types"
}

// Material is a physical finish. IsAbstract marks AI-generated imagery.
type Material struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	TenantID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_materials_tenant_slug,priority:1" json:"-"`
	Slug               string           `gorm:"not null;uniqueIndex:idx_materials_tenant_slug,priority:2" json:"slug"`
	Name               Localized        `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description        Localized        `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	MaterialCategoryID uint             `gorm:"not null;index" json:"materialCategoryId"`
	MaterialCategory   MaterialCategory `gorm:"foreignKey:MaterialCategoryID" json:"materialCategory,omitempty"`
	MaterialTypeID     *uint            `gorm:"index" json:"materialTypeId,omitempty"`
	MaterialType       *MaterialType    `gorm:"foreignKey:MaterialTypeID" json:"materialType,omitempty"`
	TextureID          *uint            `gorm:"index" json:"textureId,omitempty"`
	Texture            *Texture         `gorm:"foreignKey:TextureID" json:"texture,omitempty"`
	PricePerM2         decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"pricePerM2"`
	ImageURL           string           `gorm:"not null;default:''" json:"imageUrl"`
	IsAbstract         bool             `gorm:"not null;default:false" json:"isAbstract"`
	Colors             []Color          `gorm:"many2many:material_colors" json:"colors,omitempty"`
	Order              int              `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (m *Material) TableName() string {
	return "materials"
}
