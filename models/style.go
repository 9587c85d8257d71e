package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Style represents a design style in the catalog.
// It ties a category, an optional subcategory, a dominant color and a set of
// materials together, and carries one room profile per room type.
type Style struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	TenantID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"-"`
	CategoryID    uint                        `gorm:"not null;uniqueIndex:idx_styles_category_slug,priority:1" json:"categoryId"`
	Category      Category                    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID *uint                       `gorm:"index" json:"subCategoryId,omitempty"`
	SubCategory   *SubCategory                `gorm:"foreignKey:SubCategoryID" json:"subCategory,omitempty"`
	ColorID       *uint                       `gorm:"index" json:"colorId,omitempty"`
	Color         *Color                      `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	ColorHex      string                      `gorm:"size:7;not null;default:''" json:"colorHex"` // legacy, superseded by ColorID
	Slug          string                      `gorm:"not null;uniqueIndex:idx_styles_category_slug,priority:2" json:"slug"`
	Name          Localized                   `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description   Localized                   `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Order         int                         `gorm:"column:sort_order;not null;default:0" json:"order"`
	Published     bool                        `gorm:"not null;default:false;index" json:"published"`
	Images        pq.StringArray              `gorm:"type:text[]" json:"images"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Materials     []Material                  `gorm:"many2many:style_materials" json:"materials,omitempty"`
	RoomProfiles  []RoomProfile               `gorm:"foreignKey:StyleID;constraint:OnDelete:CASCADE" json:"roomProfiles,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

func (s *Style) TableName() string {
	return "styles"
}
