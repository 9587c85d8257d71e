package models

import "github.com/google/uuid"

type Texture struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	TenantID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_textures_tenant_slug,priority:1" json:"-"`
	Slug               string    `gorm:"not null;uniqueIndex:idx_textures_tenant_slug,priority:2" json:"slug"`
	Name               Localized `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description        Localized `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	MaterialCategoryID *uint     `gorm:"index" json:"materialCategoryId,omitempty"`
	ImageURL           string    `gorm:"not null;default:''" json:"imageUrl"`
	IsAbstract         bool      `gorm:"not null;default:false" json:"isAbstract"`
	Order              int       `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (t *Texture) TableName() string {
	return "textures"
}
