package models

import "github.com/google/uuid"

// Color is a named reference color. Hex is stored normalized as #rrggbb.
type Color struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_colors_tenant_hex,priority:1" json:"-"`
	Hex      string    `gorm:"size:7;not null;uniqueIndex:idx_colors_tenant_hex,priority:2" json:"hex"`
	Name     Localized `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Family   string    `gorm:"not null;default:''" json:"family"`
	Order    int       `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (c *Color) TableName() string {
	return "colors"
}
