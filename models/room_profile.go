package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// RoomTypes lists the room types a style can be profiled for.
var RoomTypes = []string{
	"living-room",
	"bedroom",
	"kitchen",
	"bathroom",
	"dining-room",
	"kids-room",
	"office",
	"entrance",
}

// RoomProfile is the per-room configuration of a Style.
type RoomProfile struct {
	ID          uint                            `gorm:"primaryKey" json:"id"`
	TenantID    uuid.UUID                       `gorm:"type:uuid;not null;index" json:"-"`
	StyleID     uint                            `gorm:"not null;uniqueIndex:idx_room_profiles_style_room,priority:1" json:"styleId"`
	RoomType    string                          `gorm:"not null;uniqueIndex:idx_room_profiles_style_room,priority:2" json:"roomType"`
	Description Localized                       `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Order       int                             `gorm:"column:sort_order;not null;default:0" json:"order"`
	Images      pq.StringArray                  `gorm:"type:text[]" json:"images"`
	Palette     datatypes.JSONType[RoomPalette] `gorm:"type:jsonb" json:"palette"`
}

func (r *RoomProfile) TableName() string {
	return "room_profiles"
}

// RoomPalette is the denormalized color/material blob of a room profile.
// Older rows only carry Hex and Name; the backfill jobs add the IDs.
type RoomPalette struct {
	Colors    []PaletteColor    `json:"colors"`
	Materials []PaletteMaterial `json:"materials"`
}

type PaletteColor struct {
	Hex     string `json:"hex,omitempty"`
	ColorID *uint  `json:"colorId,omitempty"`
	Role    string `json:"role,omitempty"`
}

func (c PaletteColor) Converted() bool { return c.ColorID != nil }

type PaletteMaterial struct {
	Name        string `json:"name,omitempty"`
	MaterialID  *uint  `json:"materialId,omitempty"`
	Application string `json:"application,omitempty"`
}

func (m PaletteMaterial) Converted() bool { return m.MaterialID != nil }
