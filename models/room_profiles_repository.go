package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomProfilesRepository struct {
	db *gorm.DB
}

func NewRoomProfilesRepository(db *gorm.DB) *RoomProfilesRepository {
	return &RoomProfilesRepository{db: db}
}

func (r *RoomProfilesRepository) GetByID(tenantID uuid.UUID, id uint) (*RoomProfile, error) {
	var profile RoomProfile
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&profile).Error; err != nil {
		return nil, translateError(err, ErrRoomProfileNotFound)
	}
	return &profile, nil
}

func (r *RoomProfilesRepository) ListByStyle(tenantID uuid.UUID, styleID uint) ([]RoomProfile, error) {
	var profiles []RoomProfile
	if err := r.db.
		Where("tenant_id = ? AND style_id = ?", tenantID, styleID).
		Order("sort_order, id").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListForMigration returns every room profile ordered by id.
// A nil tenantID scans all tenants.
func (r *RoomProfilesRepository) ListForMigration(tenantID *uuid.UUID) ([]RoomProfile, error) {
	var profiles []RoomProfile
	query := r.db.Order("id")
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *RoomProfilesRepository) CreateRoomProfile(profile *RoomProfile) error {
	return translateError(r.db.Create(profile).Error, ErrRoomProfileNotFound)
}

func (r *RoomProfilesRepository) UpdateRoomProfile(profile *RoomProfile) error {
	res := r.db.Model(profile).
		Where("tenant_id = ?", profile.TenantID).
		Select("room_type", "description_he", "description_en", "sort_order", "images", "palette").
		Updates(profile)
	return affected(res, ErrRoomProfileNotFound)
}

// SavePalette writes only the palette column.
func (r *RoomProfilesRepository) SavePalette(id uint, palette RoomPalette) error {
	res := r.db.Model(&RoomProfile{}).
		Where("id = ?", id).
		Update("palette", datatypes.NewJSONType(palette))
	return affected(res, ErrRoomProfileNotFound)
}

func (r *RoomProfilesRepository) DeleteRoomProfile(tenantID uuid.UUID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&RoomProfile{}, id)
	return deleted(res, ErrRoomProfileNotFound)
}
