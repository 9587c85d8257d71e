package models

import (
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func uniqueIDs(ids []uint) []uint {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// ownedBy loads the records of tenantID with the given IDs. An ID that does
// not exist or belongs to another tenant fails with notFound.
func ownedBy[T any](tx *gorm.DB, tenantID uuid.UUID, ids []uint, notFound error) ([]T, error) {
	ids = uniqueIDs(ids)
	records := []T{}
	if len(ids) == 0 {
		return records, nil
	}
	if err := tx.Where("tenant_id = ? AND id IN ?", tenantID, ids).Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) != len(ids) {
		return nil, notFound
	}
	return records, nil
}
