package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantsRepository struct {
	db *gorm.DB
}

func NewTenantsRepository(db *gorm.DB) *TenantsRepository {
	return &TenantsRepository{db: db}
}

func (r *TenantsRepository) GetBySlug(slug string) (*Tenant, error) {
	var tenant Tenant
	if err := r.db.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		return nil, translateError(err, ErrTenantNotFound)
	}
	return &tenant, nil
}

func (r *TenantsRepository) GetByID(id uuid.UUID) (*Tenant, error) {
	var tenant Tenant
	if err := r.db.Where("id = ?", id).First(&tenant).Error; err != nil {
		return nil, translateError(err, ErrTenantNotFound)
	}
	return &tenant, nil
}

// Ensure returns the tenant with the given slug, creating it when missing.
func (r *TenantsRepository) Ensure(slug, name string) (*Tenant, error) {
	tenant := Tenant{Slug: slug, Name: name}
	if err := r.db.Where(Tenant{Slug: slug}).Attrs(Tenant{Name: name}).FirstOrCreate(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
