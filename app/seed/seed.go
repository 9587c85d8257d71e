// Package seed loads reference catalog data from a YAML fixture.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/matching"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

type Fixture struct {
	Tenant struct {
		Slug string `yaml:"slug" json:"slug" validate:"required,slug"`
		Name string `yaml:"name" json:"name" validate:"required"`
	} `yaml:"tenant" json:"tenant"`
	Colors             []ColorFixture            `yaml:"colors" json:"colors" validate:"dive"`
	Categories         []CategoryFixture         `yaml:"categories" json:"categories" validate:"dive"`
	MaterialCategories []MaterialCategoryFixture `yaml:"materialCategories" json:"materialCategories" validate:"dive"`
	Textures           []TextureFixture          `yaml:"textures" json:"textures" validate:"dive"`
	Materials          []MaterialFixture         `yaml:"materials" json:"materials" validate:"dive"`
}

type ColorFixture struct {
	Hex    string           `yaml:"hex" json:"hex" validate:"required,hexcolor6"`
	Name   models.Localized `yaml:"name" json:"name"`
	Family string           `yaml:"family" json:"family"`
}

type CategoryFixture struct {
	Slug          string               `yaml:"slug" json:"slug" validate:"required,slug"`
	Name          models.Localized     `yaml:"name" json:"name"`
	Description   models.Localized     `yaml:"description" json:"description"`
	ImageURL      string               `yaml:"imageUrl" json:"imageUrl"`
	SubCategories []SubCategoryFixture `yaml:"subCategories" json:"subCategories" validate:"dive"`
}

type SubCategoryFixture struct {
	Slug        string           `yaml:"slug" json:"slug" validate:"required,slug"`
	Name        models.Localized `yaml:"name" json:"name"`
	Description models.Localized `yaml:"description" json:"description"`
}

type MaterialCategoryFixture struct {
	Slug  string           `yaml:"slug" json:"slug" validate:"required,slug"`
	Name  models.Localized `yaml:"name" json:"name"`
	Types []struct {
		Slug string           `yaml:"slug" json:"slug" validate:"required,slug"`
		Name models.Localized `yaml:"name" json:"name"`
	} `yaml:"types" json:"types" validate:"dive"`
}

type TextureFixture struct {
	Slug             string           `yaml:"slug" json:"slug" validate:"required,slug"`
	Name             models.Localized `yaml:"name" json:"name"`
	MaterialCategory string           `yaml:"materialCategory" json:"materialCategory"`
	ImageURL         string           `yaml:"imageUrl" json:"imageUrl"`
}

type MaterialFixture struct {
	Slug        string           `yaml:"slug" json:"slug" validate:"required,slug"`
	Name        models.Localized `yaml:"name" json:"name"`
	Description models.Localized `yaml:"description" json:"description"`
	Category    string           `yaml:"category" json:"category" validate:"required"`
	Type        string           `yaml:"type" json:"type"`
	Texture     string           `yaml:"texture" json:"texture"`
	PricePerM2  string           `yaml:"pricePerM2" json:"pricePerM2" validate:"omitempty,numeric"`
	ImageURL    string           `yaml:"imageUrl" json:"imageUrl"`
	Colors      []string         `yaml:"colors" json:"colors" validate:"dive,hexcolor6"`
}

// Summary counts the rows written per table.
type Summary struct {
	Tenant             string
	Colors             int
	Categories         int
	SubCategories      int
	MaterialCategories int
	MaterialTypes      int
	Textures           int
	Materials          int
}

func (s Summary) String() string {
	return fmt.Sprintf("tenant=%s colors=%d categories=%d subcategories=%d material_categories=%d material_types=%d textures=%d materials=%d",
		s.Tenant, s.Colors, s.Categories, s.SubCategories, s.MaterialCategories, s.MaterialTypes, s.Textures, s.Materials)
}

func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a fixture. References between sections
// (material category, type, texture and color hex) are checked too.
func Parse(r io.Reader) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}
	if err := validator.New().Validate(&fx); err != nil {
		return nil, err
	}
	if err := fx.checkReferences(); err != nil {
		return nil, err
	}
	return &fx, nil
}

func (fx *Fixture) checkReferences() error {
	hexes := map[string]bool{}
	for _, c := range fx.Colors {
		hex, _ := matching.NormalizeHex(c.Hex)
		hexes[hex] = true
	}
	types := map[string]bool{}
	for _, mc := range fx.MaterialCategories {
		types[mc.Slug] = true
		for _, t := range mc.Types {
			types[mc.Slug+"/"+t.Slug] = true
		}
	}
	textures := map[string]bool{}
	for _, t := range fx.Textures {
		textures[t.Slug] = true
		if t.MaterialCategory != "" && !types[t.MaterialCategory] {
			return fmt.Errorf("texture %s: unknown material category %q", t.Slug, t.MaterialCategory)
		}
	}
	for _, m := range fx.Materials {
		if !types[m.Category] {
			return fmt.Errorf("material %s: unknown material category %q", m.Slug, m.Category)
		}
		if m.Type != "" && !types[m.Category+"/"+m.Type] {
			return fmt.Errorf("material %s: unknown material type %q", m.Slug, m.Type)
		}
		if m.Texture != "" && !textures[m.Texture] {
			return fmt.Errorf("material %s: unknown texture %q", m.Slug, m.Texture)
		}
		for _, h := range m.Colors {
			hex, _ := matching.NormalizeHex(h)
			if !hexes[hex] {
				return fmt.Errorf("material %s: unknown color %q", m.Slug, h)
			}
		}
	}
	return nil
}

func upsert(columns []string, updates ...string) clause.OnConflict {
	cols := make([]clause.Column, len(columns))
	for i, c := range columns {
		cols[i] = clause.Column{Name: c}
	}
	return clause.OnConflict{Columns: cols, DoUpdates: clause.AssignmentColumns(updates)}
}

var (
	localizedName = []string{"name_he", "name_en"}
	localizedDesc = []string{"description_he", "description_en"}
)

func with(cols []string, more ...string) []string {
	return append(append([]string{}, cols...), more...)
}

// Apply writes fx in one transaction. Rows are matched by slug (colors by
// hex) so applying the same fixture twice updates in place.
func Apply(ctx context.Context, db *gorm.DB, fx *Fixture) (Summary, error) {
	var sum Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := models.NewTenantsRepository(tx).Ensure(fx.Tenant.Slug, fx.Tenant.Name)
		if err != nil {
			return fmt.Errorf("tenant: %w", err)
		}
		sum.Tenant = tenant.Slug

		colorIDs, err := seedColors(tx, tenant, fx.Colors)
		if err != nil {
			return fmt.Errorf("colors: %w", err)
		}
		sum.Colors = len(colorIDs)

		if sum.Categories, sum.SubCategories, err = seedCategories(tx, tenant, fx.Categories); err != nil {
			return fmt.Errorf("categories: %w", err)
		}

		refs, err := seedMaterialCategories(tx, tenant, fx.MaterialCategories, &sum)
		if err != nil {
			return fmt.Errorf("material categories: %w", err)
		}

		textureIDs, err := seedTextures(tx, tenant, fx.Textures, refs)
		if err != nil {
			return fmt.Errorf("textures: %w", err)
		}
		sum.Textures = len(textureIDs)

		if sum.Materials, err = seedMaterials(tx, tenant, fx.Materials, refs, textureIDs, colorIDs); err != nil {
			return fmt.Errorf("materials: %w", err)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	logger.FromContext(ctx).Info("fixture applied", "summary", sum.String())
	return sum, nil
}

func seedColors(tx *gorm.DB, tenant *models.Tenant, in []ColorFixture) (map[string]uint, error) {
	ids := map[string]uint{}
	for i, c := range in {
		hex, err := matching.NormalizeHex(c.Hex)
		if err != nil {
			return nil, err
		}
		row := models.Color{TenantID: tenant.ID, Hex: hex, Name: c.Name, Family: c.Family, Order: i}
		if err := tx.Clauses(upsert([]string{"tenant_id", "hex"}, with(localizedName, "family", "sort_order")...)).Create(&row).Error; err != nil {
			return nil, err
		}
		ids[hex] = row.ID
	}
	return ids, nil
}

func seedCategories(tx *gorm.DB, tenant *models.Tenant, in []CategoryFixture) (int, int, error) {
	subs := 0
	for i, c := range in {
		row := models.Category{
			TenantID:    tenant.ID,
			Slug:        c.Slug,
			Name:        c.Name,
			Description: c.Description,
			ImageURL:    c.ImageURL,
			Order:       i,
		}
		err := tx.Omit(clause.Associations).
			Clauses(upsert([]string{"tenant_id", "slug"}, with(localizedName, "description_he", "description_en", "image_url", "sort_order")...)).
			Create(&row).Error
		if err != nil {
			return 0, 0, err
		}
		for j, s := range c.SubCategories {
			sub := models.SubCategory{
				TenantID:    tenant.ID,
				CategoryID:  row.ID,
				Slug:        s.Slug,
				Name:        s.Name,
				Description: s.Description,
				Order:       j,
			}
			if err := tx.Clauses(upsert([]string{"category_id", "slug"}, with(localizedName, with(localizedDesc, "sort_order")...)...)).Create(&sub).Error; err != nil {
				return 0, 0, err
			}
			subs++
		}
	}
	return len(in), subs, nil
}

// materialRefs maps "category" and "category/type" slugs to IDs.
type materialRefs map[string]uint

func seedMaterialCategories(tx *gorm.DB, tenant *models.Tenant, in []MaterialCategoryFixture, sum *Summary) (materialRefs, error) {
	refs := materialRefs{}
	for i, mc := range in {
		row := models.MaterialCategory{TenantID: tenant.ID, Slug: mc.Slug, Name: mc.Name, Order: i}
		err := tx.Omit(clause.Associations).
			Clauses(upsert([]string{"tenant_id", "slug"}, with(localizedName, "sort_order")...)).
			Create(&row).Error
		if err != nil {
			return nil, err
		}
		refs[mc.Slug] = row.ID
		sum.MaterialCategories++

		for j, t := range mc.Types {
			typ := models.MaterialType{TenantID: tenant.ID, MaterialCategoryID: row.ID, Slug: t.Slug, Name: t.Name, Order: j}
			if err := tx.Clauses(upsert([]string{"material_category_id", "slug"}, with(localizedName, "sort_order")...)).Create(&typ).Error; err != nil {
				return nil, err
			}
			refs[mc.Slug+"/"+t.Slug] = typ.ID
			sum.MaterialTypes++
		}
	}
	return refs, nil
}

func seedTextures(tx *gorm.DB, tenant *models.Tenant, in []TextureFixture, refs materialRefs) (map[string]uint, error) {
	ids := map[string]uint{}
	for i, t := range in {
		row := models.Texture{TenantID: tenant.ID, Slug: t.Slug, Name: t.Name, ImageURL: t.ImageURL, Order: i}
		if id, ok := refs[t.MaterialCategory]; ok {
			row.MaterialCategoryID = &id
		}
		err := tx.Clauses(upsert([]string{"tenant_id", "slug"}, with(localizedName, "material_category_id", "image_url", "sort_order")...)).
			Create(&row).Error
		if err != nil {
			return nil, err
		}
		ids[t.Slug] = row.ID
	}
	return ids, nil
}

func seedMaterials(tx *gorm.DB, tenant *models.Tenant, in []MaterialFixture, refs materialRefs, textures, colors map[string]uint) (int, error) {
	repo := models.NewMaterialsRepository(tx)
	for i, m := range in {
		price := decimal.Zero
		if strings.TrimSpace(m.PricePerM2) != "" {
			p, err := decimal.NewFromString(m.PricePerM2)
			if err != nil {
				return 0, fmt.Errorf("material %s: %w", m.Slug, err)
			}
			price = p
		}
		row := models.Material{
			TenantID:           tenant.ID,
			Slug:               m.Slug,
			Name:               m.Name,
			Description:        m.Description,
			MaterialCategoryID: refs[m.Category],
			PricePerM2:         price,
			ImageURL:           m.ImageURL,
			Order:              i,
		}
		if m.Type != "" {
			id := refs[m.Category+"/"+m.Type]
			row.MaterialTypeID = &id
		}
		if m.Texture != "" {
			id := textures[m.Texture]
			row.TextureID = &id
		}
		err := tx.Omit(clause.Associations).
			Clauses(upsert([]string{"tenant_id", "slug"}, with(localizedName,
				"description_he", "description_en", "material_category_id", "material_type_id",
				"texture_id", "price_per_m2", "image_url", "sort_order")...)).
			Create(&row).Error
		if err != nil {
			return 0, err
		}

		colorIDs := make([]uint, 0, len(m.Colors))
		for _, h := range m.Colors {
			hex, _ := matching.NormalizeHex(h)
			colorIDs = append(colorIDs, colors[hex])
		}
		if err := repo.ReplaceColors(&row, colorIDs); err != nil {
			return 0, err
		}
	}
	return len(in), nil
}
