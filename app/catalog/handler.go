package catalog

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

type Response struct {
	Total  int     `json:"total"`
	Styles []Style `json:"styles"`
}

type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Color struct {
	ID   uint   `json:"id"`
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

type Style struct {
	ID          uint      `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
	SubCategory *Category `json:"subCategory,omitempty"`
	Color       *Color    `json:"color,omitempty"`
	Image       string    `json:"image,omitempty"`
	Tags        []string  `json:"tags"`
}

type Material struct {
	ID         uint    `json:"id"`
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	PricePerM2 float64 `json:"pricePerM2"`
}

type PaletteColor struct {
	ColorID *uint  `json:"colorId,omitempty"`
	Hex     string `json:"hex"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role,omitempty"`
}

type PaletteMaterial struct {
	MaterialID  *uint  `json:"materialId,omitempty"`
	Name        string `json:"name"`
	Application string `json:"application,omitempty"`
}

type RoomProfile struct {
	ID          uint              `json:"id"`
	RoomType    string            `json:"roomType"`
	Description string            `json:"description,omitempty"`
	Images      []string          `json:"images"`
	Colors      []PaletteColor    `json:"colors"`
	Materials   []PaletteMaterial `json:"materials"`
}

type StyleDetail struct {
	Style
	Images       []string      `json:"images"`
	Materials    []Material    `json:"materials"`
	RoomProfiles []RoomProfile `json:"roomProfiles"`
}

type StyleProvider interface {
	GetFiltered(tenantID uuid.UUID, offset, limit int, filters models.StyleFilters) ([]models.Style, int64, error)
	GetPublishedBySlug(tenantID uuid.UUID, categorySlug, slug string) (*models.Style, error)
	GetByID(tenantID uuid.UUID, id uint) (*models.Style, error)
	Create(style *models.Style, materialIDs []uint) error
	Update(style *models.Style, materialIDs []uint) error
	ReplaceMaterials(style *models.Style, materialIDs []uint) error
	Delete(tenantID uuid.UUID, id uint) error
}

type RoomProfileProvider interface {
	GetByID(tenantID uuid.UUID, id uint) (*models.RoomProfile, error)
	ListByStyle(tenantID uuid.UUID, styleID uint) ([]models.RoomProfile, error)
	CreateRoomProfile(profile *models.RoomProfile) error
	UpdateRoomProfile(profile *models.RoomProfile) error
	DeleteRoomProfile(tenantID uuid.UUID, id uint) error
}

type ColorProvider interface {
	GetAllColors(tenantID *uuid.UUID) ([]models.Color, error)
	GetByID(tenantID uuid.UUID, id uint) (*models.Color, error)
}

type MaterialProvider interface {
	GetAllMaterials(tenantID *uuid.UUID, filters models.MaterialFilters) ([]models.Material, error)
}

type CategoryLookup interface {
	GetByID(tenantID uuid.UUID, id uint) (*models.Category, error)
	GetSubCategory(tenantID uuid.UUID, id uint) (*models.SubCategory, error)
}

type Deps struct {
	Styles     StyleProvider
	Rooms      RoomProfileProvider
	Colors     ColorProvider
	Materials  MaterialProvider
	Categories CategoryLookup
}

type CatalogHandler struct {
	Deps
	validate *validator.Validator
}

func NewCatalogHandler(d Deps, v *validator.Validator) *CatalogHandler {
	return &CatalogHandler{
		Deps:     d,
		validate: v,
	}
}

// styleFilters reads the list filters shared by the public and admin listings.
func styleFilters(r *http.Request) (models.StyleFilters, error) {
	colorID, err := api.QueryID(r, "color")
	if err != nil {
		return models.StyleFilters{}, err
	}
	materialID, err := api.QueryID(r, "material")
	if err != nil {
		return models.StyleFilters{}, err
	}
	return models.StyleFilters{
		CategorySlug:    r.URL.Query().Get("category"),
		SubCategorySlug: r.URL.Query().Get("subcategory"),
		ColorID:         colorID,
		MaterialID:      materialID,
	}, nil
}

func toStyle(s models.Style, locale string) Style {
	out := Style{
		ID:          s.ID,
		Slug:        s.Slug,
		Name:        s.Name.Pick(locale),
		Description: s.Description.Pick(locale),
		Category: Category{
			Slug: s.Category.Slug,
			Name: s.Category.Name.Pick(locale),
		},
		Tags: []string(s.Tags),
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if s.SubCategory != nil {
		out.SubCategory = &Category{Slug: s.SubCategory.Slug, Name: s.SubCategory.Name.Pick(locale)}
	}
	if s.Color != nil {
		out.Color = &Color{ID: s.Color.ID, Hex: s.Color.Hex, Name: s.Color.Name.Pick(locale)}
	}
	if len(s.Images) > 0 {
		out.Image = s.Images[0]
	}
	return out
}

// HandleGet lists published styles.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	offset, limit := api.Pagination(r)
	filters, err := styleFilters(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	filters.PublishedOnly = true

	res, total, err := h.Styles.GetFiltered(tenantID, offset, limit, filters)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	locale := api.Locale(r)
	styles := make([]Style, len(res))
	for i, s := range res {
		styles[i] = toStyle(s, locale)
	}

	api.OKResponse(w, Response{
		Total:  int(total),
		Styles: styles,
	})
}

// HandleGetStyle returns a published style with its materials and room
// profiles. The category comes from the path or the ?category= parameter.
// Converted palette entries are resolved to the current names.
func (h *CatalogHandler) HandleGetStyle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	category := r.PathValue("category")
	if category == "" {
		category = r.URL.Query().Get("category")
	}
	style, err := h.Styles.GetPublishedBySlug(tenantID, category, r.PathValue("slug"))
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	locale := api.Locale(r)
	names, err := h.paletteNames(tenantID, style.RoomProfiles)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	materials := make([]Material, len(style.Materials))
	for i, m := range style.Materials {
		materials[i] = Material{
			ID:         m.ID,
			Slug:       m.Slug,
			Name:       m.Name.Pick(locale),
			ImageURL:   m.ImageURL,
			PricePerM2: m.PricePerM2.InexactFloat64(),
		}
	}

	rooms := make([]RoomProfile, len(style.RoomProfiles))
	for i, p := range style.RoomProfiles {
		rooms[i] = names.room(p, locale)
	}

	api.OKResponse(w, StyleDetail{
		Style:        toStyle(*style, locale),
		Images:       stringsOrEmpty(style.Images),
		Materials:    materials,
		RoomProfiles: rooms,
	})
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
