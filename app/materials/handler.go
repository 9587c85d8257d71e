package materials

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

type Ref struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type ColorRef struct {
	ID  uint   `json:"id"`
	Hex string `json:"hex"`
}

type Material struct {
	ID          uint       `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    Ref        `json:"category"`
	Type        *Ref       `json:"type,omitempty"`
	Texture     *Ref       `json:"texture,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	IsAbstract  bool       `json:"isAbstract"`
	PricePerM2  float64    `json:"pricePerM2"`
	Colors      []ColorRef `json:"colors"`
}

type MaterialCategory struct {
	Ref
	Types []Ref `json:"types"`
}

type Texture struct {
	ID          uint   `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	IsAbstract  bool   `json:"isAbstract"`
}

type MaterialProvider interface {
	GetAllMaterials(tenantID *uuid.UUID, filters models.MaterialFilters) ([]models.Material, error)
	GetByID(tenantID uuid.UUID, id uint) (*models.Material, error)
	CreateMaterial(material *models.Material, colorIDs []uint) error
	UpdateMaterial(material *models.Material, colorIDs []uint) error
	DeleteMaterial(tenantID uuid.UUID, id uint) error

	GetAllMaterialCategories(tenantID uuid.UUID) ([]models.MaterialCategory, error)
	GetMaterialCategory(tenantID uuid.UUID, id uint) (*models.MaterialCategory, error)
	CreateMaterialCategory(category *models.MaterialCategory) error
	UpdateMaterialCategory(category *models.MaterialCategory) error
	DeleteMaterialCategory(tenantID uuid.UUID, id uint) error

	GetMaterialType(tenantID uuid.UUID, id uint) (*models.MaterialType, error)
	CreateMaterialType(materialType *models.MaterialType) error
	UpdateMaterialType(materialType *models.MaterialType) error
	DeleteMaterialType(tenantID uuid.UUID, id uint) error
}

type TextureProvider interface {
	GetAllTextures(tenantID uuid.UUID) ([]models.Texture, error)
	GetByID(tenantID uuid.UUID, id uint) (*models.Texture, error)
	CreateTexture(texture *models.Texture) error
	UpdateTexture(texture *models.Texture) error
	DeleteTexture(tenantID uuid.UUID, id uint) error
}

type MaterialHandler struct {
	repo     MaterialProvider
	textures TextureProvider
	validate *validator.Validator
}

func NewMaterialHandler(r MaterialProvider, t TextureProvider, v *validator.Validator) *MaterialHandler {
	return &MaterialHandler{repo: r, textures: t, validate: v}
}

func toMaterial(m models.Material, locale string) Material {
	out := Material{
		ID:          m.ID,
		Slug:        m.Slug,
		Name:        m.Name.Pick(locale),
		Description: m.Description.Pick(locale),
		Category: Ref{
			ID:   m.MaterialCategory.ID,
			Slug: m.MaterialCategory.Slug,
			Name: m.MaterialCategory.Name.Pick(locale),
		},
		ImageURL:   m.ImageURL,
		IsAbstract: m.IsAbstract,
		PricePerM2: m.PricePerM2.InexactFloat64(),
		Colors:     make([]ColorRef, len(m.Colors)),
	}
	if m.MaterialType != nil {
		out.Type = &Ref{ID: m.MaterialType.ID, Slug: m.MaterialType.Slug, Name: m.MaterialType.Name.Pick(locale)}
	}
	if m.Texture != nil {
		out.Texture = &Ref{ID: m.Texture.ID, Slug: m.Texture.Slug, Name: m.Texture.Name.Pick(locale)}
	}
	for i, c := range m.Colors {
		out.Colors[i] = ColorRef{ID: c.ID, Hex: c.Hex}
	}
	return out
}

// HandleGetAll lists materials, optionally filtered by ?category=, ?type=
// (slugs) and ?abstract=true.
func (h *MaterialHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	materials, err := h.repo.GetAllMaterials(&tenantID, models.MaterialFilters{
		CategorySlug: q.Get("category"),
		TypeSlug:     q.Get("type"),
		AbstractOnly: q.Get("abstract") == "true",
	})
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	locale := api.Locale(r)
	response := make([]Material, len(materials))
	for i, m := range materials {
		response[i] = toMaterial(m, locale)
	}
	api.OKResponse(w, response)
}

func (h *MaterialHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	categories, err := h.repo.GetAllMaterialCategories(tenantID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	locale := api.Locale(r)
	response := make([]MaterialCategory, len(categories))
	for i, c := range categories {
		types := make([]Ref, len(c.MaterialTypes))
		for j, t := range c.MaterialTypes {
			types[j] = Ref{ID: t.ID, Slug: t.Slug, Name: t.Name.Pick(locale)}
		}
		response[i] = MaterialCategory{
			Ref:   Ref{ID: c.ID, Slug: c.Slug, Name: c.Name.Pick(locale)},
			Types: types,
		}
	}
	api.OKResponse(w, response)
}

func (h *MaterialHandler) HandleGetTextures(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	textures, err := h.textures.GetAllTextures(tenantID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	locale := api.Locale(r)
	response := make([]Texture, len(textures))
	for i, t := range textures {
		response[i] = Texture{
			ID:          t.ID,
			Slug:        t.Slug,
			Name:        t.Name.Pick(locale),
			Description: t.Description.Pick(locale),
			ImageURL:    t.ImageURL,
			IsAbstract:  t.IsAbstract,
		}
	}
	api.OKResponse(w, response)
}
