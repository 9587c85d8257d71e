package materials

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

type materialInput struct {
	Slug               string            `json:"slug" validate:"slug,max=100"`
	Name               api.LocalizedName `json:"name" validate:"required"`
	Description        api.LocalizedText `json:"description"`
	MaterialCategoryID uint              `json:"materialCategoryId" validate:"required"`
	MaterialTypeID     *uint             `json:"materialTypeId"`
	TextureID          *uint             `json:"textureId"`
	PricePerM2         decimal.Decimal   `json:"pricePerM2"`
	ImageURL           string            `json:"imageUrl" validate:"omitempty,max=1000"`
	IsAbstract         bool              `json:"isAbstract"`
	Order              int               `json:"order" validate:"min=0"`
	ColorIDs           []uint            `json:"colorIds" validate:"max=50"`
}

// resolveMaterial checks the material's category, type and texture
// references and builds the record to save.
func (h *MaterialHandler) resolveMaterial(tenantID uuid.UUID, in materialInput) (*models.Material, error) {
	if in.PricePerM2.IsNegative() {
		return nil, &validator.ValidationError{Errors: map[string]string{"pricePerM2": "Must be at least 0"}}
	}
	if _, err := h.repo.GetMaterialCategory(tenantID, in.MaterialCategoryID); err != nil {
		return nil, api.Reference(err, models.ErrMaterialCategoryNotFound)
	}
	if in.MaterialTypeID != nil {
		materialType, err := h.repo.GetMaterialType(tenantID, *in.MaterialTypeID)
		if err != nil {
			return nil, api.Reference(err, models.ErrMaterialTypeNotFound)
		}
		if materialType.MaterialCategoryID != in.MaterialCategoryID {
			return nil, api.Wrap(models.ErrMaterialTypeNotFound, api.CodeUnprocessable,
				"Material type does not belong to the material category", http.StatusUnprocessableEntity)
		}
	}
	if in.TextureID != nil {
		if _, err := h.textures.GetByID(tenantID, *in.TextureID); err != nil {
			return nil, api.Reference(err, models.ErrTextureNotFound)
		}
	}

	name := in.Name.Model()
	return &models.Material{
		TenantID:           tenantID,
		Slug:               api.SlugOrDefault(in.Slug, name),
		Name:               name,
		Description:        in.Description.Model(),
		MaterialCategoryID: in.MaterialCategoryID,
		MaterialTypeID:     in.MaterialTypeID,
		TextureID:          in.TextureID,
		PricePerM2:         in.PricePerM2.Round(2),
		ImageURL:           in.ImageURL,
		IsAbstract:         in.IsAbstract,
		Order:              in.Order,
	}, nil
}

// HandleGet returns one material with both locales, for editing.
func (h *MaterialHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	material, err := h.repo.GetByID(tenantID, id)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, material)
}

func (h *MaterialHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var input materialInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	material, err := h.resolveMaterial(tenantID, input)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.repo.CreateMaterial(material, input.ColorIDs); err != nil {
		api.WriteError(w, r, api.Reference(err, models.ErrColorNotFound))
		return
	}
	api.CreatedResponse(w, material)
}

// HandleUpdate replaces the material's fields. Colors are replaced only when
// colorIds is present in the body.
func (h *MaterialHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var input materialInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	material, err := h.resolveMaterial(tenantID, input)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	material.ID = id
	if err := h.repo.UpdateMaterial(material, input.ColorIDs); err != nil {
		api.WriteError(w, r, api.Reference(err, models.ErrColorNotFound))
		return
	}
	api.OKResponse(w, material)
}

func (h *MaterialHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.repo.DeleteMaterial(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}
