package materials

import (
	"net/http"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/models"
)

type materialCategoryInput struct {
	Slug  string            `json:"slug" validate:"slug,max=100"`
	Name  api.LocalizedName `json:"name" validate:"required"`
	Order int               `json:"order" validate:"min=0"`
}

type materialTypeInput struct {
	MaterialCategoryID uint              `json:"materialCategoryId" validate:"required"`
	Slug               string            `json:"slug" validate:"slug,max=100"`
	Name               api.LocalizedName `json:"name" validate:"required"`
	Order              int               `json:"order" validate:"min=0"`
}

func (h *MaterialHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, false)
}

func (h *MaterialHandler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, true)
}

func (h *MaterialHandler) saveCategory(w http.ResponseWriter, r *http.Request, update bool) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var id uint
	if update {
		var err error
		if id, err = api.PathID(r, "id"); err != nil {
			api.WriteError(w, r, err)
			return
		}
	}
	var input materialCategoryInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	name := input.Name.Model()
	category := &models.MaterialCategory{
		ID:       id,
		TenantID: tenantID,
		Slug:     api.SlugOrDefault(input.Slug, name),
		Name:     name,
		Order:    input.Order,
	}
	if !update {
		if err := h.repo.CreateMaterialCategory(category); err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.CreatedResponse(w, category)
		return
	}
	if err := h.repo.UpdateMaterialCategory(category); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, category)
}

func (h *MaterialHandler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.repo.DeleteMaterialCategory(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}

func (h *MaterialHandler) HandleCreateType(w http.ResponseWriter, r *http.Request) {
	h.saveType(w, r, false)
}

func (h *MaterialHandler) HandleUpdateType(w http.ResponseWriter, r *http.Request) {
	h.saveType(w, r, true)
}

func (h *MaterialHandler) saveType(w http.ResponseWriter, r *http.Request, update bool) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var id uint
	if update {
		var err error
		if id, err = api.PathID(r, "id"); err != nil {
			api.WriteError(w, r, err)
			return
		}
	}
	var input materialTypeInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}
	if _, err := h.repo.GetMaterialCategory(tenantID, input.MaterialCategoryID); err != nil {
		api.WriteError(w, r, api.Reference(err, models.ErrMaterialCategoryNotFound))
		return
	}

	name := input.Name.Model()
	materialType := &models.MaterialType{
		ID:                 id,
		TenantID:           tenantID,
		MaterialCategoryID: input.MaterialCategoryID,
		Slug:               api.SlugOrDefault(input.Slug, name),
		Name:               name,
		Order:              input.Order,
	}
	if !update {
		if err := h.repo.CreateMaterialType(materialType); err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.CreatedResponse(w, materialType)
		return
	}
	if err := h.repo.UpdateMaterialType(materialType); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, materialType)
}

func (h *MaterialHandler) HandleDeleteType(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.repo.DeleteMaterialType(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}
