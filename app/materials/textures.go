package materials

import (
	"net/http"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/models"
)

type textureInput struct {
	Slug               string            `json:"slug" validate:"slug,max=100"`
	Name               api.LocalizedName `json:"name" validate:"required"`
	Description        api.LocalizedText `json:"description"`
	MaterialCategoryID *uint             `json:"materialCategoryId"`
	ImageURL           string            `json:"imageUrl" validate:"omitempty,max=1000"`
	IsAbstract         bool              `json:"isAbstract"`
	Order              int               `json:"order" validate:"min=0"`
}

func (h *MaterialHandler) HandleCreateTexture(w http.ResponseWriter, r *http.Request) {
	h.saveTexture(w, r, false)
}

func (h *MaterialHandler) HandleUpdateTexture(w http.ResponseWriter, r *http.Request) {
	h.saveTexture(w, r, true)
}

func (h *MaterialHandler) saveTexture(w http.ResponseWriter, r *http.Request, update bool) {
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
	var input textureInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}
	if input.MaterialCategoryID != nil {
		if _, err := h.repo.GetMaterialCategory(tenantID, *input.MaterialCategoryID); err != nil {
			api.WriteError(w, r, api.Reference(err, models.ErrMaterialCategoryNotFound))
			return
		}
	}

	name := input.Name.Model()
	texture := &models.Texture{
		ID:                 id,
		TenantID:           tenantID,
		Slug:               api.SlugOrDefault(input.Slug, name),
		Name:               name,
		Description:        input.Description.Model(),
		MaterialCategoryID: input.MaterialCategoryID,
		ImageURL:           input.ImageURL,
		IsAbstract:         input.IsAbstract,
		Order:              input.Order,
	}
	if !update {
		if err := h.textures.CreateTexture(texture); err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.CreatedResponse(w, texture)
		return
	}
	if err := h.textures.UpdateTexture(texture); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, texture)
}

func (h *MaterialHandler) HandleDeleteTexture(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.textures.DeleteTexture(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}
