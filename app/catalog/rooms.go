package catalog

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/models"
)

type paletteColorInput struct {
	Hex     string `json:"hex" validate:"omitempty,hexcolor6"`
	ColorID *uint  `json:"colorId"`
	Role    string `json:"role" validate:"max=50"`
}

type paletteMaterialInput struct {
	Name        string `json:"name" validate:"max=200"`
	MaterialID  *uint  `json:"materialId"`
	Application string `json:"application" validate:"max=100"`
}

type roomProfileInput struct {
	RoomType    string                 `json:"roomType" validate:"required,roomtype"`
	Description api.LocalizedText      `json:"description"`
	Order       int                    `json:"order" validate:"min=0"`
	Images      []string               `json:"images" validate:"max=50,dive,max=1000"`
	Colors      []paletteColorInput    `json:"colors" validate:"max=20,dive"`
	Materials   []paletteMaterialInput `json:"materials" validate:"max=30,dive"`
}

func (h *CatalogHandler) roomProfile(tenantID uuid.UUID, in roomProfileInput) (*models.RoomProfile, error) {
	palette, err := h.convertPalette(tenantID, in.Colors, in.Materials)
	if err != nil {
		return nil, err
	}
	return &models.RoomProfile{
		TenantID:    tenantID,
		RoomType:    in.RoomType,
		Description: in.Description.Model(),
		Order:       in.Order,
		Images:      pq.StringArray(in.Images),
		Palette:     datatypes.NewJSONType(palette),
	}, nil
}

// HandleListRoomProfiles returns the raw room profiles of a style, in both locales.
func (h *CatalogHandler) HandleListRoomProfiles(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	styleID, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if _, err := h.Styles.GetByID(tenantID, styleID); err != nil {
		api.WriteError(w, r, err)
		return
	}

	profiles, err := h.Rooms.ListByStyle(tenantID, styleID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []models.RoomProfile{}
	}
	api.OKResponse(w, profiles)
}

func (h *CatalogHandler) HandleCreateRoomProfile(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	styleID, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var input roomProfileInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}
	if _, err := h.Styles.GetByID(tenantID, styleID); err != nil {
		api.WriteError(w, r, err)
		return
	}

	profile, err := h.roomProfile(tenantID, input)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	profile.StyleID = styleID
	if err := h.Rooms.CreateRoomProfile(profile); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.CreatedResponse(w, profile)
}

func (h *CatalogHandler) HandleUpdateRoomProfile(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var input roomProfileInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	existing, err := h.Rooms.GetByID(tenantID, id)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	profile, err := h.roomProfile(tenantID, input)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	profile.ID = existing.ID
	profile.StyleID = existing.StyleID
	if err := h.Rooms.UpdateRoomProfile(profile); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, profile)
}

func (h *CatalogHandler) HandleDeleteRoomProfile(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.Rooms.DeleteRoomProfile(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}
