package colors

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/matching"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

type Color struct {
	ID     uint   `json:"id"`
	Hex    string `json:"hex"`
	Name   string `json:"name"`
	Family string `json:"family,omitempty"`
}

type MatchResponse struct {
	Color    Color   `json:"color"`
	Distance float64 `json:"distance"`
}

type ColorProvider interface {
	GetAllColors(tenantID *uuid.UUID) ([]models.Color, error)
	CreateColor(color *models.Color) error
	UpdateColor(color *models.Color) error
	DeleteColor(tenantID uuid.UUID, id uint) error
}

type ColorHandler struct {
	repo     ColorProvider
	validate *validator.Validator
}

func NewColorHandler(r ColorProvider, v *validator.Validator) *ColorHandler {
	return &ColorHandler{repo: r, validate: v}
}

func toColor(c models.Color, locale string) Color {
	return Color{ID: c.ID, Hex: c.Hex, Name: c.Name.Pick(locale), Family: c.Family}
}

func (h *ColorHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	colors, err := h.repo.GetAllColors(&tenantID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	locale := api.Locale(r)
	response := make([]Color, len(colors))
	for i, c := range colors {
		response[i] = toColor(c, locale)
	}
	api.OKResponse(w, response)
}

// HandleMatch returns the stored color nearest to ?hex=, or 404 when none
// is within matching.ColorDistanceThreshold.
func (h *ColorHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	hex := r.URL.Query().Get("hex")
	if _, err := matching.ParseHex(hex); err != nil {
		api.WriteError(w, r, api.BadRequest("Invalid hex"))
		return
	}

	colors, err := h.repo.GetAllColors(&tenantID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	byID := make(map[uint]models.Color, len(colors))
	candidates := make([]matching.ColorCandidate, len(colors))
	for i, c := range colors {
		byID[c.ID] = c
		candidates[i] = matching.ColorCandidate{ID: c.ID, Hex: c.Hex}
	}

	match, found, err := matching.NearestColor(hex, candidates)
	if err != nil {
		api.WriteError(w, r, api.BadRequest("Invalid hex"))
		return
	}
	if !found {
		api.WriteError(w, r, api.NotFound("No color within threshold"))
		return
	}
	api.OKResponse(w, MatchResponse{
		Color:    toColor(byID[match.ID], api.Locale(r)),
		Distance: match.Distance,
	})
}

// --- Admin ---

type colorInput struct {
	Hex    string            `json:"hex" validate:"required,hexcolor6"`
	Name   api.LocalizedName `json:"name" validate:"required"`
	Family string            `json:"family" validate:"max=50"`
	Order  int               `json:"order" validate:"min=0"`
}

func (in colorInput) model(tenantID uuid.UUID) (*models.Color, error) {
	hex, err := matching.NormalizeHex(in.Hex)
	if err != nil {
		return nil, api.BadRequest("Invalid hex")
	}
	return &models.Color{
		TenantID: tenantID,
		Hex:      hex,
		Name:     in.Name.Model(),
		Family:   in.Family,
		Order:    in.Order,
	}, nil
}

func (h *ColorHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var input colorInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	color, err := input.model(tenantID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.repo.CreateColor(color); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.CreatedResponse(w, color)
}

func (h *ColorHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var input colorInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	color, err := input.model(tenantID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	color.ID = id
	if err := h.repo.UpdateColor(color); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, color)
}

func (h *ColorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.repo.DeleteColor(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}
