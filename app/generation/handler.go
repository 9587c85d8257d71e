package generation

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

// Generator is the AI generation surface used by the HTTP handlers.
type Generator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
	GenerateMaterial(ctx context.Context, tenantID uuid.UUID, p MaterialPrompt) (*models.Material, error)
	GenerateImage(ctx context.Context, tenantID uuid.UUID, req ImageRequest) (*ImageResult, error)
	BulkGenerateStyles(ctx context.Context, tenantID uuid.UUID, req BulkStylesRequest, emit func(Event)) (*BulkResult, error)
}

type Handler struct {
	gen      Generator
	validate *validator.Validator
}

func NewHandler(gen Generator, v *validator.Validator) *Handler {
	return &Handler{gen: gen, validate: v}
}

type translateRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
	From string `json:"from" validate:"required,oneof=he en"`
	To   string `json:"to" validate:"required,oneof=he en"`
}

type materialRequest struct {
	Hint               string `json:"hint" validate:"required,max=500"`
	MaterialCategoryID uint   `json:"materialCategoryId" validate:"required"`
	Save               bool   `json:"save"`
}

type imageRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=material texture style"`
	ID     uint   `json:"id" validate:"required"`
	Prompt string `json:"prompt" validate:"max=2000"`
}

type bulkRequest struct {
	CategoryID    uint     `json:"categoryId" validate:"required"`
	SubCategoryID *uint    `json:"subCategoryId"`
	Names         []string `json:"names" validate:"max=20,dive,max=200"`
	Count         int      `json:"count" validate:"min=0,max=20"`
	WithImages    bool     `json:"withImages"`
}

type materialDraft struct {
	ID                 uint             `json:"id,omitempty"`
	Slug               string           `json:"slug"`
	Name               models.Localized `json:"name"`
	Description        models.Localized `json:"description"`
	MaterialCategoryID uint             `json:"materialCategoryId"`
	PricePerM2         string           `json:"pricePerM2"`
	Saved              bool             `json:"saved"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnknownKind), errors.Is(err, ErrNothingToGen):
		api.WriteError(w, r, api.BadRequest(err.Error()))
	case errors.Is(err, ErrProvider):
		api.WriteError(w, r, api.Upstream(err))
	default:
		api.WriteError(w, r, err)
	}
}

func (h *Handler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := api.DecodeJSON(r, h.validate, &req); err != nil {
		api.WriteError(w, r, err)
		return
	}

	out, err := h.gen.Translate(r.Context(), req.Text, req.From, req.To)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.OKResponse(w, map[string]string{"translation": out})
}

func (h *Handler) HandleGenerateMaterial(w http.ResponseWriter, r *http.Request) {
	tid, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var req materialRequest
	if err := api.DecodeJSON(r, h.validate, &req); err != nil {
		api.WriteError(w, r, err)
		return
	}

	m, err := h.gen.GenerateMaterial(r.Context(), tid, MaterialPrompt{
		Hint:               req.Hint,
		MaterialCategoryID: req.MaterialCategoryID,
		Save:               req.Save,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	draft := materialDraft{
		ID:                 m.ID,
		Slug:               m.Slug,
		Name:               m.Name,
		Description:        m.Description,
		MaterialCategoryID: m.MaterialCategoryID,
		PricePerM2:         m.PricePerM2.StringFixed(2),
		Saved:              req.Save,
	}
	if req.Save {
		api.CreatedResponse(w, draft)
		return
	}
	api.OKResponse(w, draft)
}

func (h *Handler) HandleGenerateImage(w http.ResponseWriter, r *http.Request) {
	tid, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var req imageRequest
	if err := api.DecodeJSON(r, h.validate, &req); err != nil {
		api.WriteError(w, r, err)
		return
	}

	res, err := h.gen.GenerateImage(r.Context(), tid, ImageRequest{Kind: req.Kind, ID: req.ID, Prompt: req.Prompt})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.OKResponse(w, res)
}

// HandleBulkStyles streams the run as server-sent events. Errors that occur
// before the first event are returned as a regular JSON error.
func (h *Handler) HandleBulkStyles(w http.ResponseWriter, r *http.Request) {
	tid, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var req bulkRequest
	if err := api.DecodeJSON(r, h.validate, &req); err != nil {
		api.WriteError(w, r, err)
		return
	}

	rc := http.NewResponseController(w)
	log := logger.FromContext(r.Context())
	streaming := false

	emit := func(e Event) {
		if !streaming {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.Header().Set("X-Accel-Buffering", "no")
			w.WriteHeader(http.StatusOK)
			streaming = true
		}
		if err := WriteSSE(w, e); err != nil {
			log.Debug("writing event failed", "event", e.Type, "error", err)
			return
		}
		if err := rc.Flush(); err != nil {
			log.Debug("flushing event failed", "event", e.Type, "error", err)
		}
	}

	_, err := h.gen.BulkGenerateStyles(r.Context(), tid, BulkStylesRequest{
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Names:         req.Names,
		Count:         req.Count,
		WithImages:    req.WithImages,
	}, emit)
	if err != nil && !streaming {
		writeError(w, r, err)
	}
}
