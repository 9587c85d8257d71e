package catalog

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/matching"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/models"
)

type AdminResponse struct {
	Total  int            `json:"total"`
	Styles []models.Style `json:"styles"`
}

type styleInput struct {
	CategoryID    uint              `json:"categoryId" validate:"required"`
	SubCategoryID *uint             `json:"subCategoryId"`
	ColorID       *uint             `json:"colorId"`
	ColorHex      string            `json:"colorHex" validate:"omitempty,hexcolor6"`
	Slug          string            `json:"slug" validate:"slug,max=100"`
	Name          api.LocalizedName `json:"name" validate:"required"`
	Description   api.LocalizedText `json:"description"`
	Order         int               `json:"order" validate:"min=0"`
	Published     bool              `json:"published"`
	Images        []string          `json:"images" validate:"max=50,dive,max=1000"`
	Tags          []string          `json:"tags" validate:"max=30,dive,max=50"`
	MaterialIDs   []uint            `json:"materialIds" validate:"max=100"`
}

type materialsInput struct {
	MaterialIDs []uint `json:"materialIds" validate:"max=100"`
}

// resolveStyle checks the referenced category, subcategory and color and
// returns the record to save. A hex without colorId is matched to the
// nearest stored color.
func (h *CatalogHandler) resolveStyle(tenantID uuid.UUID, in styleInput) (*models.Style, error) {
	if _, err := h.Categories.GetByID(tenantID, in.CategoryID); err != nil {
		return nil, api.Reference(err, models.ErrCategoryNotFound)
	}
	if in.SubCategoryID != nil {
		sub, err := h.Categories.GetSubCategory(tenantID, *in.SubCategoryID)
		if err != nil {
			return nil, api.Reference(err, models.ErrSubCategoryNotFound)
		}
		if sub.CategoryID != in.CategoryID {
			return nil, api.Wrap(models.ErrSubCategoryNotFound, api.CodeUnprocessable,
				"Subcategory does not belong to the category", http.StatusUnprocessableEntity)
		}
	}

	name := in.Name.Model()
	style := &models.Style{
		TenantID:      tenantID,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		ColorID:       in.ColorID,
		Slug:          api.SlugOrDefault(in.Slug, name),
		Name:          name,
		Description:   in.Description.Model(),
		Order:         in.Order,
		Published:     in.Published,
		Images:        pq.StringArray(in.Images),
		Tags:          datatypes.JSONSlice[string](trimAll(in.Tags)),
	}

	if in.ColorHex != "" {
		hex, err := matching.NormalizeHex(in.ColorHex)
		if err != nil {
			return nil, api.BadRequest("Invalid colorHex")
		}
		style.ColorHex = hex
	}

	switch {
	case style.ColorID != nil:
		color, err := h.Colors.GetByID(tenantID, *style.ColorID)
		if err != nil {
			return nil, api.Reference(err, models.ErrColorNotFound)
		}
		if style.ColorHex == "" {
			style.ColorHex = color.Hex
		}
	case style.ColorHex != "":
		colors, err := h.Colors.GetAllColors(&tenantID)
		if err != nil {
			return nil, err
		}
		candidates := make([]matching.ColorCandidate, len(colors))
		for i, c := range colors {
			candidates[i] = matching.ColorCandidate{ID: c.ID, Hex: c.Hex}
		}
		if m, ok, _ := matching.NearestColor(style.ColorHex, candidates); ok {
			style.ColorID = &m.ID
		}
	}
	return style, nil
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HandleAdminList lists styles including unpublished ones.
func (h *CatalogHandler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
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
	filters.PublishedOnly = r.URL.Query().Get("published") == "true"

	styles, total, err := h.Styles.GetFiltered(tenantID, offset, limit, filters)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if styles == nil {
		styles = []models.Style{}
	}
	api.OKResponse(w, AdminResponse{Total: int(total), Styles: styles})
}

func (h *CatalogHandler) HandleAdminGet(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	style, err := h.Styles.GetByID(tenantID, id)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, style)
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var input styleInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	style, err := h.resolveStyle(tenantID, input)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.Styles.Create(style, input.MaterialIDs); err != nil {
		api.WriteError(w, r, api.Reference(err, models.ErrMaterialNotFound))
		return
	}

	logger.FromContext(r.Context()).Info("style created", "style_id", style.ID, "slug", style.Slug)
	api.CreatedResponse(w, style)
}

// HandleUpdate replaces the style's fields. Materials are replaced only when
// materialIds is present in the body.
func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var input styleInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	style, err := h.resolveStyle(tenantID, input)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	style.ID = id
	if err := h.Styles.Update(style, input.MaterialIDs); err != nil {
		api.WriteError(w, r, api.Reference(err, models.ErrMaterialNotFound))
		return
	}
	api.OKResponse(w, style)
}

func (h *CatalogHandler) HandleReplaceMaterials(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var input materialsInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	style, err := h.Styles.GetByID(tenantID, id)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.Styles.ReplaceMaterials(style, input.MaterialIDs); err != nil {
		api.WriteError(w, r, api.Reference(err, models.ErrMaterialNotFound))
		return
	}
	api.NoContent(w)
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.Styles.Delete(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}
