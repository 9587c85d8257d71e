package categories

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

type SubCategoryResponse struct {
	ID          uint   `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryResponse struct {
	ID            uint                  `json:"id"`
	Slug          string                `json:"slug"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	ImageURL      string                `json:"imageUrl,omitempty"`
	SubCategories []SubCategoryResponse `json:"subCategories"`
}

type CategoryProvider interface {
	GetAllCategories(tenantID uuid.UUID) ([]models.Category, error)
	GetByID(tenantID uuid.UUID, id uint) (*models.Category, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(tenantID uuid.UUID, id uint) error
	GetSubCategory(tenantID uuid.UUID, id uint) (*models.SubCategory, error)
	CreateSubCategory(sub *models.SubCategory) error
	UpdateSubCategory(sub *models.SubCategory) error
	DeleteSubCategory(tenantID uuid.UUID, id uint) error
}

type CategoryHandler struct {
	repo     CategoryProvider
	validate *validator.Validator
}

func NewCategoryHandler(r CategoryProvider, v *validator.Validator) *CategoryHandler {
	return &CategoryHandler{repo: r, validate: v}
}

func toResponse(c models.Category, locale string) CategoryResponse {
	subs := make([]SubCategoryResponse, len(c.SubCategories))
	for i, s := range c.SubCategories {
		subs[i] = SubCategoryResponse{
			ID:          s.ID,
			Slug:        s.Slug,
			Name:        s.Name.Pick(locale),
			Description: s.Description.Pick(locale),
		}
	}
	return CategoryResponse{
		ID:            c.ID,
		Slug:          c.Slug,
		Name:          c.Name.Pick(locale),
		Description:   c.Description.Pick(locale),
		ImageURL:      c.ImageURL,
		SubCategories: subs,
	}
}

// HandleGetAll lists the tenant's categories in the requested locale.
func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}

	categories, err := h.repo.GetAllCategories(tenantID)
	if err != nil {
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	locale := api.Locale(r)
	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toResponse(c, locale)
	}
	api.OKResponse(w, response)
}

// --- Admin ---

type categoryInput struct {
	Slug        string            `json:"slug" validate:"slug,max=100"`
	Name        api.LocalizedName `json:"name" validate:"required"`
	Description api.LocalizedText `json:"description"`
	Order       int               `json:"order" validate:"min=0"`
	ImageURL    string            `json:"imageUrl" validate:"omitempty,max=1000"`
}

type subCategoryInput struct {
	CategoryID  uint              `json:"categoryId" validate:"required"`
	Slug        string            `json:"slug" validate:"slug,max=100"`
	Name        api.LocalizedName `json:"name" validate:"required"`
	Description api.LocalizedText `json:"description"`
	Order       int               `json:"order" validate:"min=0"`
}

func (in categoryInput) model(tenantID uuid.UUID) *models.Category {
	name := in.Name.Model()
	return &models.Category{
		TenantID:    tenantID,
		Slug:        api.SlugOrDefault(in.Slug, name),
		Name:        name,
		Description: in.Description.Model(),
		Order:       in.Order,
		ImageURL:    in.ImageURL,
	}
}

func (in subCategoryInput) model(tenantID uuid.UUID) *models.SubCategory {
	name := in.Name.Model()
	return &models.SubCategory{
		TenantID:    tenantID,
		CategoryID:  in.CategoryID,
		Slug:        api.SlugOrDefault(in.Slug, name),
		Name:        name,
		Description: in.Description.Model(),
		Order:       in.Order,
	}
}

// HandleGet returns one category with both locales, for editing.
func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	category, err := h.repo.GetByID(tenantID, id)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, category)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var input categoryInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	category := input.model(tenantID)
	if err := h.repo.CreateCategory(category); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.CreatedResponse(w, category)
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var input categoryInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}

	category := input.model(tenantID)
	category.ID = id
	if err := h.repo.UpdateCategory(category); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, category)
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.repo.DeleteCategory(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}

// --- Admin: subcategories ---

func (h *CategoryHandler) HandleCreateSubCategory(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	var input subCategoryInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}
	if _, err := h.repo.GetByID(tenantID, input.CategoryID); err != nil {
		api.WriteError(w, r, api.Reference(err, models.ErrCategoryNotFound))
		return
	}

	sub := input.model(tenantID)
	if err := h.repo.CreateSubCategory(sub); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.CreatedResponse(w, sub)
}

func (h *CategoryHandler) HandleUpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var input subCategoryInput
	if err := api.DecodeJSON(r, h.validate, &input); err != nil {
		api.WriteError(w, r, err)
		return
	}
	if _, err := h.repo.GetByID(tenantID, input.CategoryID); err != nil {
		api.WriteError(w, r, api.Reference(err, models.ErrCategoryNotFound))
		return
	}

	sub := input.model(tenantID)
	sub.ID = id
	if err := h.repo.UpdateSubCategory(sub); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, sub)
}

func (h *CategoryHandler) HandleDeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantID(w, r)
	if !ok {
		return
	}
	id, err := api.PathID(r, "id")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	if err := h.repo.DeleteSubCategory(tenantID, id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.NoContent(w)
}
