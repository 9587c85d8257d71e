package server

import (
	"net/http"
	"strings"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/catalog"
	"github.com/mytheresa/interior-catalog/app/categories"
	"github.com/mytheresa/interior-catalog/app/colors"
	"github.com/mytheresa/interior-catalog/app/generation"
	"github.com/mytheresa/interior-catalog/app/materials"
	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/uploads"
)

// Route is a ServeMux pattern and its handler. Admin routes additionally
// require an admin bearer token for the request's tenant.
type Route struct {
	Pattern string
	Admin   bool
	Handler http.HandlerFunc
}

type Handlers struct {
	Categories *categories.CategoryHandler
	Catalog    *catalog.CatalogHandler
	Materials  *materials.MaterialHandler
	Colors     *colors.ColorHandler
	Generation *generation.Handler
	Uploads    *uploads.UploadHandler
}

func public(pattern string, h http.HandlerFunc) Route {
	return Route{Pattern: pattern, Handler: h}
}

func admin(pattern string, h http.HandlerFunc) Route {
	return Route{Pattern: pattern, Admin: true, Handler: h}
}

func Routes(h Handlers) []Route {
	return []Route{
		public("GET /api/categories", h.Categories.HandleGetAll),
		public("GET /api/styles", h.Catalog.HandleGet),
		public("GET /api/styles/{slug}", h.Catalog.HandleGetStyle),
		public("GET /api/categories/{category}/styles/{slug}", h.Catalog.HandleGetStyle),
		public("GET /api/materials", h.Materials.HandleGetAll),
		public("GET /api/material-categories", h.Materials.HandleGetCategories),
		public("GET /api/textures", h.Materials.HandleGetTextures),
		public("GET /api/colors", h.Colors.HandleGetAll),
		public("GET /api/colors/match", h.Colors.HandleMatch),

		admin("GET /api/admin/categories/{id}", h.Categories.HandleGet),
		admin("POST /api/admin/categories", h.Categories.HandleCreate),
		admin("PUT /api/admin/categories/{id}", h.Categories.HandleUpdate),
		admin("DELETE /api/admin/categories/{id}", h.Categories.HandleDelete),
		admin("POST /api/admin/subcategories", h.Categories.HandleCreateSubCategory),
		admin("PUT /api/admin/subcategories/{id}", h.Categories.HandleUpdateSubCategory),
		admin("DELETE /api/admin/subcategories/{id}", h.Categories.HandleDeleteSubCategory),

		admin("GET /api/admin/styles", h.Catalog.HandleAdminList),
		admin("GET /api/admin/styles/{id}", h.Catalog.HandleAdminGet),
		admin("POST /api/admin/styles", h.Catalog.HandleCreate),
		admin("PUT /api/admin/styles/{id}", h.Catalog.HandleUpdate),
		admin("PUT /api/admin/styles/{id}/materials", h.Catalog.HandleReplaceMaterials),
		admin("DELETE /api/admin/styles/{id}", h.Catalog.HandleDelete),
		admin("GET /api/admin/styles/{id}/rooms", h.Catalog.HandleListRoomProfiles),
		admin("POST /api/admin/styles/{id}/rooms", h.Catalog.HandleCreateRoomProfile),
		admin("PUT /api/admin/rooms/{id}", h.Catalog.HandleUpdateRoomProfile),
		admin("DELETE /api/admin/rooms/{id}", h.Catalog.HandleDeleteRoomProfile),

		admin("GET /api/admin/materials/{id}", h.Materials.HandleGet),
		admin("POST /api/admin/materials", h.Materials.HandleCreate),
		admin("PUT /api/admin/materials/{id}", h.Materials.HandleUpdate),
		admin("DELETE /api/admin/materials/{id}", h.Materials.HandleDelete),
		admin("POST /api/admin/material-categories", h.Materials.HandleCreateCategory),
		admin("PUT /api/admin/material-categories/{id}", h.Materials.HandleUpdateCategory),
		admin("DELETE /api/admin/material-categories/{id}", h.Materials.HandleDeleteCategory),
		admin("POST /api/admin/material-types", h.Materials.HandleCreateType),
		admin("PUT /api/admin/material-types/{id}", h.Materials.HandleUpdateType),
		admin("DELETE /api/admin/material-types/{id}", h.Materials.HandleDeleteType),
		admin("POST /api/admin/textures", h.Materials.HandleCreateTexture),
		admin("PUT /api/admin/textures/{id}", h.Materials.HandleUpdateTexture),
		admin("DELETE /api/admin/textures/{id}", h.Materials.HandleDeleteTexture),

		admin("POST /api/admin/colors", h.Colors.HandleCreate),
		admin("PUT /api/admin/colors/{id}", h.Colors.HandleUpdate),
		admin("DELETE /api/admin/colors/{id}", h.Colors.HandleDelete),

		admin("POST /api/admin/uploads", h.Uploads.HandleUpload),

		admin("POST /api/admin/ai/translate", h.Generation.HandleTranslate),
		admin("POST /api/admin/ai/materials", h.Generation.HandleGenerateMaterial),
		admin("POST /api/admin/ai/images", h.Generation.HandleGenerateImage),
		admin("POST /api/admin/ai/styles/bulk", h.Generation.HandleBulkStyles),
	}
}

// RouterConfig holds what NewRouter needs besides the routes.
type RouterConfig struct {
	Tenants   middleware.TenantResolver
	JWTSecret string
	// Files serves locally stored uploads under FilesPrefix when set.
	Files       http.Handler
	FilesPrefix string
}

// NewRouter registers routes behind tenant resolution (and admin auth where
// flagged) and wraps the mux with request id, logging and panic recovery.
func NewRouter(routes []Route, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	tenant := middleware.Tenant(cfg.Tenants)
	adminAuth := middleware.AdminAuth(cfg.JWTSecret)
	for _, rt := range routes {
		if rt.Admin {
			mux.Handle(rt.Pattern, middleware.Chain(rt.Handler, tenant, adminAuth))
			continue
		}
		mux.Handle(rt.Pattern, middleware.Chain(rt.Handler, tenant))
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		api.OKResponse(w, map[string]string{"status": "ok"})
	})
	if cfg.Files != nil && cfg.FilesPrefix != "" {
		prefix := "/" + strings.Trim(cfg.FilesPrefix, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, cfg.Files))
	}

	return middleware.Chain(mux, middleware.RequestID, middleware.Logging, middleware.Recover)
}
