package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/models"
)

const TenantHeader = "X-Tenant"

type tenantCtxKey struct{}

type TenantResolver interface {
	GetBySlug(slug string) (*models.Tenant, error)
}

func WithTenant(ctx context.Context, tenant *models.Tenant) context.Context {
	return context.WithValue(ctx, tenantCtxKey{}, tenant)
}

// TenantFromContext returns the tenant resolved by the Tenant middleware.
func TenantFromContext(ctx context.Context) (*models.Tenant, bool) {
	t, ok := ctx.Value(tenantCtxKey{}).(*models.Tenant)
	return t, ok && t != nil
}

// TenantID returns the resolved tenant's id, or writes a 400 and reports false.
func TenantID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	t, ok := TenantFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing "+TenantHeader+" header")
		return uuid.Nil, false
	}
	return t.ID, true
}

// Tenant resolves the X-Tenant header into a tenant record.
func Tenant(resolver TenantResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := strings.TrimSpace(r.Header.Get(TenantHeader))
			if slug == "" {
				api.ErrorResponse(w, http.StatusBadRequest, "Missing "+TenantHeader+" header")
				return
			}

			tenant, err := resolver.GetBySlug(slug)
			if err != nil {
				if errors.Is(err, models.ErrTenantNotFound) {
					api.ErrorResponse(w, http.StatusNotFound, "Unknown tenant")
					return
				}
				api.WriteError(w, r, err)
				return
			}

			ctx := logger.WithTenant(WithTenant(r.Context(), tenant), tenant.Slug)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
