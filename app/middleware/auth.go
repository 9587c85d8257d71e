package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/mytheresa/interior-catalog/app/api"
)

const RoleAdmin = "admin"

// AdminClaims are carried by dashboard tokens.
type AdminClaims struct {
	Role   string `json:"role"`
	Tenant string `json:"tenant"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs an HS256 admin token for tenant.
func IssueAdminToken(secret, tenant, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := AdminClaims{
		Role:   RoleAdmin,
		Tenant: tenant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseAdminToken(secret, raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// AdminAuth requires a valid admin bearer token for the tenant resolved by
// the Tenant middleware, which must run first.
func AdminAuth(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" || secret == "" {
				api.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := parseAdminToken(secret, raw)
			if err != nil {
				api.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			tenant, ok := TenantFromContext(r.Context())
			if claims.Role != RoleAdmin || !ok || claims.Tenant != tenant.Slug {
				api.ErrorResponse(w, http.StatusForbidden, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
