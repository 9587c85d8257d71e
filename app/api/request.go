package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gosimple/slug"

	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

// LocalizedName is a request-side name. At least one locale is required
// where the field is tagged validate:"required".
type LocalizedName struct {
	He string `json:"he" validate:"max=200"`
	En string `json:"en" validate:"max=200"`
}

type LocalizedText struct {
	He string `json:"he" validate:"max=5000"`
	En string `json:"en" validate:"max=5000"`
}

func (l LocalizedName) Model() models.Localized {
	return models.Localized{He: strings.TrimSpace(l.He), En: strings.TrimSpace(l.En)}
}

func (l LocalizedText) Model() models.Localized {
	return models.Localized{He: strings.TrimSpace(l.He), En: strings.TrimSpace(l.En)}
}

// DecodeJSON decodes the request body into dst and validates it.
func DecodeJSON(r *http.Request, v *validator.Validator, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return BadRequest("Invalid JSON body")
	}
	return v.Validate(dst)
}

// SlugOrDefault returns s, or a slug made from the English name (then the
// Hebrew one) when s is empty.
func SlugOrDefault(s string, name models.Localized) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	if out := slug.Make(name.En); out != "" {
		return out
	}
	return slug.Make(name.He)
}

// Locale reads ?locale=, defaulting to Hebrew.
func Locale(r *http.Request) string {
	return models.NormalizeLocale(r.URL.Query().Get("locale"))
}
