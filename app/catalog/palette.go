package catalog

import (
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/api"
	"github.com/mytheresa/interior-catalog/app/matching"
	"github.com/mytheresa/interior-catalog/models"
)

// paletteLookup resolves converted palette entries to the records they point at.
type paletteLookup struct {
	colors    map[uint]models.Color
	materials map[uint]models.Material
}

func (h *CatalogHandler) paletteNames(tenantID uuid.UUID, profiles []models.RoomProfile) (*paletteLookup, error) {
	var needColors, needMaterials bool
	for _, p := range profiles {
		palette := p.Palette.Data()
		for _, c := range palette.Colors {
			needColors = needColors || c.Converted()
		}
		for _, m := range palette.Materials {
			needMaterials = needMaterials || m.Converted()
		}
	}

	lookup := &paletteLookup{colors: map[uint]models.Color{}, materials: map[uint]models.Material{}}
	if needColors {
		colors, err := h.Colors.GetAllColors(&tenantID)
		if err != nil {
			return nil, err
		}
		for _, c := range colors {
			lookup.colors[c.ID] = c
		}
	}
	if needMaterials {
		materials, err := h.Materials.GetAllMaterials(&tenantID, models.MaterialFilters{})
		if err != nil {
			return nil, err
		}
		for _, m := range materials {
			lookup.materials[m.ID] = m
		}
	}
	return lookup, nil
}

func (l *paletteLookup) room(p models.RoomProfile, locale string) RoomProfile {
	palette := p.Palette.Data()

	colors := make([]PaletteColor, len(palette.Colors))
	for i, c := range palette.Colors {
		out := PaletteColor{ColorID: c.ColorID, Hex: c.Hex, Role: c.Role}
		if c.ColorID != nil {
			if color, ok := l.colors[*c.ColorID]; ok {
				out.Hex = color.Hex
				out.Name = color.Name.Pick(locale)
			}
		}
		colors[i] = out
	}

	materials := make([]PaletteMaterial, len(palette.Materials))
	for i, m := range palette.Materials {
		out := PaletteMaterial{MaterialID: m.MaterialID, Name: m.Name, Application: m.Application}
		if m.MaterialID != nil {
			if material, ok := l.materials[*m.MaterialID]; ok {
				out.Name = material.Name.Pick(locale)
			}
		}
		materials[i] = out
	}

	return RoomProfile{
		ID:          p.ID,
		RoomType:    p.RoomType,
		Description: p.Description.Pick(locale),
		Images:      stringsOrEmpty(p.Images),
		Colors:      colors,
		Materials:   materials,
	}
}

// convertPalette stores IDs for palette entries given only as hex or name
// when a match exists. Unmatched entries keep their raw value for the
// backfill jobs to retry. A supplied colorId or materialId must belong to
// the tenant.
func (h *CatalogHandler) convertPalette(tenantID uuid.UUID, colors []paletteColorInput, materials []paletteMaterialInput) (models.RoomPalette, error) {
	palette := models.RoomPalette{
		Colors:    make([]models.PaletteColor, len(colors)),
		Materials: make([]models.PaletteMaterial, len(materials)),
	}

	var colorSet []matching.ColorCandidate
	if len(colors) > 0 {
		stored, err := h.Colors.GetAllColors(&tenantID)
		if err != nil {
			return models.RoomPalette{}, err
		}
		colorSet = make([]matching.ColorCandidate, len(stored))
		for j, s := range stored {
			colorSet[j] = matching.ColorCandidate{ID: s.ID, Hex: s.Hex}
		}
	}
	for i, c := range colors {
		entry := models.PaletteColor{ColorID: c.ColorID, Role: strings.TrimSpace(c.Role)}
		if c.Hex != "" {
			hex, err := matching.NormalizeHex(c.Hex)
			if err != nil {
				return models.RoomPalette{}, api.BadRequest("Invalid palette color " + c.Hex)
			}
			entry.Hex = hex
		}
		if entry.ColorID == nil && entry.Hex == "" {
			return models.RoomPalette{}, api.BadRequest("Palette colors need a hex value or a colorId")
		}

		if entry.ColorID != nil {
			id := *entry.ColorID
			if !slices.ContainsFunc(colorSet, func(cc matching.ColorCandidate) bool { return cc.ID == id }) {
				return models.RoomPalette{}, api.Wrap(models.ErrColorNotFound, api.CodeUnprocessable,
					"Palette color not found", http.StatusUnprocessableEntity)
			}
		} else if m, ok, _ := matching.NearestColor(entry.Hex, colorSet); ok {
			entry.ColorID = &m.ID
		}
		palette.Colors[i] = entry
	}

	var materialSet []matching.MaterialCandidate
	if len(materials) > 0 {
		stored, err := h.Materials.GetAllMaterials(&tenantID, models.MaterialFilters{})
		if err != nil {
			return models.RoomPalette{}, err
		}
		materialSet = make([]matching.MaterialCandidate, len(stored))
		for j, s := range stored {
			materialSet[j] = matching.MaterialCandidate{ID: s.ID, He: s.Name.He, En: s.Name.En}
		}
	}
	for i, m := range materials {
		entry := models.PaletteMaterial{
			Name:        strings.TrimSpace(m.Name),
			MaterialID:  m.MaterialID,
			Application: strings.TrimSpace(m.Application),
		}
		if entry.MaterialID == nil && entry.Name == "" {
			return models.RoomPalette{}, api.BadRequest("Palette materials need a name or a materialId")
		}

		if entry.MaterialID != nil {
			id := *entry.MaterialID
			if !slices.ContainsFunc(materialSet, func(mc matching.MaterialCandidate) bool { return mc.ID == id }) {
				return models.RoomPalette{}, api.Wrap(models.ErrMaterialNotFound, api.CodeUnprocessable,
					"Palette material not found", http.StatusUnprocessableEntity)
			}
		} else if match, ok := matching.MatchMaterialName(entry.Name, materialSet); ok {
			entry.MaterialID = &match.ID
		}
		palette.Materials[i] = entry
	}

	return palette, nil
}
