// Package migrate backfills foreign-key references into legacy catalog data:
// room profile palettes that still hold hex colors or material names, and
// styles that only carry a legacy hex color.
package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/matching"
	"github.com/mytheresa/interior-catalog/models"
)

type ProfileStore interface {
	ListForMigration(tenantID *uuid.UUID) ([]models.RoomProfile, error)
	SavePalette(id uint, palette models.RoomPalette) error
}

type ColorSource interface {
	GetAllColors(tenantID *uuid.UUID) ([]models.Color, error)
}

type MaterialSource interface {
	GetAllMaterials(tenantID *uuid.UUID, filters models.MaterialFilters) ([]models.Material, error)
}

type StyleStore interface {
	ListMissingColor(tenantID *uuid.UUID) ([]models.Style, error)
	SetColor(id, colorID uint) error
}

// Options scope a run. A nil TenantID covers every tenant.
type Options struct {
	TenantID *uuid.UUID
	DryRun   bool
}

// Unmatched is a legacy value no reference record was close enough to.
type Unmatched struct {
	RecordID uint   `json:"recordId"`
	Value    string `json:"value"`
	Reason   string `json:"reason"`
}

type Report struct {
	Job              string      `json:"job"`
	DryRun           bool        `json:"dryRun"`
	Scanned          int         `json:"scanned"`
	Updated          int         `json:"updated"`
	Converted        int         `json:"converted"`
	AlreadyConverted int         `json:"alreadyConverted"`
	Unmatched        []Unmatched `json:"unmatched"`
	Failed           int         `json:"failed"`
}

func (r *Report) String() string {
	mode := ""
	if r.DryRun {
		mode = " (dry run)"
	}
	return fmt.Sprintf("%s%s: scanned=%d updated=%d converted=%d already=%d unmatched=%d failed=%d",
		r.Job, mode, r.Scanned, r.Updated, r.Converted, r.AlreadyConverted, len(r.Unmatched), r.Failed)
}

func (r *Report) unmatched(log *slog.Logger, id uint, value, reason string) {
	r.Unmatched = append(r.Unmatched, Unmatched{RecordID: id, Value: value, Reason: reason})
	log.Warn("no match", "record_id", id, "value", value, "reason", reason)
}

type Runner struct {
	profiles  ProfileStore
	colors    ColorSource
	materials MaterialSource
	styles    StyleStore

	colorSets    map[uuid.UUID][]matching.ColorCandidate
	materialSets map[uuid.UUID][]matching.MaterialCandidate
}

func NewRunner(profiles ProfileStore, colors ColorSource, materials MaterialSource, styles StyleStore) *Runner {
	return &Runner{
		profiles:     profiles,
		colors:       colors,
		materials:    materials,
		styles:       styles,
		colorSets:    map[uuid.UUID][]matching.ColorCandidate{},
		materialSets: map[uuid.UUID][]matching.MaterialCandidate{},
	}
}

func (r *Runner) colorCandidates(tenantID uuid.UUID) ([]matching.ColorCandidate, error) {
	if set, ok := r.colorSets[tenantID]; ok {
		return set, nil
	}
	colors, err := r.colors.GetAllColors(&tenantID)
	if err != nil {
		return nil, err
	}
	set := make([]matching.ColorCandidate, len(colors))
	for i, c := range colors {
		set[i] = matching.ColorCandidate{ID: c.ID, Hex: c.Hex}
	}
	r.colorSets[tenantID] = set
	return set, nil
}

func (r *Runner) materialCandidates(tenantID uuid.UUID) ([]matching.MaterialCandidate, error) {
	if set, ok := r.materialSets[tenantID]; ok {
		return set, nil
	}
	materials, err := r.materials.GetAllMaterials(&tenantID, models.MaterialFilters{})
	if err != nil {
		return nil, err
	}
	set := make([]matching.MaterialCandidate, len(materials))
	for i, m := range materials {
		set[i] = matching.MaterialCandidate{ID: m.ID, He: m.Name.He, En: m.Name.En}
	}
	r.materialSets[tenantID] = set
	return set, nil
}

// ColorBackfill resolves palette hex colors to Color IDs by nearest match.
func (r *Runner) ColorBackfill(ctx context.Context, opts Options) (*Report, error) {
	return r.backfillPalettes(ctx, "colors", opts, func(log *slog.Logger, p *models.RoomProfile, palette *models.RoomPalette, rep *Report) (bool, error) {
		candidates, err := r.colorCandidates(p.TenantID)
		if err != nil {
			return false, err
		}
		changed := false
		for i := range palette.Colors {
			entry := &palette.Colors[i]
			if entry.Converted() {
				rep.AlreadyConverted++
				continue
			}
			match, ok, err := matching.NearestColor(entry.Hex, candidates)
			if err != nil {
				rep.unmatched(log, p.ID, entry.Hex, "invalid hex")
				continue
			}
			if !ok {
				rep.unmatched(log, p.ID, entry.Hex, "no color within threshold")
				continue
			}
			id := match.ID
			entry.ColorID = &id
			rep.Converted++
			changed = true
			log.Debug("color matched", "record_id", p.ID, "hex", entry.Hex, "color_id", id, "distance", match.Distance)
		}
		return changed, nil
	})
}

// MaterialBackfill resolves palette material names to Material IDs by
// exact then fuzzy name match.
func (r *Runner) MaterialBackfill(ctx context.Context, opts Options) (*Report, error) {
	return r.backfillPalettes(ctx, "materials", opts, func(log *slog.Logger, p *models.RoomProfile, palette *models.RoomPalette, rep *Report) (bool, error) {
		candidates, err := r.materialCandidates(p.TenantID)
		if err != nil {
			return false, err
		}
		changed := false
		for i := range palette.Materials {
			entry := &palette.Materials[i]
			if entry.Converted() {
				rep.AlreadyConverted++
				continue
			}
			match, ok := matching.MatchMaterialName(entry.Name, candidates)
			if !ok {
				rep.unmatched(log, p.ID, entry.Name, "no material above similarity threshold")
				continue
			}
			id := match.ID
			entry.MaterialID = &id
			rep.Converted++
			changed = true
			log.Debug("material matched", "record_id", p.ID, "name", entry.Name, "material_id", id, "score", match.Score, "exact", match.Exact)
		}
		return changed, nil
	})
}

type paletteFunc func(log *slog.Logger, p *models.RoomProfile, palette *models.RoomPalette, rep *Report) (bool, error)

func (r *Runner) backfillPalettes(ctx context.Context, job string, opts Options, convert paletteFunc) (*Report, error) {
	log := logger.FromContext(ctx).With("job", job, "dry_run", opts.DryRun)
	rep := &Report{Job: job, DryRun: opts.DryRun}

	profiles, err := r.profiles.ListForMigration(opts.TenantID)
	if err != nil {
		return nil, fmt.Errorf("listing room profiles: %w", err)
	}
	log.Info("backfill started", "profiles", len(profiles))

	for i := range profiles {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		p := &profiles[i]
		rep.Scanned++

		palette := p.Palette.Data()
		changed, err := convert(log, p, &palette, rep)
		if err != nil {
			rep.Failed++
			log.Error("converting palette failed", "record_id", p.ID, "error", err)
			continue
		}
		if !changed {
			continue
		}
		if !opts.DryRun {
			if err := r.profiles.SavePalette(p.ID, palette); err != nil {
				rep.Failed++
				log.Error("saving palette failed", "record_id", p.ID, "error", err)
				continue
			}
		}
		rep.Updated++
	}

	log.Info("backfill finished", "report", rep.String())
	return rep, nil
}

// StyleColorBackfill sets Style.ColorID from the legacy ColorHex.
func (r *Runner) StyleColorBackfill(ctx context.Context, opts Options) (*Report, error) {
	log := logger.FromContext(ctx).With("job", "style-colors", "dry_run", opts.DryRun)
	rep := &Report{Job: "style-colors", DryRun: opts.DryRun}

	styles, err := r.styles.ListMissingColor(opts.TenantID)
	if err != nil {
		return nil, fmt.Errorf("listing styles: %w", err)
	}
	log.Info("backfill started", "styles", len(styles))

	for _, s := range styles {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Scanned++

		candidates, err := r.colorCandidates(s.TenantID)
		if err != nil {
			rep.Failed++
			log.Error("loading colors failed", "record_id", s.ID, "error", err)
			continue
		}
		match, ok, err := matching.NearestColor(s.ColorHex, candidates)
		if err != nil {
			rep.unmatched(log, s.ID, s.ColorHex, "invalid hex")
			continue
		}
		if !ok {
			rep.unmatched(log, s.ID, s.ColorHex, "no color within threshold")
			continue
		}
		rep.Converted++
		if !opts.DryRun {
			if err := r.styles.SetColor(s.ID, match.ID); err != nil {
				rep.Failed++
				log.Error("saving style color failed", "record_id", s.ID, "error", err)
				continue
			}
		}
		rep.Updated++
	}

	log.Info("backfill finished", "report", rep.String())
	return rep, nil
}
