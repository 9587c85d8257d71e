package generation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/interior-catalog/app/ai"
	"github.com/mytheresa/interior-catalog/app/cache"
	"github.com/mytheresa/interior-catalog/app/imageproc"
	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/storage"
	"github.com/mytheresa/interior-catalog/models"
)

const (
	KindMaterial = "material"
	KindTexture  = "texture"
	KindStyle    = "style"

	imageSize     = "1024x1024"
	translateTTL  = 30 * 24 * time.Hour
	MaxBulkStyles = 20
)

var (
	ErrUnknownKind  = errors.New("unknown image kind")
	ErrNothingToGen = errors.New("names or count is required")
	// ErrProvider wraps failures of the AI provider itself.
	ErrProvider = errors.New("ai provider")
)

func providerErr(err error) error {
	return fmt.Errorf("%w: %w", ErrProvider, err)
}

type MaterialStore interface {
	GetByID(tenantID uuid.UUID, id uint) (*models.Material, error)
	GetMaterialCategory(tenantID uuid.UUID, id uint) (*models.MaterialCategory, error)
	CreateMaterial(material *models.Material, colorIDs []uint) error
	SetImage(tenantID uuid.UUID, id uint, url string, abstract bool) error
}

type TextureStore interface {
	GetByID(tenantID uuid.UUID, id uint) (*models.Texture, error)
	SetImage(tenantID uuid.UUID, id uint, url string, abstract bool) error
}

type StyleStore interface {
	GetByID(tenantID uuid.UUID, id uint) (*models.Style, error)
	Create(style *models.Style, materialIDs []uint) error
	AddImage(tenantID uuid.UUID, id uint, url string) error
}

type CategoryLookup interface {
	GetByID(tenantID uuid.UUID, id uint) (*models.Category, error)
	GetSubCategory(tenantID uuid.UUID, id uint) (*models.SubCategory, error)
}

// Cache is the subset of the badger cache used for translations.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte, ttl time.Duration) error
}

type Deps struct {
	AI         ai.Client
	Cache      Cache
	Storage    storage.Storage
	Images     *imageproc.Processor
	Materials  MaterialStore
	Textures   TextureStore
	Styles     StyleStore
	Categories CategoryLookup
	// Delay is slept between consecutive AI calls of a bulk run.
	Delay time.Duration
}

type Service struct {
	d Deps
}

func NewService(d Deps) *Service {
	if d.Images == nil {
		d.Images = imageproc.NewProcessor(0)
	}
	return &Service{d: d}
}

// --- Translation ---

const translateSystem = `You translate short interior design catalog texts between Hebrew and English.
Keep product and brand names as they are. Answer only with JSON: {"translation": "..."}`

func localeName(l string) string {
	if l == models.LocaleEn {
		return "English"
	}
	return "Hebrew"
}

// Translate returns text translated from one locale to the other.
// Results are cached per model and language pair.
func (s *Service) Translate(ctx context.Context, text, from, to string) (string, error) {
	text = strings.TrimSpace(text)
	from, to = models.NormalizeLocale(from), models.NormalizeLocale(to)
	if text == "" || from == to {
		return text, nil
	}

	key := cache.Key("translate", s.d.AI.TextModel(), from, to, text)
	if s.d.Cache != nil {
		if v, ok, err := s.d.Cache.Get(key); err == nil && ok {
			return string(v), nil
		}
	}

	var out struct {
		Translation string `json:"translation"`
	}
	user := fmt.Sprintf("Translate from %s to %s:\n%s", localeName(from), localeName(to), text)
	if err := s.d.AI.CompleteJSON(ctx, translateSystem, user, &out); err != nil {
		return "", providerErr(err)
	}
	result := strings.TrimSpace(out.Translation)
	if result == "" {
		return "", providerErr(ai.ErrEmptyResponse)
	}

	if s.d.Cache != nil {
		if err := s.d.Cache.Set(key, []byte(result), translateTTL); err != nil {
			logger.FromContext(ctx).Warn("caching translation failed", "error", err)
		}
	}
	return result, nil
}

// FillLocalized translates into whichever side of l is empty.
func (s *Service) FillLocalized(ctx context.Context, l models.Localized) (models.Localized, error) {
	he, en := strings.TrimSpace(l.He), strings.TrimSpace(l.En)
	switch {
	case he == "" && en != "":
		t, err := s.Translate(ctx, en, models.LocaleEn, models.LocaleHe)
		if err != nil {
			return l, err
		}
		l.He = t
	case en == "" && he != "":
		t, err := s.Translate(ctx, he, models.LocaleHe, models.LocaleEn)
		if err != nil {
			return l, err
		}
		l.En = t
	}
	return l, nil
}

// --- Materials ---

type MaterialPrompt struct {
	Hint               string
	MaterialCategoryID uint
	Save               bool
}

type generatedContent struct {
	Name        models.Localized `json:"name"`
	Description models.Localized `json:"description"`
	PricePerM2  float64          `json:"pricePerM2"`
	Tags        []string         `json:"tags"`
}

const materialSystem = `You write catalog entries for an interior design material library.
Answer only with JSON: {"name": {"he": "...", "en": "..."}, "description": {"he": "...", "en": "..."}, "pricePerM2": 0}.
Descriptions are one or two sentences. Prices are in ILS per square meter.`

// GenerateMaterial drafts a material from a short hint. The draft is
// persisted only when p.Save is set.
func (s *Service) GenerateMaterial(ctx context.Context, tenantID uuid.UUID, p MaterialPrompt) (*models.Material, error) {
	category, err := s.d.Materials.GetMaterialCategory(tenantID, p.MaterialCategoryID)
	if err != nil {
		return nil, err
	}

	user := fmt.Sprintf("Material category: %s / %s\nHint: %s", category.Name.En, category.Name.He, p.Hint)
	var out generatedContent
	if err := s.d.AI.CompleteJSON(ctx, materialSystem, user, &out); err != nil {
		return nil, providerErr(err)
	}
	if out.Name.IsEmpty() {
		return nil, providerErr(ai.ErrEmptyResponse)
	}
	if out.Name, err = s.FillLocalized(ctx, out.Name); err != nil {
		return nil, err
	}
	if out.Description, err = s.FillLocalized(ctx, out.Description); err != nil {
		return nil, err
	}

	material := &models.Material{
		TenantID:           tenantID,
		Slug:               slugFor(out.Name, p.Hint),
		Name:               out.Name,
		Description:        out.Description,
		MaterialCategoryID: category.ID,
		PricePerM2:         decimal.NewFromFloat(out.PricePerM2).Round(2),
	}
	if !p.Save {
		return material, nil
	}
	if err := s.d.Materials.CreateMaterial(material, nil); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("material generated", "id", material.ID, "slug", material.Slug)
	return material, nil
}

// --- Images ---

type ImageRequest struct {
	Kind   string
	ID     uint
	Prompt string
}

type ImageResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// GenerateImage creates an image for a material, texture or style, stores
// a full-size and a thumbnail rendition and records the full-size URL.
func (s *Service) GenerateImage(ctx context.Context, tenantID uuid.UUID, req ImageRequest) (*ImageResult, error) {
	prompt, err := s.imagePrompt(tenantID, req)
	if err != nil {
		return nil, err
	}

	raw, err := s.d.AI.GenerateImage(ctx, prompt, imageSize)
	if err != nil {
		return nil, providerErr(err)
	}

	dir := tenantID.String()
	full, err := s.store(ctx, raw, imageproc.SizeFull, dir, req.Kind+"s")
	if err != nil {
		return nil, err
	}
	thumb, err := s.store(ctx, raw, imageproc.SizeThumbnail, dir, req.Kind+"s/thumbnails")
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case KindMaterial:
		err = s.d.Materials.SetImage(tenantID, req.ID, full, true)
	case KindTexture:
		err = s.d.Textures.SetImage(tenantID, req.ID, full, true)
	case KindStyle:
		err = s.d.Styles.AddImage(tenantID, req.ID, full)
	}
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("image generated", "kind", req.Kind, "id", req.ID, "url", full)
	return &ImageResult{URL: full, ThumbnailURL: thumb}, nil
}

func (s *Service) store(ctx context.Context, raw []byte, size imageproc.Size, tenant, kind string) (string, error) {
	res, err := s.d.Images.Process(bytes.NewReader(raw), size, "")
	if err != nil {
		return "", err
	}
	key := storage.ObjectKey(tenant, kind, res.Ext())
	return s.d.Storage.Save(ctx, key, bytes.NewReader(res.Data), res.ContentType)
}

func (s *Service) imagePrompt(tenantID uuid.UUID, req ImageRequest) (string, error) {
	var subject string
	switch req.Kind {
	case KindMaterial:
		m, err := s.d.Materials.GetByID(tenantID, req.ID)
		if err != nil {
			return "", err
		}
		subject = fmt.Sprintf("Close-up, evenly lit swatch of %s. %s", m.Name.En, m.Description.En)
	case KindTexture:
		t, err := s.d.Textures.GetByID(tenantID, req.ID)
		if err != nil {
			return "", err
		}
		subject = fmt.Sprintf("Seamless flat texture of %s.", t.Name.En)
	case KindStyle:
		st, err := s.d.Styles.GetByID(tenantID, req.ID)
		if err != nil {
			return "", err
		}
		subject = fmt.Sprintf("Photorealistic interior in %s style. %s", st.Name.En, st.Description.En)
	default:
		return "", ErrUnknownKind
	}
	if p := strings.TrimSpace(req.Prompt); p != "" {
		return p, nil
	}
	return subject, nil
}

// --- Bulk styles ---

type BulkStylesRequest struct {
	CategoryID    uint
	SubCategoryID *uint
	Names         []string
	Count         int
	WithImages    bool
}

type BulkResult struct {
	Created  int    `json:"created"`
	Failed   int    `json:"failed"`
	StyleIDs []uint `json:"styleIds"`
	Canceled bool   `json:"canceled"`
}

const styleSystem = `You write catalog entries for interior design styles.
Answer only with JSON: {"name": {"he": "...", "en": "..."}, "description": {"he": "...", "en": "..."}, "tags": ["..."]}.
Descriptions are two or three sentences. Use at most five lowercase tags.`

const styleNamesSystem = `You suggest interior design style names.
Answer only with JSON: {"names": ["..."]} using English names.`

// BulkGenerateStyles creates unpublished styles one by one, sleeping
// Deps.Delay between AI calls. A failed item is reported through emit and
// does not stop the run. Cancelling ctx stops after the current call.
func (s *Service) BulkGenerateStyles(ctx context.Context, tenantID uuid.UUID, req BulkStylesRequest, emit func(Event)) (*BulkResult, error) {
	if emit == nil {
		emit = func(Event) {}
	}
	log := logger.FromContext(ctx)

	category, err := s.d.Categories.GetByID(tenantID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	var sub *models.SubCategory
	if req.SubCategoryID != nil {
		if sub, err = s.d.Categories.GetSubCategory(tenantID, *req.SubCategoryID); err != nil {
			return nil, err
		}
		if sub.CategoryID != category.ID {
			return nil, models.ErrSubCategoryNotFound
		}
	}

	names, err := s.bulkNames(ctx, category, req)
	if err != nil {
		return nil, err
	}

	res := &BulkResult{}
	total := len(names)
	emit(Event{Type: EventStarted, Data: StartedData{Total: total}})
	log.Info("bulk style generation started", "category", category.Slug, "total", total)

	calls := 0
	if req.Count > 0 && len(req.Names) == 0 {
		calls = 1
	}
	pause := func() bool {
		calls++
		if calls == 1 {
			return ctx.Err() == nil
		}
		return s.sleep(ctx)
	}

	for i, name := range names {
		if !pause() {
			res.Canceled = true
			break
		}
		emit(Event{Type: EventProgress, Data: ProgressData{Index: i, Total: total, Name: name, Status: StatusGenerating}})

		style, err := s.generateStyle(ctx, tenantID, category, sub, name)
		if err != nil {
			res.Failed++
			log.Warn("style generation failed", "name", name, "error", err)
			emit(Event{Type: EventItemError, Data: ItemErrorData{Index: i, Name: name, Error: err.Error()}})
			continue
		}
		res.Created++
		res.StyleIDs = append(res.StyleIDs, style.ID)

		if req.WithImages {
			if !pause() {
				emit(Event{Type: EventProgress, Data: ProgressData{Index: i, Total: total, Name: name, Status: StatusCreated}})
				res.Canceled = true
				break
			}
			emit(Event{Type: EventProgress, Data: ProgressData{Index: i, Total: total, Name: name, Status: StatusImage}})
			if _, err := s.GenerateImage(ctx, tenantID, ImageRequest{Kind: KindStyle, ID: style.ID}); err != nil {
				log.Warn("style image generation failed", "style_id", style.ID, "error", err)
				emit(Event{Type: EventItemError, Data: ItemErrorData{Index: i, Name: name, Error: "image: " + err.Error()}})
			}
		}
		emit(Event{Type: EventProgress, Data: ProgressData{Index: i, Total: total, Name: name, Status: StatusCreated}})
	}

	if ctx.Err() != nil {
		res.Canceled = true
	}
	emit(Event{Type: EventDone, Data: DoneData{Created: res.Created, Failed: res.Failed, Canceled: res.Canceled}})
	log.Info("bulk style generation finished", "created", res.Created, "failed", res.Failed, "canceled", res.Canceled)
	return res, nil
}

func (s *Service) bulkNames(ctx context.Context, category *models.Category, req BulkStylesRequest) ([]string, error) {
	var names []string
	for _, n := range req.Names {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		return capNames(names), nil
	}
	if req.Count <= 0 {
		return nil, ErrNothingToGen
	}

	var out struct {
		Names []string `json:"names"`
	}
	user := fmt.Sprintf("Suggest %d distinct styles for the category %q.", req.Count, category.Name.En)
	if err := s.d.AI.CompleteJSON(ctx, styleNamesSystem, user, &out); err != nil {
		return nil, providerErr(err)
	}
	for _, n := range out.Names {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > req.Count {
		names = names[:req.Count]
	}
	if len(names) == 0 {
		return nil, providerErr(ai.ErrEmptyResponse)
	}
	return capNames(names), nil
}

func capNames(names []string) []string {
	if len(names) > MaxBulkStyles {
		return names[:MaxBulkStyles]
	}
	return names
}

func (s *Service) generateStyle(ctx context.Context, tenantID uuid.UUID, category *models.Category, sub *models.SubCategory, name string) (*models.Style, error) {
	user := fmt.Sprintf("Style: %s\nCategory: %s", name, category.Name.En)
	if sub != nil {
		user += "\nSubcategory: " + sub.Name.En
	}

	var out generatedContent
	if err := s.d.AI.CompleteJSON(ctx, styleSystem, user, &out); err != nil {
		return nil, providerErr(err)
	}
	if strings.TrimSpace(out.Name.En) == "" {
		out.Name.En = name
	}

	style := &models.Style{
		TenantID:    tenantID,
		CategoryID:  category.ID,
		Slug:        slugFor(out.Name, name),
		Name:        out.Name,
		Description: out.Description,
		Published:   false,
		Tags:        out.Tags,
	}
	if sub != nil {
		style.SubCategoryID = &sub.ID
	}
	if err := s.d.Styles.Create(style, nil); err != nil {
		return nil, err
	}
	return style, nil
}

// sleep waits Deps.Delay. It reports false when ctx ends first.
func (s *Service) sleep(ctx context.Context) bool {
	if s.d.Delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(s.d.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func slugFor(name models.Localized, fallback string) string {
	if s := slug.Make(name.En); s != "" {
		return s
	}
	if s := slug.Make(fallback); s != "" {
		return s
	}
	return slug.Make(name.He)
}
