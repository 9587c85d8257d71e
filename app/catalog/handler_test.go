package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/mytheresa/interior-catalog/app/middleware"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

var testTenant = &models.Tenant{ID: uuid.MustParse("0b8e4f0e-93a4-4c55-8f7c-1d2e3f4a5b6c"), Slug: "demo"}

// --- Mock Repos ---

type MockStyleRepo struct {
	SourceStyles []models.Style
	Err          error
	CreateErr    error
	UpdateErr    error
	ReplaceErr   error
	DeleteErr    error

	// Fields to capture call arguments
	lastCalledOffset  int
	lastCalledLimit   int
	lastCalledFilters models.StyleFilters
	lastCalledSlug    string
	lastCalledCat     string
	created           *models.Style
	updated           *models.Style
	replacedIDs       []uint
	replaceCalled     bool
	deletedID         uint
}

func (m *MockStyleRepo) GetFiltered(tenantID uuid.UUID, offset, limit int, filters models.StyleFilters) ([]models.Style, int64, error) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit
	m.lastCalledFilters = filters

	if m.Err != nil {
		return nil, 0, m.Err
	}

	// Simulate filtering
	var filtered []models.Style
	for _, s := range m.SourceStyles {
		if filters.CategorySlug != "" && s.Category.Slug != filters.CategorySlug {
			continue
		}
		if filters.PublishedOnly && !s.Published {
			continue
		}
		filtered = append(filtered, s)
	}

	total := int64(len(filtered))

	// Simulate pagination
	start := min(offset, len(filtered))
	end := min(offset+limit, len(filtered))
	return filtered[start:end], total, nil
}

func (m *MockStyleRepo) GetPublishedBySlug(tenantID uuid.UUID, categorySlug, slug string) (*models.Style, error) {
	m.lastCalledSlug = slug
	m.lastCalledCat = categorySlug
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.SourceStyles {
		if categorySlug != "" && s.Category.Slug != categorySlug {
			continue
		}
		if s.Slug == slug && s.Published {
			style := s
			return &style, nil
		}
	}
	return nil, models.ErrStyleNotFound
}

func (m *MockStyleRepo) GetByID(tenantID uuid.UUID, id uint) (*models.Style, error) {
	for _, s := range m.SourceStyles {
		if s.ID == id {
			style := s
			return &style, nil
		}
	}
	return nil, models.ErrStyleNotFound
}

func (m *MockStyleRepo) Create(style *models.Style, materialIDs []uint) error {
	m.created = style
	if materialIDs != nil {
		m.replaceCalled = true
		m.replacedIDs = materialIDs
	}
	if m.CreateErr == nil {
		style.ID = 41
	}
	return m.CreateErr
}

func (m *MockStyleRepo) Update(style *models.Style, materialIDs []uint) error {
	m.updated = style
	if materialIDs != nil {
		m.replaceCalled = true
		m.replacedIDs = materialIDs
	}
	return m.UpdateErr
}

func (m *MockStyleRepo) ReplaceMaterials(style *models.Style, materialIDs []uint) error {
	m.replaceCalled = true
	m.replacedIDs = materialIDs
	return m.ReplaceErr
}

func (m *MockStyleRepo) Delete(tenantID uuid.UUID, id uint) error {
	m.deletedID = id
	return m.DeleteErr
}

type MockRoomRepo struct {
	Profiles  []models.RoomProfile
	CreateErr error
	created   *models.RoomProfile
	updated   *models.RoomProfile
	deletedID uint
}

func (m *MockRoomRepo) GetByID(tenantID uuid.UUID, id uint) (*models.RoomProfile, error) {
	for _, p := range m.Profiles {
		if p.ID == id {
			profile := p
			return &profile, nil
		}
	}
	return nil, models.ErrRoomProfileNotFound
}

func (m *MockRoomRepo) ListByStyle(tenantID uuid.UUID, styleID uint) ([]models.RoomProfile, error) {
	var out []models.RoomProfile
	for _, p := range m.Profiles {
		if p.StyleID == styleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockRoomRepo) CreateRoomProfile(profile *models.RoomProfile) error {
	m.created = profile
	return m.CreateErr
}

func (m *MockRoomRepo) UpdateRoomProfile(profile *models.RoomProfile) error {
	m.updated = profile
	return nil
}

func (m *MockRoomRepo) DeleteRoomProfile(tenantID uuid.UUID, id uint) error {
	m.deletedID = id
	return nil
}

type MockColorRepo struct {
	Colors []models.Color
	calls  int
}

func (m *MockColorRepo) GetAllColors(tenantID *uuid.UUID) ([]models.Color, error) {
	m.calls++
	return m.Colors, nil
}

func (m *MockColorRepo) GetByID(tenantID uuid.UUID, id uint) (*models.Color, error) {
	for _, c := range m.Colors {
		if c.ID == id {
			color := c
			return &color, nil
		}
	}
	return nil, models.ErrColorNotFound
}

type MockMaterialRepo struct {
	Materials []models.Material
	calls     int
}

func (m *MockMaterialRepo) GetAllMaterials(tenantID *uuid.UUID, filters models.MaterialFilters) ([]models.Material, error) {
	m.calls++
	return m.Materials, nil
}

type MockCategoryLookup struct {
	Categories    []models.Category
	SubCategories []models.SubCategory
}

func (m *MockCategoryLookup) GetByID(tenantID uuid.UUID, id uint) (*models.Category, error) {
	for _, c := range m.Categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *MockCategoryLookup) GetSubCategory(tenantID uuid.UUID, id uint) (*models.SubCategory, error) {
	for _, s := range m.SubCategories {
		if s.ID == id {
			sub := s
			return &sub, nil
		}
	}
	return nil, models.ErrSubCategoryNotFound
}

// --- Helpers ---

func uintPtr(v uint) *uint { return &v }

var (
	modern  = models.Category{ID: 1, Slug: "modern", Name: models.Localized{He: "מודרני", En: "Modern"}}
	classic = models.Category{ID: 2, Slug: "classic", Name: models.Localized{He: "קלאסי", En: "Classic"}}
	beige   = models.Color{ID: 3, Hex: "#f5f5dc", Name: models.Localized{He: "בז'", En: "Beige"}}
	oak     = models.Material{ID: 5, Slug: "white-oak", Name: models.Localized{He: "אלון לבן", En: "White Oak"}, PricePerM2: decimal.RequireFromString("120.50")}
)

func newTestStyle(id uint, slug string, category models.Category, published bool) models.Style {
	return models.Style{
		ID:         id,
		Slug:       slug,
		Name:       models.Localized{He: "סגנון " + slug, En: "Style " + slug},
		CategoryID: category.ID,
		Category:   category,
		Published:  published,
	}
}

type fixture struct {
	styles     *MockStyleRepo
	rooms      *MockRoomRepo
	colors     *MockColorRepo
	materials  *MockMaterialRepo
	categories *MockCategoryLookup
}

func newFixture(styles ...models.Style) *fixture {
	return &fixture{
		styles:     &MockStyleRepo{SourceStyles: styles},
		rooms:      &MockRoomRepo{},
		colors:     &MockColorRepo{Colors: []models.Color{beige}},
		materials:  &MockMaterialRepo{Materials: []models.Material{oak}},
		categories: &MockCategoryLookup{Categories: []models.Category{modern, classic}},
	}
}

func (f *fixture) handler() *CatalogHandler {
	return NewCatalogHandler(Deps{
		Styles:     f.styles,
		Rooms:      f.rooms,
		Colors:     f.colors,
		Materials:  f.materials,
		Categories: f.categories,
	}, validator.New())
}

func newRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithTenant(req.Context(), testTenant))
}

// --- Tests: GET /api/styles ---

func TestHandleGet(t *testing.T) {
	allMockStyles := []models.Style{
		newTestStyle(1, "nordic", modern, true),
		newTestStyle(2, "industrial", modern, true),
		newTestStyle(3, "draft", modern, false),
		newTestStyle(4, "baroque", classic, true),
	}

	testCases := []struct {
		name               string
		url                string
		repoErr            error
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockStyleRepo)
	}{
		{
			name:               "Success with default pagination",
			url:                "/api/styles",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 3, resp.Total, "Unpublished styles are hidden")
				assert.Len(t, resp.Styles, 3)
				assert.Equal(t, "nordic", resp.Styles[0].Slug)
				assert.Equal(t, "סגנון nordic", resp.Styles[0].Name)
				assert.Equal(t, "מודרני", resp.Styles[0].Category.Name)
				assert.Equal(t, []string{}, resp.Styles[0].Tags)
			},
			checkRepoCalls: func(t *testing.T, repo *MockStyleRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Expected default offset 0")
				assert.Equal(t, 10, repo.lastCalledLimit, "Expected default limit 10")
				assert.True(t, repo.lastCalledFilters.PublishedOnly)
				assert.Empty(t, repo.lastCalledFilters.CategorySlug)
				assert.Nil(t, repo.lastCalledFilters.ColorID)
			},
		},
		{
			name:               "Success with custom pagination and locale",
			url:                "/api/styles?offset=1&limit=1&locale=en",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 3, resp.Total)
				assert.Len(t, resp.Styles, 1)
				assert.Equal(t, "Style industrial", resp.Styles[0].Name)
				assert.Equal(t, "Modern", resp.Styles[0].Category.Name)
			},
			checkRepoCalls: func(t *testing.T, repo *MockStyleRepo) {
				assert.Equal(t, 1, repo.lastCalledOffset)
				assert.Equal(t, 1, repo.lastCalledLimit)
			},
		},
		{
			name:               "Pagination with out-of-bounds values",
			url:                "/api/styles?offset=-10&limit=200",
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockStyleRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Offset should be clamped to 0")
				assert.Equal(t, 100, repo.lastCalledLimit, "Limit should be clamped to 100")
			},
		},
		{
			name:               "Filter by category",
			url:                "/api/styles?category=classic",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1, resp.Total)
				assert.Equal(t, "baroque", resp.Styles[0].Slug)
			},
			checkRepoCalls: func(t *testing.T, repo *MockStyleRepo) {
				assert.Equal(t, "classic", repo.lastCalledFilters.CategorySlug)
			},
		},
		{
			name:               "Filter by subcategory, color and material",
			url:                "/api/styles?subcategory=minimal&color=3&material=5",
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockStyleRepo) {
				assert.Equal(t, "minimal", repo.lastCalledFilters.SubCategorySlug)
				assert.Equal(t, uintPtr(3), repo.lastCalledFilters.ColorID)
				assert.Equal(t, uintPtr(5), repo.lastCalledFilters.MaterialID)
			},
		},
		{
			name:               "Invalid color filter",
			url:                "/api/styles?color=beige",
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]any
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Invalid color", errResp["error"])
			},
		},
		{
			name:               "Repository error",
			url:                "/api/styles",
			repoErr:            errors.New("db down"),
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]any
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Internal server error", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newFixture(allMockStyles...)
			f.styles.Err = tc.repoErr
			handler := f.handler()
			req := newRequest("GET", tc.url, "")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, f.styles)
			}
		})
	}
}

// --- Tests: GET /api/styles/{slug} and /api/categories/{category}/styles/{slug} ---

func TestHandleGetStyle(t *testing.T) {
	detailed := newTestStyle(1, "nordic", modern, true)
	detailed.Color = &beige
	detailed.Images = pq.StringArray{"https://cdn.test/nordic.jpg", "https://cdn.test/nordic-2.jpg"}
	detailed.Tags = datatypes.JSONSlice[string]{"light", "wood"}
	detailed.Materials = []models.Material{oak}
	detailed.RoomProfiles = []models.RoomProfile{
		{
			ID:       7,
			RoomType: "living-room",
			Palette: datatypes.NewJSONType(models.RoomPalette{
				Colors: []models.PaletteColor{
					{Hex: "#000000", ColorID: uintPtr(3), Role: "primary"},
					{Hex: "#abcdef"},
				},
				Materials: []models.PaletteMaterial{
					{Name: "oak boards", MaterialID: uintPtr(5), Application: "floor"},
					{Name: "Rattan"},
				},
			}),
		},
	}

	t.Run("Success resolves converted palette entries", func(t *testing.T) {
		// Arrange
		f := newFixture(detailed)
		req := newRequest("GET", "/api/styles/nordic?locale=en", "")
		req.SetPathValue("slug", "nordic")
		rec := httptest.NewRecorder()

		// Act
		f.handler().HandleGetStyle(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		var resp StyleDetail
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Style nordic", resp.Name)
		assert.Equal(t, "https://cdn.test/nordic.jpg", resp.Image)
		assert.Len(t, resp.Images, 2)
		assert.Equal(t, []string{"light", "wood"}, resp.Tags)
		assert.Equal(t, &Color{ID: 3, Hex: "#f5f5dc", Name: "Beige"}, resp.Color)

		assert.Len(t, resp.Materials, 1)
		assert.Equal(t, 120.5, resp.Materials[0].PricePerM2)

		assert.Len(t, resp.RoomProfiles, 1)
		room := resp.RoomProfiles[0]
		assert.Equal(t, "living-room", room.RoomType)
		assert.Equal(t, []string{}, room.Images)
		assert.Equal(t, PaletteColor{ColorID: uintPtr(3), Hex: "#f5f5dc", Name: "Beige", Role: "primary"}, room.Colors[0])
		assert.Equal(t, PaletteColor{Hex: "#abcdef"}, room.Colors[1], "Unconverted entries keep their raw hex")
		assert.Equal(t, PaletteMaterial{MaterialID: uintPtr(5), Name: "White Oak", Application: "floor"}, room.Materials[0])
		assert.Equal(t, PaletteMaterial{Name: "Rattan"}, room.Materials[1])

		assert.Equal(t, "nordic", f.styles.lastCalledSlug)
	})

	t.Run("Palette lookups are skipped when nothing is converted", func(t *testing.T) {
		plain := newTestStyle(2, "plain", modern, true)
		plain.RoomProfiles = []models.RoomProfile{{ID: 8, RoomType: "office"}}
		f := newFixture(plain)
		req := newRequest("GET", "/api/styles/plain", "")
		req.SetPathValue("slug", "plain")
		rec := httptest.NewRecorder()

		f.handler().HandleGetStyle(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, f.colors.calls)
		assert.Zero(t, f.materials.calls)
	})

	t.Run("Category narrows a shared slug", func(t *testing.T) {
		// Arrange
		draft := newTestStyle(10, "loft", modern, false)
		published := newTestStyle(11, "loft", classic, true)
		f := newFixture(draft, published)
		req := newRequest("GET", "/api/categories/classic/styles/loft", "")
		req.SetPathValue("category", "classic")
		req.SetPathValue("slug", "loft")
		rec := httptest.NewRecorder()

		// Act
		f.handler().HandleGetStyle(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		var resp StyleDetail
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, uint(11), resp.ID)
		assert.Equal(t, "classic", f.styles.lastCalledCat)
	})

	t.Run("Category query parameter is passed through", func(t *testing.T) {
		f := newFixture(newTestStyle(11, "loft", classic, true))
		req := newRequest("GET", "/api/styles/loft?category=classic", "")
		req.SetPathValue("slug", "loft")
		rec := httptest.NewRecorder()

		f.handler().HandleGetStyle(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "classic", f.styles.lastCalledCat)
	})

	testCases := []struct {
		name               string
		target             string
		category           string
		slug               string
		expectedStatusCode int
		expectedError      string
	}{
		{name: "Style not found", target: "/api/styles/missing", slug: "missing", expectedStatusCode: http.StatusNotFound, expectedError: "Style not found"},
		{name: "Unpublished style is hidden", target: "/api/styles/draft", slug: "draft", expectedStatusCode: http.StatusNotFound, expectedError: "Style not found"},
		{name: "Style of another category", target: "/api/categories/classic/styles/nordic", category: "classic", slug: "nordic", expectedStatusCode: http.StatusNotFound, expectedError: "Style not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(detailed, newTestStyle(3, "draft", modern, false))
			req := newRequest("GET", tc.target, "")
			if tc.category != "" {
				req.SetPathValue("category", tc.category)
			}
			req.SetPathValue("slug", tc.slug)
			rec := httptest.NewRecorder()

			f.handler().HandleGetStyle(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			var errResp map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
			assert.Equal(t, tc.expectedError, errResp["error"])
		})
	}
}
