package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/interior-catalog/models"
)

// --- Tests: admin styles ---

func TestHandleAdminList(t *testing.T) {
	f := newFixture(
		newTestStyle(1, "nordic", modern, true),
		newTestStyle(2, "draft", modern, false),
	)
	rec := httptest.NewRecorder()

	f.handler().HandleAdminList(rec, newRequest("GET", "/api/admin/styles?category=modern", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp AdminResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total, "Admin listing includes unpublished styles")
	assert.Equal(t, "draft", resp.Styles[1].Slug)
	assert.Equal(t, models.Localized{He: "סגנון draft", En: "Style draft"}, resp.Styles[1].Name)
	assert.False(t, f.styles.lastCalledFilters.PublishedOnly)
	assert.Equal(t, "modern", f.styles.lastCalledFilters.CategorySlug)
}

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		setup              func(f *fixture)
		expectedStatusCode int
		expectedError      string
		checkRepoCalls     func(t *testing.T, f *fixture)
	}{
		{
			name:               "Success with derived slug and materials",
			requestBody:        `{"categoryId":1,"name":{"he":"נורדי","en":"Nordic Calm"},"tags":[" light ",""],"materialIds":[5]}`,
			expectedStatusCode: http.StatusCreated,
			checkRepoCalls: func(t *testing.T, f *fixture) {
				require.NotNil(t, f.styles.created)
				assert.Equal(t, testTenant.ID, f.styles.created.TenantID)
				assert.Equal(t, "nordic-calm", f.styles.created.Slug)
				assert.Equal(t, []string{"light"}, []string(f.styles.created.Tags))
				assert.False(t, f.styles.created.Published)
				assert.Equal(t, []uint{5}, f.styles.replacedIDs)
			},
		},
		{
			name:               "Legacy hex is matched to the nearest color",
			requestBody:        `{"categoryId":1,"name":{"en":"Sand"},"colorHex":"#F0F0D8"}`,
			expectedStatusCode: http.StatusCreated,
			checkRepoCalls: func(t *testing.T, f *fixture) {
				assert.Equal(t, "#f0f0d8", f.styles.created.ColorHex)
				assert.Equal(t, uintPtr(3), f.styles.created.ColorID)
				assert.False(t, f.styles.replaceCalled)
			},
		},
		{
			name:               "Hex far from every color stays unmatched",
			requestBody:        `{"categoryId":1,"name":{"en":"Night"},"colorHex":"#000"}`,
			expectedStatusCode: http.StatusCreated,
			checkRepoCalls: func(t *testing.T, f *fixture) {
				assert.Equal(t, "#000000", f.styles.created.ColorHex)
				assert.Nil(t, f.styles.created.ColorID)
			},
		},
		{
			name:               "Explicit color fills the legacy hex",
			requestBody:        `{"categoryId":1,"name":{"en":"Sand"},"colorId":3}`,
			expectedStatusCode: http.StatusCreated,
			checkRepoCalls: func(t *testing.T, f *fixture) {
				assert.Equal(t, "#f5f5dc", f.styles.created.ColorHex)
			},
		},
		{
			name:               "Unknown category",
			requestBody:        `{"categoryId":9,"name":{"en":"Nordic"}}`,
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedError:      "Category not found",
			checkRepoCalls: func(t *testing.T, f *fixture) {
				assert.Nil(t, f.styles.created, "Create should not be called")
			},
		},
		{
			name:        "Subcategory of another category",
			requestBody: `{"categoryId":1,"subCategoryId":20,"name":{"en":"Nordic"}}`,
			setup: func(f *fixture) {
				f.categories.SubCategories = []models.SubCategory{{ID: 20, CategoryID: 2, Slug: "rococo"}}
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedError:      "Subcategory does not belong to the category",
		},
		{
			name:               "Unknown color",
			requestBody:        `{"categoryId":1,"name":{"en":"Nordic"},"colorId":99}`,
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedError:      "Color not found",
		},
		{
			name:               "Invalid hex",
			requestBody:        `{"categoryId":1,"name":{"en":"Nordic"},"colorHex":"blue"}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Validation failed",
		},
		{
			name:               "Missing name",
			requestBody:        `{"categoryId":1}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Validation failed",
		},
		{
			name:        "Duplicate slug within category",
			requestBody: `{"categoryId":1,"name":{"en":"Nordic"}}`,
			setup: func(f *fixture) {
				f.styles.CreateErr = models.ErrDuplicateSlug
			},
			expectedStatusCode: http.StatusConflict,
			expectedError:      "Slug already exists",
		},
		{
			name:        "Material of another tenant",
			requestBody: `{"categoryId":1,"name":{"en":"Nordic"},"materialIds":[404]}`,
			setup: func(f *fixture) {
				f.styles.CreateErr = models.ErrMaterialNotFound
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedError:      "Material not found",
			checkRepoCalls: func(t *testing.T, f *fixture) {
				assert.Equal(t, []uint{404}, f.styles.replacedIDs, "Materials are passed to the same Create call")
			},
		},
		{
			name:        "Missing foreign key",
			requestBody: `{"categoryId":1,"name":{"en":"Nordic"}}`,
			setup: func(f *fixture) {
				f.styles.CreateErr = models.ErrMissingReference
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedError:      "Referenced record does not exist",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newFixture()
			if tc.setup != nil {
				tc.setup(f)
			}
			rec := httptest.NewRecorder()

			// Act
			f.handler().HandleCreate(rec, newRequest("POST", "/api/admin/styles", tc.requestBody))

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				var errResp map[string]any
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, tc.expectedError, errResp["error"])
			}
			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, f)
			}
		})
	}
}

func TestHandleUpdate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		updateErr          error
		expectedStatusCode int
		expectReplace      bool
	}{
		{name: "Without materialIds keeps materials", requestBody: `{"categoryId":1,"name":{"en":"Nordic"},"published":true}`, expectedStatusCode: http.StatusOK},
		{name: "Empty materialIds clears materials", requestBody: `{"categoryId":1,"name":{"en":"Nordic"},"materialIds":[]}`, expectedStatusCode: http.StatusOK, expectReplace: true},
		{name: "Not found", requestBody: `{"categoryId":1,"name":{"en":"Nordic"}}`, updateErr: models.ErrStyleNotFound, expectedStatusCode: http.StatusNotFound},
		{name: "Material of another tenant", requestBody: `{"categoryId":1,"name":{"en":"Nordic"},"materialIds":[404]}`, updateErr: models.ErrMaterialNotFound, expectedStatusCode: http.StatusUnprocessableEntity, expectReplace: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.styles.UpdateErr = tc.updateErr
			req := newRequest("PUT", "/api/admin/styles/12", tc.requestBody)
			req.SetPathValue("id", "12")
			rec := httptest.NewRecorder()

			f.handler().HandleUpdate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			require.NotNil(t, f.styles.updated)
			assert.Equal(t, uint(12), f.styles.updated.ID)
			assert.Equal(t, tc.expectReplace, f.styles.replaceCalled)
			if tc.expectReplace && tc.updateErr == nil {
				assert.Empty(t, f.styles.replacedIDs)
			}
		})
	}
}

func TestHandleReplaceMaterials(t *testing.T) {
	f := newFixture(newTestStyle(4, "nordic", modern, true))
	req := newRequest("PUT", "/api/admin/styles/4/materials", `{"materialIds":[5,6]}`)
	req.SetPathValue("id", "4")
	rec := httptest.NewRecorder()

	f.handler().HandleReplaceMaterials(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uint{5, 6}, f.styles.replacedIDs)
}

func TestHandleReplaceMaterials_ForeignMaterial(t *testing.T) {
	f := newFixture(newTestStyle(4, "nordic", modern, true))
	f.styles.ReplaceErr = models.ErrMaterialNotFound
	req := newRequest("PUT", "/api/admin/styles/4/materials", `{"materialIds":[5,404]}`)
	req.SetPathValue("id", "4")
	rec := httptest.NewRecorder()

	f.handler().HandleReplaceMaterials(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var errResp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "Material not found", errResp["error"])
}

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		id                 string
		deleteErr          error
		expectedStatusCode int
	}{
		{name: "Success", id: "4", expectedStatusCode: http.StatusNoContent},
		{name: "Not found", id: "4", deleteErr: models.ErrStyleNotFound, expectedStatusCode: http.StatusNotFound},
		{name: "Invalid id", id: "0", expectedStatusCode: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.styles.DeleteErr = tc.deleteErr
			req := newRequest("DELETE", "/api/admin/styles/"+tc.id, "")
			req.SetPathValue("id", tc.id)
			rec := httptest.NewRecorder()

			f.handler().HandleDelete(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}

// --- Tests: room profiles ---

func TestHandleCreateRoomProfile(t *testing.T) {
	testCases := []struct {
		name               string
		styleID            string
		requestBody        string
		expectedStatusCode int
		checkProfile       func(t *testing.T, p *models.RoomProfile)
	}{
		{
			name:               "Palette entries are converted on write",
			styleID:            "1",
			requestBody:        `{"roomType":"bedroom","colors":[{"hex":"F5F5DD","role":"walls"},{"hex":"#123"}],"materials":[{"name":"white oak","application":"floor"},{"name":"Velvet"}]}`,
			expectedStatusCode: http.StatusCreated,
			checkProfile: func(t *testing.T, p *models.RoomProfile) {
				palette := p.Palette.Data()
				assert.Equal(t, uint(1), p.StyleID)
				assert.Equal(t, "bedroom", p.RoomType)
				assert.Equal(t, models.PaletteColor{Hex: "#f5f5dd", ColorID: uintPtr(3), Role: "walls"}, palette.Colors[0])
				assert.Equal(t, models.PaletteColor{Hex: "#112233"}, palette.Colors[1])
				assert.Equal(t, models.PaletteMaterial{Name: "white oak", MaterialID: uintPtr(5), Application: "floor"}, palette.Materials[0])
				assert.Equal(t, models.PaletteMaterial{Name: "Velvet"}, palette.Materials[1])
			},
		},
		{
			name:               "Explicit ids are kept",
			styleID:            "1",
			requestBody:        `{"roomType":"office","colors":[{"colorId":3}],"materials":[{"materialId":5}]}`,
			expectedStatusCode: http.StatusCreated,
			checkProfile: func(t *testing.T, p *models.RoomProfile) {
				palette := p.Palette.Data()
				assert.Equal(t, uintPtr(3), palette.Colors[0].ColorID)
				assert.Equal(t, uintPtr(5), palette.Materials[0].MaterialID)
			},
		},
		{name: "Color of another tenant", styleID: "1", requestBody: `{"roomType":"office","colors":[{"colorId":999}]}`, expectedStatusCode: http.StatusUnprocessableEntity},
		{name: "Material of another tenant", styleID: "1", requestBody: `{"roomType":"office","materials":[{"materialId":12345,"name":"Oak"}]}`, expectedStatusCode: http.StatusUnprocessableEntity},
		{name: "Unknown room type", styleID: "1", requestBody: `{"roomType":"garage"}`, expectedStatusCode: http.StatusBadRequest},
		{name: "Empty palette color", styleID: "1", requestBody: `{"roomType":"office","colors":[{"role":"accent"}]}`, expectedStatusCode: http.StatusBadRequest},
		{name: "Unknown style", styleID: "77", requestBody: `{"roomType":"office"}`, expectedStatusCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(newTestStyle(1, "nordic", modern, true))
			req := newRequest("POST", "/api/admin/styles/"+tc.styleID+"/rooms", tc.requestBody)
			req.SetPathValue("id", tc.styleID)
			rec := httptest.NewRecorder()

			f.handler().HandleCreateRoomProfile(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkProfile != nil {
				require.NotNil(t, f.rooms.created)
				tc.checkProfile(t, f.rooms.created)
			} else {
				assert.Nil(t, f.rooms.created)
			}
		})
	}
}

func TestHandleCreateRoomProfile_ForeignPaletteIDs(t *testing.T) {
	testCases := []struct {
		name          string
		requestBody   string
		expectedError string
	}{
		{name: "Color", requestBody: `{"roomType":"office","colors":[{"colorId":999,"hex":"#f5f5dc"}]}`, expectedError: "Palette color not found"},
		{name: "Material", requestBody: `{"roomType":"office","materials":[{"materialId":12345}]}`, expectedError: "Palette material not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(newTestStyle(1, "nordic", modern, true))
			req := newRequest("POST", "/api/admin/styles/1/rooms", tc.requestBody)
			req.SetPathValue("id", "1")
			rec := httptest.NewRecorder()

			f.handler().HandleCreateRoomProfile(rec, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			var errResp map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
			assert.Equal(t, tc.expectedError, errResp["error"])
			assert.Nil(t, f.rooms.created)
		})
	}
}

func TestHandleUpdateRoomProfile(t *testing.T) {
	f := newFixture()
	f.rooms.Profiles = []models.RoomProfile{{ID: 8, StyleID: 1, RoomType: "office"}}
	req := newRequest("PUT", "/api/admin/rooms/8", `{"roomType":"kitchen","order":2}`)
	req.SetPathValue("id", "8")
	rec := httptest.NewRecorder()

	f.handler().HandleUpdateRoomProfile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.rooms.updated)
	assert.Equal(t, uint(8), f.rooms.updated.ID)
	assert.Equal(t, uint(1), f.rooms.updated.StyleID)
	assert.Equal(t, "kitchen", f.rooms.updated.RoomType)
	assert.Equal(t, 2, f.rooms.updated.Order)
}

func TestHandleListRoomProfiles(t *testing.T) {
	f := newFixture(newTestStyle(1, "nordic", modern, true))
	req := newRequest("GET", "/api/admin/styles/1/rooms", "")
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	f.handler().HandleListRoomProfiles(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleDeleteRoomProfile(t *testing.T) {
	f := newFixture()
	req := newRequest("DELETE", "/api/admin/rooms/8", "")
	req.SetPathValue("id", "8")
	rec := httptest.NewRecorder()

	f.handler().HandleDeleteRoomProfile(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint(8), f.rooms.deletedID)
}
