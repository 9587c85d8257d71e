package models

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testTenantID = uuid.MustParse("4a1f9c0e-7b2d-4e3f-a5b6-c7d8e9f0a1b2")

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

var colorColumns = []string{"id", "tenant_id", "hex", "name_he", "name_en", "family", "sort_order"}

func TestGetAllColors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewColorsRepository(db)

	rows := sqlmock.NewRows(colorColumns).
		AddRow(1, testTenantID.String(), "#ffffff", "לבן", "White", "neutral", 0).
		AddRow(2, testTenantID.String(), "#1f3a5f", "כחול", "Navy", "blue", 1)
	mock.ExpectQuery(`SELECT \* FROM "colors" WHERE tenant_id = \$1 ORDER BY sort_order, id`).
		WithArgs(testTenantID).
		WillReturnRows(rows)

	colors, err := repo.GetAllColors(&testTenantID)

	require.NoError(t, err)
	require.Len(t, colors, 2)
	assert.Equal(t, "#1f3a5f", colors[1].Hex)
	assert.Equal(t, Localized{He: "כחול", En: "Navy"}, colors[1].Name)
	assert.Equal(t, testTenantID, colors[0].TenantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllColors_EveryTenant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewColorsRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "colors" ORDER BY sort_order, id`).
		WillReturnRows(sqlmock.NewRows(colorColumns))

	colors, err := repo.GetAllColors(nil)

	require.NoError(t, err)
	assert.Empty(t, colors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColorGetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewColorsRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "colors" WHERE tenant_id = \$1 AND id = \$2`).
		WillReturnRows(sqlmock.NewRows(colorColumns))

	color, err := repo.GetByID(testTenantID, 9)

	assert.Nil(t, color)
	assert.ErrorIs(t, err, ErrColorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateColor_DuplicateHex(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewColorsRepository(db)

	mock.ExpectQuery(`INSERT INTO "colors"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := repo.CreateColor(&Color{TenantID: testTenantID, Hex: "#ffffff"})

	assert.ErrorIs(t, err, ErrDuplicateSlug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteColor(t *testing.T) {
	testCases := []struct {
		name        string
		result      func(e *sqlmock.ExpectedExec)
		expectedErr error
	}{
		{
			name:   "Deleted",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:        "Missing row",
			result:      func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			expectedErr: ErrColorNotFound,
		},
		{
			name:        "Still referenced",
			result:      func(e *sqlmock.ExpectedExec) { e.WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation}) },
			expectedErr: ErrInUse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			db, mock := newMockDB(t)
			repo := NewColorsRepository(db)
			tc.result(mock.ExpectExec(`DELETE FROM "colors" WHERE tenant_id = \$1`))

			// Act
			err := repo.DeleteColor(testTenantID, 3)

			// Assert
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTenantGetBySlug(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantsRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name"}).AddRow(testTenantID.String(), "demo", "Demo Studio"))
	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name"}))

	tenant, err := repo.GetBySlug("demo")
	require.NoError(t, err)
	assert.Equal(t, testTenantID, tenant.ID)
	assert.Equal(t, "Demo Studio", tenant.Name)

	_, err = repo.GetBySlug("missing")
	assert.ErrorIs(t, err, ErrTenantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
