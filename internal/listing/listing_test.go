package listing

import (
	"net/http/httptest"
	"testing"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupListingDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestScopeExcludesArchived(t *testing.T) {
	db := setupListingDB(t)

	require.NoError(t, db.Create(&models.Subject{DisplayName: "Aktivni"}).Error)
	require.NoError(t, db.Create(&models.Subject{DisplayName: "Archivovany", IsArchived: true}).Error)

	var active []models.Subject
	require.NoError(t, Scope(db.Model(&models.Subject{}), false).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, "Aktivni", active[0].DisplayName)

	var all []models.Subject
	require.NoError(t, Scope(db.Model(&models.Subject{}), true).Find(&all).Error)
	assert.Len(t, all, 2)
}

func TestSearchMatchesCaseInsensitive(t *testing.T) {
	db := setupListingDB(t)

	require.NoError(t, db.Create(&models.Subject{DisplayName: "Jan Novák", Email: "jan@example.cz"}).Error)
	require.NoError(t, db.Create(&models.Subject{DisplayName: "Petr Svoboda", Email: "petr@example.cz"}).Error)

	columns := []string{"display_name", "email"}

	var hits []models.Subject
	require.NoError(t, Search(db.Model(&models.Subject{}), "novák", columns).Find(&hits).Error)
	require.Len(t, hits, 1)
	assert.Equal(t, "Jan Novák", hits[0].DisplayName)

	// shoda pres jiny sloupec
	hits = nil
	require.NoError(t, Search(db.Model(&models.Subject{}), "PETR@", columns).Find(&hits).Error)
	require.Len(t, hits, 1)
	assert.Equal(t, "Petr Svoboda", hits[0].DisplayName)
}

func TestSearchEmptyQueryIsNoop(t *testing.T) {
	db := setupListingDB(t)

	require.NoError(t, db.Create(&models.Subject{DisplayName: "Jan"}).Error)

	var hits []models.Subject
	require.NoError(t, Search(db.Model(&models.Subject{}), "", []string{"display_name"}).Find(&hits).Error)
	assert.Len(t, hits, 1)
}

func TestParseLimits(t *testing.T) {
	app := fiber.New()
	var got Params
	app.Get("/x", func(c *fiber.Ctx) error {
		got = Parse(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		target string
		limit  int
	}{
		{"/x", DefaultLimit},
		{"/x?limit=10", 10},
		{"/x?limit=0", DefaultLimit},
		{"/x?limit=-5", DefaultLimit},
		{"/x?limit=99999", MaxLimit},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.target, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tc.limit, got.Limit, tc.target)
	}
}

func TestParseQueryAndArchived(t *testing.T) {
	app := fiber.New()
	var got Params
	app.Get("/x", func(c *fiber.Ctx) error {
		got = Parse(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x?q=%20novak%20&include_archived=true", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "novak", got.Query)
	assert.True(t, got.IncludeArchived)
}
