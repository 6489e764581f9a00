package reftype

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pronajem-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTypesApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	app.Get("/api/types/:table", ListTypesHandler())
	app.Post("/api/types/:table", CreateTypeHandler())
	app.Put("/api/types/:table/:code", UpdateTypeHandler())
	app.Delete("/api/types/:table/:code", DeactivateTypeHandler())
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestCreateAndListType(t *testing.T) {
	app := setupTypesApp(t)

	status, raw := doJSON(t, app, "POST", "/api/types/unit_types",
		`{"code":"flat","name":"Byt","sort_order":1}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var created Item
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "flat", created.Code)
	assert.True(t, created.IsActive, "nova polozka bez is_active ma byt aktivni")

	status, raw = doJSON(t, app, "GET", "/api/types/unit_types", "")
	require.Equal(t, fiber.StatusOK, status)
	var items []Item
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Byt", items[0].Name)
}

func TestCreateTypeExplicitInactive(t *testing.T) {
	app := setupTypesApp(t)

	status, raw := doJSON(t, app, "POST", "/api/types/unit_types",
		`{"code":"old","name":"Stary","is_active":false}`)
	require.Equal(t, fiber.StatusCreated, status)

	var created Item
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.False(t, created.IsActive)
}

func TestCreateTypeValidation(t *testing.T) {
	app := setupTypesApp(t)

	status, _ := doJSON(t, app, "POST", "/api/types/unit_types", `{"name":"Bez kodu"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, "POST", "/api/types/unit_types",
		`{"code":"`+strings.Repeat("x", 21)+`","name":"Dlouhy kod"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// nevalidni vstup nesmi nic zapsat
	_, raw := doJSON(t, app, "GET", "/api/types/unit_types?include_inactive=true", "")
	var items []Item
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Empty(t, items)
}

func TestCreateTypeDuplicateCode(t *testing.T) {
	app := setupTypesApp(t)

	status, _ := doJSON(t, app, "POST", "/api/types/payment_types", `{"code":"bank","name":"Prevodem"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "POST", "/api/types/payment_types", `{"code":"bank","name":"Jinak"}`)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestUpdateTypeKeepsCode(t *testing.T) {
	app := setupTypesApp(t)

	status, _ := doJSON(t, app, "POST", "/api/types/property_types", `{"code":"house","name":"Dum"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, raw := doJSON(t, app, "PUT", "/api/types/property_types/house",
		`{"code":"villa","name":"Rodinny dum","color":"#00ff00"}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var updated Item
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "house", updated.Code, "kod je nemenny")
	assert.Equal(t, "Rodinny dum", updated.Name)
	assert.Equal(t, "#00ff00", updated.Color)
}

func TestDeactivateType(t *testing.T) {
	app := setupTypesApp(t)

	status, _ := doJSON(t, app, "POST", "/api/types/role_types", `{"code":"owner","name":"Majitel"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "DELETE", "/api/types/role_types/owner", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	// aktivni seznam uz polozku nevraci, s include_inactive ano
	_, raw := doJSON(t, app, "GET", "/api/types/role_types", "")
	var items []Item
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Empty(t, items)

	_, raw = doJSON(t, app, "GET", "/api/types/role_types?include_inactive=true", "")
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 1)
	assert.False(t, items[0].IsActive)
}

func TestUnknownTable(t *testing.T) {
	app := setupTypesApp(t)

	status, _ := doJSON(t, app, "GET", "/api/types/not_a_table", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "POST", "/api/types/not_a_table", `{"code":"x","name":"X"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}
