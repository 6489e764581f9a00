package prefs

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pronajem-backend/internal/auth"
	"pronajem-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPrefsApp(t *testing.T, userID uint) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, userID)
		return c.Next()
	})
	app.Get("/api/prefs", ListPrefsHandler())
	app.Get("/api/prefs/history/:field", GetHistoryHandler())
	app.Post("/api/prefs/history/:field", AddHistoryHandler())
	app.Get("/api/prefs/:key", GetPrefHandler())
	app.Put("/api/prefs/:key", PutPrefHandler())
	return app
}

func prefsRequest(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
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

func TestPutAndGetPref(t *testing.T) {
	app := setupPrefsApp(t, 1)

	status, _ := prefsRequest(t, app, "PUT", "/api/prefs/subjects.list",
		`{"columns":["display_name","email"],"sort":"display_name"}`)
	require.Equal(t, fiber.StatusNoContent, status)

	status, raw := prefsRequest(t, app, "GET", "/api/prefs/subjects.list", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"columns":["display_name","email"],"sort":"display_name"}`, string(raw))
}

func TestPutPrefUpserts(t *testing.T) {
	app := setupPrefsApp(t, 1)

	status, _ := prefsRequest(t, app, "PUT", "/api/prefs/theme", `"light"`)
	require.Equal(t, fiber.StatusNoContent, status)
	status, _ = prefsRequest(t, app, "PUT", "/api/prefs/theme", `"dark"`)
	require.Equal(t, fiber.StatusNoContent, status)

	status, raw := prefsRequest(t, app, "GET", "/api/prefs/theme", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `"dark"`, string(raw))
}

func TestPutPrefRejectsInvalidJSON(t *testing.T) {
	app := setupPrefsApp(t, 1)

	status, _ := prefsRequest(t, app, "PUT", "/api/prefs/theme", `{nevalidni`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetPrefNotFound(t *testing.T) {
	app := setupPrefsApp(t, 1)

	status, _ := prefsRequest(t, app, "GET", "/api/prefs/neexistuje", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestListPrefsSkipsHistory(t *testing.T) {
	app := setupPrefsApp(t, 1)

	status, _ := prefsRequest(t, app, "PUT", "/api/prefs/theme", `"dark"`)
	require.Equal(t, fiber.StatusNoContent, status)
	status, _ = prefsRequest(t, app, "POST", "/api/prefs/history/city", `{"value":"Praha"}`)
	require.Equal(t, fiber.StatusOK, status)

	status, raw := prefsRequest(t, app, "GET", "/api/prefs", "")
	require.Equal(t, fiber.StatusOK, status)

	var all map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Contains(t, all, "theme")
	assert.NotContains(t, all, "history:city")
}

func TestHistoryKeepsLastFiveUnique(t *testing.T) {
	app := setupPrefsApp(t, 1)

	for _, v := range []string{"Praha", "Brno", "Ostrava", "Plzen", "Liberec", "Olomouc", "Brno"} {
		status, _ := prefsRequest(t, app, "POST", "/api/prefs/history/city", `{"value":"`+v+`"}`)
		require.Equal(t, fiber.StatusOK, status)
	}

	status, raw := prefsRequest(t, app, "GET", "/api/prefs/history/city", "")
	require.Equal(t, fiber.StatusOK, status)

	var history []string
	require.NoError(t, json.Unmarshal(raw, &history))
	assert.Equal(t, []string{"Brno", "Olomouc", "Liberec", "Plzen", "Ostrava"}, history)
}

func TestHistoryRejectsEmptyValue(t *testing.T) {
	app := setupPrefsApp(t, 1)

	status, _ := prefsRequest(t, app, "POST", "/api/prefs/history/city", `{"value":"  "}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPushHistory(t *testing.T) {
	assert.Equal(t, []string{"a"}, pushHistory(nil, "a"))
	assert.Equal(t, []string{"b", "a"}, pushHistory([]string{"a"}, "b"))
	// duplicita se posune dopredu
	assert.Equal(t, []string{"a", "b"}, pushHistory([]string{"b", "a"}, "a"))
	// limit peti polozek
	assert.Equal(t, []string{"f", "e", "d", "c", "b"},
		pushHistory([]string{"e", "d", "c", "b", "a"}, "f"))
}
