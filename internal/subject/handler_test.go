package subject

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pronajem-backend/internal/auth"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSubjectsApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, uint(1))
		return c.Next()
	})
	app.Get("/api/subjects", ListSubjectsHandler())
	app.Post("/api/subjects", CreateSubjectHandler())
	app.Post("/api/subjects/check-duplicates", CheckDuplicatesHandler())
	app.Get("/api/subjects/:id", GetSubjectHandler())
	app.Put("/api/subjects/:id", UpdateSubjectHandler())
	app.Delete("/api/subjects/:id", ArchiveSubjectHandler())
	return app
}

func subjectsRequest(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
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

func TestCreateSubjectFillsDisplayName(t *testing.T) {
	app := setupSubjectsApp(t)

	status, raw := subjectsRequest(t, app, "POST", "/api/subjects",
		`{"subject_type":"person","first_name":"Jan","last_name":"Novák","email":"Jan@Example.CZ"}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var created SubjectResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "Jan Novák", created.DisplayName)
	assert.Equal(t, "jan@example.cz", created.Email, "email se normalizuje na mala pismena")
	assert.Equal(t, "active", created.Status)
}

func TestCreateSubjectRequiresName(t *testing.T) {
	app := setupSubjectsApp(t)

	status, _ := subjectsRequest(t, app, "POST", "/api/subjects", `{"email":"x@y.cz"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateSubjectWritesAuditLog(t *testing.T) {
	app := setupSubjectsApp(t)

	status, _ := subjectsRequest(t, app, "POST", "/api/subjects",
		`{"display_name":"Firma a.s.","is_landlord":true}`)
	require.Equal(t, fiber.StatusCreated, status)

	var logs []models.AuditLog
	require.NoError(t, database.DB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "subjects", logs[0].EntityType)
	assert.Equal(t, models.AuditActionCreate, logs[0].Action)
}

func TestArchiveSubjectHidesFromListing(t *testing.T) {
	app := setupSubjectsApp(t)

	status, raw := subjectsRequest(t, app, "POST", "/api/subjects", `{"display_name":"Jan Novak"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created SubjectResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	status, raw = subjectsRequest(t, app, "DELETE", "/api/subjects/1", "")
	require.Equal(t, fiber.StatusNoContent, status, string(raw))

	// bez priznaku se archivovany subjekt nevraci
	_, raw = subjectsRequest(t, app, "GET", "/api/subjects", "")
	var listed []SubjectResponse
	require.NoError(t, json.Unmarshal(raw, &listed))
	assert.Empty(t, listed)

	_, raw = subjectsRequest(t, app, "GET", "/api/subjects?include_archived=true", "")
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "archived", listed[0].Status)

	// detail zustava dostupny
	status, raw = subjectsRequest(t, app, "GET", "/api/subjects/1", "")
	require.Equal(t, fiber.StatusOK, status)
	var detail SubjectResponse
	require.NoError(t, json.Unmarshal(raw, &detail))
	assert.Equal(t, "archived", detail.Status)
}

func TestListSubjectsSearchAndRoleFilters(t *testing.T) {
	app := setupSubjectsApp(t)

	seeds := []string{
		`{"display_name":"Jan Novák","email":"jan@example.cz","is_landlord":true}`,
		`{"display_name":"Petr Svoboda","email":"petr@example.cz","is_tenant":true}`,
		`{"display_name":"Firma a.s.","ic":"12345678","is_landlord":true}`,
	}
	for _, s := range seeds {
		status, _ := subjectsRequest(t, app, "POST", "/api/subjects", s)
		require.Equal(t, fiber.StatusCreated, status)
	}

	_, raw := subjectsRequest(t, app, "GET", "/api/subjects?q=nov%C3%A1k", "")
	var listed []SubjectResponse
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Jan Novák", listed[0].DisplayName)

	_, raw = subjectsRequest(t, app, "GET", "/api/subjects?landlords_only=true", "")
	require.NoError(t, json.Unmarshal(raw, &listed))
	assert.Len(t, listed, 2)

	_, raw = subjectsRequest(t, app, "GET", "/api/subjects?tenants_only=true", "")
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Petr Svoboda", listed[0].DisplayName)
}

func TestUpdateSubjectPartial(t *testing.T) {
	app := setupSubjectsApp(t)

	status, _ := subjectsRequest(t, app, "POST", "/api/subjects",
		`{"display_name":"Jan Novak","phone":"777111222","city":"Praha"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, raw := subjectsRequest(t, app, "PUT", "/api/subjects/1", `{"phone":"777999888"}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var updated SubjectResponse
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "777999888", updated.Phone)
	assert.Equal(t, "Praha", updated.City, "neposlana pole zustavaji")
}

func TestCheckDuplicates(t *testing.T) {
	app := setupSubjectsApp(t)

	status, _ := subjectsRequest(t, app, "POST", "/api/subjects",
		`{"display_name":"Firma a.s.","ic":"12345678","email":"info@firma.cz"}`)
	require.Equal(t, fiber.StatusCreated, status)

	// shoda pres ICO
	status, raw := subjectsRequest(t, app, "POST", "/api/subjects/check-duplicates", `{"ic":"12345678"}`)
	require.Equal(t, fiber.StatusOK, status)
	var dupes []SubjectResponse
	require.NoError(t, json.Unmarshal(raw, &dupes))
	assert.Len(t, dupes, 1)

	// shoda pres email bez ohledu na velikost pismen
	status, raw = subjectsRequest(t, app, "POST", "/api/subjects/check-duplicates", `{"email":"INFO@firma.cz"}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &dupes))
	assert.Len(t, dupes, 1)

	// vlastni zaznam jde vyloucit
	status, raw = subjectsRequest(t, app, "POST", "/api/subjects/check-duplicates",
		`{"ic":"12345678","exclude_subject_id":1}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &dupes))
	assert.Empty(t, dupes)

	// bez kriterii 400
	status, _ = subjectsRequest(t, app, "POST", "/api/subjects/check-duplicates", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
