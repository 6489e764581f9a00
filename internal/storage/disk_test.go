package storage

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "testovaci-tajemstvi-dlouhe-alespon-32"

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), "dokumenty", testSecret, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestUploadAndOpen(t *testing.T) {
	store := newTestStore(t)

	written, err := store.Upload("contracts/42/1/v001_smlouva.pdf", strings.NewReader("obsah"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, written)

	f, err := store.Open("contracts/42/1/v001_smlouva.pdf")
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "obsah", string(data))
}

func TestUploadNeverOverwrites(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload("contracts/42/1/v001_smlouva.pdf", strings.NewReader("puvodni"))
	require.NoError(t, err)

	_, err = store.Upload("contracts/42/1/v001_smlouva.pdf", strings.NewReader("novy"))
	assert.ErrorIs(t, err, ErrObjectExists)

	// puvodni obsah zustal
	f, err := store.Open("contracts/42/1/v001_smlouva.pdf")
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "puvodni", string(data))
}

func TestUploadRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload("../mimo-bucket.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = store.Upload("", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestSignedURLRoundTrip(t *testing.T) {
	store := newTestStore(t)

	signed, err := store.SignedURL("contracts/42/1/v001_smlouva.pdf", time.Minute)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(signed, "/api/files/signed?token="), signed)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	path, err := store.VerifyToken(u.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, "contracts/42/1/v001_smlouva.pdf", path)
}

func TestSignedURLDefaultsExpiry(t *testing.T) {
	store := newTestStore(t)

	// neplatna expirace spadne na vychozi, token je platny
	signed, err := store.SignedURL("contracts/42/1/v001_smlouva.pdf", -time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	_, err = store.VerifyToken(u.Query().Get("token"))
	assert.NoError(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	store := newTestStore(t)

	claims := &urlClaims{
		Path: "contracts/42/1/v001_smlouva.pdf",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = store.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	store := newTestStore(t)
	other, err := NewDiskStore(t.TempDir(), "dokumenty", "uplne-jine-tajemstvi-o-32-znacich!", zap.NewNop())
	require.NoError(t, err)

	signed, err := other.SignedURL("contracts/42/1/v001_smlouva.pdf", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	_, err = store.VerifyToken(u.Query().Get("token"))
	assert.Error(t, err)
}

func TestServeSignedFile(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Upload("units/5/3/v001_revize.pdf", strings.NewReader("revizni zprava"))
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/api/files/signed", ServeSignedFileHandler(store))

	signed, err := store.SignedURL("units/5/3/v001_revize.pdf", time.Minute)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", signed, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "revizni zprava", string(body))

	// bez tokenu 400, s vadnym tokenem 403
	resp, err = app.Test(httptest.NewRequest("GET", "/api/files/signed", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/files/signed?token=vadny", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
