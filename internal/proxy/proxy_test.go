package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"pronajem-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingServer pocita prichozi pozadavky, aby sly overit pripady,
// kdy se na upstream nesmi sahat vubec.
func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func doGet(t *testing.T, app *fiber.App, target string) (int, []byte, http.Header) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw, resp.Header
}

func TestAresRejectsInvalidICOBeforeFetch(t *testing.T) {
	srv, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	app := fiber.New()
	app.Get("/api/ares", AresLookupHandler(&config.Config{AresBaseURL: srv.URL}, zap.NewNop()))

	for _, ico := range []string{"1234567", "123456789", "1234567a", "", "12%2045678"} {
		status, _, _ := doGet(t, app, "/api/ares?ico="+ico)
		assert.Equal(t, fiber.StatusBadRequest, status, "ico %q", ico)
	}
	assert.EqualValues(t, 0, atomic.LoadInt64(calls), "nevalidni ICO nesmi vyvolat odchozi pozadavek")
}

func TestAresLookupSuccess(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ekonomicke-subjekty/12345678", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ico":           "12345678",
			"obchodniJmeno": "Priklad s.r.o.",
			"sidlo": map[string]interface{}{
				"nazevUlice":      "Dlouha",
				"cisloDomovni":    12,
				"cisloOrientacni": 3,
				"nazevObce":       "Praha",
				"psc":             11000,
			},
		})
	})

	app := fiber.New()
	app.Get("/api/ares", AresLookupHandler(&config.Config{AresBaseURL: srv.URL}, zap.NewNop()))

	status, raw, _ := doGet(t, app, "/api/ares?ico=12345678")
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var subject AresSubject
	require.NoError(t, json.Unmarshal(raw, &subject))
	assert.Equal(t, "12345678", subject.ICO)
	assert.Equal(t, "Priklad s.r.o.", subject.Name)
	assert.Equal(t, "Dlouha 12/3", subject.Street)
	assert.Equal(t, "Praha", subject.City)
	assert.Equal(t, "11000", subject.Zip)
}

func TestAresLookupNotFound(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	app := fiber.New()
	app.Get("/api/ares", AresLookupHandler(&config.Config{AresBaseURL: srv.URL}, zap.NewNop()))

	status, _, _ := doGet(t, app, "/api/ares?ico=12345678")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAresLookupUpstreamError(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	app := fiber.New()
	app.Get("/api/ares", AresLookupHandler(&config.Config{AresBaseURL: srv.URL}, zap.NewNop()))

	status, _, _ := doGet(t, app, "/api/ares?ico=12345678")
	assert.Equal(t, fiber.StatusBadGateway, status)
}

func TestAddressSearchRejectsShortQuery(t *testing.T) {
	srv, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cfg := &config.Config{SmartAddressURL: srv.URL}
	app := fiber.New()
	app.Get("/api/address-search", AddressSearchHandler(cfg, zap.NewNop()))

	for _, q := range []string{"", "a", "ab", "%20%20ab%20%20"} {
		status, _, _ := doGet(t, app, "/api/address-search?q="+q)
		assert.Equal(t, fiber.StatusBadRequest, status, "dotaz %q", q)
	}
	assert.EqualValues(t, 0, atomic.LoadInt64(calls))
}

func TestAddressSearchFirstProviderWins(t *testing.T) {
	srv, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tajny-klic", r.Header.Get("Authorization"))
		assert.Equal(t, "Dlouha 12", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{{
				"street":       "Dlouha",
				"city":         "Praha",
				"zip":          "11000",
				"house_number": "12",
				"ruian_id":     "123456",
				"label":        "Dlouha 12, Praha",
			}},
		})
	})

	cfg := &config.Config{SmartAddressURL: srv.URL, SmartAddressKey: "tajny-klic"}
	app := fiber.New()
	app.Get("/api/address-search", AddressSearchHandler(cfg, zap.NewNop()))

	status, raw, _ := doGet(t, app, "/api/address-search?q=Dlouha+12")
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var results []AddressResult
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Dlouha", results[0].Street)
	assert.Equal(t, "123456", results[0].RuianID)
	assert.Equal(t, "Dlouha 12, Praha", results[0].FullAddress)
	assert.EqualValues(t, 1, atomic.LoadInt64(calls))
}

func TestAddressSearchFallsThroughOnFailure(t *testing.T) {
	failing, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	fallback, fallbackCalls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{{
			"display_name": "Dlouha 12, Praha, Cesko",
			"address": map[string]interface{}{
				"road":         "Dlouha",
				"house_number": "12",
				"city":         "Praha",
				"postcode":     "11000",
			},
		}})
	})

	origNominatim := nominatimURL
	nominatimURL = fallback.URL
	t.Cleanup(func() { nominatimURL = origNominatim })

	cfg := &config.Config{SmartAddressURL: failing.URL}
	app := fiber.New()
	app.Get("/api/address-search", AddressSearchHandler(cfg, zap.NewNop()))

	status, raw, _ := doGet(t, app, "/api/address-search?q=Dlouha+12")
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var results []AddressResult
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Praha", results[0].City)
	assert.EqualValues(t, 1, atomic.LoadInt64(fallbackCalls))
}

func TestAddressSearchTotalFailureReturnsEmptyList(t *testing.T) {
	failing, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	origNominatim := nominatimURL
	nominatimURL = failing.URL
	t.Cleanup(func() { nominatimURL = origNominatim })

	cfg := &config.Config{SmartAddressURL: failing.URL}
	app := fiber.New()
	app.Get("/api/address-search", AddressSearchHandler(cfg, zap.NewNop()))

	status, raw, header := doGet(t, app, "/api/address-search?q=Dlouha+12")
	require.Equal(t, fiber.StatusOK, status)

	var results []AddressResult
	require.NoError(t, json.Unmarshal(raw, &results))
	assert.Empty(t, results)
	assert.NotEmpty(t, header.Get("X-Address-Search-Errors"))
}

func TestPlaceDetailsRequiresConfiguredKey(t *testing.T) {
	app := fiber.New()
	app.Get("/api/place-details", PlaceDetailsHandler(&config.Config{}, zap.NewNop()))

	status, _, _ := doGet(t, app, "/api/place-details?place_id=abc")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPlaceDetailsMapsComponents(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"result": map[string]interface{}{
				"formatted_address": "Dlouha 12, 110 00 Praha",
				"address_components": []map[string]interface{}{
					{"long_name": "Dlouha", "types": []string{"route"}},
					{"long_name": "12", "types": []string{"street_number"}},
					{"long_name": "Praha", "types": []string{"locality", "political"}},
					{"long_name": "110 00", "types": []string{"postal_code"}},
				},
			},
		})
	})

	cfg := &config.Config{GooglePlacesKey: "klic", GooglePlacesURL: srv.URL}
	app := fiber.New()
	app.Get("/api/place-details", PlaceDetailsHandler(cfg, zap.NewNop()))

	status, raw, _ := doGet(t, app, "/api/place-details?place_id=abc")
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var details PlaceDetails
	require.NoError(t, json.Unmarshal(raw, &details))
	assert.Equal(t, "Dlouha", details.Street)
	assert.Equal(t, "12", details.HouseNumber)
	assert.Equal(t, "Praha", details.City)
	assert.Equal(t, "11000", details.Zip)
	assert.Equal(t, "Dlouha 12, 110 00 Praha", details.FullAddress)
}
