// Package proxy zprostredkovava dotazy na externi sluzby (naseptavac
// adres, detail mista, ARES). Endpointy bezi na serveru kvuli CORS a
// skryti API klicu. Vypadek poskytovatele nikdy nehazi 5xx, UI se
// degraduje na rucni zadani.
package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pronajem-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// lookupTimeout plati pro jeden pokus u jednoho poskytovatele.
const lookupTimeout = 5 * time.Second

var httpClient = &http.Client{Timeout: 10 * time.Second}

// AddressResult: normalizovany vysledek naseptavace bez ohledu na
// poskytovatele.
type AddressResult struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	HouseNumber string `json:"house_number"`
	RuianID     string `json:"ruian_id,omitempty"`
	PlaceID     string `json:"place_id,omitempty"`
	FullAddress string `json:"full_address"`
}

type addressProvider struct {
	name   string
	search func(ctx context.Context, query string) ([]AddressResult, error)
}

// GET /api/address-search?q=
// Poskytovatele se zkouseji v pevnem poradi, prvni neprazdny vysledek
// vyhrava. Pri uplnem selhani se vraci prazdne pole s diagnostickou
// hlavickou, nikdy chyba.
func AddressSearchHandler(cfg *config.Config, log *zap.Logger) fiber.Handler {
	providers := buildProviders(cfg)

	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))
		if len([]rune(query)) < 3 {
			return fiber.NewError(fiber.StatusBadRequest, "Dotaz musi mit alespon 3 znaky")
		}

		var failures []string
		for _, p := range providers {
			ctx, cancel := context.WithTimeout(c.Context(), lookupTimeout)
			results, err := p.search(ctx, query)
			cancel()
			if err != nil {
				log.Warn("naseptavac adres selhal",
					zap.String("provider", p.name), zap.Error(err))
				failures = append(failures, p.name+": "+err.Error())
				continue
			}
			if len(results) > 0 {
				return c.JSON(results)
			}
		}

		if len(failures) > 0 {
			c.Set("X-Address-Search-Errors", strings.Join(failures, "; "))
		}
		return c.JSON([]AddressResult{})
	}
}

func buildProviders(cfg *config.Config) []addressProvider {
	var providers []addressProvider

	if cfg.SmartAddressURL != "" {
		providers = append(providers, addressProvider{
			name:   "smart-address",
			search: smartAddressSearch(cfg),
		})
	}
	if cfg.GooglePlacesKey != "" {
		providers = append(providers, addressProvider{
			name:   "google-places",
			search: googleAutocompleteSearch(cfg),
		})
	}
	// neautentizovane zalozni endpointy, vzdy posledni
	providers = append(providers, addressProvider{
		name:   "nominatim",
		search: nominatimSearch,
	})
	return providers
}

// smartAddressSearch vola nakonfigurovany naseptavac (RUIAN data).
func smartAddressSearch(cfg *config.Config) func(context.Context, string) ([]AddressResult, error) {
	return func(ctx context.Context, query string) ([]AddressResult, error) {
		u := cfg.SmartAddressURL + "?q=" + url.QueryEscape(query)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		if cfg.SmartAddressKey != "" {
			req.Header.Set("Authorization", "Bearer "+cfg.SmartAddressKey)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
		}

		var payload struct {
			Items []struct {
				Street      string `json:"street"`
				City        string `json:"city"`
				Zip         string `json:"zip"`
				HouseNumber string `json:"house_number"`
				RuianID     string `json:"ruian_id"`
				Label       string `json:"label"`
			} `json:"items"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}

		results := make([]AddressResult, 0, len(payload.Items))
		for _, it := range payload.Items {
			results = append(results, AddressResult{
				Street:      it.Street,
				City:        it.City,
				Zip:         it.Zip,
				HouseNumber: it.HouseNumber,
				RuianID:     it.RuianID,
				FullAddress: it.Label,
			})
		}
		return results, nil
	}
}

func googleAutocompleteSearch(cfg *config.Config) func(context.Context, string) ([]AddressResult, error) {
	return func(ctx context.Context, query string) ([]AddressResult, error) {
		u := fmt.Sprintf("%s/autocomplete/json?input=%s&types=address&language=cs&key=%s",
			cfg.GooglePlacesURL, url.QueryEscape(query), url.QueryEscape(cfg.GooglePlacesKey))
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
		}

		var payload struct {
			Status      string `json:"status"`
			Predictions []struct {
				PlaceID     string `json:"place_id"`
				Description string `json:"description"`
			} `json:"predictions"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}
		if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
			return nil, fmt.Errorf("status %s", payload.Status)
		}

		results := make([]AddressResult, 0, len(payload.Predictions))
		for _, p := range payload.Predictions {
			results = append(results, AddressResult{
				PlaceID:     p.PlaceID,
				FullAddress: p.Description,
			})
		}
		return results, nil
	}
}

// nominatimURL je promenna kvuli testum.
var nominatimURL = "https://nominatim.openstreetmap.org/search"

func nominatimSearch(ctx context.Context, query string) ([]AddressResult, error) {
	u := nominatimURL + "?format=jsonv2&addressdetails=1&countrycodes=cz&q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "pronajem-backend/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var payload []struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			Road        string `json:"road"`
			HouseNumber string `json:"house_number"`
			City        string `json:"city"`
			Town        string `json:"town"`
			Village     string `json:"village"`
			Postcode    string `json:"postcode"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	results := make([]AddressResult, 0, len(payload))
	for _, it := range payload {
		city := it.Address.City
		if city == "" {
			city = it.Address.Town
		}
		if city == "" {
			city = it.Address.Village
		}
		results = append(results, AddressResult{
			Street:      it.Address.Road,
			HouseNumber: it.Address.HouseNumber,
			City:        city,
			Zip:         it.Address.Postcode,
			FullAddress: it.DisplayName,
		})
	}
	return results, nil
}
