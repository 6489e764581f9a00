package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"pronajem-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PlaceDetails: rozpad adresy z detailu mista Google Places.
type PlaceDetails struct {
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	FullAddress string `json:"full_address"`
}

// GET /api/place-details?place_id=
func PlaceDetailsHandler(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.GooglePlacesKey == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Google Places neni nakonfigurovano")
		}
		placeID := strings.TrimSpace(c.Query("place_id"))
		if placeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Chybi parametr place_id")
		}

		u := fmt.Sprintf("%s/details/json?place_id=%s&fields=address_component,formatted_address&language=cs&key=%s",
			cfg.GooglePlacesURL, url.QueryEscape(placeID), url.QueryEscape(cfg.GooglePlacesKey))
		req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, u, nil)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Detail mista se nepodarilo nacist")
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			log.Warn("detail mista selhal", zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "Detail mista se nepodarilo nacist")
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fiber.NewError(fiber.StatusBadGateway, "Detail mista se nepodarilo nacist")
		}

		var payload struct {
			Status string `json:"status"`
			Result struct {
				FormattedAddress  string `json:"formatted_address"`
				AddressComponents []struct {
					LongName string   `json:"long_name"`
					Types    []string `json:"types"`
				} `json:"address_components"`
			} `json:"result"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Detail mista se nepodarilo nacist")
		}
		if payload.Status != "OK" {
			return fiber.NewError(fiber.StatusNotFound, "Misto nebylo nalezeno")
		}

		details := PlaceDetails{FullAddress: payload.Result.FormattedAddress}
		for _, comp := range payload.Result.AddressComponents {
			for _, t := range comp.Types {
				switch t {
				case "route":
					details.Street = comp.LongName
				case "street_number":
					details.HouseNumber = comp.LongName
				case "locality":
					details.City = comp.LongName
				case "postal_code":
					details.Zip = strings.ReplaceAll(comp.LongName, " ", "")
				}
			}
		}
		return c.JSON(details)
	}
}
