package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"pronajem-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var icoPattern = regexp.MustCompile(`^\d{8}$`)

// AresSubject: vytazena cast odpovedi ARES pro predvyplneni subjektu.
type AresSubject struct {
	ICO    string `json:"ico"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// GET /api/ares?ico=
// Validace ICO probiha pred jakymkoli odchozim pozadavkem.
func AresLookupHandler(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ico := strings.TrimSpace(c.Query("ico"))
		if !icoPattern.MatchString(ico) {
			return fiber.NewError(fiber.StatusBadRequest, "ICO musi byt presne 8 cislic")
		}

		u := fmt.Sprintf("%s/ekonomicke-subjekty/%s", cfg.AresBaseURL, ico)
		req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, u, nil)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "ARES neni dostupny")
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			log.Warn("dotaz na ARES selhal", zap.String("ico", ico), zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "ARES neni dostupny")
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return fiber.NewError(fiber.StatusNotFound, "Subjekt s timto ICO nebyl v ARES nalezen")
		case resp.StatusCode != http.StatusOK:
			log.Warn("ARES vratil chybu",
				zap.String("ico", ico), zap.Int("status", resp.StatusCode))
			return fiber.NewError(fiber.StatusBadGateway, "ARES neni dostupny")
		}

		var payload struct {
			ICO           string `json:"ico"`
			ObchodniJmeno string `json:"obchodniJmeno"`
			Sidlo         struct {
				NazevUlice      string `json:"nazevUlice"`
				CisloDomovni    int    `json:"cisloDomovni"`
				CisloOrientacni int    `json:"cisloOrientacni"`
				NazevObce       string `json:"nazevObce"`
				PSC             int    `json:"psc"`
				NazevCastiObce  string `json:"nazevCastiObce"`
			} `json:"sidlo"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Odpoved ARES se nepodarilo zpracovat")
		}

		out := AresSubject{
			ICO:  payload.ICO,
			Name: payload.ObchodniJmeno,
			City: payload.Sidlo.NazevObce,
		}
		if payload.Sidlo.PSC > 0 {
			out.Zip = fmt.Sprintf("%05d", payload.Sidlo.PSC)
		}
		street := payload.Sidlo.NazevUlice
		if street == "" {
			street = payload.Sidlo.NazevCastiObce
		}
		if payload.Sidlo.CisloDomovni > 0 {
			num := fmt.Sprintf("%d", payload.Sidlo.CisloDomovni)
			if payload.Sidlo.CisloOrientacni > 0 {
				num += fmt.Sprintf("/%d", payload.Sidlo.CisloOrientacni)
			}
			if street != "" {
				street += " " + num
			} else {
				street = num
			}
		}
		out.Street = street

		return c.JSON(out)
	}
}
