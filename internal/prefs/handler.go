// Package prefs uklada uzivatelska nastaveni UI (sirky sloupcu, razeni,
// filtry) a historii zadanych hodnot pro formularova pole. Hodnoty jsou
// neprůhledny JSON, server je nevyhodnocuje.
package prefs

import (
	"encoding/json"
	"errors"
	"strings"

	"pronajem-backend/internal/auth"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	historyPrefix = "history:"
	historyLimit  = 5
	maxKeyLen     = 100
)

// GET /api/prefs
func ListPrefsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var prefs []models.UIViewPref
		if err := database.DB.Where("user_id = ?", userID).Find(&prefs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nepodarilo se nacist nastaveni")
		}

		out := make(map[string]json.RawMessage, len(prefs))
		for _, p := range prefs {
			if strings.HasPrefix(p.Key, historyPrefix) {
				continue
			}
			out[p.Key] = json.RawMessage(p.Value)
		}
		return c.JSON(out)
	}
}

// GET /api/prefs/:key
func GetPrefHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		key := c.Params("key")

		var pref models.UIViewPref
		err = database.DB.Where("user_id = ? AND key = ?", userID, key).First(&pref).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Nastaveni nebylo nalezeno")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nepodarilo se nacist nastaveni")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(pref.Value)
	}
}

// PUT /api/prefs/:key
// Telo je libovolny validni JSON, ulozi se jak je (upsert).
func PutPrefHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		key := c.Params("key")
		if key == "" || len(key) > maxKeyLen {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatny klic nastaveni")
		}

		body := c.Body()
		if !json.Valid(body) {
			return fiber.NewError(fiber.StatusBadRequest, "Telo musi byt validni JSON")
		}

		if err := upsertPref(userID, key, body); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nepodarilo se ulozit nastaveni")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/prefs/history/:field
// Prida hodnotu do historie pole; drzi se poslednich 5 unikatnich
// hodnot, nejnovejsi prvni.
func AddHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		field := c.Params("field")
		if field == "" || len(field) > maxKeyLen-len(historyPrefix) {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatny nazev pole")
		}

		var req struct {
			Value string `json:"value"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatny format dat")
		}
		value := strings.TrimSpace(req.Value)
		if value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Hodnota je povinna")
		}

		key := historyPrefix + field
		history := loadHistory(userID, key)
		history = pushHistory(history, value)

		raw, err := json.Marshal(history)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nepodarilo se ulozit historii")
		}
		if err := upsertPref(userID, key, raw); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nepodarilo se ulozit historii")
		}
		return c.JSON(history)
	}
}

// GET /api/prefs/history/:field
func GetHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		field := c.Params("field")
		return c.JSON(loadHistory(userID, historyPrefix+field))
	}
}

func loadHistory(userID uint, key string) []string {
	var pref models.UIViewPref
	err := database.DB.Where("user_id = ? AND key = ?", userID, key).First(&pref).Error
	if err != nil {
		return []string{}
	}
	var history []string
	if err := json.Unmarshal(pref.Value, &history); err != nil {
		return []string{}
	}
	return history
}

// pushHistory zaradi hodnotu na zacatek, odstrani duplicitu a orizne
// na historyLimit.
func pushHistory(history []string, value string) []string {
	out := make([]string, 0, historyLimit)
	out = append(out, value)
	for _, v := range history {
		if v == value {
			continue
		}
		out = append(out, v)
		if len(out) == historyLimit {
			break
		}
	}
	return out
}

func upsertPref(userID uint, key string, value []byte) error {
	pref := models.UIViewPref{
		UserID: userID,
		Key:    key,
		Value:  datatypes.JSON(value),
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
}
