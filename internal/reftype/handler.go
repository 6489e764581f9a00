package reftype

import (
	"bytes"
	"errors"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func resolveTableParam(c *fiber.Ctx) (string, error) {
	table, ok := ResolveTable(c.Params("table"))
	if !ok {
		return "", fiber.NewError(fiber.StatusNotFound, "Neznamy ciselnik: "+c.Params("table"))
	}
	return table, nil
}

// GET /api/types/:table
func ListTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := resolveTableParam(c)
		if err != nil {
			return err
		}

		q := database.DB.Table(table)
		if !c.QueryBool("include_inactive", false) {
			q = q.Where("is_active = ?", true)
		}

		var rows []models.RefType
		if err := q.Order("sort_order ASC, code ASC").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ciselnik se nepodarilo nacist")
		}

		items := make([]Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, FromModel(r))
		}
		return c.JSON(items)
	}
}

// POST /api/types/:table
func CreateTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := resolveTableParam(c)
		if err != nil {
			return err
		}

		var body Item
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}
		// nova polozka je aktivni, pokud klient neposlal jinak
		if !bodyContainsIsActive(c.Body()) {
			body.IsActive = true
		}

		item, err := Normalize(body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var existing models.RefType
		err = database.DB.Table(table).Where("code = ?", item.Code).First(&existing).Error
		if err == nil {
			return fiber.NewError(fiber.StatusConflict, "Polozka s timto kodem uz existuje")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Ciselnik se nepodarilo precist")
		}

		row := ToModel(item)
		if err := database.DB.Table(table).Create(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Polozku se nepodarilo vytvorit")
		}
		return c.Status(fiber.StatusCreated).JSON(FromModel(row))
	}
}

// PUT /api/types/:table/:code
// Kod je nemenny, klicem je hodnota z cesty.
func UpdateTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := resolveTableParam(c)
		if err != nil {
			return err
		}

		var row models.RefType
		if err := database.DB.Table(table).Where("code = ?", c.Params("code")).First(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Polozka nenalezena")
		}

		var body Item
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}
		body.Code = row.Code

		item, err := Normalize(body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		updated := ToModel(item)
		updated.CreatedAt = row.CreatedAt
		if err := database.DB.Table(table).Where("code = ?", row.Code).Save(&updated).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Polozku se nepodarilo ulozit")
		}
		return c.JSON(FromModel(updated))
	}
}

// DELETE /api/types/:table/:code
// Deaktivace, polozka zustava kvuli referencim z domenovych tabulek.
func DeactivateTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := resolveTableParam(c)
		if err != nil {
			return err
		}

		res := database.DB.Table(table).
			Where("code = ?", c.Params("code")).
			Update("is_active", false)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Polozku se nepodarilo deaktivovat")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Polozka nenalezena")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// bodyContainsIsActive zjisti, zda klient poslal is_active explicitne.
// BodyParser defaultuje bool na false a zamer "vytvor aktivni" by se
// jinak nedal rozlisit.
func bodyContainsIsActive(body []byte) bool {
	return bytes.Contains(body, []byte(`"is_active"`))
}
