package unit

import (
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AssignServiceRequest struct {
	ServiceID uint     `json:"service_id"`
	Quantity  int      `json:"quantity"`
	Amount    *float64 `json:"amount"`
	Note      string   `json:"note"`
}

type UpdateServiceRequest struct {
	Quantity *int     `json:"quantity"`
	Amount   *float64 `json:"amount"`
	Note     *string  `json:"note"`
}

// ServiceRow: radek z pohledu v_unit_services_list.
type ServiceRow struct {
	ID          uint    `json:"id"`
	UnitID      uint    `json:"unit_id"`
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `json:"service_name"`
	BillingUnit string  `json:"billing_unit"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
	Note        string  `json:"note"`
}

// GET /api/units/:id/services
func ListUnitServicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []ServiceRow
		q := database.DB.Table("v_unit_services_list").
			Where("unit_id = ?", c.Params("id"))
		if !c.QueryBool("include_archived", false) {
			q = q.Where("is_archived = ?", false)
		}
		if err := q.Order("service_name ASC").Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sluzby se nepodarilo nacist")
		}
		return c.JSON(rows)
	}
}

// POST /api/units/:id/services
func AssignUnitServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unit, err := findUnit(c)
		if err != nil {
			return err
		}

		var body AssignServiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		var svc models.ServiceCatalog
		if err := database.DB.First(&svc, "id = ?", body.ServiceID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sluzba v katalogu neexistuje")
		}

		quantity := body.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		us := models.UnitService{
			UnitID:    unit.ID,
			ServiceID: svc.ID,
			Quantity:  quantity,
			Amount:    body.Amount,
			Note:      body.Note,
		}
		if err := database.DB.Create(&us).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sluzbu se nepodarilo priradit")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": us.ID})
	}
}

// PUT /api/units/:id/services/:itemId
func UpdateUnitServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var us models.UnitService
		if err := database.DB.
			Where("id = ? AND unit_id = ?", c.Params("itemId"), c.Params("id")).
			First(&us).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Prirazena sluzba nenalezena")
		}

		var body UpdateServiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Quantity != nil {
			us.Quantity = *body.Quantity
		}
		if body.Amount != nil {
			us.Amount = body.Amount
		}
		if body.Note != nil {
			us.Note = *body.Note
		}

		if err := database.DB.Save(&us).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sluzbu se nepodarilo ulozit")
		}
		return c.JSON(fiber.Map{"id": us.ID})
	}
}

// DELETE /api/units/:id/services/:itemId
func RemoveUnitServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Model(&models.UnitService{}).
			Where("id = ? AND unit_id = ?", c.Params("itemId"), c.Params("id")).
			Update("is_archived", true)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sluzbu se nepodarilo odebrat")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Prirazena sluzba nenalezena")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
