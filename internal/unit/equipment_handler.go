package unit

import (
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AssignEquipmentRequest struct {
	EquipmentID uint     `json:"equipment_id"`
	Quantity    int      `json:"quantity"`
	State       string   `json:"state"`
	Amount      *float64 `json:"amount"`
	Note        string   `json:"note"`
}

type UpdateEquipmentRequest struct {
	Quantity *int     `json:"quantity"`
	State    *string  `json:"state"`
	Amount   *float64 `json:"amount"`
	Note     *string  `json:"note"`
}

// EquipmentRow: radek z pohledu v_unit_equipment_list.
type EquipmentRow struct {
	ID            uint    `json:"id"`
	UnitID        uint    `json:"unit_id"`
	EquipmentID   uint    `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	EquipmentType string  `json:"equipment_type"`
	Quantity      int     `json:"quantity"`
	State         string  `json:"state"`
	Amount        float64 `json:"amount"`
	Note          string  `json:"note"`
}

func findUnit(c *fiber.Ctx) (*models.Unit, error) {
	var unit models.Unit
	if err := database.DB.First(&unit, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Jednotka nenalezena")
	}
	return &unit, nil
}

// GET /api/units/:id/equipment
func ListUnitEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []EquipmentRow
		q := database.DB.Table("v_unit_equipment_list").
			Where("unit_id = ?", c.Params("id"))
		if !c.QueryBool("include_archived", false) {
			q = q.Where("is_archived = ?", false)
		}
		if err := q.Order("equipment_name ASC").Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vybaveni se nepodarilo nacist")
		}
		return c.JSON(rows)
	}
}

// POST /api/units/:id/equipment
func AssignUnitEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unit, err := findUnit(c)
		if err != nil {
			return err
		}

		var body AssignEquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		var item models.EquipmentCatalog
		if err := database.DB.First(&item, "id = ?", body.EquipmentID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Katalogova polozka neexistuje")
		}

		quantity := body.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		ue := models.UnitEquipment{
			UnitID:      unit.ID,
			EquipmentID: item.ID,
			Quantity:    quantity,
			State:       body.State,
			Amount:      body.Amount,
			Note:        body.Note,
		}
		if err := database.DB.Create(&ue).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vybaveni se nepodarilo priradit")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": ue.ID})
	}
}

// PUT /api/units/:id/equipment/:itemId
func UpdateUnitEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ue models.UnitEquipment
		if err := database.DB.
			Where("id = ? AND unit_id = ?", c.Params("itemId"), c.Params("id")).
			First(&ue).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Prirazene vybaveni nenalezeno")
		}

		var body UpdateEquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Quantity != nil {
			ue.Quantity = *body.Quantity
		}
		if body.State != nil {
			ue.State = *body.State
		}
		if body.Amount != nil {
			ue.Amount = body.Amount
		}
		if body.Note != nil {
			ue.Note = *body.Note
		}

		if err := database.DB.Save(&ue).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vybaveni se nepodarilo ulozit")
		}
		return c.JSON(fiber.Map{"id": ue.ID})
	}
}

// DELETE /api/units/:id/equipment/:itemId
func RemoveUnitEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Model(&models.UnitEquipment{}).
			Where("id = ? AND unit_id = ?", c.Params("itemId"), c.Params("id")).
			Update("is_archived", true)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vybaveni se nepodarilo odebrat")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Prirazene vybaveni nenalezeno")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
