package property

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

// EquipmentRow: radek z pohledu v_property_equipment_list.
type EquipmentRow struct {
	ID            uint    `json:"id"`
	PropertyID    uint    `json:"property_id"`
	EquipmentID   uint    `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	EquipmentType string  `json:"equipment_type"`
	Quantity      int     `json:"quantity"`
	State         string  `json:"state"`
	Amount        float64 `json:"amount"`
	Note          string  `json:"note"`
}

// GET /api/properties/:id/equipment
func ListPropertyEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []EquipmentRow
		q := database.DB.Table("v_property_equipment_list").
			Where("property_id = ?", c.Params("id"))
		if !c.QueryBool("include_archived", false) {
			q = q.Where("is_archived = ?", false)
		}
		if err := q.Order("equipment_name ASC").Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vybaveni se nepodarilo nacist")
		}
		return c.JSON(rows)
	}
}

// POST /api/properties/:id/equipment
func AssignPropertyEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Nemovitost nenalezena")
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

		pe := models.PropertyEquipment{
			PropertyID:  property.ID,
			EquipmentID: item.ID,
			Quantity:    quantity,
			State:       body.State,
			Amount:      body.Amount,
			Note:        body.Note,
		}
		if err := database.DB.Create(&pe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vybaveni se nepodarilo priradit")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": pe.ID})
	}
}

// PUT /api/properties/:id/equipment/:itemId
func UpdatePropertyEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pe models.PropertyEquipment
		if err := database.DB.
			Where("id = ? AND property_id = ?", c.Params("itemId"), c.Params("id")).
			First(&pe).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Prirazene vybaveni nenalezeno")
		}

		var body UpdateEquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Quantity != nil {
			pe.Quantity = *body.Quantity
		}
		if body.State != nil {
			pe.State = *body.State
		}
		if body.Amount != nil {
			pe.Amount = body.Amount
		}
		if body.Note != nil {
			pe.Note = *body.Note
		}

		if err := database.DB.Save(&pe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vybaveni se nepodarilo ulozit")
		}
		return c.JSON(fiber.Map{"id": pe.ID})
	}
}

// DELETE /api/properties/:id/equipment/:itemId
func RemovePropertyEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Model(&models.PropertyEquipment{}).
			Where("id = ? AND property_id = ?", c.Params("itemId"), c.Params("id")).
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
