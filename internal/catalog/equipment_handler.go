package catalog

import (
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateEquipmentRequest struct {
	Name          string  `json:"name"`
	EquipmentType string  `json:"equipment_type"`
	Price         float64 `json:"price"`
	Note          string  `json:"note"`
}

type UpdateEquipmentRequest struct {
	Name          *string  `json:"name"`
	EquipmentType *string  `json:"equipment_type"`
	Price         *float64 `json:"price"`
	Note          *string  `json:"note"`
}

type EquipmentResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	EquipmentType string  `json:"equipment_type"`
	Price         float64 `json:"price"`
	Note          string  `json:"note"`
	Status        string  `json:"status"`
}

func equipmentResponse(e *models.EquipmentCatalog) EquipmentResponse {
	status := "active"
	if e.IsArchived {
		status = "archived"
	}
	return EquipmentResponse{
		ID:            e.ID,
		Name:          e.Name,
		EquipmentType: e.EquipmentType,
		Price:         e.Price,
		Note:          e.Note,
		Status:        status,
	}
}

// GET /api/equipment-catalog
func ListEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := listing.Parse(c)

		q := listing.Scope(database.DB.Model(&models.EquipmentCatalog{}), p.IncludeArchived)
		q = listing.Search(q, p.Query, []string{"name", "equipment_type"})

		var items []models.EquipmentCatalog
		if err := q.Order("name ASC").Limit(p.Limit).Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Katalog vybaveni se nepodarilo nacist")
		}

		resp := make([]EquipmentResponse, 0, len(items))
		for i := range items {
			resp = append(resp, equipmentResponse(&items[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/equipment-catalog
func CreateEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nazev polozky je povinny")
		}

		item := models.EquipmentCatalog{
			Name:          body.Name,
			EquipmentType: body.EquipmentType,
			Price:         body.Price,
			Note:          body.Note,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Polozku se nepodarilo vytvorit")
		}
		return c.Status(fiber.StatusCreated).JSON(equipmentResponse(&item))
	}
}

// PUT /api/equipment-catalog/:id
func UpdateEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.EquipmentCatalog
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Polozka nenalezena")
		}

		var body UpdateEquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.EquipmentType != nil {
			item.EquipmentType = *body.EquipmentType
		}
		if body.Price != nil {
			item.Price = *body.Price
		}
		if body.Note != nil {
			item.Note = *body.Note
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Polozku se nepodarilo ulozit")
		}
		return c.JSON(equipmentResponse(&item))
	}
}

// DELETE /api/equipment-catalog/:id
func ArchiveEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.EquipmentCatalog
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Polozka nenalezena")
		}
		item.IsArchived = true
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Polozku se nepodarilo archivovat")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
