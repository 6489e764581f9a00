package catalog

import (
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateServiceRequest struct {
	Name        string  `json:"name"`
	ServiceType string  `json:"service_type"`
	Price       float64 `json:"price"`
	BillingUnit string  `json:"billing_unit"`
	Note        string  `json:"note"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	ServiceType *string  `json:"service_type"`
	Price       *float64 `json:"price"`
	BillingUnit *string  `json:"billing_unit"`
	Note        *string  `json:"note"`
}

type ServiceResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	ServiceType string  `json:"service_type"`
	Price       float64 `json:"price"`
	BillingUnit string  `json:"billing_unit"`
	Note        string  `json:"note"`
	Status      string  `json:"status"`
}

func serviceResponse(s *models.ServiceCatalog) ServiceResponse {
	status := "active"
	if s.IsArchived {
		status = "archived"
	}
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		ServiceType: s.ServiceType,
		Price:       s.Price,
		BillingUnit: s.BillingUnit,
		Note:        s.Note,
		Status:      status,
	}
}

// GET /api/service-catalog
func ListServicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := listing.Parse(c)

		q := listing.Scope(database.DB.Model(&models.ServiceCatalog{}), p.IncludeArchived)
		q = listing.Search(q, p.Query, []string{"name", "service_type"})

		var items []models.ServiceCatalog
		if err := q.Order("name ASC").Limit(p.Limit).Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Katalog sluzeb se nepodarilo nacist")
		}

		resp := make([]ServiceResponse, 0, len(items))
		for i := range items {
			resp = append(resp, serviceResponse(&items[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/service-catalog
func CreateServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateServiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nazev sluzby je povinny")
		}

		item := models.ServiceCatalog{
			Name:        body.Name,
			ServiceType: body.ServiceType,
			Price:       body.Price,
			BillingUnit: body.BillingUnit,
			Note:        body.Note,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sluzbu se nepodarilo vytvorit")
		}
		return c.Status(fiber.StatusCreated).JSON(serviceResponse(&item))
	}
}

// PUT /api/service-catalog/:id
func UpdateServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.ServiceCatalog
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sluzba nenalezena")
		}

		var body UpdateServiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.ServiceType != nil {
			item.ServiceType = *body.ServiceType
		}
		if body.Price != nil {
			item.Price = *body.Price
		}
		if body.BillingUnit != nil {
			item.BillingUnit = *body.BillingUnit
		}
		if body.Note != nil {
			item.Note = *body.Note
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sluzbu se nepodarilo ulozit")
		}
		return c.JSON(serviceResponse(&item))
	}
}

// DELETE /api/service-catalog/:id
func ArchiveServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.ServiceCatalog
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sluzba nenalezena")
		}
		item.IsArchived = true
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sluzbu se nepodarilo archivovat")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
