package property

import (
	"strconv"

	"pronajem-backend/internal/audit"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

var searchColumns = []string{"name", "street", "city", "zip", "cadastre_area", "parcel_number"}

type CreatePropertyRequest struct {
	Name         string  `json:"name"`
	PropertyType string  `json:"property_type"`
	Street       string  `json:"street"`
	HouseNumber  string  `json:"house_number"`
	City         string  `json:"city"`
	Zip          string  `json:"zip"`
	RuianID      string  `json:"ruian_id"`
	CadastreArea string  `json:"cadastre_area"`
	ParcelNumber string  `json:"parcel_number"`
	LandArea     float64 `json:"land_area"`
	BuiltArea    float64 `json:"built_area"`
	LandlordID   *uint   `json:"landlord_id"`
	Note         string  `json:"note"`
}

type UpdatePropertyRequest struct {
	Name         *string  `json:"name"`
	PropertyType *string  `json:"property_type"`
	Street       *string  `json:"street"`
	HouseNumber  *string  `json:"house_number"`
	City         *string  `json:"city"`
	Zip          *string  `json:"zip"`
	RuianID      *string  `json:"ruian_id"`
	CadastreArea *string  `json:"cadastre_area"`
	ParcelNumber *string  `json:"parcel_number"`
	LandArea     *float64 `json:"land_area"`
	BuiltArea    *float64 `json:"built_area"`
	LandlordID   *uint    `json:"landlord_id"`
	Note         *string  `json:"note"`
}

// PropertyResponse: radek seznamu i detail. Jmeno pronajimatele je
// zplostene primo na radek, UI nepotrebuje vnorene objekty.
type PropertyResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	PropertyType string  `json:"property_type"`
	Street       string  `json:"street"`
	HouseNumber  string  `json:"house_number"`
	City         string  `json:"city"`
	Zip          string  `json:"zip"`
	RuianID      string  `json:"ruian_id"`
	CadastreArea string  `json:"cadastre_area"`
	ParcelNumber string  `json:"parcel_number"`
	LandArea     float64 `json:"land_area"`
	BuiltArea    float64 `json:"built_area"`
	LandlordID   *uint   `json:"landlord_id"`
	LandlordName string  `json:"landlord_name"`
	Note         string  `json:"note"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toResponse(p *models.Property) PropertyResponse {
	status := "active"
	if p.IsArchived {
		status = "archived"
	}
	landlordName := ""
	if p.Landlord != nil {
		landlordName = p.Landlord.DisplayName
	}
	return PropertyResponse{
		ID:           p.ID,
		Name:         p.Name,
		PropertyType: p.PropertyType,
		Street:       p.Street,
		HouseNumber:  p.HouseNumber,
		City:         p.City,
		Zip:          p.Zip,
		RuianID:      p.RuianID,
		CadastreArea: p.CadastreArea,
		ParcelNumber: p.ParcelNumber,
		LandArea:     p.LandArea,
		BuiltArea:    p.BuiltArea,
		LandlordID:   p.LandlordID,
		LandlordName: landlordName,
		Note:         p.Note,
		Status:       status,
		CreatedAt:    p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/properties
func ListPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := listing.Parse(c)

		q := listing.Scope(database.DB.Model(&models.Property{}), p.IncludeArchived).
			Preload("Landlord")
		q = listing.Search(q, p.Query, searchColumns)
		if lid := c.QueryInt("landlord_id", 0); lid > 0 {
			q = q.Where("landlord_id = ?", lid)
		}

		var properties []models.Property
		if err := q.Order("name ASC").Limit(p.Limit).Find(&properties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nemovitosti se nepodarilo nacist")
		}

		resp := make([]PropertyResponse, 0, len(properties))
		for i := range properties {
			resp = append(resp, toResponse(&properties[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/properties/:id
func GetPropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.Preload("Landlord").
			First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Nemovitost nenalezena")
		}
		return c.JSON(toResponse(&property))
	}
}

// POST /api/properties
func CreatePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nazev nemovitosti je povinny")
		}
		if body.LandlordID != nil {
			var landlord models.Subject
			if err := database.DB.First(&landlord, "id = ?", *body.LandlordID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Pronajimatel neexistuje")
			}
		}

		property := models.Property{
			Name:         body.Name,
			PropertyType: body.PropertyType,
			Street:       body.Street,
			HouseNumber:  body.HouseNumber,
			City:         body.City,
			Zip:          body.Zip,
			RuianID:      body.RuianID,
			CadastreArea: body.CadastreArea,
			ParcelNumber: body.ParcelNumber,
			LandArea:     body.LandArea,
			BuiltArea:    body.BuiltArea,
			LandlordID:   body.LandlordID,
			Note:         body.Note,
		}

		if err := database.DB.Create(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nemovitost se nepodarilo vytvorit")
		}
		database.DB.Preload("Landlord").First(&property, property.ID)

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "properties",
			EntityID:    strconv.Itoa(int(property.ID)),
			Action:      models.AuditActionCreate,
			Description: "Nemovitost zalozena: " + property.Name,
			After:       property,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&property))
	}
}

// PUT /api/properties/:id
func UpdatePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Nemovitost nenalezena")
		}

		var body UpdatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		oldProperty := property

		if body.Name != nil {
			property.Name = *body.Name
		}
		if body.PropertyType != nil {
			property.PropertyType = *body.PropertyType
		}
		if body.Street != nil {
			property.Street = *body.Street
		}
		if body.HouseNumber != nil {
			property.HouseNumber = *body.HouseNumber
		}
		if body.City != nil {
			property.City = *body.City
		}
		if body.Zip != nil {
			property.Zip = *body.Zip
		}
		if body.RuianID != nil {
			property.RuianID = *body.RuianID
		}
		if body.CadastreArea != nil {
			property.CadastreArea = *body.CadastreArea
		}
		if body.ParcelNumber != nil {
			property.ParcelNumber = *body.ParcelNumber
		}
		if body.LandArea != nil {
			property.LandArea = *body.LandArea
		}
		if body.BuiltArea != nil {
			property.BuiltArea = *body.BuiltArea
		}
		if body.LandlordID != nil {
			property.LandlordID = body.LandlordID
		}
		if body.Note != nil {
			property.Note = *body.Note
		}

		if property.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nazev nemovitosti je povinny")
		}

		if err := database.DB.Save(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nemovitost se nepodarilo ulozit")
		}
		database.DB.Preload("Landlord").First(&property, property.ID)

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "properties",
			EntityID:    strconv.Itoa(int(property.ID)),
			Action:      models.AuditActionUpdate,
			Description: "Nemovitost upravena: " + property.Name,
			Before:      oldProperty,
			After:       property,
		})

		return c.JSON(toResponse(&property))
	}
}

// DELETE /api/properties/:id
func ArchivePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Nemovitost nenalezena")
		}

		oldProperty := property
		property.IsArchived = true
		if err := database.DB.Save(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nemovitost se nepodarilo archivovat")
		}

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "properties",
			EntityID:    strconv.Itoa(int(property.ID)),
			Action:      models.AuditActionArchive,
			Description: "Nemovitost archivovana: " + property.Name,
			Before:      oldProperty,
			After:       property,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
