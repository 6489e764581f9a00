package unit

import (
	"strconv"

	"pronajem-backend/internal/audit"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

var searchColumns = []string{"label", "floor", "layout"}

type CreateUnitRequest struct {
	PropertyID      uint    `json:"property_id"`
	UnitType        string  `json:"unit_type"`
	Label           string  `json:"label"`
	Floor           string  `json:"floor"`
	Layout          string  `json:"layout"`
	Area            float64 `json:"area"`
	CurrentTenantID *uint   `json:"current_tenant_id"`
	Note            string  `json:"note"`
}

type UpdateUnitRequest struct {
	UnitType        *string  `json:"unit_type"`
	Label           *string  `json:"label"`
	Floor           *string  `json:"floor"`
	Layout          *string  `json:"layout"`
	Area            *float64 `json:"area"`
	CurrentTenantID *uint    `json:"current_tenant_id"`
	Note            *string  `json:"note"`
}

// UnitResponse: radek seznamu i detail. Nazvy nemovitosti, pronajimatele
// a najemnika jsou zplostene na radek.
type UnitResponse struct {
	ID              uint    `json:"id"`
	PropertyID      uint    `json:"property_id"`
	PropertyName    string  `json:"property_name"`
	LandlordName    string  `json:"landlord_name"`
	UnitType        string  `json:"unit_type"`
	Label           string  `json:"label"`
	Floor           string  `json:"floor"`
	Layout          string  `json:"layout"`
	Area            float64 `json:"area"`
	CurrentTenantID *uint   `json:"current_tenant_id"`
	TenantName      string  `json:"tenant_name"`
	Note            string  `json:"note"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toResponse(u *models.Unit) UnitResponse {
	status := "active"
	if u.IsArchived {
		status = "archived"
	}
	landlordName := ""
	if u.Property.Landlord != nil {
		landlordName = u.Property.Landlord.DisplayName
	}
	tenantName := ""
	if u.CurrentTenant != nil {
		tenantName = u.CurrentTenant.DisplayName
	}
	return UnitResponse{
		ID:              u.ID,
		PropertyID:      u.PropertyID,
		PropertyName:    u.Property.Name,
		LandlordName:    landlordName,
		UnitType:        u.UnitType,
		Label:           u.Label,
		Floor:           u.Floor,
		Layout:          u.Layout,
		Area:            u.Area,
		CurrentTenantID: u.CurrentTenantID,
		TenantName:      tenantName,
		Note:            u.Note,
		Status:          status,
		CreatedAt:       u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/units?property_id=
func ListUnitsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := listing.Parse(c)

		q := listing.Scope(database.DB.Model(&models.Unit{}), p.IncludeArchived).
			Preload("Property").
			Preload("Property.Landlord").
			Preload("CurrentTenant")
		q = listing.Search(q, p.Query, searchColumns)
		if pid := c.QueryInt("property_id", 0); pid > 0 {
			q = q.Where("property_id = ?", pid)
		}

		var units []models.Unit
		if err := q.Order("label ASC").Limit(p.Limit).Find(&units).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Jednotky se nepodarilo nacist")
		}

		resp := make([]UnitResponse, 0, len(units))
		for i := range units {
			resp = append(resp, toResponse(&units[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/units/:id
func GetUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var unit models.Unit
		if err := database.DB.
			Preload("Property").
			Preload("Property.Landlord").
			Preload("CurrentTenant").
			First(&unit, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Jednotka nenalezena")
		}
		return c.JSON(toResponse(&unit))
	}
}

// POST /api/units
func CreateUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUnitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Label == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Oznaceni jednotky je povinne")
		}
		var property models.Property
		if err := database.DB.First(&property, "id = ?", body.PropertyID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nemovitost neexistuje")
		}

		unit := models.Unit{
			PropertyID:      body.PropertyID,
			UnitType:        body.UnitType,
			Label:           body.Label,
			Floor:           body.Floor,
			Layout:          body.Layout,
			Area:            body.Area,
			CurrentTenantID: body.CurrentTenantID,
			Note:            body.Note,
		}

		if err := database.DB.Create(&unit).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Jednotku se nepodarilo vytvorit")
		}
		database.DB.
			Preload("Property").
			Preload("Property.Landlord").
			Preload("CurrentTenant").
			First(&unit, unit.ID)

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "units",
			EntityID:    strconv.Itoa(int(unit.ID)),
			Action:      models.AuditActionCreate,
			Description: "Jednotka zalozena: " + unit.Label,
			After:       unit,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&unit))
	}
}

// PUT /api/units/:id
func UpdateUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var unit models.Unit
		if err := database.DB.First(&unit, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Jednotka nenalezena")
		}

		var body UpdateUnitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		oldUnit := unit

		if body.UnitType != nil {
			unit.UnitType = *body.UnitType
		}
		if body.Label != nil {
			unit.Label = *body.Label
		}
		if body.Floor != nil {
			unit.Floor = *body.Floor
		}
		if body.Layout != nil {
			unit.Layout = *body.Layout
		}
		if body.Area != nil {
			unit.Area = *body.Area
		}
		if body.CurrentTenantID != nil {
			unit.CurrentTenantID = body.CurrentTenantID
		}
		if body.Note != nil {
			unit.Note = *body.Note
		}

		if unit.Label == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Oznaceni jednotky je povinne")
		}

		if err := database.DB.Save(&unit).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Jednotku se nepodarilo ulozit")
		}
		database.DB.
			Preload("Property").
			Preload("Property.Landlord").
			Preload("CurrentTenant").
			First(&unit, unit.ID)

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "units",
			EntityID:    strconv.Itoa(int(unit.ID)),
			Action:      models.AuditActionUpdate,
			Description: "Jednotka upravena: " + unit.Label,
			Before:      oldUnit,
			After:       unit,
		})

		return c.JSON(toResponse(&unit))
	}
}

// DELETE /api/units/:id
func ArchiveUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var unit models.Unit
		if err := database.DB.First(&unit, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Jednotka nenalezena")
		}

		oldUnit := unit
		unit.IsArchived = true
		if err := database.DB.Save(&unit).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Jednotku se nepodarilo archivovat")
		}

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "units",
			EntityID:    strconv.Itoa(int(unit.ID)),
			Action:      models.AuditActionArchive,
			Description: "Jednotka archivovana: " + unit.Label,
			Before:      oldUnit,
			After:       unit,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
