package contract

import (
	"strconv"
	"time"

	"pronajem-backend/internal/audit"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var searchColumns = []string{"contract_number", "status", "note"}

type CreateContractRequest struct {
	ContractNumber string     `json:"contract_number"`
	LandlordID     uint       `json:"landlord_id"`
	TenantID       uint       `json:"tenant_id"`
	PropertyID     uint       `json:"property_id"`
	UnitID         uint       `json:"unit_id"`
	Status         string     `json:"status"`
	PaymentType    string     `json:"payment_type"`
	RentAmount     float64    `json:"rent_amount"`
	DepositAmount  float64    `json:"deposit_amount"`
	PaymentDay     int        `json:"payment_day"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Note           string     `json:"note"`
}

type UpdateContractRequest struct {
	ContractNumber *string    `json:"contract_number"`
	LandlordID     *uint      `json:"landlord_id"`
	TenantID       *uint      `json:"tenant_id"`
	Status         *string    `json:"status"`
	PaymentType    *string    `json:"payment_type"`
	RentAmount     *float64   `json:"rent_amount"`
	DepositAmount  *float64   `json:"deposit_amount"`
	PaymentDay     *int       `json:"payment_day"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Note           *string    `json:"note"`
}

type ContractResponse struct {
	ID             uint       `json:"id"`
	ContractNumber string     `json:"contract_number"`
	LandlordID     uint       `json:"landlord_id"`
	LandlordName   string     `json:"landlord_name"`
	TenantID       uint       `json:"tenant_id"`
	TenantName     string     `json:"tenant_name"`
	PropertyID     uint       `json:"property_id"`
	PropertyName   string     `json:"property_name"`
	UnitID         uint       `json:"unit_id"`
	UnitLabel      string     `json:"unit_label"`
	Status         string     `json:"status"`
	PaymentType    string     `json:"payment_type"`
	RentAmount     float64    `json:"rent_amount"`
	DepositAmount  float64    `json:"deposit_amount"`
	PaymentDay     int        `json:"payment_day"`
	StartDate      string     `json:"start_date"`
	EndDate        *string    `json:"end_date"`
	Note           string     `json:"note"`
	LifecycleState string     `json:"lifecycle_state"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

func toResponse(ct *models.Contract) ContractResponse {
	state := "active"
	if ct.IsArchived {
		state = "archived"
	}
	var endDate *string
	if ct.EndDate != nil {
		s := ct.EndDate.Format("2006-01-02")
		endDate = &s
	}
	return ContractResponse{
		ID:             ct.ID,
		ContractNumber: ct.ContractNumber,
		LandlordID:     ct.LandlordID,
		LandlordName:   ct.Landlord.DisplayName,
		TenantID:       ct.TenantID,
		TenantName:     ct.Tenant.DisplayName,
		PropertyID:     ct.PropertyID,
		PropertyName:   ct.Property.Name,
		UnitID:         ct.UnitID,
		UnitLabel:      ct.Unit.Label,
		Status:         ct.Status,
		PaymentType:    ct.PaymentType,
		RentAmount:     ct.RentAmount,
		DepositAmount:  ct.DepositAmount,
		PaymentDay:     ct.PaymentDay,
		StartDate:      ct.StartDate.Format("2006-01-02"),
		EndDate:        endDate,
		Note:           ct.Note,
		LifecycleState: state,
		CreatedAt:      ct.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      ct.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func preloadAll(q *gorm.DB) *gorm.DB {
	return q.Preload("Landlord").Preload("Tenant").Preload("Property").Preload("Unit")
}

// GET /api/contracts
func ListContractsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := listing.Parse(c)

		q := preloadAll(listing.Scope(database.DB.Model(&models.Contract{}), p.IncludeArchived))
		q = listing.Search(q, p.Query, searchColumns)
		if pid := c.QueryInt("property_id", 0); pid > 0 {
			q = q.Where("property_id = ?", pid)
		}
		if uid := c.QueryInt("unit_id", 0); uid > 0 {
			q = q.Where("unit_id = ?", uid)
		}
		if tid := c.QueryInt("tenant_id", 0); tid > 0 {
			q = q.Where("tenant_id = ?", tid)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var contracts []models.Contract
		if err := q.Order("start_date DESC").Limit(p.Limit).Find(&contracts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Smlouvy se nepodarilo nacist")
		}

		resp := make([]ContractResponse, 0, len(contracts))
		for i := range contracts {
			resp = append(resp, toResponse(&contracts[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/contracts/:id
func GetContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var contract models.Contract
		if err := preloadAll(database.DB).
			First(&contract, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Smlouva nenalezena")
		}
		return c.JSON(toResponse(&contract))
	}
}

// POST /api/contracts
func CreateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateContractRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		var landlord, tenant models.Subject
		if err := database.DB.First(&landlord, "id = ?", body.LandlordID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Pronajimatel neexistuje")
		}
		if err := database.DB.First(&tenant, "id = ?", body.TenantID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Najemnik neexistuje")
		}
		var unit models.Unit
		if err := database.DB.First(&unit, "id = ?", body.UnitID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Jednotka neexistuje")
		}
		if body.PropertyID != unit.PropertyID {
			return fiber.NewError(fiber.StatusBadRequest, "Jednotka nepatri k uvedene nemovitosti")
		}
		if body.StartDate.IsZero() {
			return fiber.NewError(fiber.StatusBadRequest, "Datum zacatku najmu je povinne")
		}

		contract := models.Contract{
			ContractNumber: body.ContractNumber,
			LandlordID:     body.LandlordID,
			TenantID:       body.TenantID,
			PropertyID:     body.PropertyID,
			UnitID:         body.UnitID,
			Status:         body.Status,
			PaymentType:    body.PaymentType,
			RentAmount:     body.RentAmount,
			DepositAmount:  body.DepositAmount,
			PaymentDay:     body.PaymentDay,
			StartDate:      body.StartDate,
			EndDate:        body.EndDate,
			Note:           body.Note,
		}

		if err := database.DB.Create(&contract).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Smlouvu se nepodarilo vytvorit")
		}
		preloadAll(database.DB).First(&contract, contract.ID)

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "contracts",
			EntityID:    strconv.Itoa(int(contract.ID)),
			Action:      models.AuditActionCreate,
			Description: "Smlouva zalozena: " + contract.ContractNumber,
			After:       contract,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&contract))
	}
}

// PUT /api/contracts/:id
func UpdateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var contract models.Contract
		if err := database.DB.First(&contract, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Smlouva nenalezena")
		}

		var body UpdateContractRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		oldContract := contract

		if body.ContractNumber != nil {
			contract.ContractNumber = *body.ContractNumber
		}
		if body.LandlordID != nil {
			contract.LandlordID = *body.LandlordID
		}
		if body.TenantID != nil {
			contract.TenantID = *body.TenantID
		}
		if body.Status != nil {
			contract.Status = *body.Status
		}
		if body.PaymentType != nil {
			contract.PaymentType = *body.PaymentType
		}
		if body.RentAmount != nil {
			contract.RentAmount = *body.RentAmount
		}
		if body.DepositAmount != nil {
			contract.DepositAmount = *body.DepositAmount
		}
		if body.PaymentDay != nil {
			contract.PaymentDay = *body.PaymentDay
		}
		if body.StartDate != nil {
			contract.StartDate = *body.StartDate
		}
		if body.EndDate != nil {
			contract.EndDate = body.EndDate
		}
		if body.Note != nil {
			contract.Note = *body.Note
		}

		if err := database.DB.Save(&contract).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Smlouvu se nepodarilo ulozit")
		}
		preloadAll(database.DB).First(&contract, contract.ID)

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "contracts",
			EntityID:    strconv.Itoa(int(contract.ID)),
			Action:      models.AuditActionUpdate,
			Description: "Smlouva upravena: " + contract.ContractNumber,
			Before:      oldContract,
			After:       contract,
		})

		return c.JSON(toResponse(&contract))
	}
}

// DELETE /api/contracts/:id
func ArchiveContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var contract models.Contract
		if err := database.DB.First(&contract, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Smlouva nenalezena")
		}

		oldContract := contract
		contract.IsArchived = true
		if err := database.DB.Save(&contract).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Smlouvu se nepodarilo archivovat")
		}

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "contracts",
			EntityID:    strconv.Itoa(int(contract.ID)),
			Action:      models.AuditActionArchive,
			Description: "Smlouva archivovana: " + contract.ContractNumber,
			Before:      oldContract,
			After:       contract,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
