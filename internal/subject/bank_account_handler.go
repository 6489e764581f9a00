package subject

import (
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBankAccountRequest struct {
	SubjectID     uint   `json:"subject_id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	IBAN          string `json:"iban"`
	Currency      string `json:"currency"`
	IsPrimary     bool   `json:"is_primary"`
	Note          string `json:"note"`
}

type UpdateBankAccountRequest struct {
	Name          *string `json:"name"`
	AccountNumber *string `json:"account_number"`
	BankCode      *string `json:"bank_code"`
	IBAN          *string `json:"iban"`
	Currency      *string `json:"currency"`
	IsPrimary     *bool   `json:"is_primary"`
	Note          *string `json:"note"`
}

type BankAccountResponse struct {
	ID            uint   `json:"id"`
	SubjectID     uint   `json:"subject_id"`
	SubjectName   string `json:"subject_name"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	IBAN          string `json:"iban"`
	Currency      string `json:"currency"`
	IsPrimary     bool   `json:"is_primary"`
	Note          string `json:"note"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func bankAccountResponse(a *models.BankAccount) BankAccountResponse {
	status := "active"
	if a.IsArchived {
		status = "archived"
	}
	return BankAccountResponse{
		ID:            a.ID,
		SubjectID:     a.SubjectID,
		SubjectName:   a.Subject.DisplayName,
		Name:          a.Name,
		AccountNumber: a.AccountNumber,
		BankCode:      a.BankCode,
		IBAN:          a.IBAN,
		Currency:      a.Currency,
		IsPrimary:     a.IsPrimary,
		Note:          a.Note,
		Status:        status,
		CreatedAt:     a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/bank-accounts?subject_id=
func ListBankAccountsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := listing.Parse(c)

		q := listing.Scope(database.DB.Model(&models.BankAccount{}), p.IncludeArchived).
			Preload("Subject")
		if sid := c.QueryInt("subject_id", 0); sid > 0 {
			q = q.Where("subject_id = ?", sid)
		}

		var accounts []models.BankAccount
		if err := q.Order("is_primary DESC, name ASC").Limit(p.Limit).Find(&accounts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ucty se nepodarilo nacist")
		}

		resp := make([]BankAccountResponse, 0, len(accounts))
		for i := range accounts {
			resp = append(resp, bankAccountResponse(&accounts[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/bank-accounts
func CreateBankAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBankAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nazev uctu je povinny")
		}
		var owner models.Subject
		if err := database.DB.First(&owner, "id = ?", body.SubjectID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Subjekt uctu neexistuje")
		}

		currency := body.Currency
		if currency == "" {
			currency = "CZK"
		}

		account := models.BankAccount{
			SubjectID:     body.SubjectID,
			Name:          body.Name,
			AccountNumber: body.AccountNumber,
			BankCode:      body.BankCode,
			IBAN:          body.IBAN,
			Currency:      currency,
			IsPrimary:     body.IsPrimary,
			Note:          body.Note,
		}

		if err := database.DB.Create(&account).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ucet se nepodarilo vytvorit")
		}
		account.Subject = owner

		return c.Status(fiber.StatusCreated).JSON(bankAccountResponse(&account))
	}
}

// PUT /api/bank-accounts/:id
func UpdateBankAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var account models.BankAccount
		if err := database.DB.Preload("Subject").First(&account, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ucet nenalezen")
		}

		var body UpdateBankAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Name != nil {
			account.Name = *body.Name
		}
		if body.AccountNumber != nil {
			account.AccountNumber = *body.AccountNumber
		}
		if body.BankCode != nil {
			account.BankCode = *body.BankCode
		}
		if body.IBAN != nil {
			account.IBAN = *body.IBAN
		}
		if body.Currency != nil {
			account.Currency = *body.Currency
		}
		if body.IsPrimary != nil {
			account.IsPrimary = *body.IsPrimary
		}
		if body.Note != nil {
			account.Note = *body.Note
		}

		if err := database.DB.Save(&account).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ucet se nepodarilo ulozit")
		}
		return c.JSON(bankAccountResponse(&account))
	}
}

// DELETE /api/bank-accounts/:id
func ArchiveBankAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var account models.BankAccount
		if err := database.DB.First(&account, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ucet nenalezen")
		}

		account.IsArchived = true
		if err := database.DB.Save(&account).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ucet se nepodarilo archivovat")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
