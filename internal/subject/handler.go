package subject

import (
	"strconv"
	"strings"

	"pronajem-backend/internal/audit"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Sloupce prohledavane fulltextem v seznamu subjektu.
var searchColumns = []string{"display_name", "company_name", "email", "phone", "ic", "city"}

type CreateSubjectRequest struct {
	SubjectType string `json:"subject_type"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IC          string `json:"ic"`
	DIC         string `json:"dic"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	IsLandlord  bool   `json:"is_landlord"`
	IsTenant    bool   `json:"is_tenant"`
	Note        string `json:"note"`
}

type UpdateSubjectRequest struct {
	SubjectType *string `json:"subject_type"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	CompanyName *string `json:"company_name"`
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	IC          *string `json:"ic"`
	DIC         *string `json:"dic"`
	Street      *string `json:"street"`
	HouseNumber *string `json:"house_number"`
	City        *string `json:"city"`
	Zip         *string `json:"zip"`
	IsLandlord  *bool   `json:"is_landlord"`
	IsTenant    *bool   `json:"is_tenant"`
	Note        *string `json:"note"`
}

type SubjectResponse struct {
	ID          uint   `json:"id"`
	SubjectType string `json:"subject_type"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IC          string `json:"ic"`
	DIC         string `json:"dic"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	IsLandlord  bool   `json:"is_landlord"`
	IsTenant    bool   `json:"is_tenant"`
	IsUser      bool   `json:"is_user"`
	Note        string `json:"note"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toResponse(s *models.Subject) SubjectResponse {
	status := "active"
	if s.IsArchived {
		status = "archived"
	}
	return SubjectResponse{
		ID:          s.ID,
		SubjectType: s.SubjectType,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		CompanyName: s.CompanyName,
		DisplayName: s.DisplayName,
		Email:       s.Email,
		Phone:       s.Phone,
		IC:          s.IC,
		DIC:         s.DIC,
		Street:      s.Street,
		HouseNumber: s.HouseNumber,
		City:        s.City,
		Zip:         s.Zip,
		IsLandlord:  s.IsLandlord,
		IsTenant:    s.IsTenant,
		IsUser:      s.IsUser,
		Note:        s.Note,
		Status:      status,
		CreatedAt:   s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// displayName doplni zobrazovane jmeno, pokud ho klient neposlal.
func displayName(display, first, last, company string) string {
	d := strings.TrimSpace(display)
	if d != "" {
		return d
	}
	if company = strings.TrimSpace(company); company != "" {
		return company
	}
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// GET /api/subjects
func ListSubjectsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := listing.Parse(c)

		q := listing.Scope(database.DB.Model(&models.Subject{}), p.IncludeArchived)
		q = listing.Search(q, p.Query, searchColumns)

		if c.QueryBool("landlords_only", false) {
			q = q.Where("is_landlord = ?", true)
		}
		if c.QueryBool("tenants_only", false) {
			q = q.Where("is_tenant = ?", true)
		}

		var subjects []models.Subject
		if err := q.Order("display_name ASC").Limit(p.Limit).Find(&subjects).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Subjekty se nepodarilo nacist")
		}

		resp := make([]SubjectResponse, 0, len(subjects))
		for i := range subjects {
			resp = append(resp, toResponse(&subjects[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/subjects/:id
func GetSubjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var subject models.Subject
		if err := database.DB.First(&subject, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Subjekt nenalezen")
		}
		return c.JSON(toResponse(&subject))
	}
}

// POST /api/subjects
func CreateSubjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSubjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		name := displayName(body.DisplayName, body.FirstName, body.LastName, body.CompanyName)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Jmeno subjektu je povinne")
		}

		subject := models.Subject{
			SubjectType: body.SubjectType,
			FirstName:   strings.TrimSpace(body.FirstName),
			LastName:    strings.TrimSpace(body.LastName),
			CompanyName: strings.TrimSpace(body.CompanyName),
			DisplayName: name,
			Email:       strings.TrimSpace(strings.ToLower(body.Email)),
			Phone:       strings.TrimSpace(body.Phone),
			IC:          strings.TrimSpace(body.IC),
			DIC:         strings.TrimSpace(body.DIC),
			Street:      body.Street,
			HouseNumber: body.HouseNumber,
			City:        body.City,
			Zip:         body.Zip,
			IsLandlord:  body.IsLandlord,
			IsTenant:    body.IsTenant,
			Note:        body.Note,
		}

		if err := database.DB.Create(&subject).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Subjekt se nepodarilo vytvorit")
		}

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "subjects",
			EntityID:    strconv.Itoa(int(subject.ID)),
			Action:      models.AuditActionCreate,
			Description: "Subjekt zalozen: " + subject.DisplayName,
			After:       subject,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&subject))
	}
}

// PUT /api/subjects/:id
func UpdateSubjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var subject models.Subject
		if err := database.DB.First(&subject, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Subjekt nenalezen")
		}

		var body UpdateSubjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		oldSubject := subject

		if body.SubjectType != nil {
			subject.SubjectType = *body.SubjectType
		}
		if body.FirstName != nil {
			subject.FirstName = strings.TrimSpace(*body.FirstName)
		}
		if body.LastName != nil {
			subject.LastName = strings.TrimSpace(*body.LastName)
		}
		if body.CompanyName != nil {
			subject.CompanyName = strings.TrimSpace(*body.CompanyName)
		}
		if body.DisplayName != nil {
			subject.DisplayName = strings.TrimSpace(*body.DisplayName)
		}
		if body.Email != nil {
			subject.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Phone != nil {
			subject.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.IC != nil {
			subject.IC = strings.TrimSpace(*body.IC)
		}
		if body.DIC != nil {
			subject.DIC = strings.TrimSpace(*body.DIC)
		}
		if body.Street != nil {
			subject.Street = *body.Street
		}
		if body.HouseNumber != nil {
			subject.HouseNumber = *body.HouseNumber
		}
		if body.City != nil {
			subject.City = *body.City
		}
		if body.Zip != nil {
			subject.Zip = *body.Zip
		}
		if body.IsLandlord != nil {
			subject.IsLandlord = *body.IsLandlord
		}
		if body.IsTenant != nil {
			subject.IsTenant = *body.IsTenant
		}
		if body.Note != nil {
			subject.Note = *body.Note
		}

		if subject.DisplayName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Jmeno subjektu je povinne")
		}

		if err := database.DB.Save(&subject).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Subjekt se nepodarilo ulozit")
		}

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "subjects",
			EntityID:    strconv.Itoa(int(subject.ID)),
			Action:      models.AuditActionUpdate,
			Description: "Subjekt upraven: " + subject.DisplayName,
			Before:      oldSubject,
			After:       subject,
		})

		return c.JSON(toResponse(&subject))
	}
}

// DELETE /api/subjects/:id
// Archivace, nikdy tvrde mazani.
func ArchiveSubjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var subject models.Subject
		if err := database.DB.First(&subject, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Subjekt nenalezen")
		}

		oldSubject := subject
		subject.IsArchived = true
		if err := database.DB.Save(&subject).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Subjekt se nepodarilo archivovat")
		}

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "subjects",
			EntityID:    strconv.Itoa(int(subject.ID)),
			Action:      models.AuditActionArchive,
			Description: "Subjekt archivovan: " + subject.DisplayName,
			Before:      oldSubject,
			After:       subject,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
