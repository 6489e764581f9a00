package subject

import (
	"strings"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CheckDuplicatesRequest struct {
	IC               string `json:"ic"`
	Email            string `json:"email"`
	ExcludeSubjectID *uint  `json:"exclude_subject_id"`
}

// POST /api/subjects/check-duplicates
// Najde subjekty se shodnym ICO nebo emailem. Slouzi formulari pro
// varovani pred zalozenim duplicitniho subjektu.
func CheckDuplicatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckDuplicatesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		ic := strings.TrimSpace(body.IC)
		email := strings.TrimSpace(strings.ToLower(body.Email))
		if ic == "" && email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Zadej ic nebo email")
		}

		q := database.DB.Model(&models.Subject{}).Where("is_archived = ?", false)
		switch {
		case ic != "" && email != "":
			q = q.Where("ic = ? OR LOWER(email) = ?", ic, email)
		case ic != "":
			q = q.Where("ic = ?", ic)
		default:
			q = q.Where("LOWER(email) = ?", email)
		}
		if body.ExcludeSubjectID != nil {
			q = q.Where("id <> ?", *body.ExcludeSubjectID)
		}

		var subjects []models.Subject
		if err := q.Limit(20).Find(&subjects).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kontrola duplicit selhala")
		}

		resp := make([]SubjectResponse, 0, len(subjects))
		for i := range subjects {
			resp = append(resp, toResponse(&subjects[i]))
		}
		return c.JSON(resp)
	}
}
