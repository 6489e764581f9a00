package subject

import (
	"strings"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AssignCodeRequest struct {
	Code string `json:"code"`
	Note string `json:"note"`
}

type RoleResponse struct {
	ID       uint   `json:"id"`
	RoleCode string `json:"role_code"`
	RoleName string `json:"role_name"`
	Note     string `json:"note"`
}

type PermissionResponse struct {
	ID             uint   `json:"id"`
	PermissionCode string `json:"permission_code"`
	PermissionName string `json:"permission_name"`
}

func findSubject(c *fiber.Ctx) (*models.Subject, error) {
	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Subjekt nenalezen")
	}
	return &subject, nil
}

// refTypeName docte nazev kodu z ciselniku, prazdny pri nezname hodnote.
func refTypeName(table, code string) string {
	var rt models.RefType
	if err := database.DB.Table(table).Where("code = ?", code).First(&rt).Error; err != nil {
		return ""
	}
	return rt.Name
}

// GET /api/subjects/:id/roles
func ListSubjectRolesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := findSubject(c)
		if err != nil {
			return err
		}

		var roles []models.SubjectRole
		if err := database.DB.
			Where("subject_id = ? AND is_archived = ?", subject.ID, false).
			Order("role_code ASC").
			Find(&roles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Role se nepodarilo nacist")
		}

		resp := make([]RoleResponse, 0, len(roles))
		for _, r := range roles {
			resp = append(resp, RoleResponse{
				ID:       r.ID,
				RoleCode: r.RoleCode,
				RoleName: refTypeName("role_types", r.RoleCode),
				Note:     r.Note,
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/subjects/:id/roles
func AssignSubjectRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := findSubject(c)
		if err != nil {
			return err
		}

		var body AssignCodeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		code := strings.TrimSpace(body.Code)
		if code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kod role je povinny")
		}
		if refTypeName("role_types", code) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Neznamy kod role: "+code)
		}

		role := models.SubjectRole{
			SubjectID: subject.ID,
			RoleCode:  code,
			Note:      body.Note,
		}
		if err := database.DB.Create(&role).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Subjekt uz tuto roli ma")
		}

		return c.Status(fiber.StatusCreated).JSON(RoleResponse{
			ID:       role.ID,
			RoleCode: role.RoleCode,
			RoleName: refTypeName("role_types", role.RoleCode),
			Note:     role.Note,
		})
	}
}

// DELETE /api/subjects/:id/roles/:code
func RemoveSubjectRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := findSubject(c)
		if err != nil {
			return err
		}

		res := database.DB.Model(&models.SubjectRole{}).
			Where("subject_id = ? AND role_code = ?", subject.ID, c.Params("code")).
			Update("is_archived", true)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Roli se nepodarilo odebrat")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Subjekt tuto roli nema")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/subjects/:id/permissions
func ListSubjectPermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := findSubject(c)
		if err != nil {
			return err
		}

		var perms []models.SubjectPermission
		if err := database.DB.
			Where("subject_id = ? AND is_archived = ?", subject.ID, false).
			Order("permission_code ASC").
			Find(&perms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Opravneni se nepodarilo nacist")
		}

		resp := make([]PermissionResponse, 0, len(perms))
		for _, p := range perms {
			resp = append(resp, PermissionResponse{
				ID:             p.ID,
				PermissionCode: p.PermissionCode,
				PermissionName: refTypeName("permission_types", p.PermissionCode),
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/subjects/:id/permissions
func AssignSubjectPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := findSubject(c)
		if err != nil {
			return err
		}

		var body AssignCodeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		code := strings.TrimSpace(body.Code)
		if code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kod opravneni je povinny")
		}
		if refTypeName("permission_types", code) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Neznamy kod opravneni: "+code)
		}

		perm := models.SubjectPermission{
			SubjectID:      subject.ID,
			PermissionCode: code,
		}
		if err := database.DB.Create(&perm).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Subjekt uz toto opravneni ma")
		}

		return c.Status(fiber.StatusCreated).JSON(PermissionResponse{
			ID:             perm.ID,
			PermissionCode: perm.PermissionCode,
			PermissionName: refTypeName("permission_types", perm.PermissionCode),
		})
	}
}

// DELETE /api/subjects/:id/permissions/:code
func RemoveSubjectPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := findSubject(c)
		if err != nil {
			return err
		}

		res := database.DB.Model(&models.SubjectPermission{}).
			Where("subject_id = ? AND permission_code = ?", subject.ID, c.Params("code")).
			Update("is_archived", true)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Opravneni se nepodarilo odebrat")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Subjekt toto opravneni nema")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
