// Package invite spravuje pozvanky novych uzivatelu. Pozvanky vytvari
// jen administrator, prijeti resi auth.AcceptInviteHandler.
package invite

import (
	"strings"
	"time"

	"pronajem-backend/internal/auth"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const inviteValidity = 7 * 24 * time.Hour

type CreateInviteRequest struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	SubjectID *uint  `json:"subject_id"`
}

type InviteResponse struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Token      string     `json:"token"`
	SubjectID  *uint      `json:"subject_id,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// POST /api/admin/invites
func CreateInviteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateInviteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatny format dat")
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return fiber.NewError(fiber.StatusBadRequest, "Platny email je povinny")
		}

		role := models.UserRole(req.Role)
		if role == "" {
			role = models.RoleUser
		}
		if role != models.RoleAdmin && role != models.RoleUser {
			return fiber.NewError(fiber.StatusBadRequest, "Neznama role")
		}

		var existing int64
		database.DB.Model(&models.User{}).Where("email = ?", email).Count(&existing)
		if existing > 0 {
			return fiber.NewError(fiber.StatusConflict, "Uzivatel s timto emailem uz existuje")
		}

		if req.SubjectID != nil {
			var subject models.Subject
			if err := database.DB.First(&subject, *req.SubjectID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Uvedeny subjekt neexistuje")
			}
		}

		invitedBy, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		invite := models.UserInvite{
			Email:     email,
			Role:      role,
			Token:     uuid.NewString(),
			InvitedBy: invitedBy,
			SubjectID: req.SubjectID,
			ExpiresAt: time.Now().Add(inviteValidity),
		}

		// drive vydane neprijate pozvanky pro stejny email zneplatnit
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.UserInvite{}).
				Where("email = ? AND accepted_at IS NULL", email).
				Update("expires_at", time.Now()).Error; err != nil {
				return err
			}
			return tx.Create(&invite).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pozvanku se nepodarilo vytvorit")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(invite))
	}
}

// GET /api/admin/invites
func ListInvitesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var invites []models.UserInvite
		if err := database.DB.Order("created_at DESC").Find(&invites).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nepodarilo se nacist pozvanky")
		}

		out := make([]InviteResponse, 0, len(invites))
		for _, inv := range invites {
			out = append(out, toResponse(inv))
		}
		return c.JSON(out)
	}
}

func toResponse(inv models.UserInvite) InviteResponse {
	return InviteResponse{
		ID:         inv.ID,
		Email:      inv.Email,
		Role:       string(inv.Role),
		Token:      inv.Token,
		SubjectID:  inv.SubjectID,
		ExpiresAt:  inv.ExpiresAt,
		AcceptedAt: inv.AcceptedAt,
		CreatedAt:  inv.CreatedAt,
	}
}
