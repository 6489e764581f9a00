package auth

import (
	"strings"
	"time"

	"pronajem-backend/internal/config"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AcceptInviteRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// POST /api/auth/register-admin
// Jednorazove zalozeni prvniho administratora na prazdne instanci.
func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Jmeno, email a heslo jsou povinne")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Administrator uz existuje")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Heslo se nepodarilo zpracovat")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Uzivatele se nepodarilo vytvorit")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ? AND is_archived = ?", body.Email, false).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Chybny email nebo heslo")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Chybny email nebo heslo")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token se nepodarilo vytvorit")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":         user.ID,
				"name":       user.Name,
				"email":      user.Email,
				"role":       user.Role,
				"subject_id": user.SubjectID,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Uzivatel nenalezen")
		}

		response := fiber.Map{
			"user_id":    user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"subject_id": user.SubjectID,
		}

		if user.SubjectID != nil {
			var subject models.Subject
			if err := database.DB.First(&subject, *user.SubjectID).Error; err == nil {
				response["subject"] = fiber.Map{
					"id":           subject.ID,
					"display_name": subject.DisplayName,
					"email":        subject.Email,
				}
			}
		}

		return c.JSON(response)
	}
}

// POST /api/auth/accept-invite
// Prijeti pozvanky: overi token a expiraci, zalozi uzivatele a oznaci
// pozvanku za pouzitou.
func AcceptInviteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AcceptInviteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Token == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Token a heslo jsou povinne")
		}

		var invite models.UserInvite
		if err := database.DB.Where("token = ?", body.Token).First(&invite).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pozvanka nenalezena")
		}

		if invite.AcceptedAt != nil {
			return fiber.NewError(fiber.StatusConflict, "Pozvanka uz byla pouzita")
		}
		if time.Now().After(invite.ExpiresAt) {
			return fiber.NewError(fiber.StatusGone, "Platnost pozvanky vyprsela")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			name = invite.Email
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Heslo se nepodarilo zpracovat")
		}

		user := models.User{
			SubjectID:    invite.SubjectID,
			Name:         name,
			Email:        invite.Email,
			PasswordHash: string(hash),
			Role:         invite.Role,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			now := time.Now()
			invite.AcceptedAt = &now
			if err := tx.Save(&invite).Error; err != nil {
				return err
			}
			if invite.SubjectID != nil {
				if err := tx.Model(&models.Subject{}).
					Where("id = ?", *invite.SubjectID).
					Update("is_user", true).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusConflict, "Uzivatele se nepodarilo vytvorit, email je zrejme uz registrovany")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token se nepodarilo vytvorit")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}
