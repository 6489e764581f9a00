package audit

import (
	"pronajem-backend/internal/auth"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Actor vraci id a jmeno prihlaseneho uzivatele pro auditni zaznam.
func Actor(c *fiber.Ctx) (uint, string) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return 0, ""
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return userID, ""
	}
	return userID, user.Name
}
