package storage

import (
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// GET /api/files/signed?token=
// Jediny zpusob cteni souboru z uloziste. Token nese cestu i expiraci,
// endpoint je proto bez autentizace (napodobuje podepsane URL hostovanych
// ulozist).
func ServeSignedFileHandler(store *DiskStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Chybi token")
		}

		objectPath, err := store.VerifyToken(tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Neplatny nebo expirovany token")
		}

		f, err := store.Open(objectPath)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Soubor nenalezen")
		}

		name := filepath.Base(objectPath)
		if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
			c.Set(fiber.HeaderContentType, ct)
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
		return c.SendStream(f)
	}
}
