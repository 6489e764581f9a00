package section

import (
	"strconv"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SectionResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// GET /api/modules/:module/sections?entity_id=
// Vrati sekce detailu pro dany modul a entitu. U subjektu se kontext
// doplni o priznaky roli, ktere ridi viditelnost sekci.
func ResolveSectionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		module := c.Params("module")
		requested, ok := DefaultSections(module)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Neznamy modul: "+module)
		}

		ctx := Context{
			Module:   module,
			EntityID: c.Query("entity_id"),
		}
		if module == "subjects" && ctx.EntityID != "" {
			if id, err := strconv.Atoi(ctx.EntityID); err == nil {
				var subject models.Subject
				if err := database.DB.First(&subject, id).Error; err == nil {
					ctx.IsLandlord = subject.IsLandlord
					ctx.IsTenant = subject.IsTenant
					ctx.IsUser = subject.IsUser
				}
			}
		}

		sections := Resolve(requested, ctx)
		resp := make([]SectionResponse, 0, len(sections))
		for _, s := range sections {
			resp = append(resp, SectionResponse{ID: s.ID, Title: s.Title, Order: s.Order})
		}
		return c.JSON(resp)
	}
}
