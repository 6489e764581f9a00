package audit

import (
	"encoding/json"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	Before      interface{}        `json:"before"`
	After       interface{}        `json:"after"`
	CreatedAt   string             `json:"created_at"`
}

// GET /api/audit-logs?entity_type=&entity_id=
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := listing.Parse(c)

		q := database.DB.Model(&models.AuditLog{})
		if et := c.Query("entity_type"); et != "" {
			q = q.Where("entity_type = ?", et)
		}
		if eid := c.Query("entity_id"); eid != "" {
			q = q.Where("entity_id = ?", eid)
		}

		var logs []models.AuditLog
		if err := q.Order("created_at DESC").Limit(p.Limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Auditni zaznamy se nepodarilo nacist")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				Before:      rawJSON(l.BeforeData),
				After:       rawJSON(l.AfterData),
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(resp)
	}
}

func rawJSON(d []byte) interface{} {
	if len(d) == 0 {
		return nil
	}
	// datatypes.JSON uz je validni JSON, preda se beze zmeny
	return json.RawMessage(d)
}
