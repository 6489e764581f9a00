package audit

import (
	"encoding/json"
	"fmt"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"

	"gorm.io/datatypes"
)

type Entry struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Write zapise auditni zaznam se snimky stavu pred a po zmene.
// Chyba zapisu nikdy nesmi shodit puvodni operaci, volajici ji typicky
// ignoruje.
func Write(e Entry) error {
	log := models.AuditLog{
		UserID:      e.UserID,
		UserName:    e.UserName,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		BeforeData:  marshalSnapshot(e.Before),
		AfterData:   marshalSnapshot(e.After),
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("auditni zaznam se nepodarilo ulozit: %w", err)
	}
	return nil
}

func marshalSnapshot(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}
