package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionArchive AuditAction = "archive"
)

// AuditLog: zaznam zmeny entity se snimkem stavu pred a po.
type AuditLog struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"index"`
	UserName    string      `gorm:"size:100"`
	EntityType  string      `gorm:"size:50;index;not null"`
	EntityID    string      `gorm:"size:50;index;not null"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:500"`
	BeforeData  datatypes.JSON
	AfterData   datatypes.JSON
	CreatedAt   time.Time
}
