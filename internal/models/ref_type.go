package models

import "time"

// RefType: spolecny tvar vsech ciselnikovych tabulek (role_types, unit_types,
// property_types, payment_types, permission_types, subject_types,
// equipment_types, generic_types). Model nema pevnou tabulku, handler ji
// dosazuje pres db.Table(...).
type RefType struct {
	Code        string  `gorm:"primaryKey;size:20"`
	Name        string  `gorm:"size:50;not null"`
	Description *string `gorm:"size:255"`
	Color       *string `gorm:"size:20"`
	Icon        *string `gorm:"size:50"`
	SortOrder   int     `gorm:"default:0"`
	IsActive    bool    `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RefTypeTables: ciselnikove tabulky, ktere aplikace spravuje.
var RefTypeTables = []string{
	"role_types",
	"unit_types",
	"property_types",
	"payment_types",
	"permission_types",
	"subject_types",
	"equipment_types",
	"generic_types",
}
