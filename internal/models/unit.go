package models

import "time"

// Unit: pronajimatelna jednotka v ramci nemovitosti (byt, kancelar, garaz...).
type Unit struct {
	ID              uint `gorm:"primaryKey"`
	PropertyID      uint `gorm:"index;not null"`
	Property        Property
	UnitType        string `gorm:"size:20;index"` // kod z unit_types
	Label           string `gorm:"size:100;not null"`
	Floor           string `gorm:"size:20"`
	Layout          string `gorm:"size:20"` // dispozice, napr. 2+kk
	Area            float64
	CurrentTenantID *uint `gorm:"index"`
	CurrentTenant   *Subject
	Note            string `gorm:"size:500"`
	IsArchived      bool   `gorm:"default:false;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
