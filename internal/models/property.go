package models

import "time"

// Property: budova nebo pozemek ve sprave.
type Property struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:200;not null"`
	PropertyType string `gorm:"size:20;index"` // kod z property_types
	Street       string `gorm:"size:200"`
	HouseNumber  string `gorm:"size:20"`
	City         string `gorm:"size:100"`
	Zip          string `gorm:"size:10"`
	RuianID      string `gorm:"size:20"` // identifikator adresniho mista RUIAN
	CadastreArea string `gorm:"size:100"`
	ParcelNumber string `gorm:"size:50"`
	LandArea     float64
	BuiltArea    float64
	LandlordID   *uint `gorm:"index"`
	Landlord     *Subject
	Note         string `gorm:"size:500"`
	IsArchived   bool   `gorm:"default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
