package models

import "time"

// Subject: osoba nebo firma. Jeden subjekt muze vystupovat ve vice rolich
// (pronajimatel, najemnik, uzivatel, zmocnenec) zaroven.
type Subject struct {
	ID          uint   `gorm:"primaryKey"`
	SubjectType string `gorm:"size:20;index"` // kod z subject_types (person / company)
	FirstName   string `gorm:"size:100"`
	LastName    string `gorm:"size:100"`
	CompanyName string `gorm:"size:200"`
	DisplayName string `gorm:"size:200;not null"`
	Email       string `gorm:"size:100;index"`
	Phone       string `gorm:"size:30"`
	IC          string `gorm:"size:8;index"` // IČO
	DIC         string `gorm:"size:12"`
	Street      string `gorm:"size:200"`
	HouseNumber string `gorm:"size:20"`
	City        string `gorm:"size:100"`
	Zip         string `gorm:"size:10"`
	IsLandlord  bool   `gorm:"default:false"`
	IsTenant    bool   `gorm:"default:false"`
	IsUser      bool   `gorm:"default:false"`
	Note        string `gorm:"size:500"`
	IsArchived  bool   `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
