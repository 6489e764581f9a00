package models

import "time"

// BankAccount: bankovni ucet subjektu (pro vyplatu najmu / platbu zaloh).
type BankAccount struct {
	ID            uint `gorm:"primaryKey"`
	SubjectID     uint `gorm:"index;not null"`
	Subject       Subject
	Name          string `gorm:"size:100;not null"`
	AccountNumber string `gorm:"size:30"`
	BankCode      string `gorm:"size:10"`
	IBAN          string `gorm:"size:34"`
	Currency      string `gorm:"size:3;default:CZK"`
	IsPrimary     bool   `gorm:"default:false"`
	Note          string `gorm:"size:255"`
	IsArchived    bool   `gorm:"default:false;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
