package models

import "time"

// Contract: najemni smlouva. Vaze pronajimatele, najemnika, nemovitost
// a jednotku. Stav je volny textovy kod (draft / active / terminated...),
// zadna prechodova logika se nevynucuje.
type Contract struct {
	ID             uint   `gorm:"primaryKey"`
	ContractNumber string `gorm:"size:50;index"`
	LandlordID     uint   `gorm:"index;not null"`
	Landlord       Subject
	TenantID       uint `gorm:"index;not null"`
	Tenant         Subject `gorm:"foreignKey:TenantID"`
	PropertyID     uint    `gorm:"index;not null"`
	Property       Property
	UnitID         uint `gorm:"index;not null"`
	Unit           Unit
	Status         string `gorm:"size:20;index"`
	PaymentType    string `gorm:"size:20"` // kod z payment_types
	RentAmount     float64
	DepositAmount  float64
	PaymentDay     int // den v mesici splatnosti najmu
	StartDate      time.Time
	EndDate        *time.Time
	Note           string `gorm:"size:500"`
	IsArchived     bool   `gorm:"default:false;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
