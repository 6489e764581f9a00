package models

import "time"

// ServiceCatalog: katalog sluzeb uctovanych k najmu (voda, teplo, uklid...).
type ServiceCatalog struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	ServiceType string `gorm:"size:20"`
	Price       float64
	BillingUnit string `gorm:"size:20"` // mesic, m3, kWh...
	Note        string `gorm:"size:500"`
	IsArchived  bool   `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ServiceCatalog) TableName() string { return "service_catalog" }

// UnitService: sluzba prirazena jednotce.
type UnitService struct {
	ID         uint `gorm:"primaryKey"`
	UnitID     uint `gorm:"index;not null"`
	Unit       Unit
	ServiceID  uint `gorm:"index;not null"`
	Service    ServiceCatalog `gorm:"foreignKey:ServiceID"`
	Quantity   int            `gorm:"default:1"`
	Amount     *float64       // prepsana cena, nil = katalogova
	Note       string         `gorm:"size:500"`
	IsArchived bool           `gorm:"default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
