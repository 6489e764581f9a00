package models

import "time"

// EquipmentCatalog: katalogova polozka vybaveni (kuchynska linka, kotel...).
type EquipmentCatalog struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null"`
	EquipmentType string `gorm:"size:20;index"` // kod z equipment_types
	Price         float64
	Note          string `gorm:"size:500"`
	IsArchived    bool   `gorm:"default:false;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EquipmentCatalog) TableName() string { return "equipment_catalog" }

// UnitEquipment: vybaveni prirazene jednotce, s moznym prepsanim ceny.
type UnitEquipment struct {
	ID          uint `gorm:"primaryKey"`
	UnitID      uint `gorm:"index;not null"`
	Unit        Unit
	EquipmentID uint `gorm:"index;not null"`
	Equipment   EquipmentCatalog `gorm:"foreignKey:EquipmentID"`
	Quantity    int              `gorm:"default:1"`
	State       string           `gorm:"size:50"` // stav: nove / pouzite / poskozene
	Amount      *float64         // prepsana cena, nil = katalogova
	Note        string           `gorm:"size:500"`
	IsArchived  bool             `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UnitEquipment) TableName() string { return "unit_equipment" }

// PropertyEquipment: vybaveni prirazene cele nemovitosti.
type PropertyEquipment struct {
	ID          uint `gorm:"primaryKey"`
	PropertyID  uint `gorm:"index;not null"`
	Property    Property
	EquipmentID uint `gorm:"index;not null"`
	Equipment   EquipmentCatalog `gorm:"foreignKey:EquipmentID"`
	Quantity    int              `gorm:"default:1"`
	State       string           `gorm:"size:50"`
	Amount      *float64
	Note        string `gorm:"size:500"`
	IsArchived  bool   `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PropertyEquipment) TableName() string { return "property_equipment" }
