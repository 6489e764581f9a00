package models

import (
	"time"

	"gorm.io/datatypes"
)

// UIViewPref: perzistentni nastaveni UI per uzivatel a klic (rozlozeni
// seznamu, rezim ikon, tema, historie hodnot poli...). Hodnota je libovolny
// JSON, vyznam zna jen klient.
type UIViewPref struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_ui_view_pref"`
	Key       string `gorm:"size:100;not null;uniqueIndex:idx_ui_view_pref"`
	Value     datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UIViewPref) TableName() string { return "ui_view_prefs" }
