// Package reftype spravuje ciselnikove tabulky spolecneho tvaru
// code/name/color/icon/sort_order/is_active jednou sadou handleru.
// Konkretni tabulka se vybira path parametrem a overuje proti registru.
package reftype

import (
	"errors"
	"strings"

	"pronajem-backend/internal/models"
)

const (
	maxCodeLen = 20
	maxNameLen = 50
)

var (
	ErrCodeRequired = errors.New("kod je povinny")
	ErrNameRequired = errors.New("nazev je povinny")
	ErrCodeTooLong  = errors.New("kod muze mit nejvyse 20 znaku")
	ErrNameTooLong  = errors.New("nazev muze mit nejvyse 50 znaku")
)

// Item: ciselnikova polozka ve tvaru API. Nepovinna pole se navenek
// reprezentuji prazdnym retezcem, v databazi jako NULL.
type Item struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}

// Normalize orizne mezery a zvaliduje povinnosti a delky. Vola se pred
// kazdym zapisem, pri chybe se zadny dotaz do databaze neposila.
func Normalize(in Item) (Item, error) {
	out := in
	out.Code = strings.TrimSpace(out.Code)
	out.Name = strings.TrimSpace(out.Name)
	out.Description = strings.TrimSpace(out.Description)
	out.Color = strings.TrimSpace(out.Color)
	out.Icon = strings.TrimSpace(out.Icon)

	if out.Code == "" {
		return out, ErrCodeRequired
	}
	if out.Name == "" {
		return out, ErrNameRequired
	}
	if len(out.Code) > maxCodeLen {
		return out, ErrCodeTooLong
	}
	if len(out.Name) > maxNameLen {
		return out, ErrNameTooLong
	}
	return out, nil
}

// FromModel prevede databazovy radek na API polozku (NULL -> "").
func FromModel(m models.RefType) Item {
	item := Item{
		Code:      m.Code,
		Name:      m.Name,
		SortOrder: m.SortOrder,
		IsActive:  m.IsActive,
	}
	if m.Description != nil {
		item.Description = *m.Description
	}
	if m.Color != nil {
		item.Color = *m.Color
	}
	if m.Icon != nil {
		item.Icon = *m.Icon
	}
	return item
}

// ToModel prevede API polozku na databazovy radek ("" -> NULL).
func ToModel(item Item) models.RefType {
	m := models.RefType{
		Code:      item.Code,
		Name:      item.Name,
		SortOrder: item.SortOrder,
		IsActive:  item.IsActive,
	}
	if item.Description != "" {
		m.Description = &item.Description
	}
	if item.Color != "" {
		m.Color = &item.Color
	}
	if item.Icon != "" {
		m.Icon = &item.Icon
	}
	return m
}

// ResolveTable overi, ze jde o spravovany ciselnik. Nazev tabulky jde do
// SQL, proto se pripousti jen hodnoty z registru.
func ResolveTable(name string) (string, bool) {
	for _, t := range models.RefTypeTables {
		if t == name {
			return t, true
		}
	}
	return "", false
}
