package reftype

import (
	"strings"
	"testing"

	"pronajem-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTrims(t *testing.T) {
	item, err := Normalize(Item{Code: "  flat  ", Name: " Byt ", Description: " popis ", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "flat", item.Code)
	assert.Equal(t, "Byt", item.Name)
	assert.Equal(t, "popis", item.Description)
}

func TestNormalizeValidation(t *testing.T) {
	cases := []struct {
		name string
		in   Item
		err  error
	}{
		{"chybejici kod", Item{Name: "Byt"}, ErrCodeRequired},
		{"kod jen z mezer", Item{Code: "   ", Name: "Byt"}, ErrCodeRequired},
		{"chybejici nazev", Item{Code: "flat"}, ErrNameRequired},
		{"prilis dlouhy kod", Item{Code: strings.Repeat("x", 21), Name: "Byt"}, ErrCodeTooLong},
		{"prilis dlouhy nazev", Item{Code: "flat", Name: strings.Repeat("x", 51)}, ErrNameTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestNormalizeBoundaryLengths(t *testing.T) {
	item, err := Normalize(Item{Code: strings.Repeat("x", 20), Name: strings.Repeat("y", 50)})
	require.NoError(t, err)
	assert.Len(t, item.Code, 20)
	assert.Len(t, item.Name, 50)
}

func TestModelRoundTrip(t *testing.T) {
	in := Item{
		Code:        "flat",
		Name:        "Byt",
		Description: "Bytova jednotka",
		Color:       "#aabbcc",
		Icon:        "home",
		SortOrder:   5,
		IsActive:    true,
	}
	assert.Equal(t, in, FromModel(ToModel(in)))
}

func TestModelRoundTripEmptyOptionalFields(t *testing.T) {
	in := Item{Code: "other", Name: "Ostatni", IsActive: true}

	m := ToModel(in)
	assert.Nil(t, m.Description)
	assert.Nil(t, m.Color)
	assert.Nil(t, m.Icon)

	assert.Equal(t, in, FromModel(m))
}

func TestFromModelNullsBecomeEmpty(t *testing.T) {
	item := FromModel(models.RefType{Code: "x", Name: "X"})
	assert.Equal(t, "", item.Description)
	assert.Equal(t, "", item.Color)
	assert.Equal(t, "", item.Icon)
}

func TestResolveTable(t *testing.T) {
	for _, table := range models.RefTypeTables {
		got, ok := ResolveTable(table)
		assert.True(t, ok)
		assert.Equal(t, table, got)
	}

	_, ok := ResolveTable("users; DROP TABLE users")
	assert.False(t, ok)
	_, ok = ResolveTable("")
	assert.False(t, ok)
}
