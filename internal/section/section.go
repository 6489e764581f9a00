// Package section resi skladani detailu entity ze sekci (zalozek).
// Modul deklaruje seznam id sekci, registr dopocita povinne sekce,
// viditelnost a poradi.
package section

import "sort"

// Context: vstup pro predikaty viditelnosti.
type Context struct {
	Module     string
	EntityID   string
	IsLandlord bool
	IsTenant   bool
	IsUser     bool
}

// Section: definice jedne sekce detailu.
type Section struct {
	ID          string
	Title       string
	Order       int
	Always      bool
	VisibleWhen func(Context) bool
}

// registry: vsechny zname sekce. Poradi zalozek urcuje Order, ne poradi
// v teto tabulce.
var registry = []Section{
	{ID: "detail", Title: "Detail", Order: 10, Always: true},
	{ID: "roles", Title: "Role", Order: 20, VisibleWhen: func(ctx Context) bool {
		return ctx.Module == "subjects"
	}},
	{ID: "users", Title: "Uzivatele", Order: 30, VisibleWhen: func(ctx Context) bool {
		return ctx.Module == "subjects" && ctx.IsUser
	}},
	{ID: "equipment", Title: "Vybaveni", Order: 40, VisibleWhen: func(ctx Context) bool {
		return ctx.Module == "units" || ctx.Module == "properties"
	}},
	{ID: "services", Title: "Sluzby", Order: 50, VisibleWhen: func(ctx Context) bool {
		return ctx.Module == "units"
	}},
	{ID: "attachments", Title: "Prilohy", Order: 80, Always: true},
	{ID: "system", Title: "System", Order: 90, Always: true},
}

// moduleSections: vychozi seznam sekci per modul. Sekce s Always se
// doplni vzdy, i kdyz je modul neuvadi.
var moduleSections = map[string][]string{
	"subjects":   {"detail", "roles", "users"},
	"properties": {"detail", "equipment"},
	"units":      {"detail", "equipment", "services"},
	"contracts":  {"detail"},
}

// Resolve vrati usporadany, deduplikovany seznam sekci k vykresleni.
// Nezname id se tise zahazuji, sekce s Always jsou pritomne vzdy,
// vysledek je pro stejny vstup vzdy stejny.
func Resolve(requested []string, ctx Context) []Section {
	want := make(map[string]bool, len(requested))
	for _, id := range requested {
		want[id] = true
	}
	for _, s := range registry {
		if s.Always {
			want[s.ID] = true
		}
	}

	resolved := make([]Section, 0, len(want))
	for _, s := range registry {
		if !want[s.ID] {
			continue
		}
		if s.VisibleWhen != nil && !s.VisibleWhen(ctx) {
			continue
		}
		resolved = append(resolved, s)
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Order < resolved[j].Order
	})
	return resolved
}

// DefaultSections vrati deklarovany seznam id sekci pro modul.
func DefaultSections(module string) ([]string, bool) {
	ids, ok := moduleSections[module]
	return ids, ok
}
