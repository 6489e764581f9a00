package listing

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 500
	MaxLimit     = 1000
)

// Params: spolecne parametry vsech seznamovych endpointu.
type Params struct {
	Query           string
	IncludeArchived bool
	Limit           int
}

func Parse(c *fiber.Ctx) Params {
	p := Params{
		Query:           strings.TrimSpace(c.Query("q")),
		IncludeArchived: c.QueryBool("include_archived", false),
		Limit:           c.QueryInt("limit", DefaultLimit),
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Scope aplikuje archivacni filtr. Archivovane radky se vraci jen na
// vyslovne prani volajiciho.
func Scope(db *gorm.DB, includeArchived bool) *gorm.DB {
	if includeArchived {
		return db
	}
	return db.Where("is_archived = ? OR is_archived IS NULL", false)
}

// Search prelozi fulltextovy dotaz na disjunkci case-insensitive
// "contains" podminek nad pevnou sadou sloupcu. LOWER + LIKE funguje
// shodne na Postgres i sqlite.
func Search(db *gorm.DB, query string, columns []string) *gorm.DB {
	if query == "" || len(columns) == 0 {
		return db
	}
	pattern := "%" + strings.ToLower(query) + "%"

	conds := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return db.Where(strings.Join(conds, " OR "), args...)
}
