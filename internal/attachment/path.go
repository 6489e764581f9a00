package attachment

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug prevede lidsky citelny text na bezpecny segment cesty: mala
// pismena, bez diakritiky, ne-alfanumericke znaky slite do pomlcky.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	lastDash := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// oddelena diakriticka znamenka se zahazuji
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SanitizeFileName ocisti nazev souboru pro ulozeni: bez oddelovacu
// cest, bez diakritiky, mezery na podtrzitka.
func SanitizeFileName(name string) string {
	// pripadnou cestu z klienta zahod
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "soubor"
	}

	decomposed := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
		case r == ' ' || r == '\t':
			b.WriteByte('_')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" || strings.Trim(out, "._") == "" {
		return "soubor"
	}
	return out
}

// BuildVersionPath sestavi deterministickou cestu verze v ulozisti.
// S lidsky citelnym oznacenim entity:
//
//	entityType/slug(label)--entityID/slug(title)--docID/v001_soubor.pdf
//
// Bez nej jednodussi tvar entityType/entityID/docID/v001_soubor.pdf.
// Cislo verze je doplnene nulami na tri mista, aby se lexikalni a
// ciselne razeni shodovalo.
func BuildVersionPath(entityType, entityLabel, entityID, title string, documentID uint, version int, fileName string) string {
	file := fmt.Sprintf("v%03d_%s", version, SanitizeFileName(fileName))

	entitySeg := entityID
	if label := Slug(entityLabel); label != "" {
		entitySeg = label + "--" + entityID
	}
	docSeg := fmt.Sprintf("%d", documentID)
	if titleSlug := Slug(title); titleSlug != "" && Slug(entityLabel) != "" {
		docSeg = titleSlug + "--" + docSeg
	}

	return strings.Join([]string{entityType, entitySeg, docSeg, file}, "/")
}
