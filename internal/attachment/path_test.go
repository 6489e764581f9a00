package attachment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "najemni-smlouva", Slug("Nájemní smlouva"))
	assert.Equal(t, "byt-2-1", Slug("Byt 2/1"))
	assert.Equal(t, "revizni-zprava-2024", Slug("  Revizní zpráva 2024  "))
	assert.Equal(t, "", Slug(""))
	assert.Equal(t, "", Slug("---"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "smlouva.pdf", SanitizeFileName("smlouva.pdf"))
	assert.Equal(t, "najemni_smlouva.pdf", SanitizeFileName("nájemní smlouva.pdf"))
	assert.Equal(t, "smlouva.pdf", SanitizeFileName("../../etc/smlouva.pdf"))
	assert.Equal(t, "smlouva.pdf", SanitizeFileName(`C:\Users\novak\smlouva.pdf`))
	assert.Equal(t, "soubor", SanitizeFileName(""))
	assert.Equal(t, "soubor", SanitizeFileName("  "))
}

func TestBuildVersionPath(t *testing.T) {
	got := BuildVersionPath("contracts", "Nájemní smlouva Dlouhá 12", "42", "Smlouva", 7, 1, "contract.pdf")
	assert.Equal(t, "contracts/najemni-smlouva-dlouha-12--42/smlouva--7/v001_contract.pdf", got)

	// druha verze dokumentu sdili adresar, lisi se jen soubor
	second := BuildVersionPath("contracts", "Nájemní smlouva Dlouhá 12", "42", "Smlouva", 7, 2, "newfile.pdf")
	assert.Equal(t, "contracts/najemni-smlouva-dlouha-12--42/smlouva--7/v002_newfile.pdf", second)
}

func TestBuildVersionPathWithoutLabel(t *testing.T) {
	got := BuildVersionPath("units", "", "5", "Revize", 3, 1, "revize.pdf")
	assert.Equal(t, "units/5/3/v001_revize.pdf", got)
}

func TestBuildVersionPathPadsVersionNumber(t *testing.T) {
	got := BuildVersionPath("subjects", "Novák", "1", "Doklad", 2, 12, "op.jpg")
	assert.Equal(t, "subjects/novak--1/doklad--2/v012_op.jpg", got)
}
