package attachment

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"
	"pronajem-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupVersionTest(t *testing.T) (*gorm.DB, *storage.DiskStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewDiskStore(t.TempDir(), "dokumenty", "test-secret-alespon-32-znaku-dlouhy", zap.NewNop())
	require.NoError(t, err)

	return db, store
}

func fileInput(name, content string) uploadInput {
	return uploadInput{
		FileName:    name,
		ContentType: "application/pdf",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
		UploadedBy:  1,
		EntityLabel: "Nájemní smlouva",
	}
}

func TestAddVersionSequence(t *testing.T) {
	db, store := setupVersionTest(t)

	doc := models.Document{EntityType: "contracts", EntityID: "42", Title: "Smlouva"}
	require.NoError(t, db.Create(&doc).Error)

	first, err := addVersion(db, store, &doc, fileInput("contract.pdf", "obsah v1"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.VersionNumber)
	assert.Equal(t, "contracts/najemni-smlouva--42/smlouva--1/v001_contract.pdf", first.StoragePath)
	assert.Equal(t, int64(len("obsah v1")), first.SizeBytes)

	second, err := addVersion(db, store, &doc, fileInput("newfile.pdf", "obsah v2"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.VersionNumber)
	assert.Equal(t, "contracts/najemni-smlouva--42/smlouva--1/v002_newfile.pdf", second.StoragePath)

	// prvni verze zustava netknuta
	f, err := store.Open(first.StoragePath)
	require.NoError(t, err)
	defer f.Close()
	var buf bytes.Buffer
	_, err = io.Copy(&buf, f)
	require.NoError(t, err)
	assert.Equal(t, "obsah v1", buf.String())
}

func TestAddVersionContinuesNumbering(t *testing.T) {
	db, store := setupVersionTest(t)

	doc := models.Document{EntityType: "units", EntityID: "5", Title: "Revize"}
	require.NoError(t, db.Create(&doc).Error)

	for i := 1; i <= 4; i++ {
		v, err := addVersion(db, store, &doc, fileInput("revize.pdf", "data"))
		require.NoError(t, err)
		assert.Equal(t, i, v.VersionNumber)
	}

	var count int64
	require.NoError(t, db.Model(&models.DocumentVersion{}).
		Where("document_id = ?", doc.ID).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestAddVersionSkipsOccupiedPath(t *testing.T) {
	db, store := setupVersionTest(t)

	doc := models.Document{EntityType: "contracts", EntityID: "7", Title: "Dodatek"}
	require.NoError(t, db.Create(&doc).Error)

	// cestu v001 obsadi cizi zapis bez radku v databazi; smycka ma
	// pokracovat na v002
	occupied := BuildVersionPath("contracts", "Nájemní smlouva", "7", "Dodatek", doc.ID, 1, "dodatek.pdf")
	_, err := store.Upload(occupied, strings.NewReader("cizi obsah"))
	require.NoError(t, err)

	v, err := addVersion(db, store, &doc, fileInput("dodatek.pdf", "muj obsah"))
	require.NoError(t, err)
	assert.Equal(t, 2, v.VersionNumber)
}

func TestNextVersionNumberEmpty(t *testing.T) {
	db, _ := setupVersionTest(t)

	doc := models.Document{EntityType: "subjects", EntityID: "1", Title: "Doklad"}
	require.NoError(t, db.Create(&doc).Error)

	n, err := nextVersionNumber(db, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
