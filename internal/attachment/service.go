package attachment

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"pronajem-backend/internal/models"
	"pronajem-backend/internal/storage"

	"gorm.io/gorm"
)

// maxVersionAttempts omezuje retry smycku pri soubehu dvou uploadu nad
// stejnym dokumentem.
const maxVersionAttempts = 3

var ErrVersionConflict = errors.New("soubeh verzi se nepodarilo vyresit")

type uploadInput struct {
	FileName    string
	ContentType string
	Open        func() (io.ReadCloser, error)
	UploadedBy  uint
	EntityLabel string
}

// nextVersionNumber docte nejvyssi cislo verze dokumentu, 0 pokud zadna
// neexistuje.
func nextVersionNumber(db *gorm.DB, documentID uint) (int, error) {
	var current *int
	err := db.Model(&models.DocumentVersion{}).
		Where("document_id = ?", documentID).
		Select("MAX(version_number)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 1, nil
	}
	return *current + 1, nil
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// addVersion nahraje soubor a zalozi radek verze. Cislo verze se pocita
// jako max+1; kolizi pri soubehu zachyti unikatni index
// (document_id, version_number) a no-overwrite uloziste, smycka to pak
// zkusi s vyssim cislem znovu. Verze se nikdy neprepisuji.
func addVersion(db *gorm.DB, store *storage.DiskStore, doc *models.Document, in uploadInput) (*models.DocumentVersion, error) {
	minVersion := 0
	for attempt := 0; attempt < maxVersionAttempts; attempt++ {
		version, err := nextVersionNumber(db, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("cislo verze nelze urcit: %w", err)
		}
		// po kolizi uz stejne cislo nezkousej, i kdyz souperici radek
		// jeste neni v databazi
		if version < minVersion {
			version = minVersion
		}

		objectPath := BuildVersionPath(
			doc.EntityType, in.EntityLabel, doc.EntityID,
			doc.Title, doc.ID, version, in.FileName,
		)

		f, err := in.Open()
		if err != nil {
			return nil, fmt.Errorf("soubor nelze otevrit: %w", err)
		}
		written, err := store.Upload(objectPath, f)
		f.Close()
		if errors.Is(err, storage.ErrObjectExists) {
			// souperici upload vyhral cestu, zkus dalsi cislo
			minVersion = version + 1
			continue
		}
		if err != nil {
			return nil, err
		}

		v := models.DocumentVersion{
			DocumentID:    doc.ID,
			VersionNumber: version,
			FileName:      in.FileName,
			ContentType:   in.ContentType,
			SizeBytes:     written,
			StoragePath:   objectPath,
			UploadedBy:    in.UploadedBy,
		}
		if err := db.Create(&v).Error; err != nil {
			if isDuplicateErr(err) {
				minVersion = version + 1
				continue
			}
			return nil, fmt.Errorf("verzi se nepodarilo ulozit: %w", err)
		}
		return &v, nil
	}
	return nil, ErrVersionConflict
}
