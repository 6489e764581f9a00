package attachment

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"pronajem-backend/internal/audit"
	"pronajem-backend/internal/auth"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/models"
	"pronajem-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// AttachmentRow: radek z pohledu v_document_latest_version. Seznam priloh
// se nikdy nedotyka tabulky verzi primo.
type AttachmentRow struct {
	DocumentID    uint   `json:"document_id"`
	EntityType    string `json:"entity_type"`
	EntityID      string `json:"entity_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	VersionID     uint   `json:"version_id"`
	VersionNumber int    `json:"version_number"`
	FileName      string `json:"file_name"`
	ContentType   string `json:"content_type"`
	SizeBytes     int64  `json:"size_bytes"`
	StoragePath   string `json:"storage_path"`
}

type VersionResponse struct {
	ID            uint   `json:"id"`
	VersionNumber int    `json:"version_number"`
	FileName      string `json:"file_name"`
	ContentType   string `json:"content_type"`
	SizeBytes     int64  `json:"size_bytes"`
	StoragePath   string `json:"storage_path"`
	UploadedBy    uint   `json:"uploaded_by"`
	CreatedAt     string `json:"created_at"`
}

type UpdateAttachmentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// GET /api/attachments?entity_type=&entity_id=
func ListAttachmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Query("entity_type")
		entityID := c.Query("entity_id")
		if entityType == "" || entityID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "entity_type a entity_id jsou povinne")
		}

		q := database.DB.Table("v_document_latest_version").
			Where("entity_type = ? AND entity_id = ?", entityType, entityID)
		if !c.QueryBool("include_archived", false) {
			q = q.Where("is_archived = ?", false)
		}

		var rows []AttachmentRow
		if err := q.Order("title ASC").Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Prilohy se nepodarilo nacist")
		}
		return c.JSON(rows)
	}
}

// GET /api/attachments/:id/versions
func ListAttachmentVersionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := findDocument(c)
		if err != nil {
			return err
		}

		q := database.DB.Where("document_id = ?", doc.ID)
		if !c.QueryBool("include_archived", false) {
			q = q.Where("is_archived = ?", false)
		}

		var versions []models.DocumentVersion
		if err := q.Order("version_number DESC").Find(&versions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Verze se nepodarilo nacist")
		}

		resp := make([]VersionResponse, 0, len(versions))
		for _, v := range versions {
			resp = append(resp, versionResponse(&v))
		}
		return c.JSON(resp)
	}
}

// POST /api/attachments  (multipart)
// Zalozi dokument, nahraje soubor jako verzi 1.
func CreateAttachmentHandler(store *storage.DiskStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := strings.TrimSpace(c.FormValue("entity_type"))
		entityID := strings.TrimSpace(c.FormValue("entity_id"))
		title := strings.TrimSpace(c.FormValue("title"))
		if entityType == "" || entityID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "entity_type a entity_id jsou povinne")
		}
		if title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nazev prilohy je povinny")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Chybi soubor")
		}

		userID, _ := auth.CurrentUserID(c)

		doc := models.Document{
			EntityType:  entityType,
			EntityID:    entityID,
			Title:       title,
			Description: c.FormValue("description"),
		}
		if err := database.DB.Create(&doc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dokument se nepodarilo vytvorit")
		}

		version, err := addVersion(database.DB, store, &doc, uploadInputFromHeader(fileHeader, userID, c.FormValue("entity_label")))
		if err != nil {
			// dokument bez verze nema smysl drzet
			database.DB.Delete(&doc)
			return uploadError(err)
		}

		_, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "documents",
			EntityID:    strconv.Itoa(int(doc.ID)),
			Action:      models.AuditActionCreate,
			Description: "Priloha nahrana: " + doc.Title,
			After:       doc,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"document_id": doc.ID,
			"title":       doc.Title,
			"version":     versionResponse(version),
		})
	}
}

// POST /api/attachments/:id/versions  (multipart)
// Prida dalsi verzi k existujicimu dokumentu. Predchozi verze a soubory
// zustavaji nedotcene.
func AddAttachmentVersionHandler(store *storage.DiskStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := findDocument(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Chybi soubor")
		}

		userID, _ := auth.CurrentUserID(c)

		version, err := addVersion(database.DB, store, doc, uploadInputFromHeader(fileHeader, userID, c.FormValue("entity_label")))
		if err != nil {
			return uploadError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(versionResponse(version))
	}
}

// PUT /api/attachments/:id
// Meni jen popisna metadata dokumentu, verzi a souboru se nedotyka.
func UpdateAttachmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := findDocument(c)
		if err != nil {
			return err
		}

		var body UpdateAttachmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Neplatne telo pozadavku")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nazev prilohy je povinny")
			}
			doc.Title = title
		}
		if body.Description != nil {
			doc.Description = *body.Description
		}

		if err := database.DB.Save(doc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Prilohu se nepodarilo ulozit")
		}
		return c.JSON(fiber.Map{
			"document_id": doc.ID,
			"title":       doc.Title,
			"description": doc.Description,
		})
	}
}

// DELETE /api/attachments/:id
func ArchiveAttachmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := findDocument(c)
		if err != nil {
			return err
		}

		doc.IsArchived = true
		if err := database.DB.Save(doc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Prilohu se nepodarilo archivovat")
		}

		userID, userName := audit.Actor(c)
		_ = audit.Write(audit.Entry{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "documents",
			EntityID:    strconv.Itoa(int(doc.ID)),
			Action:      models.AuditActionArchive,
			Description: "Priloha archivovana: " + doc.Title,
			After:       doc,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/attachments/:id/url?version=&expires_in=
// Vrati kratce platnou podepsanou URL pro stazeni. Bez parametru version
// se podepisuje posledni verze.
func GetAttachmentSignedURLHandler(store *storage.DiskStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := findDocument(c)
		if err != nil {
			return err
		}

		q := database.DB.Where("document_id = ?", doc.ID)
		if v := c.QueryInt("version", 0); v > 0 {
			q = q.Where("version_number = ?", v)
		}

		var version models.DocumentVersion
		if err := q.Order("version_number DESC").First(&version).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Verze nenalezena")
		}

		expiresIn := time.Duration(c.QueryInt("expires_in", 60)) * time.Second
		url, err := store.SignedURL(version.StoragePath, expiresIn)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Podepsanou URL se nepodarilo vytvorit")
		}

		return c.JSON(fiber.Map{
			"url":            url,
			"version_number": version.VersionNumber,
			"expires_in":     int(expiresIn.Seconds()),
		})
	}
}

func findDocument(c *fiber.Ctx) (*models.Document, error) {
	var doc models.Document
	if err := database.DB.First(&doc, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Priloha nenalezena")
	}
	return &doc, nil
}

func versionResponse(v *models.DocumentVersion) VersionResponse {
	return VersionResponse{
		ID:            v.ID,
		VersionNumber: v.VersionNumber,
		FileName:      v.FileName,
		ContentType:   v.ContentType,
		SizeBytes:     v.SizeBytes,
		StoragePath:   v.StoragePath,
		UploadedBy:    v.UploadedBy,
		CreatedAt:     v.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func uploadInputFromHeader(fh *multipart.FileHeader, userID uint, entityLabel string) uploadInput {
	return uploadInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
		UploadedBy:  userID,
		EntityLabel: entityLabel,
	}
}

func uploadError(err error) error {
	if errors.Is(err, ErrVersionConflict) {
		return fiber.NewError(fiber.StatusConflict, "Soubeh nahravani verzi, zkus to znovu")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Soubor se nepodarilo nahrat: "+err.Error())
}
