package models

import "time"

// Document: pojmenovana priloha navazana na entitu (entity_type, entity_id).
// Samotne soubory drzi verze, dokument nese jen popisna metadata.
type Document struct {
	ID          uint   `gorm:"primaryKey"`
	EntityType  string `gorm:"size:50;not null;index:idx_documents_entity"`
	EntityID    string `gorm:"size:50;not null;index:idx_documents_entity"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"size:500"`
	IsArchived  bool   `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentVersion: jedna nahrana revize souboru. Verze se nikdy neprepisuji,
// novy upload vzdy zaklada novy radek a novou cestu v ulozisti.
// Unikatni index (document_id, version_number) drzi cislovani bez kolizi
// i pri soubehu.
type DocumentVersion struct {
	ID            uint `gorm:"primaryKey"`
	DocumentID    uint `gorm:"not null;uniqueIndex:idx_document_version"`
	Document      Document
	VersionNumber int    `gorm:"not null;uniqueIndex:idx_document_version"`
	FileName      string `gorm:"size:255;not null"`
	ContentType   string `gorm:"size:100"`
	SizeBytes     int64
	StoragePath   string `gorm:"size:500;not null"`
	UploadedBy    uint
	IsArchived    bool `gorm:"default:false;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
