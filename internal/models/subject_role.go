package models

import "time"

// SubjectRole: prirazeni role (kod z role_types) subjektu.
type SubjectRole struct {
	ID         uint `gorm:"primaryKey"`
	SubjectID  uint `gorm:"not null;uniqueIndex:idx_subject_role"`
	Subject    Subject
	RoleCode   string `gorm:"size:20;not null;uniqueIndex:idx_subject_role"`
	Note       string `gorm:"size:255"`
	IsArchived bool   `gorm:"default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SubjectPermission: prirazeni opravneni (kod z permission_types) subjektu.
type SubjectPermission struct {
	ID             uint `gorm:"primaryKey"`
	SubjectID      uint `gorm:"not null;uniqueIndex:idx_subject_permission"`
	Subject        Subject
	PermissionCode string `gorm:"size:20;not null;uniqueIndex:idx_subject_permission"`
	IsArchived     bool   `gorm:"default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
