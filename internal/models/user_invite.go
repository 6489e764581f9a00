package models

import "time"

// UserInvite: pozvanka noveho uzivatele. Token je jednorazovy, po prijeti
// se vyplni AcceptedAt a pozvanku uz nelze pouzit znovu.
type UserInvite struct {
	ID         uint     `gorm:"primaryKey"`
	Email      string   `gorm:"size:100;not null;index"`
	Role       UserRole `gorm:"size:20;not null"`
	Token      string   `gorm:"size:36;uniqueIndex;not null"`
	InvitedBy  uint     `gorm:"not null"`
	SubjectID  *uint    // predvytvoreny subjekt, pokud existuje
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
