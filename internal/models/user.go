package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	SubjectID    *uint
	Subject      *Subject
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	IsArchived   bool     `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
