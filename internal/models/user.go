package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleSupport = "support"
)

type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null"`
	Name                string `gorm:"not null"`
	Phone               string `gorm:"uniqueIndex;not null"`
	Role                string `gorm:"default:'user'"`
	IsVerified          bool   `gorm:"default:false"`
	Status              string `gorm:"default:'active'"`
	LastLoginAt         *time.Time
	FailedLoginAttempts int `gorm:"default:0"`
	TokenVersion        int `gorm:"default:1"`
}
