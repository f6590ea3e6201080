package models

import (
	"time"
)

type User struct {
	ID       string `gorm:"primaryKey"            yaml:"id"`
	Username string `gorm:"uniqueIndex;not null"  yaml:"username"`
	Email    string `gorm:"uniqueIndex;not null"  yaml:"email"`
	IsActive bool   `gorm:"not null"              yaml:"active"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
