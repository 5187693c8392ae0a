package models

import (
	"time"

	"github.com/brewthree/brewpos-backend/pkg/enums"
)

// User is an account that can place orders at the counter.
type User struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string         `gorm:"size:64;not null;uniqueIndex" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	DisplayName  string         `gorm:"size:255" json:"display_name"`
	Role         enums.UserRole `gorm:"size:32;not null;default:'CUSTOMER'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
