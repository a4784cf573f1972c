// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The refresh token lives inline so a
// rotation is a single-row update.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string    `gorm:"type:varchar(255);not null;index"`
	Avatar       string    `gorm:"type:text;not null"`
	CoverImage   string    `gorm:"type:text;not null;default:''"`
	WatchHistory []string  `gorm:"type:jsonb;serializer:json;not null;default:'[]'"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null"`
	RefreshToken *string   `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
