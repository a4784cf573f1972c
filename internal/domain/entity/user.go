// Package entity contains the core business objects of vidhub.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account on the platform. PasswordHash and RefreshToken are
// credentials; they never leave the process, see PublicUser.
type User struct {
	ID           uuid.UUID
	Username     string // unique, trimmed, lower-cased
	Email        string // unique, trimmed, lower-cased
	FullName     string
	Avatar       string // hosted URL, required
	CoverImage   string // hosted URL, empty when absent
	WatchHistory []string
	PasswordHash string
	RefreshToken string // empty when no session is active
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate describes a partial update of a single user record.
// A nil field is left untouched; a pointer to "" clears the field.
type UserUpdate struct {
	FullName     *string
	Email        *string
	Avatar       *string
	CoverImage   *string
	PasswordHash *string
	RefreshToken *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.Avatar == nil &&
		u.CoverImage == nil && u.PasswordHash == nil && u.RefreshToken == nil
}

// Apply copies the set fields of u onto user and bumps UpdatedAt.
func (u UserUpdate) Apply(user *User, now time.Time) {
	if u.FullName != nil {
		user.FullName = *u.FullName
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Avatar != nil {
		user.Avatar = *u.Avatar
	}
	if u.CoverImage != nil {
		user.CoverImage = *u.CoverImage
	}
	if u.PasswordHash != nil {
		user.PasswordHash = *u.PasswordHash
	}
	if u.RefreshToken != nil {
		user.RefreshToken = *u.RefreshToken
	}
	user.UpdatedAt = now
}

// Character limits of the user fields. The postgres columns are sized to match.
const (
	MaxUsernameLength = 64
	MaxEmailLength    = 255
	MaxFullNameLength = 255
)

// NormalizeIdentifier trims and lower-cases a username or email so that
// lookups and uniqueness checks are case-insensitive.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PublicUser is the serializable view of a User. It has no field for the
// password hash or the refresh token.
type PublicUser struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage"`
	WatchHistory []string  `json:"watchHistory"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public returns the sanitized view of u.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}

	history := u.WatchHistory
	if history == nil {
		history = []string{}
	}

	return &PublicUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Avatar:       u.Avatar,
		CoverImage:   u.CoverImage,
		WatchHistory: history,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UserSummary is the short form used in subscriber and channel lists.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
}

// Summary returns the short form of u.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
