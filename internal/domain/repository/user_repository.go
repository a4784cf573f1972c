// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"vidhub/internal/domain/entity"
	"vidhub/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrInvalidUser is returned by Create when the record misses a required field.
	ErrInvalidUser = errors.New("user record is incomplete")
)

// UserRepository persists user records. Implementations must be safe for
// concurrent use.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by their normalized username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByUsernameOrEmail returns the first user whose username equals
	// username or whose email equals email. Empty arguments never match.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)

	// Create validates and inserts a full user record. It assigns ID and
	// timestamps when unset.
	Create(ctx context.Context, user *entity.User) error

	// Update applies a partial update to one record and returns the result.
	// Only the fields set in update are written and full-record validation
	// is skipped.
	Update(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error)

	// FindByIDs retrieves the users with the given IDs. Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)
}

// ValidateNewUser checks the invariants every stored user must satisfy.
func ValidateNewUser(user *entity.User) error {
	switch {
	case user == nil:
		return errors.Wrap(ErrInvalidUser, "nil user")
	case user.Username == "":
		return errors.Wrap(ErrInvalidUser, "username is required")
	case user.Email == "":
		return errors.Wrap(ErrInvalidUser, "email is required")
	case user.FullName == "":
		return errors.Wrap(ErrInvalidUser, "full name is required")
	case user.Avatar == "":
		return errors.Wrap(ErrInvalidUser, "avatar is required")
	case user.PasswordHash == "":
		return errors.Wrap(ErrInvalidUser, "password hash is required")
	}

	return nil
}

// PrepareNewUser validates user and fills ID and timestamps left unset.
// Every store calls it from Create so they agree on what a new record is.
func PrepareNewUser(user *entity.User, now time.Time) error {
	if err := ValidateNewUser(user); err != nil {
		return err
	}

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	if user.WatchHistory == nil {
		user.WatchHistory = []string{}
	}

	return nil
}
