package usecase

import (
	"context"

	"vidhub/internal/domain/entity"
)

// UpdateAccountInput defines the account fields a user may change. Nil
// fields are left untouched.
type UpdateAccountInput struct {
	FullName *string
	Email    *string
}

// ProfileUsecase defines the interface for profile-related business operations.
// Every method takes the authenticated user and returns the updated record.
type ProfileUsecase interface {
	UpdateAccount(ctx context.Context, user *entity.User, input *UpdateAccountInput) (*entity.User, error)
	UpdateAvatar(ctx context.Context, user *entity.User, localPath string) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, user *entity.User, localPath string) (*entity.User, error)
}
