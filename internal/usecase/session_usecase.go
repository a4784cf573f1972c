package usecase

import (
	"context"

	"vidhub/internal/domain/entity"
)

// LoginInput defines the data required for a user to log in. Either
// Username or Email identifies the account.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// TokenPair is a freshly minted access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	User *entity.User
	TokenPair
}

// SessionUsecase defines the authentication and session lifecycle.
type SessionUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout clears the stored refresh token of user. Access tokens already
	// issued stay valid until they expire.
	Logout(ctx context.Context, user *entity.User) error

	// Refresh rotates the pair. The presented token must verify and match the
	// stored value exactly; a failed refresh never changes the stored token.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	ChangePassword(ctx context.Context, user *entity.User, input *ChangePasswordInput) error

	// Authenticate resolves the user an access token belongs to. It never
	// writes to the store.
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}
