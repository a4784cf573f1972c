package service

import (
	"vidhub/internal/domain/entity"
	"vidhub/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrTokenInvalid means the token is malformed, carries a bad signature,
	// was signed with an unexpected algorithm or has the wrong type.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired means the token verified but is past its exp claim.
	ErrTokenExpired = errors.New("token is expired")
)

// Claims is the payload of both token kinds. Email and Username are only
// set on access tokens.
type Claims struct {
	UserID   uuid.UUID `json:"-"`
	Email    string    `json:"email,omitempty"`
	Username string    `json:"username,omitempty"`
	Type     string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the access/refresh token pair.
type TokenService interface {
	// IssueAccessToken signs a short-lived token identifying user.
	IssueAccessToken(user *entity.User) (string, error)

	// IssueRefreshToken signs a long-lived token carrying only the user id.
	// Two calls never return the same value.
	IssueRefreshToken(user *entity.User) (string, error)

	// VerifyAccessToken checks an access token against the access key.
	VerifyAccessToken(token string) (*Claims, error)

	// VerifyRefreshToken checks a refresh token against the refresh key.
	VerifyRefreshToken(token string) (*Claims, error)
}
