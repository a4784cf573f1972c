package auth

import (
	"time"

	"vidhub/config"
	"vidhub/internal/domain/entity"
	"vidhub/internal/domain/service"
	"vidhub/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

// JWTOption customizes a jwtService.
type JWTOption func(*jwtService)

// WithClock replaces the wall clock used for iat, exp and expiry checks.
func WithClock(now func() time.Time) JWTOption {
	return func(s *jwtService) {
		s.now = now
	}
}

// NewJWTService is the constructor for jwtService.
// Keys and lifetimes come from the immutable config and never change afterwards.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg)
}

func newJWTService(cfg *config.Config, opts ...JWTOption) (*jwtService, error) {
	if cfg == nil || cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.Token.AccessTTL <= 0 || cfg.Token.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	s := &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     cfg.Token.AccessTTL,
		refreshTTL:    cfg.Token.RefreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// IssueAccessToken embeds id, email and username. It carries no nonce.
func (s *jwtService) IssueAccessToken(user *entity.User) (string, error) {
	if user == nil {
		return "", errors.New("user is required")
	}

	now := s.now()
	claims := &service.Claims{
		Email:    user.Email,
		Username: user.Username,
		Type:     service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	return s.sign(claims, s.accessSecret)
}

// IssueRefreshToken embeds only the user id plus a random jti, so rotating
// twice within one second still yields different values.
func (s *jwtService) IssueRefreshToken(user *entity.User) (string, error) {
	if user == nil {
		return "", errors.New("user is required")
	}

	now := s.now()
	claims := &service.Claims{
		Type: service.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}

	return s.sign(claims, s.refreshSecret)
}

// VerifyAccessToken checks an access token against the access key.
func (s *jwtService) VerifyAccessToken(token string) (*service.Claims, error) {
	return s.verify(token, s.accessSecret, service.TokenTypeAccess)
}

// VerifyRefreshToken checks a refresh token against the refresh key.
func (s *jwtService) VerifyRefreshToken(token string) (*service.Claims, error) {
	return s.verify(token, s.refreshSecret, service.TokenTypeRefresh)
}

func (s *jwtService) sign(claims *service.Claims, secret []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

func (s *jwtService) verify(token string, secret []byte, tokenType string) (*service.Claims, error) {
	if token == "" {
		return nil, service.ErrTokenInvalid
	}

	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}

	if claims.Type != tokenType {
		return nil, errors.Wrapf(service.ErrTokenInvalid, "unexpected token type %q", claims.Type)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "subject is not a user id")
	}
	claims.UserID = userID

	return claims, nil
}
