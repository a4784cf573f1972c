package auth

import (
	"testing"
	"time"

	"vidhub/config"
	"vidhub/internal/domain/entity"
	"vidhub/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.Token.AccessTTL = 15 * time.Minute
	cfg.Token.RefreshTTL = 10 * 24 * time.Hour

	return cfg
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestJWTService(t *testing.T) (*jwtService, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := newJWTService(newTestTokenConfig(), WithClock(clock.Now))
	require.NoError(t, err)

	return svc, clock
}

func newTestTokenUser() *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestJWTService_IssueAndVerifyAccessToken(t *testing.T) {
	svc, _ := newTestJWTService(t)
	user := newTestTokenUser()

	token, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
}

func TestJWTService_IssueAndVerifyRefreshToken(t *testing.T) {
	svc, _ := newTestJWTService(t)
	user := newTestTokenUser()

	token, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Username)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, service.TokenTypeRefresh, claims.Type)
}

func TestJWTService_AccessTokenIsDeterministic(t *testing.T) {
	svc, _ := newTestJWTService(t)
	user := newTestTokenUser()

	first, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	second, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestJWTService_RefreshTokensAreUnique(t *testing.T) {
	svc, _ := newTestJWTService(t)
	user := newTestTokenUser()

	first, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)
	second, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_Expiry(t *testing.T) {
	svc, clock := newTestJWTService(t)
	user := newTestTokenUser()

	access, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	clock.now = clock.now.Add(16 * time.Minute)

	_, err = svc.VerifyAccessToken(access)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))

	// The refresh token outlives the access token.
	_, err = svc.VerifyRefreshToken(refresh)
	require.NoError(t, err)

	clock.now = clock.now.Add(10 * 24 * time.Hour)

	_, err = svc.VerifyRefreshToken(refresh)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTService_InvalidTokens(t *testing.T) {
	svc, _ := newTestJWTService(t)
	user := newTestTokenUser()

	access, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	otherCfg := newTestTokenConfig()
	otherCfg.SecretKey.Access = "another_access_secret"
	other, err := newJWTService(otherCfg)
	require.NoError(t, err)
	forged, err := other.IssueAccessToken(user)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  user.ID.String(),
		"type": service.TokenTypeAccess,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		verify func(string) (*service.Claims, error)
		token  string
	}{
		{name: "empty", verify: svc.VerifyAccessToken, token: ""},
		{name: "garbage", verify: svc.VerifyAccessToken, token: "clearly-not-a-jwt-token-format"},
		{name: "wrong key", verify: svc.VerifyAccessToken, token: forged},
		{name: "refresh token as access", verify: svc.VerifyAccessToken, token: refresh},
		{name: "access token as refresh", verify: svc.VerifyRefreshToken, token: access},
		{name: "none algorithm", verify: svc.VerifyAccessToken, token: noneToken},
		{name: "tampered", verify: svc.VerifyAccessToken, token: access[:len(access)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.verify(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, service.ErrTokenInvalid), "got %v", err)
		})
	}
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	cfg := newTestTokenConfig()
	cfg.SecretKey.Refresh = ""

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}
