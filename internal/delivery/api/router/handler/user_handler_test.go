package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"vidhub/internal/delivery/api/cookie"
	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	mockUsecase "vidhub/internal/mocks/usecase"
	"vidhub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userHandlerFixture struct {
	users    *mockUsecase.MockUserUsecase
	sessions *mockUsecase.MockSessionUsecase
	profiles *mockUsecase.MockProfileUsecase
	tempDir  string
	handler  *UserHandler
}

func newUserHandlerFixture(t *testing.T) *userHandlerFixture {
	cfg := newTestConfig(t)
	f := &userHandlerFixture{
		users:    mockUsecase.NewMockUserUsecase(t),
		sessions: mockUsecase.NewMockSessionUsecase(t),
		profiles: mockUsecase.NewMockProfileUsecase(t),
		tempDir:  cfg.Media.TempDir,
	}
	f.handler = NewUserHandler(UserHandlerParams{
		Users:    f.users,
		Sessions: f.sessions,
		Profiles: f.profiles,
		Jar:      newJar(cfg),
		Uploads:  NewUploadStager(cfg, newDiscardLogger()),
		Logger:   newDiscardLogger(),
	})

	return f
}

func assertTempDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged uploads must be removed")
}

func TestUserHandler_Register(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.POST("/register", f.handler.Register)

	created := testUser()
	f.users.EXPECT().Register(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, input *usecase.RegisterInput) (*entity.User, error) {
			assert.Equal(t, "Alice Doe", input.FullName)
			assert.Equal(t, "alice", input.Username)
			assert.Equal(t, "alice@example.com", input.Email)
			assert.Equal(t, "secret", input.Password)
			require.FileExists(t, input.AvatarPath)
			assert.Empty(t, input.CoverImagePath)

			return created, nil
		})

	req := multipartRequest(t, http.MethodPost, "/register", map[string]string{
		"fullname": "Alice Doe",
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret",
	}, formFile{field: "avatar", name: "me.png", content: []byte("png")})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.NotContains(t, rec.Body.String(), "$2a$10$hash")
	assert.NotContains(t, rec.Body.String(), "stored-refresh")
	assertTempDirEmpty(t, f.tempDir)
}

func TestUserHandler_RegisterRejectsSecondAvatar(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.POST("/register", f.handler.Register)

	req := multipartRequest(t, http.MethodPost, "/register", map[string]string{"username": "alice"},
		formFile{field: "avatar", name: "a.png", content: []byte("a")},
		formFile{field: "avatar", name: "b.png", content: []byte("b")},
	)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeEnvelope(t, rec).Error.Code)
	assertTempDirEmpty(t, f.tempDir)
}

func TestUserHandler_RegisterPropagatesConflict(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.POST("/register", f.handler.Register)

	f.users.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists)

	req := multipartRequest(t, http.MethodPost, "/register", map[string]string{"username": "alice"},
		formFile{field: "avatar", name: "a.png", content: []byte("a")},
		formFile{field: "coverImage", name: "c.png", content: []byte("c")},
	)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "USER_ALREADY_EXISTS", env.Error.Code)
	assertTempDirEmpty(t, f.tempDir)
}

func TestUserHandler_Login(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.POST("/login", f.handler.Login)

	user := testUser()
	f.sessions.EXPECT().Login(mock.Anything, &usecase.LoginInput{Username: "alice", Password: "secret"}).
		Return(&usecase.LoginOutput{
			User:      user,
			TokenPair: usecase.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		}, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/login", map[string]string{
		"username": "alice",
		"password": "secret",
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data loginResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, "access", data.AccessToken)
	assert.Equal(t, "refresh", data.RefreshToken)
	assert.Equal(t, "alice", data.User.Username)
	assert.NotContains(t, rec.Body.String(), "$2a$10$hash")

	cookies := cookiesByName(rec)
	require.Contains(t, cookies, cookie.AccessToken)
	require.Contains(t, cookies, cookie.RefreshToken)
	assert.Equal(t, "access", cookies[cookie.AccessToken].Value)
	assert.Equal(t, "refresh", cookies[cookie.RefreshToken].Value)
	assert.True(t, cookies[cookie.RefreshToken].HttpOnly)
}

func TestUserHandler_LoginRequiresPassword(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.POST("/login", f.handler.Login)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/login", map[string]string{"username": "alice"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "password")
}

func TestUserHandler_LoginInvalidCredentials(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.POST("/login", f.handler.Login)

	f.sessions.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	}))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeEnvelope(t, rec).Error.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestUserHandler_RefreshTokenPrefersCookie(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.POST("/refresh-token", f.handler.RefreshToken)

	f.sessions.EXPECT().Refresh(mock.Anything, "from-cookie").
		Return(&usecase.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil)

	req := jsonRequest(http.MethodPost, "/refresh-token", map[string]string{"refreshToken": "from-body"})
	req.AddCookie(&http.Cookie{Name: cookie.RefreshToken, Value: "from-cookie"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "r2", cookiesByName(rec)[cookie.RefreshToken].Value)
}

func TestUserHandler_RefreshTokenFromBody(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.POST("/refresh-token", f.handler.RefreshToken)

	f.sessions.EXPECT().Refresh(mock.Anything, "from-body").Return(nil, domainerrors.ErrRefreshTokenStale)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/refresh-token", map[string]string{"refreshToken": "from-body"}))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "REFRESH_TOKEN_STALE", env.Error.Code)
	assert.Empty(t, env.Error.Details)
}

func TestUserHandler_LogoutClearsCookies(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	user := testUser()
	e.POST("/logout", f.handler.Logout, withUser(user))

	f.sessions.EXPECT().Logout(mock.Anything, user).Return(nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := cookiesByName(rec)
	require.Contains(t, cookies, cookie.AccessToken)
	assert.Empty(t, cookies[cookie.AccessToken].Value)
	assert.Negative(t, cookies[cookie.AccessToken].MaxAge)
}

func TestUserHandler_RequiresGateUser(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.GET("/current-user", f.handler.GetCurrentUser)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/current-user", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, rec).Error.Code)
}

func TestUserHandler_GetCurrentUser(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.GET("/current-user", f.handler.GetCurrentUser, withUser(testUser()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/current-user", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var data entity.PublicUser
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, "alice", data.Username)
	assert.NotContains(t, rec.Body.String(), "stored-refresh")
}

func TestUserHandler_ChangePassword(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	user := testUser()
	e.POST("/change-password", f.handler.ChangePassword, withUser(user))

	f.sessions.EXPECT().ChangePassword(mock.Anything, user,
		&usecase.ChangePasswordInput{OldPassword: "old", NewPassword: "new"}).Return(nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/change-password", map[string]string{
		"oldPassword": "old",
		"newPassword": "new",
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Password changed successfully", decodeEnvelope(t, rec).Message)
}

func TestUserHandler_UpdateAccountRejectsBadEmail(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.PATCH("/update-account", f.handler.UpdateAccount, withUser(testUser()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPatch, "/update-account", map[string]string{"email": "nope"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeEnvelope(t, rec).Error.Code)
}

func TestUserHandler_UpdateAccount(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	user := testUser()
	e.PATCH("/update-account", f.handler.UpdateAccount, withUser(user))

	updated := testUser()
	updated.FullName = "Alice B"
	f.profiles.EXPECT().UpdateAccount(mock.Anything, user, mock.Anything).
		RunAndReturn(func(_ context.Context, _ *entity.User, input *usecase.UpdateAccountInput) (*entity.User, error) {
			require.NotNil(t, input.FullName)
			assert.Equal(t, "Alice B", *input.FullName)
			assert.Nil(t, input.Email)

			return updated, nil
		})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPatch, "/update-account", map[string]string{"fullName": "Alice B"}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"fullName":"Alice B"`)
}

func TestUserHandler_UpdateAvatar(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	user := testUser()
	e.PATCH("/avatar", f.handler.UpdateAvatar, withUser(user))

	f.profiles.EXPECT().UpdateAvatar(mock.Anything, user, mock.Anything).
		RunAndReturn(func(_ context.Context, u *entity.User, localPath string) (*entity.User, error) {
			assert.True(t, strings.HasSuffix(localPath, "new.png"), localPath)
			require.FileExists(t, localPath)

			return u, nil
		})

	req := multipartRequest(t, http.MethodPatch, "/avatar", nil,
		formFile{field: "avatar", name: "new.png", content: []byte("png")})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assertTempDirEmpty(t, f.tempDir)
}

func TestUserHandler_UpdateCoverImageRequiresMultipart(t *testing.T) {
	f := newUserHandlerFixture(t)
	e := newTestEcho()
	e.PATCH("/cover-image", f.handler.UpdateCoverImage, withUser(testUser()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPatch, "/cover-image", map[string]string{}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeEnvelope(t, rec).Error.Code)
}
