// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"vidhub/internal/delivery/api/cookie"
	"vidhub/internal/delivery/api/response"
	deliverycontext "vidhub/internal/delivery/context"
	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/errors"
	"vidhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type updateAccountRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type loginResponse struct {
	User         *entity.PublicUser `json:"user"`
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	users    usecase.UserUsecase
	sessions usecase.SessionUsecase
	profiles usecase.ProfileUsecase
	jar      *cookie.Jar
	uploads  *UploadStager
	logger   *slog.Logger
}

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	Users    usecase.UserUsecase
	Sessions usecase.SessionUsecase
	Profiles usecase.ProfileUsecase
	Jar      *cookie.Jar
	Uploads  *UploadStager
	Logger   *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		users:    params.Users,
		sessions: params.Sessions,
		profiles: params.Profiles,
		jar:      params.Jar,
		uploads:  params.Uploads,
		logger:   params.Logger,
	}
}

// Register handles the multipart registration request. Staged files are
// removed whatever the outcome.
func (h *UserHandler) Register(c echo.Context) error {
	avatarPath, err := h.uploads.Stage(c, "avatar")
	defer h.uploads.Cleanup(avatarPath)
	if err != nil {
		return err
	}

	coverPath, err := h.uploads.Stage(c, "coverImage")
	defer h.uploads.Cleanup(coverPath)
	if err != nil {
		return err
	}

	fullName := c.FormValue("fullName")
	if strings.TrimSpace(fullName) == "" {
		fullName = c.FormValue("fullname")
	}

	user, err := h.users.Register(c.Request().Context(), &usecase.RegisterInput{
		FullName:       fullName,
		Email:          c.FormValue("email"),
		Username:       c.FormValue("username"),
		Password:       c.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user.Public(), "User registered successfully")
}

// Login handles the user login request and sets the session cookies.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.sessions.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.jar.SetTokens(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, loginResponse{
		User:         output.User.Public(),
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "User logged in successfully")
}

// Logout clears the stored refresh token and the session cookies.
func (h *UserHandler) Logout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), user); err != nil {
		return errors.WithStack(err)
	}

	h.jar.Clear(c)

	return response.Success(c, http.StatusOK, struct{}{}, "User logged out")
}

// RefreshToken rotates the token pair. The token comes from the
// refreshToken cookie, or the JSON body when the cookie is absent.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	token := ""
	if ck, err := c.Cookie(cookie.RefreshToken); err == nil {
		token = ck.Value
	}
	if token == "" {
		var req refreshRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
		}
		token = req.RefreshToken
	}

	pair, err := h.sessions.Refresh(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	h.jar.SetTokens(c, pair.AccessToken, pair.RefreshToken)

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword handles the password change of the current user.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.sessions.ChangePassword(c.Request().Context(), user, &usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, struct{}{}, "Password changed successfully")
}

// GetCurrentUser returns the authenticated user.
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user.Public(), "Current user fetched successfully")
}

// UpdateAccount changes the full name and/or email of the current user.
func (h *UserHandler) UpdateAccount(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account details")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.profiles.UpdateAccount(c.Request().Context(), user, &usecase.UpdateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated.Public(), "Account details updated successfully")
}

// UpdateAvatar replaces the avatar of the current user.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	localPath, err := h.uploads.Stage(c, "avatar")
	defer h.uploads.Cleanup(localPath)
	if err != nil {
		return err
	}

	updated, err := h.profiles.UpdateAvatar(c.Request().Context(), user, localPath)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated.Public(), "Avatar image updated successfully")
}

// UpdateCoverImage replaces the cover image of the current user.
func (h *UserHandler) UpdateCoverImage(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	localPath, err := h.uploads.Stage(c, "coverImage")
	defer h.uploads.Cleanup(localPath)
	if err != nil {
		return err
	}

	updated, err := h.profiles.UpdateCoverImage(c.Request().Context(), user, localPath)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated.Public(), "Cover image updated successfully")
}

// currentUser returns the user resolved by the Auth Gate.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := deliverycontext.GetUser(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}
