package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/domain/repository"
	"vidhub/internal/domain/service"
	"vidhub/internal/errors"
	"vidhub/internal/usecase"

	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	events   service.AuthEventRecorder
	logger   *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Events       service.AuthEventRecorder
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokens:   params.TokenService,
		events:   params.Events,
		logger:   params.Logger,
	}
}

// Login verifies the credentials, mints a pair and stores the refresh token,
// replacing any previous one.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	out, err := srv.login(ctx, input)
	srv.events.RecordAuthEvent(service.OperationLogin, outcomeOf(err))

	return out, err
}

func (srv *sessionService) login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	logger := loggerFor(ctx, srv.logger)

	username := entity.NormalizeIdentifier(input.Username)
	email := entity.NormalizeIdentifier(input.Email)
	if username == "" && email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username or email is required")
	}

	user, err := srv.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	// bcrypt is CPU-bound; nothing is held while it runs.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		logger.Warn("Login failed", slog.Any("userID", user.ID), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	pair, err := issuePair(srv.tokens, user)
	if err != nil {
		return nil, err
	}

	loggedIn, err := updateUser(ctx, srv.userRepo, user.ID, entity.UserUpdate{RefreshToken: &pair.RefreshToken})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	logger.Debug("User logged in successfully", slog.Any("userID", loggedIn.ID))

	return &usecase.LoginOutput{User: loggedIn, TokenPair: *pair}, nil
}

// Logout clears the stored refresh token. A user that no longer exists has
// nothing to clear.
func (srv *sessionService) Logout(ctx context.Context, user *entity.User) error {
	err := srv.logout(ctx, user)
	srv.events.RecordAuthEvent(service.OperationLogout, outcomeOf(err))

	return err
}

func (srv *sessionService) logout(ctx context.Context, user *entity.User) error {
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	cleared := ""
	if _, err := updateUser(ctx, srv.userRepo, user.ID, entity.UserUpdate{RefreshToken: &cleared}); err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to clear refresh token")
	}

	loggerFor(ctx, srv.logger).Info("Successfully logged out", slog.Any("userID", user.ID))

	return nil
}

// Refresh rotates the token pair. The stored token is only replaced after
// every check has passed.
func (srv *sessionService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	pair, err := srv.refresh(ctx, refreshToken)
	srv.events.RecordAuthEvent(service.OperationRefresh, outcomeOf(err))

	return pair, err
}

func (srv *sessionService) refresh(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	logger := loggerFor(ctx, srv.logger)

	if strings.TrimSpace(refreshToken) == "" {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("refresh token missing")
	}

	claims, err := srv.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, err.Error())
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidRefreshToken.WrapMessage("refresh token names an unknown user")
		}

		return nil, errors.Wrap(err, "failed to load user for refresh")
	}

	if user.RefreshToken == "" || subtle.ConstantTimeCompare([]byte(refreshToken), []byte(user.RefreshToken)) != 1 {
		logger.Warn("Stale refresh token presented", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrRefreshTokenStale.WrapMessage("refresh token does not match the stored one")
	}

	pair, err := issuePair(srv.tokens, user)
	if err != nil {
		return nil, err
	}

	if _, err := updateUser(ctx, srv.userRepo, user.ID, entity.UserUpdate{RefreshToken: &pair.RefreshToken}); err != nil {
		return nil, errors.Wrap(err, "failed to store rotated refresh token")
	}

	logger.Debug("Access token refreshed", slog.Any("userID", user.ID))

	return pair, nil
}

// ChangePassword verifies the old password against the stored hash and
// replaces it.
func (srv *sessionService) ChangePassword(ctx context.Context, user *entity.User, input *usecase.ChangePasswordInput) error {
	err := srv.changePassword(ctx, user, input)
	srv.events.RecordAuthEvent(service.OperationChangePassword, outcomeOf(err))

	return err
}

func (srv *sessionService) changePassword(ctx context.Context, user *entity.User, input *usecase.ChangePasswordInput) error {
	if user == nil {
		return domainerrors.ErrUnauthorized
	}
	if input.OldPassword == "" || strings.TrimSpace(input.NewPassword) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("old and new password are required")
	}

	stored, err := srv.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("change password")
		}

		return errors.Wrap(err, "failed to load user for password change")
	}

	if !srv.hasher.Check(input.OldPassword, stored.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WrapMessage("invalid old password")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	if _, err := updateUser(ctx, srv.userRepo, user.ID, entity.UserUpdate{PasswordHash: &hash}); err != nil {
		return errors.Wrap(err, "failed to store new password")
	}

	loggerFor(ctx, srv.logger).Info("Password changed", slog.Any("userID", user.ID))

	return nil
}

// Authenticate resolves the owner of an access token. Missing tokens report
// ErrUnauthorized; bad, expired or orphaned tokens report ErrInvalidAccessToken.
func (srv *sessionService) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	user, err := srv.authenticate(ctx, accessToken)
	if err != nil {
		srv.events.RecordAuthEvent(service.OperationAuthenticate, outcomeOf(err))
	}

	return user, err
}

func (srv *sessionService) authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("access token missing")
	}

	claims, err := srv.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidAccessToken, err.Error())
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidAccessToken.WrapMessage("access token names an unknown user")
		}

		return nil, errors.Wrap(err, "failed to load user for access token")
	}

	return user, nil
}
