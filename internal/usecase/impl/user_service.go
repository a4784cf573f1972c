package impl

import (
	"context"
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

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	media    service.MediaStorage
	events   service.AuthEventRecorder
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Media    service.MediaStorage
	Events   service.AuthEventRecorder
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		media:    params.Media,
		events:   params.Events,
		logger:   params.Logger,
	}
}

// Register orchestrates the complete registration process. Checks run in a
// fixed order: required fields, uniqueness, avatar presence, uploads, then
// the insert.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	user, err := srv.register(ctx, input)
	srv.events.RecordAuthEvent(service.OperationRegister, outcomeOf(err))

	return user, err
}

func (srv *userService) register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	logger := loggerFor(ctx, srv.logger)

	fullName := strings.TrimSpace(input.FullName)
	username := entity.NormalizeIdentifier(input.Username)
	email := entity.NormalizeIdentifier(input.Email)

	if fullName == "" || username == "" || email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("all fields are required")
	}
	for _, field := range []struct {
		name, value string
		limit       int
	}{
		{"username", username, entity.MaxUsernameLength},
		{"email", email, entity.MaxEmailLength},
		{"full name", fullName, entity.MaxFullNameLength},
	} {
		if err := checkLength(field.name, field.value, field.limit); err != nil {
			return nil, err
		}
	}

	logger.Debug("Starting registration", slog.String("username", username), slog.String("email", email))

	_, err := srv.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already taken")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check for an existing user")
	}

	if input.AvatarPath == "" {
		return nil, domainerrors.ErrAvatarRequired
	}

	avatarURL, err := srv.media.Upload(ctx, input.AvatarPath)
	if err != nil {
		logger.Warn("Avatar upload failed", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrAvatarUploadFailed, err.Error())
	}

	var coverURL string
	if input.CoverImagePath != "" {
		coverURL, err = srv.media.Upload(ctx, input.CoverImagePath)
		if err != nil {
			logger.Warn("Cover image upload failed, registering without it", slog.String("username", username), slog.Any("error", err))
			coverURL = ""
		}
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		PasswordHash: hash,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("user inserted concurrently")
		}
		logger.Error("Failed to create user", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, err.Error())
	}

	logger.Info("User registered", slog.Any("userID", user.ID))

	return user, nil
}
