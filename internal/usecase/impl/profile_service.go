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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo repository.UserRepository
	media    service.MediaStorage
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Media    service.MediaStorage
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
		media:    params.Media,
		logger:   params.Logger,
	}
}

// UpdateAccount changes the full name and/or email of user.
func (srv *profileService) UpdateAccount(ctx context.Context, user *entity.User, input *usecase.UpdateAccountInput) (*entity.User, error) {
	if user == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	var update entity.UserUpdate
	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("full name cannot be empty")
		}
		if err := checkLength("full name", fullName, entity.MaxFullNameLength); err != nil {
			return nil, err
		}
		update.FullName = &fullName
	}
	if input.Email != nil {
		email := entity.NormalizeIdentifier(*input.Email)
		if email == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("email cannot be empty")
		}
		if err := checkLength("email", email, entity.MaxEmailLength); err != nil {
			return nil, err
		}
		update.Email = &email
	}
	if update.IsEmpty() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("full name or email is required")
	}

	updated, err := updateUser(ctx, srv.userRepo, user.ID, update)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update account details")
	}

	loggerFor(ctx, srv.logger).Info("Account details updated", slog.Any("userID", user.ID))

	return updated, nil
}

// UpdateAvatar uploads the file at localPath and makes it the avatar of user.
func (srv *profileService) UpdateAvatar(ctx context.Context, user *entity.User, localPath string) (*entity.User, error) {
	if user == nil {
		return nil, domainerrors.ErrUnauthorized
	}
	if localPath == "" {
		return nil, domainerrors.ErrAvatarRequired
	}

	url, err := srv.media.Upload(ctx, localPath)
	if err != nil {
		loggerFor(ctx, srv.logger).Warn("Avatar upload failed", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrAvatarUploadFailed, err.Error())
	}

	updated, err := updateUser(ctx, srv.userRepo, user.ID, entity.UserUpdate{Avatar: &url})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store avatar")
	}

	return updated, nil
}

// UpdateCoverImage uploads the file at localPath and makes it the cover
// image of user. Unlike registration, a failed upload is an error here.
func (srv *profileService) UpdateCoverImage(ctx context.Context, user *entity.User, localPath string) (*entity.User, error) {
	if user == nil {
		return nil, domainerrors.ErrUnauthorized
	}
	if localPath == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("cover image file is missing")
	}

	url, err := srv.media.Upload(ctx, localPath)
	if err != nil {
		loggerFor(ctx, srv.logger).Warn("Cover image upload failed", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrCoverUploadFailed, err.Error())
	}

	updated, err := updateUser(ctx, srv.userRepo, user.ID, entity.UserUpdate{CoverImage: &url})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store cover image")
	}

	return updated, nil
}
