// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "vidhub/internal/delivery/context"
	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/domain/repository"
	"vidhub/internal/domain/service"
	"vidhub/internal/errors"
	"vidhub/internal/usecase"

	"github.com/google/uuid"
)

// checkLength rejects values longer than limit characters.
func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("%s must be at most %d characters", field, limit))
	}

	return nil
}

// loggerFor returns the request-scoped logger if available, otherwise fallback.
func loggerFor(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, fallback)
}

// outcomeOf turns the result of an operation into a metrics label.
func outcomeOf(err error) string {
	if err == nil {
		return service.OutcomeSuccess
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(appErr.ErrorCode())
	}

	return "error"
}

// updateUser applies a partial update and maps store errors to domain errors.
func updateUser(ctx context.Context, repo repository.UserRepository, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	updated, err := repo.Update(ctx, id, update)
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, repository.ErrUserNotFound):
		return nil, domainerrors.ErrUserNotFound.WrapMessage("user disappeared before update")
	case errors.Is(err, repository.ErrDuplicateUser):
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("update collides with another user")
	default:
		return nil, errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
	}
}

// issuePair mints a new access/refresh token pair for user.
func issuePair(tokens service.TokenService, user *entity.User) (*usecase.TokenPair, error) {
	access, err := tokens.IssueAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, err.Error())
	}

	refresh, err := tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, err.Error())
	}

	return &usecase.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
