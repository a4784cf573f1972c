package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	err := ErrUserAlreadyExists.WrapMessage("username taken")

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "USER_ALREADY_EXISTS", appErr.ErrorCode())
	assert.True(t, stderrors.Is(err, ErrUserAlreadyExists))
}

func TestBaseError_WithDetailsMatchesSentinel(t *testing.T) {
	err := ErrValidationFailed.WithDetails("username is required")

	assert.True(t, stderrors.Is(err, ErrValidationFailed))
	assert.False(t, stderrors.Is(err, ErrAvatarRequired))
	assert.Equal(t, "username is required", err.Details())
	assert.Equal(t, "All fields are required", err.Message())
}

func TestDatabaseExecuteError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "update user")

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.NotContains(t, err.Message(), "connection reset")
}
