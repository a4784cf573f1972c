// Package middleware holds the echo middleware specific to the API.
package middleware

import (
	"strings"

	"vidhub/internal/delivery/api/cookie"
	deliverycontext "vidhub/internal/delivery/context"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the Auth Gate in front of protected routes.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate resolves the caller from the accessToken cookie or the
// Authorization bearer header and stores the user for the handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := accessTokenFrom(c)
		if token == "" {
			return domainerrors.ErrUnauthorized
		}

		user, err := m.sessions.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}

func accessTokenFrom(c echo.Context) string {
	if ck, err := c.Cookie(cookie.AccessToken); err == nil && ck.Value != "" {
		return ck.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}

	return strings.TrimSpace(token)
}
