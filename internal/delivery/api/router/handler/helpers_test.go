package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidhub/config"
	"vidhub/internal/delivery/api/cookie"
	apimiddleware "vidhub/internal/delivery/api/middleware"
	"vidhub/internal/delivery/api/validator"
	deliverycontext "vidhub/internal/delivery/context"
	"vidhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cookie = config.CookieConfig{Secure: true, SameSite: "lax", Path: "/"}
	cfg.Token = config.TokenConfig{AccessTTL: 15 * time.Minute, RefreshTTL: 240 * time.Hour}
	cfg.Media = config.MediaConfig{TempDir: t.TempDir(), MaxFileSize: 1 << 20}

	return cfg
}

// newTestEcho mirrors the parts of the server setup the handlers rely on.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(newDiscardLogger()).HandleHTTPError

	return e
}

// withUser plays the Auth Gate for handlers mounted behind it.
func withUser(user *entity.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deliverycontext.SetUser(c, user)

			return next(c)
		}
	}
}

func testUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice Doe",
		Avatar:       "https://cdn.example.com/a.png",
		PasswordHash: "$2a$10$hash",
		RefreshToken: "stored-refresh",
	}
}

type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func jsonRequest(method, target string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

type formFile struct {
	field, name string
	content     []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())

	return req
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, ck := range rec.Result().Cookies() {
		out[ck.Name] = ck
	}

	return out
}

func newJar(cfg *config.Config) *cookie.Jar {
	return cookie.NewJar(cfg)
}
