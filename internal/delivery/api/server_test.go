package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"vidhub/config"
	"vidhub/internal/delivery/api/cookie"
	apimiddleware "vidhub/internal/delivery/api/middleware"
	"vidhub/internal/delivery/api/router"
	"vidhub/internal/delivery/api/router/handler"
	"vidhub/internal/delivery/middleware"
	"vidhub/internal/domain/entity"
	"vidhub/internal/domain/service"
	"vidhub/internal/infra/auth"
	"vidhub/internal/infra/media"
	"vidhub/internal/infra/metrics"
	"vidhub/internal/infra/persistence/memory"
	"vidhub/internal/infra/qrcode"
	"vidhub/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob/fileblob"
)

// 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type testAPI struct {
	echo    *echo.Echo
	metrics *metrics.Metrics
}

// newTestAPI assembles the real stack on top of the memory store and a
// file bucket.
func newTestAPI(t *testing.T, rateLimit *config.RateLimitConfig) *testAPI {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "25M"
	cfg.HTTP.CORSAllowOrigins = []string{"http://localhost:5173"}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"
	cfg.Token = config.TokenConfig{AccessTTL: 15 * time.Minute, RefreshTTL: time.Hour}
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}
	cfg.Cookie = config.CookieConfig{Secure: true, SameSite: "lax", Path: "/"}
	cfg.Media = config.MediaConfig{TempDir: t.TempDir(), MaxFileSize: 1 << 20, KeyPrefix: "uploads"}
	cfg.RateLimit = rateLimit
	cfg.Metrics = config.MetricsConfig{Enabled: true, Path: "/metrics"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()

	bucket, err := fileblob.OpenBucket(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bucket.Close() })
	storage := media.NewBucketStorage(bucket, cfg.Media)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg)
	users := memory.NewUserRepository()
	subs := memory.NewSubscriptionRepository()

	sessions := impl.NewSessionService(impl.SessionServiceParams{
		UserRepo: users, Hasher: hasher, TokenService: tokens, Events: m, Logger: logger,
	})

	limiter, err := middleware.NewRateLimiter(middleware.RateLimiterParams{
		Lc: fxtest.NewLifecycle(t), Config: cfg, Metrics: m, Logger: logger,
	})
	require.NoError(t, err)

	var mediaStorage service.MediaStorage = storage
	routerParams := router.RouterParams{
		UserHandler: handler.NewUserHandler(handler.UserHandlerParams{
			Users: impl.NewUserService(impl.UserServiceParams{
				UserRepo: users, Hasher: hasher, Media: mediaStorage, Events: m, Logger: logger,
			}),
			Sessions: sessions,
			Profiles: impl.NewProfileService(impl.ProfileServiceParams{
				UserRepo: users, Media: mediaStorage, Logger: logger,
			}),
			Jar:     cookie.NewJar(cfg),
			Uploads: handler.NewUploadStager(cfg, logger),
			Logger:  logger,
		}),
		SubscriptionHandler: handler.NewSubscriptionHandler(impl.NewSubscriptionService(impl.SubscriptionServiceParams{
			UserRepo: users, SubscriptionRepo: subs, QRCodes: qrcode.NewQRCodeService(cfg), Logger: logger,
		})),
		MediaHandler:   handler.NewMediaHandler(storage),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(sessions),
		RateLimiter:    limiter,
		Metrics:        m,
		Config:         cfg,
	}

	return &testAPI{echo: newEcho(cfg, logger, m, routerParams), metrics: m}
}

type apiEnvelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func (a *testAPI) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	if req.RemoteAddr == "" {
		req.RemoteAddr = "192.0.2.1:40000"
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var env apiEnvelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}

	return rec, env
}

func jsonBody(method, target string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func registerRequest(t *testing.T, fields map[string]string, withAvatar bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if withAvatar {
		part, err := writer.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(pngPixel)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())

	return req
}

var aliceForm = map[string]string{
	"fullName": "Alice Doe",
	"email":    "Alice@Example.com",
	"username": "Alice",
	"password": "correct horse",
}

type tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func TestAPI_SessionLifecycle(t *testing.T) {
	api := newTestAPI(t, nil)

	// register
	rec, env := api.do(t, registerRequest(t, aliceForm, true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, env.Meta.RequestID)

	var registered struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.Equal(t, "alice", registered.Username)
	assert.Equal(t, "alice@example.com", registered.Email)
	assert.True(t, strings.HasPrefix(registered.Avatar, "/uploads/"), registered.Avatar)
	assert.NotContains(t, rec.Body.String(), "password")

	// the avatar is served back from the bucket
	rec, _ = api.do(t, httptest.NewRequest(http.MethodGet, "/media"+registered.Avatar, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngPixel, rec.Body.Bytes())

	// login
	rec, env = api.do(t, jsonBody(http.MethodPost, "/api/v1/users/login", map[string]string{
		"username": "alice",
		"password": "correct horse",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.Len(t, rec.Result().Cookies(), 2)

	var first tokens
	require.NoError(t, json.Unmarshal(env.Data, &first))
	require.NotEmpty(t, first.RefreshToken)

	// the gate accepts the bearer access token
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+first.AccessToken)
	rec, _ = api.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// refresh through the cookie
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: cookie.RefreshToken, Value: first.RefreshToken})
	rec, env = api.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var second tokens
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the rotated-out token is stale
	rec, env = api.do(t, jsonBody(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{
		"refreshToken": first.RefreshToken,
	}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "REFRESH_TOKEN_STALE", env.Error.Code)

	// logout invalidates the current refresh token too
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	req.AddCookie(&http.Cookie{Name: cookie.AccessToken, Value: second.AccessToken})
	rec, _ = api.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = api.do(t, jsonBody(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{
		"refreshToken": second.RefreshToken,
	}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "REFRESH_TOKEN_STALE", env.Error.Code)

	events := api.metrics.AuthEvents()
	assert.InDelta(t, 1, testutil.ToFloat64(events.WithLabelValues(service.OperationRegister, service.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(events.WithLabelValues(service.OperationRefresh, service.OutcomeSuccess)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(events.WithLabelValues(service.OperationRefresh, "refresh_token_stale")), 0)
}

func TestAPI_RegisterErrors(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, env := api.do(t, registerRequest(t, aliceForm, false))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "AVATAR_REQUIRED", env.Error.Code)

	rec, _ = api.do(t, registerRequest(t, aliceForm, true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	dup := map[string]string{
		"fullName": "Other",
		"email":    "other@example.com",
		"username": "ALICE",
		"password": "pw",
	}
	rec, env = api.do(t, registerRequest(t, dup, true))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", env.Error.Code)
}

func TestAPI_GateRejectsMissingToken(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, env := api.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec, env = api.do(t, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_ACCESS_TOKEN", env.Error.Code)
}

func TestAPI_RateLimitsAuthEndpoints(t *testing.T) {
	api := newTestAPI(t, &config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1})

	login := func() *httptest.ResponseRecorder {
		rec, _ := api.do(t, jsonBody(http.MethodPost, "/api/v1/users/login", map[string]string{
			"username": "nobody",
			"password": "pw",
		}))

		return rec
	}

	assert.Equal(t, http.StatusNotFound, login().Code)

	rec := login()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")

	// gated routes are not throttled
	rec, _ = api.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, env := api.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, _ = api.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `vidhub_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func (a *testAPI) registerAndLogin(t *testing.T, username string) (id string, accessToken string) {
	t.Helper()

	rec, env := a.do(t, registerRequest(t, map[string]string{
		"fullName": username,
		"email":    username + "@example.com",
		"username": username,
		"password": "pw-" + username,
	}, true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))

	rec, env = a.do(t, jsonBody(http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    username + "@example.com",
		"password": "pw-" + username,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pair tokens
	require.NoError(t, json.Unmarshal(env.Data, &pair))

	return user.ID, pair.AccessToken
}

func authed(req *http.Request, accessToken string) *http.Request {
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)

	return req
}

func TestAPI_Subscriptions(t *testing.T) {
	api := newTestAPI(t, nil)

	bobID, _ := api.registerAndLogin(t, "bob")
	_, aliceToken := api.registerAndLogin(t, "alice")

	// toggle on
	rec, env := api.do(t, authed(httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/c/"+bobID, nil), aliceToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"subscribed":true}`, string(env.Data))

	rec, env = api.do(t, authed(httptest.NewRequest(http.MethodGet, "/api/v1/users/c/BOB", nil), aliceToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile struct {
		SubscribersCount int  `json:"subscribersCount"`
		IsSubscribed     bool `json:"isSubscribed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, 1, profile.SubscribersCount)
	assert.True(t, profile.IsSubscribed)

	rec, env = api.do(t, authed(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/c/"+bobID, nil), aliceToken))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"username":"alice"`)

	// toggle off
	rec, env = api.do(t, authed(httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/c/"+bobID, nil), aliceToken))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subscribed":false}`, string(env.Data))

	// the share code renders and is accepted back
	rec, _ = api.do(t, authed(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/c/"+bobID+"/qr", nil), aliceToken))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))

	payload := `{"channel_id":"` + bobID + `","type":"channel_subscription"}`
	rec, env = api.do(t, authed(jsonBody(http.MethodPost, "/api/v1/subscriptions/qr", map[string]string{"qrData": payload}), aliceToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"subscribed":true}`, string(env.Data))

	// unknown channel
	rec, env = api.do(t, authed(httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/c/00000000-0000-0000-0000-000000000001", nil), aliceToken))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
}

func TestAPI_RecoversFromPanic(t *testing.T) {
	api := newTestAPI(t, nil)
	api.echo.GET("/boom", func(echo.Context) error { panic("boom") })

	rec, env := api.do(t, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func (a *testAPI) login(t *testing.T, identifier, password string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	return a.do(t, jsonBody(http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    identifier,
		"password": password,
	}))
}

func refreshRequest(refreshToken string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: cookie.RefreshToken, Value: refreshToken})
	req.RemoteAddr = "192.0.2.1:40000"

	return req
}

// Concurrent refreshes with one token are not atomic: every request that
// reads the stored token before the first rotation lands is served, and the
// last write wins. Only the token stored last stays usable.
func TestAPI_ConcurrentRefreshLastWriterWins(t *testing.T) {
	const workers = 8

	api := newTestAPI(t, nil)
	_, _ = api.registerAndLogin(t, "carol")

	rec, env := api.login(t, "carol@example.com", "pw-carol")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var start tokens
	require.NoError(t, json.Unmarshal(env.Data, &start))

	recorders := make([]*httptest.ResponseRecorder, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			rec := httptest.NewRecorder()
			api.echo.ServeHTTP(rec, refreshRequest(start.RefreshToken))
			recorders[i] = rec
		}(i)
	}
	wg.Wait()

	var winners []string
	for _, rec := range recorders {
		var env apiEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

		switch rec.Code {
		case http.StatusOK:
			var pair tokens
			require.NoError(t, json.Unmarshal(env.Data, &pair))
			winners = append(winners, pair.RefreshToken)
		case http.StatusUnauthorized:
			require.NotNil(t, env.Error)
			assert.Equal(t, "REFRESH_TOKEN_STALE", env.Error.Code)
		default:
			t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
		}
	}
	require.NotEmpty(t, winners)

	// A stale attempt leaves the stored token alone, so trying every issued
	// token in turn finds exactly the one that was written last.
	valid := 0
	for _, token := range winners {
		rec, env := api.do(t, refreshRequest(token))
		if rec.Code == http.StatusOK {
			valid++

			continue
		}
		assert.Equal(t, "REFRESH_TOKEN_STALE", env.Error.Code)
	}
	assert.Equal(t, 1, valid)

	rec, env = api.do(t, refreshRequest(start.RefreshToken))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "REFRESH_TOKEN_STALE", env.Error.Code)
}

func TestAPI_ChangePasswordAndEmailCollision(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, _ := api.do(t, registerRequest(t, aliceForm, true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := api.login(t, "alice@example.com", "correct horse")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var pair tokens
	require.NoError(t, json.Unmarshal(env.Data, &pair))

	// wrong old password
	rec, env = api.do(t, authed(jsonBody(http.MethodPost, "/api/v1/users/change-password", map[string]string{
		"oldPassword": "battery staple",
		"newPassword": "new secret",
	}), pair.AccessToken))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	rec, _ = api.do(t, authed(jsonBody(http.MethodPost, "/api/v1/users/change-password", map[string]string{
		"oldPassword": "correct horse",
		"newPassword": "new secret",
	}), pair.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = api.login(t, "alice@example.com", "correct horse")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	rec, _ = api.login(t, "alice@example.com", "new secret")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the email is taken whatever its case
	rec, env = api.do(t, registerRequest(t, map[string]string{
		"fullName": "Alice Again",
		"email":    "ALICE@example.COM",
		"username": "alice2",
		"password": "pw",
	}, true))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", env.Error.Code)

	// an over-long username is a client error, not a store failure
	rec, env = api.do(t, registerRequest(t, map[string]string{
		"fullName": "Long Name",
		"email":    "long@example.com",
		"username": strings.Repeat("l", entity.MaxUsernameLength+1),
		"password": "pw",
	}, true))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}
