package impl

import (
	"io"
	"log/slog"
	"testing"

	"vidhub/internal/infra/metrics"
	mockRepo "vidhub/internal/mocks/repository"
	mockSvc "vidhub/internal/mocks/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serviceFixtures holds the mocked collaborators shared by every service.
type serviceFixtures struct {
	userRepo *mockRepo.MockUserRepository
	subRepo  *mockRepo.MockSubscriptionRepository
	hasher   *mockSvc.MockPasswordHasher
	tokens   *mockSvc.MockTokenService
	media    *mockSvc.MockMediaStorage
	qrCodes  *mockSvc.MockQRCodeService
	metrics  *metrics.Metrics
}

func newServiceFixtures(t *testing.T) serviceFixtures {
	return serviceFixtures{
		userRepo: mockRepo.NewMockUserRepository(t),
		subRepo:  mockRepo.NewMockSubscriptionRepository(t),
		hasher:   mockSvc.NewMockPasswordHasher(t),
		tokens:   mockSvc.NewMockTokenService(t),
		media:    mockSvc.NewMockMediaStorage(t),
		qrCodes:  mockSvc.NewMockQRCodeService(t),
		metrics:  metrics.New(),
	}
}

// authEvents reads the auth event counter for one label pair.
func (fx serviceFixtures) authEvents(operation, outcome string) float64 {
	return testutil.ToFloat64(fx.metrics.AuthEvents().WithLabelValues(operation, outcome))
}

func (fx serviceFixtures) userService() *userService {
	return NewUserService(UserServiceParams{
		UserRepo: fx.userRepo,
		Hasher:   fx.hasher,
		Media:    fx.media,
		Events:   fx.metrics,
		Logger:   newDiscardLogger(),
	}).(*userService)
}

func (fx serviceFixtures) sessionService() *sessionService {
	return NewSessionService(SessionServiceParams{
		UserRepo:     fx.userRepo,
		Hasher:       fx.hasher,
		TokenService: fx.tokens,
		Events:       fx.metrics,
		Logger:       newDiscardLogger(),
	}).(*sessionService)
}

func (fx serviceFixtures) profileService() *profileService {
	return NewProfileService(ProfileServiceParams{
		UserRepo: fx.userRepo,
		Media:    fx.media,
		Logger:   newDiscardLogger(),
	}).(*profileService)
}

func (fx serviceFixtures) subscriptionService() *subscriptionService {
	return NewSubscriptionService(SubscriptionServiceParams{
		UserRepo:         fx.userRepo,
		SubscriptionRepo: fx.subRepo,
		QRCodes:          fx.qrCodes,
		Logger:           newDiscardLogger(),
	}).(*subscriptionService)
}
