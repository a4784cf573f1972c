package impl

import (
	"context"
	"log/slog"

	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/domain/repository"
	"vidhub/internal/domain/service"
	"vidhub/internal/errors"
	"vidhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type subscriptionService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	qrCodes          service.QRCodeService
	logger           *slog.Logger
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	UserRepo         repository.UserRepository
	SubscriptionRepo repository.SubscriptionRepository
	QRCodes          service.QRCodeService
	Logger           *slog.Logger
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		userRepo:         params.UserRepo,
		subscriptionRepo: params.SubscriptionRepo,
		qrCodes:          params.QRCodes,
		logger:           params.Logger,
	}
}

// ToggleSubscription creates the subscription if absent and deletes it if present.
func (s *subscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (*usecase.ToggleOutput, error) {
	if subscriberID == channelID {
		return nil, domainerrors.ErrValidationFailed.WithDetails("cannot subscribe to your own channel")
	}

	if err := s.ensureUser(ctx, channelID); err != nil {
		return nil, err
	}

	_, err := s.subscriptionRepo.Find(ctx, subscriberID, channelID)
	switch {
	case err == nil:
		if err := s.subscriptionRepo.Delete(ctx, subscriberID, channelID); err != nil && !errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, errors.Wrap(err, "failed to delete subscription")
		}
		loggerFor(ctx, s.logger).Debug("Unsubscribed", slog.Any("subscriberID", subscriberID), slog.Any("channelID", channelID))

		return &usecase.ToggleOutput{Subscribed: false}, nil
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		sub := &entity.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := s.subscriptionRepo.Create(ctx, sub); err != nil && !errors.Is(err, repository.ErrDuplicateSubscription) {
			return nil, errors.Wrap(err, "failed to create subscription")
		}
		loggerFor(ctx, s.logger).Debug("Subscribed", slog.Any("subscriberID", subscriberID), slog.Any("channelID", channelID))

		return &usecase.ToggleOutput{Subscribed: true}, nil
	default:
		return nil, errors.Wrap(err, "failed to find subscription")
	}
}

// ListSubscribers returns the summaries of users subscribed to channelID.
func (s *subscriptionService) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.UserSummary, error) {
	if err := s.ensureUser(ctx, channelID); err != nil {
		return nil, err
	}

	subs, err := s.subscriptionRepo.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscribers")
	}

	ids := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.SubscriberID)
	}

	return s.summaries(ctx, ids)
}

// ListSubscribedChannels returns the summaries of channels subscriberID follows.
func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.UserSummary, error) {
	if err := s.ensureUser(ctx, subscriberID); err != nil {
		return nil, err
	}

	subs, err := s.subscriptionRepo.ListBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscribed channels")
	}

	ids := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ChannelID)
	}

	return s.summaries(ctx, ids)
}

// GetChannelProfile builds the channel page of username for viewerID.
func (s *subscriptionService) GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*entity.ChannelProfile, error) {
	username = entity.NormalizeIdentifier(username)
	if username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username is missing")
	}

	channel, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WithDetails("channel does not exist")
		}

		return nil, errors.Wrap(err, "failed to find channel")
	}

	subscribers, err := s.subscriptionRepo.CountByChannel(ctx, channel.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count subscribers")
	}

	subscribedTo, err := s.subscriptionRepo.CountBySubscriber(ctx, channel.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count subscribed channels")
	}

	isSubscribed := false
	if viewerID != channel.ID {
		_, err := s.subscriptionRepo.Find(ctx, viewerID, channel.ID)
		switch {
		case err == nil:
			isSubscribed = true
		case !errors.Is(err, repository.ErrSubscriptionNotFound):
			return nil, errors.Wrap(err, "failed to check viewer subscription")
		}
	}

	return &entity.ChannelProfile{
		ID:                        channel.ID,
		Username:                  channel.Username,
		FullName:                  channel.FullName,
		Avatar:                    channel.Avatar,
		CoverImage:                channel.CoverImage,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}

// GetChannelQRCode renders the share code of an existing channel.
func (s *subscriptionService) GetChannelQRCode(ctx context.Context, channelID uuid.UUID) ([]byte, error) {
	if err := s.ensureUser(ctx, channelID); err != nil {
		return nil, err
	}

	png, err := s.qrCodes.GenerateChannelQR(channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate channel QR code")
	}

	return png, nil
}

// SubscribeByQRCode subscribes to the channel carried by payload. Unlike
// ToggleSubscription it never unsubscribes.
func (s *subscriptionService) SubscribeByQRCode(ctx context.Context, subscriberID uuid.UUID, payload string) (*usecase.ToggleOutput, error) {
	channelID, err := s.qrCodes.ParseChannelQR(payload)
	if err != nil {
		return nil, domainerrors.ErrInvalidQRCode.WrapMessage(err.Error())
	}
	if subscriberID == channelID {
		return nil, domainerrors.ErrValidationFailed.WithDetails("cannot subscribe to your own channel")
	}

	if err := s.ensureUser(ctx, channelID); err != nil {
		return nil, err
	}

	sub := &entity.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil && !errors.Is(err, repository.ErrDuplicateSubscription) {
		return nil, errors.Wrap(err, "failed to create subscription")
	}
	loggerFor(ctx, s.logger).Debug("Subscribed by QR code", slog.Any("subscriberID", subscriberID), slog.Any("channelID", channelID))

	return &usecase.ToggleOutput{Subscribed: true}, nil
}

func (s *subscriptionService) ensureUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("subscription endpoint")
		}

		return errors.Wrap(err, "failed to find user")
	}

	return nil
}

func (s *subscriptionService) summaries(ctx context.Context, ids []uuid.UUID) ([]*entity.UserSummary, error) {
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load users")
	}

	out := make([]*entity.UserSummary, 0, len(users))
	for _, user := range users {
		out = append(out, user.Summary())
	}

	return out, nil
}
