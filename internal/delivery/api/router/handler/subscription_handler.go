package handler

import (
	"net/http"

	"vidhub/internal/delivery/api/response"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/errors"
	"vidhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SubscriptionHandler handles channel subscription requests.
type SubscriptionHandler struct {
	subscriptions usecase.SubscriptionUsecase
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptions usecase.SubscriptionUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// ToggleSubscription subscribes the current user to a channel or cancels
// the existing subscription.
func (h *SubscriptionHandler) ToggleSubscription(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	channelID, err := uuidParam(c, "channelId")
	if err != nil {
		return err
	}

	out, err := h.subscriptions.ToggleSubscription(c.Request().Context(), user.ID, channelID)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Unsubscribed successfully"
	if out.Subscribed {
		message = "Subscribed successfully"
	}

	return response.Success(c, http.StatusOK, out, message)
}

// GetChannelSubscribers lists the subscribers of a channel.
func (h *SubscriptionHandler) GetChannelSubscribers(c echo.Context) error {
	channelID, err := uuidParam(c, "channelId")
	if err != nil {
		return err
	}

	subscribers, err := h.subscriptions.ListSubscribers(c.Request().Context(), channelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// GetSubscribedChannels lists the channels a user follows.
func (h *SubscriptionHandler) GetSubscribedChannels(c echo.Context) error {
	subscriberID, err := uuidParam(c, "subscriberId")
	if err != nil {
		return err
	}

	channels, err := h.subscriptions.ListSubscribedChannels(c.Request().Context(), subscriberID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, channels, "Subscribed channels fetched successfully")
}

// GetChannelProfile returns the channel page of :username for the current user.
func (h *SubscriptionHandler) GetChannelProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.subscriptions.GetChannelProfile(c.Request().Context(), user.ID, c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "User channel fetched successfully")
}

type qrSubscribeRequest struct {
	QRData string `json:"qrData" validate:"required"`
}

// GetChannelQRCode renders the share code of a channel as a PNG.
func (h *SubscriptionHandler) GetChannelQRCode(c echo.Context) error {
	channelID, err := uuidParam(c, "channelId")
	if err != nil {
		return err
	}

	png, err := h.subscriptions.GetChannelQRCode(c.Request().Context(), channelID)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "inline; filename=channel-qr.png")

	return c.Blob(http.StatusOK, "image/png", png)
}

// SubscribeByQRCode subscribes the current user to the channel of a scanned
// share code.
func (h *SubscriptionHandler) SubscribeByQRCode(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req qrSubscribeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid QR subscription input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.subscriptions.SubscribeByQRCode(c.Request().Context(), user.ID, req.QRData)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, out, "Subscribed via QR code successfully")
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return id, nil
}
