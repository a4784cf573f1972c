package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription records that Subscriber follows the channel owned by Channel.
// Both sides are users.
type Subscription struct {
	ID           uuid.UUID
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChannelProfile is the public page of a user seen by another user.
type ChannelProfile struct {
	ID                        uuid.UUID `json:"id"`
	Username                  string    `json:"username"`
	FullName                  string    `json:"fullName"`
	Avatar                    string    `json:"avatar"`
	CoverImage                string    `json:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}
