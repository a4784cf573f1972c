package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionModel mirrors the 'subscriptions' table. A subscriber follows a
// channel at most once.
type SubscriptionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_subscriber_channel"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriptions_subscriber_channel"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Subscriber *UserModel `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
	Channel    *UserModel `gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
