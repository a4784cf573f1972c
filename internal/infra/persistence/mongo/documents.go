package mongo

import (
	"time"

	"vidhub/internal/domain/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// userDocument is the stored shape of a user. IDs are UUID strings so the
// same identifiers work across every store.
type userDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	FullName     string    `bson:"fullName"`
	Avatar       string    `bson:"avatar"`
	CoverImage   string    `bson:"coverImage"`
	WatchHistory []string  `bson:"watchHistory"`
	Password     string    `bson:"password"`
	RefreshToken string    `bson:"refreshToken,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type subscriptionDocument struct {
	ID         string    `bson:"_id"`
	Subscriber string    `bson:"subscriber"`
	Channel    string    `bson:"channel"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func fromUserDomain(user *entity.User) *userDocument {
	history := user.WatchHistory
	if history == nil {
		history = []string{}
	}

	return &userDocument{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Avatar:       user.Avatar,
		CoverImage:   user.CoverImage,
		WatchHistory: history,
		Password:     user.PasswordHash,
		RefreshToken: user.RefreshToken,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func (doc *userDocument) toDomain() (*entity.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}

	history := doc.WatchHistory
	if history == nil {
		history = []string{}
	}

	return &entity.User{
		ID:           id,
		Username:     doc.Username,
		Email:        doc.Email,
		FullName:     doc.FullName,
		Avatar:       doc.Avatar,
		CoverImage:   doc.CoverImage,
		WatchHistory: history,
		PasswordHash: doc.Password,
		RefreshToken: doc.RefreshToken,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func fromSubscriptionDomain(sub *entity.Subscription) *subscriptionDocument {
	return &subscriptionDocument{
		ID:         sub.ID.String(),
		Subscriber: sub.SubscriberID.String(),
		Channel:    sub.ChannelID.String(),
		CreatedAt:  sub.CreatedAt,
		UpdatedAt:  sub.UpdatedAt,
	}
}

func (doc *subscriptionDocument) toDomain() (*entity.Subscription, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	subscriber, err := uuid.Parse(doc.Subscriber)
	if err != nil {
		return nil, err
	}
	channel, err := uuid.Parse(doc.Channel)
	if err != nil {
		return nil, err
	}

	return &entity.Subscription{
		ID:           id,
		SubscriberID: subscriber,
		ChannelID:    channel,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

// userUpdateDocument turns a partial update into $set / $unset operators.
// Clearing the refresh token removes the field.
func userUpdateDocument(update entity.UserUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if update.FullName != nil {
		set["fullName"] = *update.FullName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.CoverImage != nil {
		set["coverImage"] = *update.CoverImage
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}
	if update.RefreshToken != nil {
		if *update.RefreshToken == "" {
			unset["refreshToken"] = ""
		} else {
			set["refreshToken"] = *update.RefreshToken
		}
	}

	doc := bson.M{"$set": set}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}

	return doc
}
