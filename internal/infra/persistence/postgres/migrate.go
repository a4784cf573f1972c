package postgres

import (
	"context"

	"vidhub/internal/errors"
	"vidhub/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or extends the users and subscriptions tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.UserModel{}, &model.SubscriptionModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate PostgreSQL schema")
	}

	return nil
}
