// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/domain/repository"
	"vidhub/internal/errors"
	"vidhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db:  db,
		now: time.Now,
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.first(ctx, "find user by id", "id = ?", id)
}

// FindByUsername retrieves a user by their normalized username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if username == "" {
		return nil, repository.ErrUserNotFound
	}

	return repo.first(ctx, "find user by username", "username = ?", username)
}

// FindByUsernameOrEmail returns the first user matching either identifier.
func (repo *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	switch {
	case username != "" && email != "":
		return repo.first(ctx, "find user by username or email", "username = ? OR email = ?", username, email)
	case username != "":
		return repo.FindByUsername(ctx, username)
	case email != "":
		return repo.first(ctx, "find user by email", "email = ?", email)
	default:
		return nil, repository.ErrUserNotFound
	}
}

// Create validates and inserts a full user record.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := repository.PrepareNewUser(user, repo.now()); err != nil {
		return err
	}

	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}
		if isNotNullConstraintViolation(err) {
			return errors.Wrap(repository.ErrInvalidUser, err.Error())
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

// Update writes only the columns set in update, returning the row as stored.
func (repo *userRepository) Update(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	if update.IsEmpty() {
		return repo.FindByID(ctx, id)
	}

	var userM model.UserModel
	result := repo.db.WithContext(ctx).
		Model(&userM).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(userUpdateColumns(update, repo.now()))
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return nil, repository.ErrDuplicateUser
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(&userM), nil
}

// FindByIDs retrieves the users with the given IDs. Unknown IDs are skipped.
func (repo *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&userMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find users by ids")
	}

	byID := make(map[uuid.UUID]*model.UserModel, len(userMs))
	for _, userM := range userMs {
		byID[userM.ID] = userM
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, id := range ids {
		if userM, ok := byID[id]; ok {
			users = append(users, toUserDomain(userM))
		}
	}

	return users, nil
}

func (repo *userRepository) first(ctx context.Context, op string, query string, args ...any) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to "+op)
	}

	return toUserDomain(&userM), nil
}

// userUpdateColumns maps a partial update onto column names. An empty refresh
// token is stored as NULL.
func userUpdateColumns(update entity.UserUpdate, now time.Time) map[string]any {
	columns := map[string]any{"updated_at": now}

	if update.FullName != nil {
		columns["full_name"] = *update.FullName
	}
	if update.Email != nil {
		columns["email"] = *update.Email
	}
	if update.Avatar != nil {
		columns["avatar"] = *update.Avatar
	}
	if update.CoverImage != nil {
		columns["cover_image"] = *update.CoverImage
	}
	if update.PasswordHash != nil {
		columns["password"] = *update.PasswordHash
	}
	if update.RefreshToken != nil {
		if *update.RefreshToken == "" {
			columns["refresh_token"] = nil
		} else {
			columns["refresh_token"] = *update.RefreshToken
		}
	}

	return columns
}

func fromUserDomain(user *entity.User) *model.UserModel {
	var refreshToken *string
	if user.RefreshToken != "" {
		token := user.RefreshToken
		refreshToken = &token
	}

	history := user.WatchHistory
	if history == nil {
		history = []string{}
	}

	return &model.UserModel{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Avatar:       user.Avatar,
		CoverImage:   user.CoverImage,
		WatchHistory: history,
		PasswordHash: user.PasswordHash,
		RefreshToken: refreshToken,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toUserDomain(userM *model.UserModel) *entity.User {
	user := &entity.User{
		ID:           userM.ID,
		Username:     userM.Username,
		Email:        userM.Email,
		FullName:     userM.FullName,
		Avatar:       userM.Avatar,
		CoverImage:   userM.CoverImage,
		WatchHistory: userM.WatchHistory,
		PasswordHash: userM.PasswordHash,
		CreatedAt:    userM.CreatedAt,
		UpdatedAt:    userM.UpdatedAt,
	}
	if userM.RefreshToken != nil {
		user.RefreshToken = *userM.RefreshToken
	}
	if user.WatchHistory == nil {
		user.WatchHistory = []string{}
	}

	return user
}
