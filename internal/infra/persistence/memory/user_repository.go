// Package memory keeps users and subscriptions in process memory. It backs
// store.driver=memory and end-to-end tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"vidhub/internal/domain/entity"
	"vidhub/internal/domain/repository"

	"github.com/google/uuid"
)

// UserRepository is a goroutine-safe repository.UserRepository.
type UserRepository struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*entity.User
	byUsername map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
	now        func() time.Time
}

// NewUserRepository returns an empty store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[uuid.UUID]*entity.User),
		byUsername: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
		now:        time.Now,
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// FindByUsername retrieves a user by their normalized username.
func (repo *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byUsername[username]
	if !ok || username == "" {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(repo.users[id]), nil
}

// FindByUsernameOrEmail matches either identifier. Username wins when both
// match different records.
func (repo *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if username != "" {
		if id, ok := repo.byUsername[username]; ok {
			return cloneUser(repo.users[id]), nil
		}
	}
	if email != "" {
		if id, ok := repo.byEmail[email]; ok {
			return cloneUser(repo.users[id]), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// Create validates and inserts user. Username and email are unique.
func (repo *UserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := repository.PrepareNewUser(user, repo.now()); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[user.ID]; ok {
		return repository.ErrDuplicateUser
	}
	if _, ok := repo.byUsername[user.Username]; ok {
		return repository.ErrDuplicateUser
	}
	if _, ok := repo.byEmail[user.Email]; ok {
		return repository.ErrDuplicateUser
	}

	stored := cloneUser(user)
	repo.users[stored.ID] = stored
	repo.byUsername[stored.Username] = stored.ID
	repo.byEmail[stored.Email] = stored.ID

	return nil
}

// Update applies a partial update. Changing the email to one held by another
// user fails with ErrDuplicateUser.
func (repo *UserRepository) Update(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if update.IsEmpty() {
		return cloneUser(user), nil
	}

	if update.Email != nil && *update.Email != user.Email {
		if owner, taken := repo.byEmail[*update.Email]; taken && owner != id {
			return nil, repository.ErrDuplicateUser
		}
		delete(repo.byEmail, user.Email)
		repo.byEmail[*update.Email] = id
	}

	update.Apply(user, repo.now())

	return cloneUser(user), nil
}

// FindByIDs retrieves the users with the given IDs in the order given.
func (repo *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := repo.users[id]; ok {
			users = append(users, cloneUser(user))
		}
	}

	return users, nil
}

func cloneUser(user *entity.User) *entity.User {
	clone := *user
	clone.WatchHistory = slices.Clone(user.WatchHistory)

	return &clone
}
