package memory

import (
	"context"
	"sync"
	"testing"

	"vidhub/internal/domain/entity"
	"vidhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(username, email string) *entity.User {
	return &entity.User{
		Username:     username,
		Email:        email,
		FullName:     "Test " + username,
		Avatar:       "https://cdn.example.com/" + username + ".png",
		PasswordHash: "hash",
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.FindByUsernameOrEmail(ctx, "", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByUsernameOrEmail(ctx, "", "")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestUserRepository_CreateRejectsDuplicates(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com")))

	err := repo.Create(ctx, newUser("alice", "other@example.com"))
	assert.True(t, errors.Is(err, repository.ErrDuplicateUser))

	err = repo.Create(ctx, newUser("bob", "alice@example.com"))
	assert.True(t, errors.Is(err, repository.ErrDuplicateUser))
}

func TestUserRepository_CreateRejectsIncomplete(t *testing.T) {
	repo := NewUserRepository()

	user := newUser("alice", "alice@example.com")
	user.Avatar = ""

	err := repo.Create(context.Background(), user)
	assert.True(t, errors.Is(err, repository.ErrInvalidUser))
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user))
	user.FullName = "mutated after create"

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	found.RefreshToken = "mutated after find"

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test alice", again.FullName)
	assert.Empty(t, again.RefreshToken)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	alice := newUser("alice", "alice@example.com")
	bob := newUser("bob", "bob@example.com")
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	token := "refresh"
	updated, err := repo.Update(ctx, alice.ID, entity.UserUpdate{RefreshToken: &token})
	require.NoError(t, err)
	assert.Equal(t, "refresh", updated.RefreshToken)
	assert.Equal(t, alice.PasswordHash, updated.PasswordHash)

	email := "alice@new.example.com"
	_, err = repo.Update(ctx, alice.ID, entity.UserUpdate{Email: &email})
	require.NoError(t, err)

	found, err := repo.FindByUsernameOrEmail(ctx, "", email)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = repo.FindByUsernameOrEmail(ctx, "", "alice@example.com")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	taken := "bob@example.com"
	_, err = repo.Update(ctx, alice.ID, entity.UserUpdate{Email: &taken})
	assert.True(t, errors.Is(err, repository.ErrDuplicateUser))

	_, err = repo.Update(ctx, uuid.New(), entity.UserUpdate{RefreshToken: &token})
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestUserRepository_FindByIDs(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	alice := newUser("alice", "alice@example.com")
	bob := newUser("bob", "bob@example.com")
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	users, err := repo.FindByIDs(ctx, []uuid.UUID{bob.ID, uuid.New(), alice.ID})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, bob.ID, users[0].ID)
	assert.Equal(t, alice.ID, users[1].ID)
}

// Concurrent writers to one refresh-token field race; the store only
// guarantees that the final value is one of the written values.
func TestUserRepository_ConcurrentRefreshTokenWritesLastWriterWins(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user))

	const writers = 32
	written := make([]string, writers)

	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			token := uuid.NewString()
			written[i] = token
			_, err := repo.Update(ctx, user.ID, entity.UserUpdate{RefreshToken: &token})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Contains(t, written, found.RefreshToken)
}

func TestUserRepository_CanceledContext(t *testing.T) {
	repo := NewUserRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
}
