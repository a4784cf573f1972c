package mongo

import (
	"context"
	"time"

	"vidhub/internal/domain/entity"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/domain/repository"
	"vidhub/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userRepository implements repository.UserRepository on the users collection.
type userRepository struct {
	users *mongo.Collection
	now   func() time.Time
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{
		users: db.Collection(UsersCollection),
		now:   time.Now,
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()})
}

// FindByUsername retrieves a user by their normalized username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if username == "" {
		return nil, repository.ErrUserNotFound
	}

	return repo.findOne(ctx, bson.M{"username": username})
}

// FindByUsernameOrEmail returns the first user matching either identifier.
func (repo *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil, repository.ErrUserNotFound
	}

	return repo.findOne(ctx, bson.M{"$or": or})
}

// Create validates and inserts a full user record.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := repository.PrepareNewUser(user, repo.now()); err != nil {
		return err
	}

	if _, err := repo.users.InsertOne(ctx, fromUserDomain(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateUser
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

// Update applies $set / $unset to one document and returns it after the write.
func (repo *userRepository) Update(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	if update.IsEmpty() {
		return repo.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := repo.users.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, userUpdateDocument(update, repo.now()), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicateUser
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return decodedUser(&doc)
}

// FindByIDs retrieves the users with the given IDs in the order given.
func (repo *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	keys := make(bson.A, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	cursor, err := repo.users.Find(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find users by ids")
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode users")
	}

	byID := make(map[string]*userDocument, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}

	users := make([]*entity.User, 0, len(docs))
	for _, id := range ids {
		doc, ok := byID[id.String()]
		if !ok {
			continue
		}

		user, err := decodedUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := repo.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	return decodedUser(&doc)
}

func decodedUser(doc *userDocument) (*entity.User, error) {
	user, err := doc.toDomain()
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "stored user has a malformed id")
	}

	return user, nil
}
