package services

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/hireon-backend/internal/database"
	"github.com/AnshRaj112/hireon-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when an insert hits the unique email index.
	ErrUserExists = errors.New("user already exists with this email")
)

const usersCollection = "users"

// EnsureUserIndexes configures indexes for the users collection.
// Called on startup from main after Mongo has connected. The unique index
// is what enforces email uniqueness; the application only pre-checks it.
func EnsureUserIndexes(ctx context.Context) error {
	col := database.DB.Collection(usersCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email_unique").SetUnique(true),
		},
	}

	for _, m := range indexes {
		if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// MongoUserStore persists users in the MongoDB users collection.
// It satisfies the UserStore interface consumed by the handlers and the
// profile mutation engine.
type MongoUserStore struct{}

func NewMongoUserStore() *MongoUserStore {
	return &MongoUserStore{}
}

func (s *MongoUserStore) col() *mongo.Collection {
	return database.DB.Collection(usersCollection)
}

// FindByEmail returns the user stored under email (case-sensitive key).
func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := s.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given ObjectID hex string.
func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err = s.col().FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns it with ID and timestamps set.
// A concurrent insert on the same email loses to the unique index and
// surfaces as ErrUserExists.
func (s *MongoUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := s.col().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// Update replaces the stored document for user.ID. Last write wins when
// two requests race on the same user; the store takes no locks.
func (s *MongoUserStore) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user.UpdatedAt = time.Now().UTC()

	res, err := s.col().ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
