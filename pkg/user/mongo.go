package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "users"

// MongoStore is the durable Store backend. Uniqueness is enforced by unique
// indexes so concurrent registrations race safely at the database.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates the durable store and ensures its indexes.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection(collectionName)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user indexes: %w", err)
	}

	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Create(ctx context.Context, u *User) error {
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, u *User) error {
	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: u.ID}}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *MongoStore) ByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// ByVerificationToken applies the expiry filter in the query so an expired
// token never matches.
func (s *MongoStore) ByVerificationToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.D{
		{Key: "verification_token", Value: token},
		{Key: "verification_expires", Value: bson.D{{Key: "$gt", Value: time.Now()}}},
	})
}

func (s *MongoStore) ByResetToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.D{
		{Key: "reset_token", Value: token},
		{Key: "reset_expires", Value: bson.D{{Key: "$gt", Value: time.Now()}}},
	})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D) (*User, error) {
	var u User
	if err := s.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// Compile-time interface assertion
var _ Store = (*MongoStore)(nil)
