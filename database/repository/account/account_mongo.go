package accountRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"termcompass/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates the repository on the accounts collection of db.
func NewMongoAccountRepo(db *mongo.Database) (*MongoAccountRepo, error) {
	repo := &MongoAccountRepo{coll: db.Collection("accounts")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoAccountRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new account document.
func (r *MongoAccountRepo) Create(ctx context.Context, acc *models.Account) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	acc.Email = strings.ToLower(acc.Email)
	acc.CreatedAt = now
	acc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, acc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var acc models.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &acc, nil
}

func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *MongoAccountRepo) GetByTokenHash(ctx context.Context, hash string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"token_hash": hash})
}

func (r *MongoAccountRepo) SetTokenHash(ctx context.Context, id, hash string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"token_hash": hash, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update account with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}
