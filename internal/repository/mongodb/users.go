package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wagebook-backend/internal/domain/models"
)

// CreateUser inserts a new owner account and returns it with its generated id.
func (r *Repository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.db.Collection(collUsers).InsertOne(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// UserByEmail looks up an account by email.
func (r *Repository) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// UserByID looks up an account by id.
func (r *Repository) UserByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUser applies the given field updates and returns the updated account.
func (r *Repository) UpdateUser(ctx context.Context, id primitive.ObjectID, set bson.M) (models.User, error) {
	set["updated_at"] = time.Now().UTC()

	var user models.User
	err := r.db.Collection(collUsers).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UserIDs returns the ids of every registered owner account.
func (r *Repository) UserIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	raw, err := r.db.Collection(collUsers).Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
