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

// CreateWorkplace inserts a workplace under its owner.
func (r *Repository) CreateWorkplace(ctx context.Context, wp models.Workplace) (models.Workplace, error) {
	now := time.Now().UTC()
	wp.CreatedAt = now
	wp.UpdatedAt = now

	res, err := r.db.Collection(collWorkplaces).InsertOne(ctx, wp)
	if err != nil {
		return models.Workplace{}, fmt.Errorf("failed to insert workplace: %w", err)
	}
	wp.ID = res.InsertedID.(primitive.ObjectID)
	return wp, nil
}

// WorkplacesByOwner returns every workplace belonging to the owner.
func (r *Repository) WorkplacesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Workplace, error) {
	cur, err := r.db.Collection(collWorkplaces).Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list workplaces: %w", err)
	}
	var workplaces []models.Workplace
	if err := cur.All(ctx, &workplaces); err != nil {
		return nil, fmt.Errorf("failed to decode workplaces: %w", err)
	}
	return workplaces, nil
}

// WorkplaceByID fetches a single workplace, enforcing ownership.
func (r *Repository) WorkplaceByID(ctx context.Context, owner, id primitive.ObjectID) (models.Workplace, error) {
	var wp models.Workplace
	err := r.db.Collection(collWorkplaces).FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&wp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Workplace{}, ErrNotFound
	}
	if err != nil {
		return models.Workplace{}, fmt.Errorf("failed to find workplace: %w", err)
	}
	return wp, nil
}

// UpdateWorkplace applies the given field updates and returns the updated
// document.
func (r *Repository) UpdateWorkplace(ctx context.Context, owner, id primitive.ObjectID, set bson.M) (models.Workplace, error) {
	set["updated_at"] = time.Now().UTC()

	var wp models.Workplace
	err := r.db.Collection(collWorkplaces).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&wp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Workplace{}, ErrNotFound
	}
	if err != nil {
		return models.Workplace{}, fmt.Errorf("failed to update workplace: %w", err)
	}
	return wp, nil
}

// DeleteWorkplace removes the workplace.
func (r *Repository) DeleteWorkplace(ctx context.Context, owner, id primitive.ObjectID) error {
	res, err := r.db.Collection(collWorkplaces).DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete workplace: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountWorkplaces counts the owner's workplaces.
func (r *Repository) CountWorkplaces(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	n, err := r.db.Collection(collWorkplaces).CountDocuments(ctx, bson.M{"owner": owner})
	if err != nil {
		return 0, fmt.Errorf("failed to count workplaces: %w", err)
	}
	return n, nil
}
