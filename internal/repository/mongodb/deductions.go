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

// CreateDeduction inserts a deduction under its owner.
func (r *Repository) CreateDeduction(ctx context.Context, ded models.Deduction) (models.Deduction, error) {
	now := time.Now().UTC()
	ded.CreatedAt = now
	ded.UpdatedAt = now

	res, err := r.db.Collection(collDeductions).InsertOne(ctx, ded)
	if err != nil {
		return models.Deduction{}, fmt.Errorf("failed to insert deduction: %w", err)
	}
	ded.ID = res.InsertedID.(primitive.ObjectID)
	return ded, nil
}

// DeductionsByOwner returns every deduction belonging to the owner.
func (r *Repository) DeductionsByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Deduction, error) {
	cur, err := r.db.Collection(collDeductions).Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	var deductions []models.Deduction
	if err := cur.All(ctx, &deductions); err != nil {
		return nil, fmt.Errorf("failed to decode deductions: %w", err)
	}
	return deductions, nil
}

// DeductionByID fetches a single deduction, enforcing ownership.
func (r *Repository) DeductionByID(ctx context.Context, owner, id primitive.ObjectID) (models.Deduction, error) {
	var ded models.Deduction
	err := r.db.Collection(collDeductions).FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&ded)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Deduction{}, ErrNotFound
	}
	if err != nil {
		return models.Deduction{}, fmt.Errorf("failed to find deduction: %w", err)
	}
	return ded, nil
}

// UpdateDeduction applies the given field updates and returns the updated
// deduction.
func (r *Repository) UpdateDeduction(ctx context.Context, owner, id primitive.ObjectID, set bson.M) (models.Deduction, error) {
	set["updated_at"] = time.Now().UTC()

	var ded models.Deduction
	err := r.db.Collection(collDeductions).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ded)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Deduction{}, ErrNotFound
	}
	if err != nil {
		return models.Deduction{}, fmt.Errorf("failed to update deduction: %w", err)
	}
	return ded, nil
}

// DeleteDeduction removes the deduction.
func (r *Repository) DeleteDeduction(ctx context.Context, owner, id primitive.ObjectID) error {
	res, err := r.db.Collection(collDeductions).DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete deduction: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeductionsInRange returns deductions for the given employees whose day
// falls within [startDay, endDay], compared as YYYY-MM-DD strings.
func (r *Repository) DeductionsInRange(ctx context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, startDay, endDay string) ([]models.Deduction, error) {
	cur, err := r.db.Collection(collDeductions).Find(ctx, bson.M{
		"owner":      owner,
		"employeeId": bson.M{"$in": employeeIDs},
		"date":       bson.M{"$gte": startDay, "$lte": endDay},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query deductions range: %w", err)
	}
	var deductions []models.Deduction
	if err := cur.All(ctx, &deductions); err != nil {
		return nil, fmt.Errorf("failed to decode deductions: %w", err)
	}
	return deductions, nil
}
