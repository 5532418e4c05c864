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

// CreateLoan inserts a loan under its owner.
func (r *Repository) CreateLoan(ctx context.Context, loan models.Loan) (models.Loan, error) {
	now := time.Now().UTC()
	loan.CreatedAt = now
	loan.UpdatedAt = now

	res, err := r.db.Collection(collLoans).InsertOne(ctx, loan)
	if err != nil {
		return models.Loan{}, fmt.Errorf("failed to insert loan: %w", err)
	}
	loan.ID = res.InsertedID.(primitive.ObjectID)
	return loan, nil
}

// LoansByOwner returns every loan belonging to the owner.
func (r *Repository) LoansByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Loan, error) {
	cur, err := r.db.Collection(collLoans).Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	var loans []models.Loan
	if err := cur.All(ctx, &loans); err != nil {
		return nil, fmt.Errorf("failed to decode loans: %w", err)
	}
	return loans, nil
}

// LoanByID fetches a single loan, enforcing ownership.
func (r *Repository) LoanByID(ctx context.Context, owner, id primitive.ObjectID) (models.Loan, error) {
	var loan models.Loan
	err := r.db.Collection(collLoans).FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&loan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Loan{}, ErrNotFound
	}
	if err != nil {
		return models.Loan{}, fmt.Errorf("failed to find loan: %w", err)
	}
	return loan, nil
}

// UpdateLoan applies the given field updates and returns the updated loan.
func (r *Repository) UpdateLoan(ctx context.Context, owner, id primitive.ObjectID, set bson.M) (models.Loan, error) {
	set["updated_at"] = time.Now().UTC()

	var loan models.Loan
	err := r.db.Collection(collLoans).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&loan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Loan{}, ErrNotFound
	}
	if err != nil {
		return models.Loan{}, fmt.Errorf("failed to update loan: %w", err)
	}
	return loan, nil
}

// DeleteLoan removes the loan.
func (r *Repository) DeleteLoan(ctx context.Context, owner, id primitive.ObjectID) error {
	res, err := r.db.Collection(collLoans).DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// LoansInRange returns loans for the given employees whose day falls within
// [startDay, endDay]. Loan dates are plain YYYY-MM-DD strings, so the bounds
// compare lexicographically.
func (r *Repository) LoansInRange(ctx context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, startDay, endDay string) ([]models.Loan, error) {
	cur, err := r.db.Collection(collLoans).Find(ctx, bson.M{
		"owner":      owner,
		"employeeId": bson.M{"$in": employeeIDs},
		"date":       bson.M{"$gte": startDay, "$lte": endDay},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query loans range: %w", err)
	}
	var loans []models.Loan
	if err := cur.All(ctx, &loans); err != nil {
		return nil, fmt.Errorf("failed to decode loans: %w", err)
	}
	return loans, nil
}
