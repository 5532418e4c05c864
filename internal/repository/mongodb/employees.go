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

// CreateEmployee inserts an employee under its owner.
func (r *Repository) CreateEmployee(ctx context.Context, emp models.Employee) (models.Employee, error) {
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	if emp.Status == "" {
		emp.Status = models.EmployeeActive
	}

	res, err := r.db.Collection(collEmployees).InsertOne(ctx, emp)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
	}
	emp.ID = res.InsertedID.(primitive.ObjectID)
	return emp, nil
}

// EmployeesByOwner returns every employee belonging to the owner.
func (r *Repository) EmployeesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Employee, error) {
	cur, err := r.db.Collection(collEmployees).Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	var employees []models.Employee
	if err := cur.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return employees, nil
}

// EmployeeByID fetches a single employee, enforcing ownership.
func (r *Repository) EmployeeByID(ctx context.Context, owner, id primitive.ObjectID) (models.Employee, error) {
	var emp models.Employee
	err := r.db.Collection(collEmployees).FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Employee{}, ErrNotFound
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee: %w", err)
	}
	return emp, nil
}

// UpdateEmployee applies the given field updates and returns the updated
// document. Missing or foreign-owned employees yield ErrNotFound.
func (r *Repository) UpdateEmployee(ctx context.Context, owner, id primitive.ObjectID, set bson.M) (models.Employee, error) {
	set["updated_at"] = time.Now().UTC()

	var emp models.Employee
	err := r.db.Collection(collEmployees).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Employee{}, ErrNotFound
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return emp, nil
}

// DeleteEmployee removes the employee. Historical attendance, loan and
// deduction records keep their reference; there is no cascade.
func (r *Repository) DeleteEmployee(ctx context.Context, owner, id primitive.ObjectID) error {
	res, err := r.db.Collection(collEmployees).DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountEmployees counts the owner's employees.
func (r *Repository) CountEmployees(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	n, err := r.db.Collection(collEmployees).CountDocuments(ctx, bson.M{"owner": owner})
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}

// EmployeeIDs returns the distinct ids of the owner's employees.
func (r *Repository) EmployeeIDs(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := r.db.Collection(collEmployees).Distinct(ctx, "_id", bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
