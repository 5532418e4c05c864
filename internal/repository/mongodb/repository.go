package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a document does not exist or is not owned by
// the requesting account. Callers cannot distinguish the two cases.
var ErrNotFound = errors.New("document not found")

// Collection names.
const (
	collUsers       = "users"
	collEmployees   = "employees"
	collWorkplaces  = "workplaces"
	collAttendances = "attendances"
	collLoans       = "loans"
	collDeductions  = "deductions"
)

// Repository is the MongoDB-backed entity store. One instance serves all
// collections and is safe for concurrent use.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// EnsureIndexes creates the indexes the store relies on: the unique
// attendance key (owner, employee, workplace, day) backing the idempotent
// upsert, and the unique user email.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(collAttendances).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "employee_id", Value: 1},
			{Key: "workplace_id", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create attendance index: %w", err)
	}

	_, err = r.db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
