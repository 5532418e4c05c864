package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wagebook-backend/internal/domain/models"
)

// AttendanceByDay returns the owner's attendance records in the half-open
// interval [start, next).
func (r *Repository) AttendanceByDay(ctx context.Context, owner primitive.ObjectID, start, next time.Time) ([]models.Attendance, error) {
	cur, err := r.db.Collection(collAttendances).Find(ctx, bson.M{
		"owner": owner,
		"date":  bson.M{"$gte": start, "$lt": next},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance by day: %w", err)
	}
	var records []models.Attendance
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}
	return records, nil
}

// AttendanceInRange returns attendance for the given employees within the
// inclusive [start, end] window.
func (r *Repository) AttendanceInRange(ctx context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, start, end time.Time) ([]models.Attendance, error) {
	cur, err := r.db.Collection(collAttendances).Find(ctx, bson.M{
		"owner":       owner,
		"employee_id": bson.M{"$in": employeeIDs},
		"date":        bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	var records []models.Attendance
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}
	return records, nil
}

// BulkUpsertAttendance writes the records in one batch, keyed by
// (employee, workplace, date, owner). An existing row for the same key is
// overwritten, so replaying the same payload is idempotent.
func (r *Repository) BulkUpsertAttendance(ctx context.Context, owner primitive.ObjectID, records []models.Attendance) error {
	now := time.Now().UTC()
	ops := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		filter := bson.M{
			"employee_id":  rec.EmployeeID,
			"workplace_id": rec.WorkplaceID,
			"date":         rec.Date,
			"owner":        owner,
		}
		update := bson.M{
			"$set": bson.M{
				"owner":        owner,
				"employee_id":  rec.EmployeeID,
				"workplace_id": rec.WorkplaceID,
				"date":         rec.Date,
				"status":       rec.Status,
				"wage":         rec.Wage,
				"updated_at":   now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		}
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true))
	}

	if _, err := r.db.Collection(collAttendances).BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to bulk upsert attendance: %w", err)
	}
	return nil
}

// CountPresent counts present records for the given employees in [start, end].
func (r *Repository) CountPresent(ctx context.Context, owner primitive.ObjectID, start, end time.Time) (int64, error) {
	n, err := r.db.Collection(collAttendances).CountDocuments(ctx, bson.M{
		"owner":  owner,
		"status": models.StatusPresent,
		"date":   bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count present attendance: %w", err)
	}
	return n, nil
}

// SumWages totals the wage field over the owner's attendance in [start, end]
// with a single aggregation pipeline.
func (r *Repository) SumWages(ctx context.Context, owner primitive.ObjectID, start, end time.Time) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"owner": owner,
			"date":  bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"totalWage": bson.M{"$sum": "$wage"},
		}}},
	}

	cur, err := r.db.Collection(collAttendances).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate wages: %w", err)
	}
	var out []struct {
		TotalWage float64 `bson:"totalWage"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("failed to decode wage aggregate: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].TotalWage, nil
}

// MonthlyWageTotals groups the owner's attendance in [start, end] by calendar
// month and sums the wages, sorted by month number.
func (r *Repository) MonthlyWageTotals(ctx context.Context, owner primitive.ObjectID, start, end time.Time) (map[int]float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"owner": owner,
			"date":  bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":  bson.M{"month": bson.M{"$month": "$date"}},
			"wage": bson.M{"$sum": "$wage"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id.month": 1}}},
	}

	cur, err := r.db.Collection(collAttendances).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly wages: %w", err)
	}
	var out []struct {
		ID struct {
			Month int `bson:"month"`
		} `bson:"_id"`
		Wage float64 `bson:"wage"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode monthly wage aggregate: %w", err)
	}

	totals := make(map[int]float64, len(out))
	for _, row := range out {
		totals[row.ID.Month] = row.Wage
	}
	return totals, nil
}
