package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee statuses.
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// Employee is a worker managed by an owner. Wage is the base daily wage;
// anything paid above it on a given day counts as overtime.
type Employee struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role" json:"role"`
	Wage      float64            `bson:"wage" json:"wage"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
