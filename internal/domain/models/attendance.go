package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"
)

// ValidStatus reports whether s is one of the accepted attendance statuses.
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusLeave
}

// Attendance is one record per (employee, workplace, calendar day). Date is a
// UTC instant at day granularity; Wage is the actual amount paid that day,
// overtime premium included.
type Attendance struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	EmployeeID  primitive.ObjectID `bson:"employee_id" json:"employee_id"`
	WorkplaceID primitive.ObjectID `bson:"workplace_id" json:"workplace_id"`
	Date        time.Time          `bson:"date" json:"date"`
	Status      string             `bson:"status" json:"status"`
	Wage        float64            `bson:"wage" json:"wage"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
