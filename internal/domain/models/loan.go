package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loan is a disbursement to an employee, always subtracted from salary.
// Date is a plain YYYY-MM-DD string, not an instant; loans are not
// time-of-day sensitive and range queries compare the strings directly.
type Loan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner      primitive.ObjectID `bson:"owner" json:"owner"`
	EmployeeID primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Amount     float64            `bson:"amount" json:"amount"`
	Remark     string             `bson:"remark" json:"remark"`
	Date       string             `bson:"date" json:"date"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
