package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deduction is a salary subtraction. Same shape and date semantics as Loan.
type Deduction struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner      primitive.ObjectID `bson:"owner" json:"owner"`
	EmployeeID primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Amount     float64            `bson:"amount" json:"amount"`
	Remark     string             `bson:"remark" json:"remark"`
	Date       string             `bson:"date" json:"date"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
