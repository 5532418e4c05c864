package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workplace is a site attendance can be recorded against.
type Workplace struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	Name      string             `bson:"name" json:"name"`
	Location  string             `bson:"location" json:"location"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
