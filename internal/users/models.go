package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a stored user record
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Age       int                `bson:"age" json:"age"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Update carries the optional fields of a partial update; nil means "leave unchanged".
type Update struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}
