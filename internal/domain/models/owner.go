package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owner is the contact record a boat may be associated with. One owner can
// own several boats; a boat references at most one owner.
type Owner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     *string            `bson:"email" json:"email,omitempty"`
	Phone     *string            `bson:"phone" json:"phone,omitempty"`
	Address   *string            `bson:"address" json:"address,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
