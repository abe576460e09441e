package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerNote is a message recorded against a boat, submitted by staff or
// by the customer through the public view. Notes are never deleted; admins
// toggle IsResolved instead.
type CustomerNote struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BoatID       primitive.ObjectID `bson:"boat_id" json:"boat_id"`
	NoteType     NoteType           `bson:"note_type" json:"note_type"`
	Message      string             `bson:"message" json:"message"`
	CustomerName *string            `bson:"customer_name" json:"customer_name,omitempty"`
	Contact      *string            `bson:"contact" json:"contact,omitempty"`
	IsResolved   bool               `bson:"is_resolved" json:"is_resolved"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
