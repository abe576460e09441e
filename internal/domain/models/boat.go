package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Boat is the central entity of the portal. PublicID is the shareable
// identifier baked into customer QR codes; it deliberately differs from the
// internal primary key so the unauthenticated view never exposes admin ids.
type Boat struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PublicID      string              `bson:"public_id" json:"public_id"`
	Name          string              `bson:"name" json:"name"`
	Model         *string             `bson:"model" json:"model,omitempty"`
	Year          *int                `bson:"year" json:"year,omitempty"`
	HullID        *string             `bson:"hull_id" json:"hull_id,omitempty"`
	CoverImageURL *string             `bson:"cover_image_url" json:"cover_image_url,omitempty"`
	Notes         *string             `bson:"notes" json:"notes,omitempty"`
	OwnerID       *primitive.ObjectID `bson:"owner_id" json:"owner_id,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}
