package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceEntry is one unit of billable or trackable work on a boat.
//
// A nil EndTime means the work is still in progress and contributes zero
// duration to billing. InvoiceID is set exactly once, when the entry is
// bundled onto an invoice; an entry with status INVOICED always carries it.
type ServiceEntry struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	BoatID        primitive.ObjectID  `bson:"boat_id" json:"boat_id"`
	Title         string              `bson:"title" json:"title"`
	Description   *string             `bson:"description" json:"description,omitempty"`
	StartTime     time.Time           `bson:"start_time" json:"start_time"`
	EndTime       *time.Time          `bson:"end_time" json:"end_time,omitempty"`
	Status        ServiceStatus       `bson:"status" json:"status"`
	HourlyRate    *float64            `bson:"hourly_rate" json:"hourly_rate,omitempty"`
	MaterialsCost *float64            `bson:"materials_cost" json:"materials_cost,omitempty"`
	InternalNote  *string             `bson:"internal_note" json:"internal_note,omitempty"`
	InvoiceID     *primitive.ObjectID `bson:"invoice_id" json:"invoice_id,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// DurationMinutes returns the billable duration of the entry, never
// negative. Open-ended entries report zero.
func (e ServiceEntry) DurationMinutes() float64 {
	if e.EndTime == nil {
		return 0
	}
	minutes := e.EndTime.Sub(e.StartTime).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}
