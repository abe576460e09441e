package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invoice is a billing document generated from a snapshot of one or more
// service entries. Totals are computed once at creation and never recomputed,
// even if the underlying entries are edited afterwards.
type Invoice struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	BoatID         primitive.ObjectID   `bson:"boat_id" json:"boat_id"`
	Reference      string               `bson:"reference" json:"reference"`
	IssuedAt       time.Time            `bson:"issued_at" json:"issued_at"`
	DueAt          *time.Time           `bson:"due_at" json:"due_at,omitempty"`
	Status         InvoiceStatus        `bson:"status" json:"status"`
	Notes          *string              `bson:"notes" json:"notes,omitempty"`
	AdminMemo      *string              `bson:"admin_memo" json:"admin_memo,omitempty"`
	TotalHours     float64              `bson:"total_hours" json:"total_hours"`
	LaborTotal     float64              `bson:"labor_total" json:"labor_total"`
	MaterialsTotal float64              `bson:"materials_total" json:"materials_total"`
	TotalAmount    float64              `bson:"total_amount" json:"total_amount"`
	ServiceIDs     []primitive.ObjectID `bson:"service_ids" json:"service_ids"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
}

// Overdue reports whether the invoice has a due date in the past while still
// awaiting payment.
func (i Invoice) Overdue(asOf time.Time) bool {
	return i.Status == InvoiceSent && i.DueAt != nil && i.DueAt.Before(asOf)
}
