package export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
)

type fakeLedger struct {
	rows [][]interface{}
}

func (f *fakeLedger) AppendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	f.rows = append(f.rows, values)
	return nil
}

type fakeSource struct {
	invoices []models.Invoice
	boats    map[primitive.ObjectID]*models.Boat
}

func (f *fakeSource) ListInvoicesIssuedBetween(ctx context.Context, from, to time.Time) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range f.invoices {
		if !inv.IssuedAt.Before(from) && inv.IssuedAt.Before(to) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeSource) GetBoat(ctx context.Context, id primitive.ObjectID) (*models.Boat, error) {
	if boat, ok := f.boats[id]; ok {
		return boat, nil
	}
	return nil, models.ErrNotFound
}

func TestExportDay(t *testing.T) {
	boatID := primitive.NewObjectID()
	orphanBoatID := primitive.NewObjectID()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	source := &fakeSource{
		boats: map[primitive.ObjectID]*models.Boat{
			boatID: {ID: boatID, Name: "Albin Vega"},
		},
		invoices: []models.Invoice{
			{
				Reference:      "INV-2026-0007",
				BoatID:         boatID,
				IssuedAt:       day.Add(10 * time.Hour),
				Status:         models.InvoiceDraft,
				TotalHours:     1.5,
				LaborTotal:     750,
				MaterialsTotal: 150,
				TotalAmount:    900,
			},
			{
				Reference: "INV-2026-0008",
				BoatID:    orphanBoatID,
				IssuedAt:  day.Add(15 * time.Hour),
			},
			{
				Reference: "INV-2026-0009",
				BoatID:    boatID,
				IssuedAt:  day.AddDate(0, 0, 1), // next day, out of window
			},
		},
	}
	ledger := &fakeLedger{}

	svc := NewService(ledger, source, nil)
	require.NoError(t, svc.ExportDay(context.Background(), day))

	require.Len(t, ledger.rows, 2)
	assert.Equal(t, "INV-2026-0007", ledger.rows[0][0])
	assert.Equal(t, "Albin Vega", ledger.rows[0][1])
	assert.Equal(t, 900.0, ledger.rows[0][7])
	assert.Equal(t, orphanBoatID.Hex(), ledger.rows[1][1], "unknown boat falls back to the raw id")
}
