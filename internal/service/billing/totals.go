package billing

import (
	"github.com/shopspring/decimal"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
)

var sixty = decimal.NewFromInt(60)

// Totals is the computed billing snapshot for a set of service entries.
// Each component is already rounded to 2 decimal places; Amount is the
// rounded sum of the rounded labor and materials totals.
type Totals struct {
	Hours     decimal.Decimal
	Labor     decimal.Decimal
	Materials decimal.Decimal
	Amount    decimal.Decimal
}

// Aggregate computes invoice totals from a snapshot of service entries.
//
// Only entries with an end time contribute duration, and never a negative
// one. Labor is charged when an entry has both a positive duration and an
// hourly rate; an entry with duration but no rate still counts toward total
// hours. Materials cost is summed unconditionally. The computation is pure:
// it never mutates the entries it reads.
func Aggregate(entries []models.ServiceEntry) Totals {
	minutes := decimal.Zero
	labor := decimal.Zero
	materials := decimal.Zero

	for _, entry := range entries {
		if entry.EndTime != nil {
			entryMinutes := decimal.NewFromInt(entry.EndTime.Sub(entry.StartTime).Milliseconds()).
				Div(decimal.NewFromInt(60_000))
			if entryMinutes.IsPositive() {
				minutes = minutes.Add(entryMinutes)
				if entry.HourlyRate != nil && *entry.HourlyRate > 0 {
					labor = labor.Add(entryMinutes.Mul(decimal.NewFromFloat(*entry.HourlyRate)).Div(sixty))
				}
			}
		}
		if entry.MaterialsCost != nil {
			materials = materials.Add(decimal.NewFromFloat(*entry.MaterialsCost))
		}
	}

	// Components are rounded before the grand total is summed, so the
	// stored invoice matches what the two lines display.
	roundedLabor := labor.Round(2)
	roundedMaterials := materials.Round(2)

	return Totals{
		Hours:     minutes.Div(sixty).Round(2),
		Labor:     roundedLabor,
		Materials: roundedMaterials,
		Amount:    roundedLabor.Add(roundedMaterials).Round(2),
	}
}
