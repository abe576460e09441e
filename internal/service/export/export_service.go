// Package export mirrors issued invoices into the bookkeeping ledger sheet.
package export

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
	repo "github.com/lindqvistmarin/slipway/internal/repository/sheets"
)

const (
	ledgerRange = "Invoices!A:H"
	dateLayout  = "2006-01-02"
)

// InvoiceSource defines the persistence reads the exporter needs.
type InvoiceSource interface {
	ListInvoicesIssuedBetween(ctx context.Context, from, to time.Time) ([]models.Invoice, error)
	GetBoat(ctx context.Context, id primitive.ObjectID) (*models.Boat, error)
}

// Service appends one ledger row per issued invoice.
type Service struct {
	ledger repo.Repository
	source InvoiceSource
	logger *zap.Logger
}

// NewService wires a new export service instance.
func NewService(ledger repo.Repository, source InvoiceSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: ledger, source: source, logger: logger}
}

// ExportDay writes every invoice issued on the given calendar day to the
// ledger. Rows: reference, boat, issued, due, hours, labor, materials,
// total. A boat lookup failure downgrades to the raw id so bookkeeping
// never silently loses an invoice.
func (s *Service) ExportDay(ctx context.Context, day time.Time) error {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	invoices, err := s.source.ListInvoicesIssuedBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("load invoices for %s: %w", from.Format(dateLayout), err)
	}

	for _, invoice := range invoices {
		boatLabel := invoice.BoatID.Hex()
		if boat, err := s.source.GetBoat(ctx, invoice.BoatID); err == nil {
			boatLabel = boat.Name
		}

		due := ""
		if invoice.DueAt != nil {
			due = invoice.DueAt.Format(dateLayout)
		}

		row := []interface{}{
			invoice.Reference,
			boatLabel,
			invoice.IssuedAt.Format(dateLayout),
			due,
			invoice.TotalHours,
			invoice.LaborTotal,
			invoice.MaterialsTotal,
			invoice.TotalAmount,
		}
		if err := s.ledger.AppendRow(ctx, ledgerRange, row); err != nil {
			return fmt.Errorf("export invoice %s: %w", invoice.Reference, err)
		}
	}

	s.logger.Info("ledger export finished",
		zap.String("day", from.Format(dateLayout)),
		zap.Int("invoices", len(invoices)))

	return nil
}
