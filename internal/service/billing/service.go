package billing

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
	"github.com/lindqvistmarin/slipway/internal/sanitize"
)

// Repository defines the persistence operations the billing service needs.
type Repository interface {
	GetBoat(ctx context.Context, id primitive.ObjectID) (*models.Boat, error)
	FindServiceEntries(ctx context.Context, ids []primitive.ObjectID) ([]models.ServiceEntry, error)
	NextInvoiceSequence(ctx context.Context, year int) (int64, error)
	CreateInvoiceWithServices(ctx context.Context, invoice *models.Invoice, serviceIDs []primitive.ObjectID) error
	GetInvoice(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id primitive.ObjectID, status models.InvoiceStatus) error
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]models.Invoice, error)
}

// Service implements invoice creation and status progression.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new billing service instance.
func NewService(repository Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repository,
		logger: logger,
		now:    time.Now,
	}
}

// InvoiceInput carries the raw form-shaped fields of an invoice creation
// request. Scalars arrive as strings and pass through the sanitizer.
type InvoiceInput struct {
	ServiceIDs []string `json:"service_ids"`
	DueAt      string   `json:"due_at"`
	Notes      string   `json:"notes"`
	AdminMemo  string   `json:"admin_memo"`
}

// CreateInvoice snapshots the selected service entries into a new DRAFT
// invoice. The selected entries are flipped to INVOICED atomically with the
// invoice insert; entries already attached to an invoice are dropped from
// the selection.
func (s *Service) CreateInvoice(ctx context.Context, boatID string, in InvoiceInput) (*models.Invoice, error) {
	bid, err := parseID(boatID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetBoat(ctx, bid); err != nil {
		return nil, err
	}

	var candidateIDs []primitive.ObjectID
	for _, raw := range in.ServiceIDs {
		if hex := sanitize.ObjectID(raw); hex != nil {
			oid, err := primitive.ObjectIDFromHex(*hex)
			if err != nil {
				continue
			}
			candidateIDs = append(candidateIDs, oid)
		}
	}
	if len(candidateIDs) == 0 {
		return nil, fmt.Errorf("no service entries selected: %w", models.ErrBusinessRule)
	}

	entries, err := s.repo.FindServiceEntries(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	billable := make([]models.ServiceEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Status == models.ServiceInvoiced || entry.InvoiceID != nil {
			continue
		}
		billable = append(billable, entry)
	}
	if len(billable) == 0 {
		return nil, fmt.Errorf("no billable service entries in selection: %w", models.ErrBusinessRule)
	}

	totals := Aggregate(billable)

	year := s.now().Year()
	seq, err := s.repo.NextInvoiceSequence(ctx, year)
	if err != nil {
		return nil, err
	}

	billableIDs := make([]primitive.ObjectID, len(billable))
	for i, entry := range billable {
		billableIDs[i] = entry.ID
	}

	invoice := &models.Invoice{
		BoatID:         bid,
		Reference:      FormatReference(year, seq),
		IssuedAt:       s.now().UTC(),
		DueAt:          sanitize.Date(in.DueAt),
		Status:         models.InvoiceDraft,
		Notes:          sanitize.Text(in.Notes),
		AdminMemo:      sanitize.Text(in.AdminMemo),
		TotalHours:     totals.Hours.InexactFloat64(),
		LaborTotal:     totals.Labor.InexactFloat64(),
		MaterialsTotal: totals.Materials.InexactFloat64(),
		TotalAmount:    totals.Amount.InexactFloat64(),
		ServiceIDs:     billableIDs,
	}

	if err := s.repo.CreateInvoiceWithServices(ctx, invoice, billableIDs); err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("reference", invoice.Reference),
		zap.String("boat_id", bid.Hex()),
		zap.Int("entries", len(billableIDs)),
		zap.Float64("total_amount", invoice.TotalAmount))

	return invoice, nil
}

// UpdateStatus moves an invoice to an explicitly requested status, provided
// the transition is legal. Only DRAFT→SENT and SENT→PAID exist; CANCELLED
// stays unreachable.
func (s *Service) UpdateStatus(ctx context.Context, invoiceID string, rawStatus string) (*models.Invoice, error) {
	if sanitize.Text(rawStatus) == nil {
		return nil, fmt.Errorf("status missing: %w", models.ErrValidation)
	}
	target, ok := models.ParseInvoiceStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("unknown invoice status %q: %w", rawStatus, models.ErrValidation)
	}

	id, err := parseID(invoiceID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if !invoice.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("invoice %s cannot move from %s to %s: %w",
			invoice.Reference, invoice.Status, target, models.ErrBusinessRule)
	}

	if err := s.repo.UpdateInvoiceStatus(ctx, id, target); err != nil {
		return nil, err
	}
	invoice.Status = target

	s.logger.Info("invoice status updated",
		zap.String("reference", invoice.Reference),
		zap.String("status", string(target)))

	return invoice, nil
}

// Advance moves an invoice one step forward in the DRAFT→SENT→PAID chain.
// Calling it on a PAID invoice is a no-op, not an error.
func (s *Service) Advance(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	id, err := parseID(invoiceID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	next := invoice.Status.Next()
	if next == invoice.Status {
		return invoice, nil
	}

	if err := s.repo.UpdateInvoiceStatus(ctx, id, next); err != nil {
		return nil, err
	}
	invoice.Status = next
	return invoice, nil
}

// Get loads a single invoice.
func (s *Service) Get(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	id, err := parseID(invoiceID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetInvoice(ctx, id)
}

// List returns all invoices, newest first.
func (s *Service) List(ctx context.Context) ([]models.Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

// Overdue returns invoices past their due date that are still awaiting
// payment.
func (s *Service) Overdue(ctx context.Context) ([]models.Invoice, error) {
	return s.repo.ListOverdueInvoices(ctx, s.now().UTC())
}

func parseID(raw string) (primitive.ObjectID, error) {
	hex := sanitize.ObjectID(raw)
	if hex == nil {
		return primitive.NilObjectID, fmt.Errorf("malformed identifier %q: %w", raw, models.ErrValidation)
	}
	oid, err := primitive.ObjectIDFromHex(*hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("malformed identifier %q: %w", raw, models.ErrValidation)
	}
	return oid, nil
}
