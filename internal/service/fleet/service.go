// Package fleet manages boats, their owners and the service work logged
// against them.
package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
	"github.com/lindqvistmarin/slipway/internal/sanitize"
)

// Repository defines the persistence operations the fleet service needs.
type Repository interface {
	CreateOwner(ctx context.Context, owner *models.Owner) error
	CreateBoat(ctx context.Context, boat *models.Boat) error
	UpdateBoat(ctx context.Context, id primitive.ObjectID, boat *models.Boat) error
	GetBoat(ctx context.Context, id primitive.ObjectID) (*models.Boat, error)
	GetBoatByPublicID(ctx context.Context, publicID string) (*models.Boat, error)
	ListBoats(ctx context.Context) ([]models.Boat, error)
	CreateServiceEntry(ctx context.Context, entry *models.ServiceEntry) error
	GetServiceEntry(ctx context.Context, id primitive.ObjectID) (*models.ServiceEntry, error)
	ListServiceEntries(ctx context.Context, boatID primitive.ObjectID) ([]models.ServiceEntry, error)
	UpdateServiceStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceStatus) error
	DeleteServiceEntry(ctx context.Context, id primitive.ObjectID) error
	ListInvoicesByBoat(ctx context.Context, boatID primitive.ObjectID) ([]models.Invoice, error)
	ListNotesByBoat(ctx context.Context, boatID primitive.ObjectID) ([]models.CustomerNote, error)
}

// Service implements boat and service-entry administration.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new fleet service instance.
func NewService(repository Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// BoatInput carries the raw form-shaped fields of a boat create or update
// request, including the inline owner block.
type BoatInput struct {
	Name          string `json:"name"`
	Model         string `json:"model"`
	Year          string `json:"year"`
	HullID        string `json:"hull_id"`
	CoverImageURL string `json:"cover_image_url"`
	Notes         string `json:"notes"`
	OwnerID       string `json:"owner_id"`
	OwnerName     string `json:"owner_name"`
	OwnerEmail    string `json:"owner_email"`
	OwnerPhone    string `json:"owner_phone"`
	OwnerAddress  string `json:"owner_address"`
}

// CreateBoat registers a new boat, resolving or creating its owner inline,
// and mints the shareable public identifier.
func (s *Service) CreateBoat(ctx context.Context, in BoatInput) (*models.Boat, error) {
	boat, err := s.boatFromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	boat.PublicID = uuid.NewString()

	if err := s.repo.CreateBoat(ctx, boat); err != nil {
		return nil, err
	}

	s.logger.Info("boat created",
		zap.String("boat_id", boat.ID.Hex()),
		zap.String("name", boat.Name))

	return boat, nil
}

// UpdateBoat replaces a boat's fields. Omitted optional fields clear to
// null, including the owner association when owner resolution yields
// nothing.
func (s *Service) UpdateBoat(ctx context.Context, boatID string, in BoatInput) (*models.Boat, error) {
	id, err := parseID(boatID)
	if err != nil {
		return nil, err
	}

	boat, err := s.boatFromInput(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBoat(ctx, id, boat); err != nil {
		return nil, err
	}
	return s.repo.GetBoat(ctx, id)
}

func (s *Service) boatFromInput(ctx context.Context, in BoatInput) (*models.Boat, error) {
	if len(in.Name) < 2 {
		return nil, fmt.Errorf("boat name too short: %w", models.ErrValidation)
	}

	ownerID, err := s.resolveOwner(ctx, in)
	if err != nil {
		return nil, err
	}

	name := in.Name
	if trimmed := sanitize.Text(in.Name); trimmed != nil {
		name = *trimmed
	}

	boat := &models.Boat{
		Name:          name,
		Model:         sanitize.Text(in.Model),
		HullID:        sanitize.Text(in.HullID),
		CoverImageURL: sanitize.Text(in.CoverImageURL),
		Notes:         sanitize.Text(in.Notes),
		OwnerID:       ownerID,
	}
	if year := sanitize.Number(in.Year); year != nil {
		y := int(*year)
		boat.Year = &y
	}
	return boat, nil
}

// resolveOwner returns the owner to associate: a submitted identifier is
// used as-is (existence is left to referential behavior), otherwise a
// non-empty owner name creates a new owner record inline, otherwise the
// association stays unset.
func (s *Service) resolveOwner(ctx context.Context, in BoatInput) (*primitive.ObjectID, error) {
	if hex := sanitize.ObjectID(in.OwnerID); hex != nil {
		oid, err := primitive.ObjectIDFromHex(*hex)
		if err == nil {
			return &oid, nil
		}
	}

	name := sanitize.Text(in.OwnerName)
	if name == nil {
		return nil, nil
	}

	owner := &models.Owner{
		Name:    *name,
		Email:   sanitize.Text(in.OwnerEmail),
		Phone:   sanitize.Text(in.OwnerPhone),
		Address: sanitize.Text(in.OwnerAddress),
	}
	if err := s.repo.CreateOwner(ctx, owner); err != nil {
		return nil, err
	}

	s.logger.Info("owner created inline",
		zap.String("owner_id", owner.ID.Hex()),
		zap.String("name", owner.Name))

	return &owner.ID, nil
}

// GetBoat loads a single boat by id.
func (s *Service) GetBoat(ctx context.Context, boatID string) (*models.Boat, error) {
	id, err := parseID(boatID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBoat(ctx, id)
}

// ListBoats returns all registered boats.
func (s *Service) ListBoats(ctx context.Context) ([]models.Boat, error) {
	return s.repo.ListBoats(ctx)
}

// BoatDetail is the admin detail view of a boat with its related
// collections.
type BoatDetail struct {
	Boat     models.Boat           `json:"boat"`
	Services []models.ServiceEntry `json:"services"`
	Invoices []models.Invoice      `json:"invoices"`
	Notes    []models.CustomerNote `json:"notes"`
}

// GetBoatDetail assembles the boat detail view.
func (s *Service) GetBoatDetail(ctx context.Context, boatID string) (*BoatDetail, error) {
	id, err := parseID(boatID)
	if err != nil {
		return nil, err
	}

	boat, err := s.repo.GetBoat(ctx, id)
	if err != nil {
		return nil, err
	}
	services, err := s.repo.ListServiceEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	invoices, err := s.repo.ListInvoicesByBoat(ctx, id)
	if err != nil {
		return nil, err
	}
	notes, err := s.repo.ListNotesByBoat(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BoatDetail{Boat: *boat, Services: services, Invoices: invoices, Notes: notes}, nil
}

// ServiceEntryInput carries the raw form-shaped fields of a service entry
// creation request.
type ServiceEntryInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	HourlyRate    string `json:"hourly_rate"`
	MaterialsCost string `json:"materials_cost"`
	InternalNote  string `json:"internal_note"`
}

// CreateServiceEntry logs a unit of work against a boat. A parsable start
// time is mandatory; INVOICED cannot be chosen as the initial status.
func (s *Service) CreateServiceEntry(ctx context.Context, boatID string, in ServiceEntryInput) (*models.ServiceEntry, error) {
	id, err := parseID(boatID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetBoat(ctx, id); err != nil {
		return nil, err
	}

	if len(in.Title) < 2 {
		return nil, fmt.Errorf("service title too short: %w", models.ErrValidation)
	}

	startTime := sanitize.Date(in.StartTime)
	if startTime == nil {
		return nil, fmt.Errorf("start time missing: %w", models.ErrValidation)
	}

	status := models.ServicePlanned
	if sanitize.Text(in.Status) != nil {
		parsed, ok := models.ParseServiceStatus(in.Status)
		if !ok {
			return nil, fmt.Errorf("unknown service status %q: %w", in.Status, models.ErrValidation)
		}
		if parsed == models.ServiceInvoiced {
			return nil, fmt.Errorf("entries become invoiced through invoicing only: %w", models.ErrBusinessRule)
		}
		status = parsed
	}

	title := in.Title
	if trimmed := sanitize.Text(in.Title); trimmed != nil {
		title = *trimmed
	}

	entry := &models.ServiceEntry{
		BoatID:        id,
		Title:         title,
		Description:   sanitize.Text(in.Description),
		StartTime:     *startTime,
		EndTime:       sanitize.Date(in.EndTime),
		Status:        status,
		HourlyRate:    sanitize.Number(in.HourlyRate),
		MaterialsCost: sanitize.Number(in.MaterialsCost),
		InternalNote:  sanitize.Text(in.InternalNote),
	}

	if err := s.repo.CreateServiceEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("service entry created",
		zap.String("entry_id", entry.ID.Hex()),
		zap.String("boat_id", id.Hex()),
		zap.String("status", string(entry.Status)))

	return entry, nil
}

// UpdateServiceStatus moves an entry through the work state machine:
// PLANNED→IN_PROGRESS→COMPLETED, with COMPLETED→IN_PROGRESS as the reopen
// action. INVOICED is rejected as a manual target.
func (s *Service) UpdateServiceStatus(ctx context.Context, entryID string, rawStatus string) (*models.ServiceEntry, error) {
	id, err := parseID(entryID)
	if err != nil {
		return nil, err
	}
	target, ok := models.ParseServiceStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("unknown service status %q: %w", rawStatus, models.ErrValidation)
	}

	entry, err := s.repo.GetServiceEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if !entry.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("service entry cannot move from %s to %s: %w",
			entry.Status, target, models.ErrBusinessRule)
	}

	if err := s.repo.UpdateServiceStatus(ctx, id, target); err != nil {
		return nil, err
	}
	entry.Status = target
	return entry, nil
}

// DeleteServiceEntry removes an entry. Invoiced entries back a billing
// document snapshot and cannot be deleted.
func (s *Service) DeleteServiceEntry(ctx context.Context, entryID string) error {
	id, err := parseID(entryID)
	if err != nil {
		return err
	}

	entry, err := s.repo.GetServiceEntry(ctx, id)
	if err != nil {
		return err
	}
	if entry.Status == models.ServiceInvoiced || entry.InvoiceID != nil {
		return fmt.Errorf("invoiced entries cannot be deleted: %w", models.ErrBusinessRule)
	}

	return s.repo.DeleteServiceEntry(ctx, id)
}

// PublicBoatView is the customer-facing projection of a boat: no internal
// notes, no rates, no admin identifiers beyond the public one.
type PublicBoatView struct {
	PublicID      string              `json:"public_id"`
	Name          string              `json:"name"`
	Model         *string             `json:"model,omitempty"`
	Year          *int                `json:"year,omitempty"`
	CoverImageURL *string             `json:"cover_image_url,omitempty"`
	Services      []PublicServiceView `json:"services"`
}

// PublicServiceView is the customer-facing projection of a service entry.
type PublicServiceView struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Status      string     `json:"status"`
}

// GetPublicBoatView resolves a boat by its shareable identifier and strips
// everything a customer should not see.
func (s *Service) GetPublicBoatView(ctx context.Context, publicID string) (*PublicBoatView, error) {
	boat, err := s.repo.GetBoatByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListServiceEntries(ctx, boat.ID)
	if err != nil {
		return nil, err
	}

	view := &PublicBoatView{
		PublicID:      boat.PublicID,
		Name:          boat.Name,
		Model:         boat.Model,
		Year:          boat.Year,
		CoverImageURL: boat.CoverImageURL,
		Services:      make([]PublicServiceView, 0, len(entries)),
	}
	for _, entry := range entries {
		view.Services = append(view.Services, PublicServiceView{
			Title:       entry.Title,
			Description: entry.Description,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			Status:      string(entry.Status),
		})
	}
	return view, nil
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
