// Package notes records and resolves customer feedback against boats.
package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
	"github.com/lindqvistmarin/slipway/internal/sanitize"
	"github.com/lindqvistmarin/slipway/pkg/clients/notify"
)

// Repository defines the persistence operations the notes service needs.
type Repository interface {
	GetBoatByPublicID(ctx context.Context, publicID string) (*models.Boat, error)
	CreateNote(ctx context.Context, note *models.CustomerNote) error
	SetNoteResolved(ctx context.Context, id primitive.ObjectID, resolved bool) (*models.CustomerNote, error)
	ListNotes(ctx context.Context, onlyUnresolved bool) ([]models.CustomerNote, error)
}

// Service implements customer note intake and resolution.
type Service struct {
	repo     Repository
	notifier notify.Client
	logger   *zap.Logger
}

// NewService wires a new notes service instance. A nil notifier disables
// webhook events.
func NewService(repository Repository, notifier notify.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, notifier: notifier, logger: logger}
}

// NoteInput carries the raw form-shaped fields of a note submission.
type NoteInput struct {
	Message      string `json:"message"`
	NoteType     string `json:"note_type"`
	CustomerName string `json:"customer_name"`
	Contact      string `json:"contact"`
}

// Record stores a note submitted against a boat's public identifier. The
// boat must resolve or the submission fails; the public surface never
// confirms which identifiers exist beyond that.
func (s *Service) Record(ctx context.Context, publicID string, in NoteInput) (*models.CustomerNote, error) {
	boat, err := s.repo.GetBoatByPublicID(ctx, strings.TrimSpace(publicID))
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(in.Message)
	if len(message) < 3 {
		return nil, fmt.Errorf("note message too short: %w", models.ErrValidation)
	}

	note := &models.CustomerNote{
		BoatID:       boat.ID,
		NoteType:     models.ParseNoteType(in.NoteType),
		Message:      message,
		CustomerName: sanitize.Text(in.CustomerName),
		Contact:      sanitize.Text(in.Contact),
	}

	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("customer note recorded",
		zap.String("boat_id", boat.ID.Hex()),
		zap.String("note_type", string(note.NoteType)))

	// Delivery failure must not fail the submission; the note is stored.
	if s.notifier != nil {
		event := notify.Event{
			Event:   notify.EventNoteRecorded,
			BoatID:  boat.ID.Hex(),
			Message: fmt.Sprintf("%s note on %s: %s", note.NoteType, boat.Name, message),
			At:      time.Now().UTC(),
		}
		if err := s.notifier.Post(ctx, event); err != nil {
			s.logger.Warn("webhook delivery failed", zap.Error(err))
		}
	}

	return note, nil
}

// ToggleResolved flips the resolution flag of a note.
func (s *Service) ToggleResolved(ctx context.Context, noteID string, resolved bool) (*models.CustomerNote, error) {
	hex := sanitize.ObjectID(noteID)
	if hex == nil {
		return nil, fmt.Errorf("malformed identifier %q: %w", noteID, models.ErrValidation)
	}
	id, err := primitive.ObjectIDFromHex(*hex)
	if err != nil {
		return nil, fmt.Errorf("malformed identifier %q: %w", noteID, models.ErrValidation)
	}

	return s.repo.SetNoteResolved(ctx, id, resolved)
}

// List returns customer notes, optionally restricted to unresolved ones.
func (s *Service) List(ctx context.Context, onlyUnresolved bool) ([]models.CustomerNote, error) {
	return s.repo.ListNotes(ctx, onlyUnresolved)
}
