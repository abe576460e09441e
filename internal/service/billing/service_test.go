package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
)

// -------- test fakes --------

type fakeRepo struct {
	boats    map[primitive.ObjectID]*models.Boat
	entries  map[primitive.ObjectID]*models.ServiceEntry
	invoices map[primitive.ObjectID]*models.Invoice

	seq           map[int]int64
	statusUpdates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		boats:    map[primitive.ObjectID]*models.Boat{},
		entries:  map[primitive.ObjectID]*models.ServiceEntry{},
		invoices: map[primitive.ObjectID]*models.Invoice{},
		seq:      map[int]int64{},
	}
}

func (f *fakeRepo) GetBoat(ctx context.Context, id primitive.ObjectID) (*models.Boat, error) {
	if boat, ok := f.boats[id]; ok {
		return boat, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepo) FindServiceEntries(ctx context.Context, ids []primitive.ObjectID) ([]models.ServiceEntry, error) {
	var out []models.ServiceEntry
	for _, id := range ids {
		if e, ok := f.entries[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) NextInvoiceSequence(ctx context.Context, year int) (int64, error) {
	f.seq[year]++
	return f.seq[year], nil
}

func (f *fakeRepo) CreateInvoiceWithServices(ctx context.Context, invoice *models.Invoice, serviceIDs []primitive.ObjectID) error {
	invoice.ID = primitive.NewObjectID()
	invoice.CreatedAt = time.Now().UTC()
	f.invoices[invoice.ID] = invoice
	for _, id := range serviceIDs {
		entry := f.entries[id]
		entry.Status = models.ServiceInvoiced
		invID := invoice.ID
		entry.InvoiceID = &invID
	}
	return nil
}

func (f *fakeRepo) GetInvoice(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	if inv, ok := f.invoices[id]; ok {
		copied := *inv
		return &copied, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepo) UpdateInvoiceStatus(ctx context.Context, id primitive.ObjectID, status models.InvoiceStatus) error {
	inv, ok := f.invoices[id]
	if !ok {
		return models.ErrNotFound
	}
	inv.Status = status
	f.statusUpdates++
	return nil
}

func (f *fakeRepo) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range f.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

func (f *fakeRepo) ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.Overdue(asOf) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

// -------- helpers --------

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func seedBoat(repo *fakeRepo) primitive.ObjectID {
	id := primitive.NewObjectID()
	repo.boats[id] = &models.Boat{ID: id, Name: "Albin Vega"}
	return id
}

func seedEntry(repo *fakeRepo, boatID primitive.ObjectID, minutes int, rate, materials *float64) primitive.ObjectID {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(minutes) * time.Minute)
	id := primitive.NewObjectID()
	repo.entries[id] = &models.ServiceEntry{
		ID:            id,
		BoatID:        boatID,
		Title:         "Engine service",
		StartTime:     start,
		EndTime:       &end,
		Status:        models.ServiceCompleted,
		HourlyRate:    rate,
		MaterialsCost: materials,
	}
	return id
}

// -------- tests --------

func TestCreateInvoice(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	boatID := seedBoat(repo)

	entryA := seedEntry(repo, boatID, 60, f(500), nil)
	entryB := seedEntry(repo, boatID, 30, f(500), f(150))
	untouched := seedEntry(repo, boatID, 45, f(500), nil)

	invoice, err := svc.CreateInvoice(context.Background(), boatID.Hex(), InvoiceInput{
		ServiceIDs: []string{entryA.Hex(), entryB.Hex()},
		DueAt:      "2026-04-09",
		Notes:      "  Spring service  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0001", invoice.Reference)
	assert.Equal(t, models.InvoiceDraft, invoice.Status)
	assert.Equal(t, 1.5, invoice.TotalHours)
	assert.Equal(t, 750.0, invoice.LaborTotal)
	assert.Equal(t, 150.0, invoice.MaterialsTotal)
	assert.Equal(t, 900.0, invoice.TotalAmount)
	require.NotNil(t, invoice.Notes)
	assert.Equal(t, "Spring service", *invoice.Notes)
	require.NotNil(t, invoice.DueAt)

	// Selected entries are flipped and linked; the rest keep their status.
	for _, id := range []primitive.ObjectID{entryA, entryB} {
		entry := repo.entries[id]
		assert.Equal(t, models.ServiceInvoiced, entry.Status)
		require.NotNil(t, entry.InvoiceID)
		assert.Equal(t, invoice.ID, *entry.InvoiceID)
	}
	assert.Equal(t, models.ServiceCompleted, repo.entries[untouched].Status)
	assert.Nil(t, repo.entries[untouched].InvoiceID)
}

func TestCreateInvoiceSequenceAdvances(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	boatID := seedBoat(repo)

	first := seedEntry(repo, boatID, 60, f(500), nil)
	second := seedEntry(repo, boatID, 60, f(500), nil)

	inv1, err := svc.CreateInvoice(context.Background(), boatID.Hex(), InvoiceInput{ServiceIDs: []string{first.Hex()}})
	require.NoError(t, err)
	inv2, err := svc.CreateInvoice(context.Background(), boatID.Hex(), InvoiceInput{ServiceIDs: []string{second.Hex()}})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0001", inv1.Reference)
	assert.Equal(t, "INV-2026-0002", inv2.Reference)
}

func TestCreateInvoiceNoValidSelection(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	boatID := seedBoat(repo)

	tests := []struct {
		name string
		ids  []string
	}{
		{name: "empty", ids: nil},
		{name: "malformed ids", ids: []string{"not-an-id", "1234"}},
		{name: "unknown ids", ids: []string{primitive.NewObjectID().Hex()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateInvoice(context.Background(), boatID.Hex(), InvoiceInput{ServiceIDs: tt.ids})
			assert.ErrorIs(t, err, models.ErrBusinessRule)
			assert.Empty(t, repo.invoices, "nothing may be persisted")
		})
	}
}

func TestCreateInvoiceSkipsAlreadyInvoicedEntries(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	boatID := seedBoat(repo)

	invoiced := seedEntry(repo, boatID, 60, f(500), nil)
	prior := primitive.NewObjectID()
	repo.entries[invoiced].Status = models.ServiceInvoiced
	repo.entries[invoiced].InvoiceID = &prior

	_, err := svc.CreateInvoice(context.Background(), boatID.Hex(), InvoiceInput{ServiceIDs: []string{invoiced.Hex()}})
	assert.ErrorIs(t, err, models.ErrBusinessRule)

	// A mixed selection bills only the open entry.
	open := seedEntry(repo, boatID, 30, f(500), nil)
	invoice, err := svc.CreateInvoice(context.Background(), boatID.Hex(), InvoiceInput{
		ServiceIDs: []string{invoiced.Hex(), open.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{open}, invoice.ServiceIDs)
	assert.Equal(t, 250.0, invoice.TotalAmount)
	assert.Equal(t, prior, *repo.entries[invoiced].InvoiceID, "previously invoiced entry keeps its link")
}

func TestCreateInvoiceUnknownBoat(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.CreateInvoice(context.Background(), primitive.NewObjectID().Hex(), InvoiceInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.CreateInvoice(context.Background(), "garbage", InvoiceInput{})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	id := primitive.NewObjectID()
	repo.invoices[id] = &models.Invoice{ID: id, Reference: "INV-2026-0001", Status: models.InvoiceDraft}

	_, err := svc.UpdateStatus(context.Background(), id.Hex(), "")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.UpdateStatus(context.Background(), id.Hex(), "APPROVED")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.UpdateStatus(context.Background(), id.Hex(), "PAID")
	assert.ErrorIs(t, err, models.ErrBusinessRule, "draft cannot skip sent")

	_, err = svc.UpdateStatus(context.Background(), id.Hex(), "CANCELLED")
	assert.ErrorIs(t, err, models.ErrBusinessRule)

	updated, err := svc.UpdateStatus(context.Background(), id.Hex(), "SENT")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceSent, updated.Status)
	assert.Equal(t, models.InvoiceSent, repo.invoices[id].Status)

	updated, err = svc.UpdateStatus(context.Background(), id.Hex(), "PAID")
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, updated.Status)
}

func TestAdvance(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	id := primitive.NewObjectID()
	repo.invoices[id] = &models.Invoice{ID: id, Reference: "INV-2026-0001", Status: models.InvoiceSent}

	updated, err := svc.Advance(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, updated.Status)
	assert.Equal(t, 1, repo.statusUpdates)

	// Advancing a paid invoice is idempotent and writes nothing.
	updated, err = svc.Advance(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, updated.Status)
	assert.Equal(t, 1, repo.statusUpdates)
}

func TestOverdue(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	overdueID := primitive.NewObjectID()
	repo.invoices[overdueID] = &models.Invoice{ID: overdueID, Reference: "INV-2026-0001", Status: models.InvoiceSent, DueAt: &past}
	currentID := primitive.NewObjectID()
	repo.invoices[currentID] = &models.Invoice{ID: currentID, Reference: "INV-2026-0002", Status: models.InvoiceSent, DueAt: &future}
	paidID := primitive.NewObjectID()
	repo.invoices[paidID] = &models.Invoice{ID: paidID, Reference: "INV-2026-0003", Status: models.InvoicePaid, DueAt: &past}

	overdue, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "INV-2026-0001", overdue[0].Reference)
}
