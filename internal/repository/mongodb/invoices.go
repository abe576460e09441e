package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
)

// NextInvoiceSequence atomically increments and returns the invoice counter
// for the given calendar year. The counter document is created on first use,
// so the first invoice of a year always draws sequence 1.
func (r *MongoRepository) NextInvoiceSequence(ctx context.Context, year int) (int64, error) {
	filter := bson.M{"_id": fmt.Sprintf("invoice-%d", year)}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.collection(countersColl).FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("increment invoice sequence for %d: %w", year, err)
	}
	return counter.Seq, nil
}

// CreateInvoiceWithServices persists the invoice and flips the attached
// service entries to INVOICED in a single transaction, so a crash between
// the two writes can never leave an orphaned invoice behind. Requires a
// replica-set deployment.
func (r *MongoRepository) CreateInvoiceWithServices(ctx context.Context, invoice *models.Invoice, serviceIDs []primitive.ObjectID) error {
	now := time.Now().UTC()
	invoice.ID = primitive.NewObjectID()
	invoice.CreatedAt = now

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.collection(invoicesColl).InsertOne(sc, invoice); err != nil {
			return nil, fmt.Errorf("insert invoice: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"status":     models.ServiceInvoiced,
			"invoice_id": invoice.ID,
			"updated_at": now,
		}}
		res, err := r.collection(servicesColl).UpdateMany(sc, bson.M{"_id": bson.M{"$in": serviceIDs}}, update)
		if err != nil {
			return nil, fmt.Errorf("flag invoiced entries: %w", err)
		}
		if res.MatchedCount != int64(len(serviceIDs)) {
			return nil, fmt.Errorf("expected %d entries, matched %d: %w", len(serviceIDs), res.MatchedCount, models.ErrNotFound)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("invoice transaction: %w", err)
	}
	return nil
}

// GetInvoice loads a single invoice by id.
func (r *MongoRepository) GetInvoice(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection(invoicesColl).FindOne(ctx, bson.M{"_id": id}).Decode(&invoice)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("invoice %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return &invoice, nil
}

// UpdateInvoiceStatus sets the status of a single invoice.
func (r *MongoRepository) UpdateInvoiceStatus(ctx context.Context, id primitive.ObjectID, status models.InvoiceStatus) error {
	res, err := r.collection(invoicesColl).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("invoice %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}

// ListInvoices returns all invoices, newest first.
func (r *MongoRepository) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return r.findInvoices(ctx, bson.M{})
}

// ListInvoicesByBoat returns a boat's invoices, newest first.
func (r *MongoRepository) ListInvoicesByBoat(ctx context.Context, boatID primitive.ObjectID) ([]models.Invoice, error) {
	return r.findInvoices(ctx, bson.M{"boat_id": boatID})
}

// ListInvoicesIssuedBetween returns invoices issued in [from, to).
func (r *MongoRepository) ListInvoicesIssuedBetween(ctx context.Context, from, to time.Time) ([]models.Invoice, error) {
	return r.findInvoices(ctx, bson.M{"issued_at": bson.M{"$gte": from, "$lt": to}})
}

// ListOverdueInvoices returns invoices still awaiting payment whose due date
// has passed.
func (r *MongoRepository) ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]models.Invoice, error) {
	filter := bson.M{
		"status": models.InvoiceSent,
		"due_at": bson.M{"$ne": nil, "$lt": asOf},
	}
	return r.findInvoices(ctx, filter)
}

func (r *MongoRepository) findInvoices(ctx context.Context, filter bson.M) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(invoicesColl).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}
	return invoices, nil
}
