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

// CreateNote inserts a customer note and assigns its id.
func (r *MongoRepository) CreateNote(ctx context.Context, note *models.CustomerNote) error {
	note.ID = primitive.NewObjectID()
	note.CreatedAt = time.Now().UTC()

	if _, err := r.collection(notesColl).InsertOne(ctx, note); err != nil {
		return fmt.Errorf("insert customer note: %w", err)
	}
	return nil
}

// SetNoteResolved flips the resolution flag and returns the updated note.
func (r *MongoRepository) SetNoteResolved(ctx context.Context, id primitive.ObjectID, resolved bool) (*models.CustomerNote, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"is_resolved": resolved}}

	var note models.CustomerNote
	err := r.collection(notesColl).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("customer note %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve customer note: %w", err)
	}
	return &note, nil
}

// ListNotes returns customer notes, newest first, optionally only the
// unresolved ones.
func (r *MongoRepository) ListNotes(ctx context.Context, onlyUnresolved bool) ([]models.CustomerNote, error) {
	filter := bson.M{}
	if onlyUnresolved {
		filter["is_resolved"] = false
	}
	return r.findNotes(ctx, filter)
}

// ListNotesByBoat returns a boat's customer notes, newest first.
func (r *MongoRepository) ListNotesByBoat(ctx context.Context, boatID primitive.ObjectID) ([]models.CustomerNote, error) {
	return r.findNotes(ctx, bson.M{"boat_id": boatID})
}

func (r *MongoRepository) findNotes(ctx context.Context, filter bson.M) ([]models.CustomerNote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(notesColl).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list customer notes: %w", err)
	}

	var notes []models.CustomerNote
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode customer notes: %w", err)
	}
	return notes, nil
}
