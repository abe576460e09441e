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

// CreateServiceEntry inserts a service entry and assigns its id.
func (r *MongoRepository) CreateServiceEntry(ctx context.Context, entry *models.ServiceEntry) error {
	now := time.Now().UTC()
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if _, err := r.collection(servicesColl).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert service entry: %w", err)
	}
	return nil
}

// GetServiceEntry loads a single service entry by id.
func (r *MongoRepository) GetServiceEntry(ctx context.Context, id primitive.ObjectID) (*models.ServiceEntry, error) {
	var entry models.ServiceEntry
	err := r.collection(servicesColl).FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("service entry %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find service entry: %w", err)
	}
	return &entry, nil
}

// FindServiceEntries loads the entries matching the given ids. Unknown ids
// are silently absent from the result.
func (r *MongoRepository) FindServiceEntries(ctx context.Context, ids []primitive.ObjectID) ([]models.ServiceEntry, error) {
	cursor, err := r.collection(servicesColl).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find service entries: %w", err)
	}

	var entries []models.ServiceEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode service entries: %w", err)
	}
	return entries, nil
}

// ListServiceEntries returns all entries for a boat, most recent work first.
func (r *MongoRepository) ListServiceEntries(ctx context.Context, boatID primitive.ObjectID) ([]models.ServiceEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	cursor, err := r.collection(servicesColl).Find(ctx, bson.M{"boat_id": boatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list service entries: %w", err)
	}

	var entries []models.ServiceEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode service entries: %w", err)
	}
	return entries, nil
}

// UpdateServiceStatus sets the status of a single entry.
func (r *MongoRepository) UpdateServiceStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceStatus) error {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.collection(servicesColl).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update service status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("service entry %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}

// DeleteServiceEntry removes an entry.
func (r *MongoRepository) DeleteServiceEntry(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection(servicesColl).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete service entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("service entry %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}
