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

// CreateOwner inserts an owner record and assigns its id.
func (r *MongoRepository) CreateOwner(ctx context.Context, owner *models.Owner) error {
	owner.ID = primitive.NewObjectID()
	owner.CreatedAt = time.Now().UTC()

	if _, err := r.collection(ownersColl).InsertOne(ctx, owner); err != nil {
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

// GetOwner loads a single owner by id.
func (r *MongoRepository) GetOwner(ctx context.Context, id primitive.ObjectID) (*models.Owner, error) {
	var owner models.Owner
	err := r.collection(ownersColl).FindOne(ctx, bson.M{"_id": id}).Decode(&owner)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("owner %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	return &owner, nil
}

// CreateBoat inserts a boat record and assigns its id.
func (r *MongoRepository) CreateBoat(ctx context.Context, boat *models.Boat) error {
	now := time.Now().UTC()
	boat.ID = primitive.NewObjectID()
	boat.CreatedAt = now
	boat.UpdatedAt = now

	if _, err := r.collection(boatsColl).InsertOne(ctx, boat); err != nil {
		return fmt.Errorf("insert boat: %w", err)
	}
	return nil
}

// UpdateBoat replaces the mutable fields of a boat. Nil optional fields
// clear the stored value; partial-update semantics live in the service
// layer, not here.
func (r *MongoRepository) UpdateBoat(ctx context.Context, id primitive.ObjectID, boat *models.Boat) error {
	update := bson.M{"$set": bson.M{
		"name":            boat.Name,
		"model":           boat.Model,
		"year":            boat.Year,
		"hull_id":         boat.HullID,
		"cover_image_url": boat.CoverImageURL,
		"notes":           boat.Notes,
		"owner_id":        boat.OwnerID,
		"updated_at":      time.Now().UTC(),
	}}

	res, err := r.collection(boatsColl).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update boat: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("boat %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}

// GetBoat loads a single boat by its internal id.
func (r *MongoRepository) GetBoat(ctx context.Context, id primitive.ObjectID) (*models.Boat, error) {
	var boat models.Boat
	err := r.collection(boatsColl).FindOne(ctx, bson.M{"_id": id}).Decode(&boat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("boat %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find boat: %w", err)
	}
	return &boat, nil
}

// GetBoatByPublicID loads a boat by its shareable public identifier.
func (r *MongoRepository) GetBoatByPublicID(ctx context.Context, publicID string) (*models.Boat, error) {
	var boat models.Boat
	err := r.collection(boatsColl).FindOne(ctx, bson.M{"public_id": publicID}).Decode(&boat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("boat with public id %s: %w", publicID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find boat by public id: %w", err)
	}
	return &boat, nil
}

// ListBoats returns all boats, newest first.
func (r *MongoRepository) ListBoats(ctx context.Context) ([]models.Boat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(boatsColl).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list boats: %w", err)
	}

	var boats []models.Boat
	if err := cursor.All(ctx, &boats); err != nil {
		return nil, fmt.Errorf("decode boats: %w", err)
	}
	return boats, nil
}
