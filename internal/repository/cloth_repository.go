package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrInvalidClothID reports an identifier that is not a valid ObjectID hex.
	ErrInvalidClothID = errors.New("invalid winter cloth id")
	// ErrClothNotFound reports a lookup miss.
	ErrClothNotFound = errors.New("winter cloth not found")
)

// ParseClothID validates and converts a client-supplied identifier. Malformed
// input is rejected here so it surfaces as a client error, never as a driver
// failure deep in a query.
func ParseClothID(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidClothID
	}
	return id, nil
}

// ClothRepository encapsulates access to the schema-less winterCloths
// collection. Documents carry whatever fields the caller supplied at
// creation, plus the store-assigned _id.
type ClothRepository interface {
	List(ctx context.Context, limit int64) ([]bson.M, error)
	GetByID(ctx context.Context, id bson.ObjectID) (bson.M, error)
	Create(ctx context.Context, payload map[string]any) (bson.ObjectID, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error)
}

type clothRepository struct {
	coll *mongo.Collection
}

// NewClothRepository returns a MongoDB-backed implementation.
func NewClothRepository(coll *mongo.Collection) ClothRepository {
	return &clothRepository{coll: coll}
}

// List returns documents in natural scan order. A non-positive limit means
// no limit.
func (r *clothRepository) List(ctx context.Context, limit int64) ([]bson.M, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *clothRepository) GetByID(ctx context.Context, id bson.ObjectID) (bson.M, error) {
	var doc bson.M
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClothNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Create inserts the payload as-is and returns the store-assigned id. Any
// caller-supplied _id is discarded so identifiers stay store-owned.
func (r *clothRepository) Create(ctx context.Context, payload map[string]any) (bson.ObjectID, error) {
	doc := bson.M{"_id": bson.NewObjectID()}
	for k, v := range payload {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return bson.ObjectID{}, err
	}

	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return doc["_id"].(bson.ObjectID), nil
	}
	return id, nil
}

func (r *clothRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
