// Package repositories wraps the MongoDB collections behind typed
// repositories. One generic document repository covers the basic CRUD
// operations; entity-specific repositories add the aggregation queries.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a document lookup matches nothing.
var ErrNotFound = errors.New("repositories: document not found")

// ListOptions carries optional pagination. A zero Limit means "return all
// matches"; Skip is only honoured together with a positive Limit.
type ListOptions struct {
	Skip  int64
	Limit int64
}

// Repository is the parameterized document repository shared by every
// collection. It receives the collection handle at construction.
type Repository[T any] struct {
	col *mongo.Collection
}

// NewRepository wraps one logical collection of db.
func NewRepository[T any](db *mongo.Database, collection string) Repository[T] {
	return Repository[T]{col: db.Collection(collection)}
}

// Collection exposes the underlying handle for entity-specific queries.
func (r Repository[T]) Collection() *mongo.Collection { return r.col }

// FindAll returns documents matching filter. A nil filter matches the whole
// collection. Pagination follows ListOptions semantics.
func (r Repository[T]) FindAll(ctx context.Context, filter bson.M, opt ListOptions) ([]T, error) {
	defer metrics.ObserveStoreOp(r.col.Name(), "find")()

	if filter == nil {
		filter = bson.M{}
	}

	findOpts := options.Find()
	if opt.Limit > 0 {
		findOpts.SetSkip(opt.Skip).SetLimit(opt.Limit)
	}

	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", r.col.Name(), err)
	}

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", r.col.Name(), err)
	}
	return docs, nil
}

// FindByID fetches a single document by _id.
func (r Repository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	defer metrics.ObserveStoreOp(r.col.Name(), "findOne")()

	var doc T
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("%s: find one: %w", r.col.Name(), err)
	}
	return doc, nil
}

// FindOne fetches the first document matching filter.
func (r Repository[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	defer metrics.ObserveStoreOp(r.col.Name(), "findOne")()

	var doc T
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("%s: find one: %w", r.col.Name(), err)
	}
	return doc, nil
}

// Insert stores doc and returns the generated _id.
func (r Repository[T]) Insert(ctx context.Context, doc T) (primitive.ObjectID, error) {
	defer metrics.ObserveStoreOp(r.col.Name(), "insert")()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: insert: %w", r.col.Name(), err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// UpdateByID applies patch as a $set to the document with the given _id and
// returns the modified count.
func (r Repository[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (int64, error) {
	defer metrics.ObserveStoreOp(r.col.Name(), "update")()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return 0, fmt.Errorf("%s: update: %w", r.col.Name(), err)
	}
	return res.ModifiedCount, nil
}

// DeleteByID removes one document and returns the deleted count.
func (r Repository[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	defer metrics.ObserveStoreOp(r.col.Name(), "delete")()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("%s: delete: %w", r.col.Name(), err)
	}
	return res.DeletedCount, nil
}

// DeleteMany removes every document whose _id is in ids.
func (r Repository[T]) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	defer metrics.ObserveStoreOp(r.col.Name(), "deleteMany")()

	if len(ids) == 0 {
		return 0, nil
	}

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("%s: delete many: %w", r.col.Name(), err)
	}
	return res.DeletedCount, nil
}

// EstimatedCount returns the collection's approximate document count, which
// is cheap enough for dashboard metrics.
func (r Repository[T]) EstimatedCount(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(r.col.Name(), "count")()

	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", r.col.Name(), err)
	}
	return n, nil
}

// aggregate runs pipeline on the collection and decodes all results into out,
// which must be a pointer to a slice.
func (r Repository[T]) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	defer metrics.ObserveStoreOp(r.col.Name(), "aggregate")()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("%s: aggregate: %w", r.col.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("%s: decode aggregation: %w", r.col.Name(), err)
	}
	return nil
}
