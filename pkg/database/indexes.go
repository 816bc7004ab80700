package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes the query paths rely on. CreateOne is
// idempotent, so running this on every boot is safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		"users":    {Keys: bson.D{{Key: "email", Value: 1}}},
		"carts":    {Keys: bson.D{{Key: "customer_email", Value: 1}}},
		"payments": {Keys: bson.D{{Key: "email", Value: 1}}},
		"menu":     {Keys: bson.D{{Key: "category", Value: 1}}},
	}

	for collection, model := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("database: ensure index on %s: %w", collection, err)
		}
	}
	return nil
}
