package repositories

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryCount is one row of the category aggregation.
type CategoryCount struct {
	Category string `bson:"_id" json:"category"`
	Count    int64  `bson:"count" json:"count"`
}

// MenuRepository handles the menu collection.
type MenuRepository struct {
	Repository[models.MenuItem]
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{Repository: NewRepository[models.MenuItem](db, "menu")}
}

// categoryCountsPipeline groups menu items by category and counts each group.
// No ordering is imposed.
func categoryCountsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

// CategoryCounts returns the number of menu items per category.
func (r *MenuRepository) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	counts := []CategoryCount{}
	if err := r.aggregate(ctx, categoryCountsPipeline(), &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// ReviewRepository handles the read-only reviews collection.
type ReviewRepository struct {
	Repository[models.Review]
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{Repository: NewRepository[models.Review](db, "reviews")}
}
