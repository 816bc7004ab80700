package repositories

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartLine is one cart entry joined with its menu item details.
type CartLine struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	MenuID   primitive.ObjectID `bson:"menuId" json:"menuId"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image" json:"image"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
}

// CartRepository handles the carts collection.
type CartRepository struct {
	Repository[models.CartEntry]
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{Repository: NewRepository[models.CartEntry](db, "carts")}
}

// cartDetailsPipeline matches one customer's cart entries and joins each to
// its menu item. The $unwind stage silently drops entries whose menuId no
// longer resolves to a menu document.
func cartDetailsPipeline(email string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "customer_email", Value: email}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "menu"},
			{Key: "localField", Value: "menuId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuDetails"},
		}}},
		{{Key: "$unwind", Value: "$menuDetails"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "menuId", Value: 1},
			{Key: "name", Value: "$menuDetails.name"},
			{Key: "image", Value: "$menuDetails.image"},
			{Key: "category", Value: "$menuDetails.category"},
			{Key: "price", Value: "$menuDetails.price"},
		}}},
	}
}

// WithMenuDetails returns the customer's cart entries joined with menu name,
// image, category, and price.
func (r *CartRepository) WithMenuDetails(ctx context.Context, email string) ([]CartLine, error) {
	lines := []CartLine{}
	if err := r.aggregate(ctx, cartDetailsPipeline(email), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
