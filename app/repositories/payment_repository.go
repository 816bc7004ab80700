package repositories

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecordResult reports both halves of checkout finalization. DeleteErr is
// non-nil when the payment was stored but the cart sweep failed; there is no
// compensating action, the caller surfaces the partial result.
type RecordResult struct {
	PaymentID    primitive.ObjectID
	DeletedCount int64
	DeleteErr    error
}

// AdminStats is the dashboard summary. All counts are estimates.
type AdminStats struct {
	Users     int64   `json:"users"`
	MenuItems int64   `json:"menuItems"`
	Payments  int64   `json:"payments"`
	Revenue   float64 `json:"revenue"`
}

// CategoryStat is one row of the per-category order aggregation.
type CategoryStat struct {
	Category     string  `bson:"_id" json:"category"`
	Quantity     int64   `bson:"quantity" json:"quantity"`
	Revenue      float64 `bson:"revenue" json:"revenue"`
	AveragePrice float64 `bson:"-" json:"averagePrice"`
}

// PaymentRepository handles the payments collection plus the cross-collection
// queries behind checkout and the analytics dashboards.
type PaymentRepository struct {
	Repository[models.PaymentRecord]
	carts *CartRepository
	users *UserRepository
	menu  *MenuRepository
}

func NewPaymentRepository(db *mongo.Database, carts *CartRepository, users *UserRepository, menu *MenuRepository) *PaymentRepository {
	return &PaymentRepository{
		Repository: NewRepository[models.PaymentRecord](db, "payments"),
		carts:      carts,
		users:      users,
		menu:       menu,
	}
}

// Record finalizes a checkout: insert the payment record, then bulk-delete
// the cart entries it references. The two operations are independent; there
// is no transaction, so a failure after the insert leaves the payment stored
// and is reported through RecordResult.DeleteErr rather than as an error.
func (r *PaymentRepository) Record(ctx context.Context, payment models.PaymentRecord) (RecordResult, error) {
	id, err := r.Insert(ctx, payment)
	if err != nil {
		return RecordResult{}, err
	}

	deleted, delErr := r.carts.DeleteMany(ctx, payment.CartIDs)
	return RecordResult{PaymentID: id, DeletedCount: deleted, DeleteErr: delErr}, nil
}

// ByEmail returns a customer's payment history.
func (r *PaymentRepository) ByEmail(ctx context.Context, email string) ([]models.PaymentRecord, error) {
	return r.FindAll(ctx, bson.M{"email": email}, ListOptions{})
}

// revenuePipeline sums total_price across all payment records.
func revenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	}
}

// Stats computes the admin dashboard numbers: estimated user, menu-item, and
// payment counts plus total revenue.
func (r *PaymentRepository) Stats(ctx context.Context) (AdminStats, error) {
	var stats AdminStats
	var err error

	if stats.Users, err = r.users.EstimatedCount(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.MenuItems, err = r.menu.EstimatedCount(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.Payments, err = r.EstimatedCount(ctx); err != nil {
		return AdminStats{}, err
	}

	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err := r.aggregate(ctx, revenuePipeline(), &totals); err != nil {
		return AdminStats{}, err
	}
	if len(totals) > 0 {
		stats.Revenue = totals[0].Total
	}

	return stats, nil
}

// orderStatsPipeline unwinds each payment's menu-item references, joins them
// back to the menu collection, and groups by category. Unresolvable
// references fall out at the $unwind, mirroring the cart join.
func orderStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuIds"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "menu"},
			{Key: "localField", Value: "menuIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}}},
	}
}

// OrderStats returns per-category quantity, revenue, and average price across
// all recorded payments.
func (r *PaymentRepository) OrderStats(ctx context.Context) ([]CategoryStat, error) {
	stats := []CategoryStat{}
	if err := r.aggregate(ctx, orderStatsPipeline(), &stats); err != nil {
		return nil, err
	}
	return withAveragePrice(stats), nil
}

// withAveragePrice fills AveragePrice = revenue / quantity on each row.
// $group only emits rows for matched documents, so quantity is never zero,
// but guard anyway.
func withAveragePrice(stats []CategoryStat) []CategoryStat {
	for i := range stats {
		if stats[i].Quantity > 0 {
			stats[i].AveragePrice = stats[i].Revenue / float64(stats[i].Quantity)
		}
	}
	return stats
}
