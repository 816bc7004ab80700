package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// StatsStore is the slice of the payment repository the dashboards read.
type StatsStore interface {
	Stats(ctx context.Context) (repositories.AdminStats, error)
	OrderStats(ctx context.Context) ([]repositories.CategoryStat, error)
}

// AnalyticsController serves the admin dashboard aggregations.
type AnalyticsController struct {
	store StatsStore
}

func NewAnalyticsController(store StatsStore) *AnalyticsController {
	return &AnalyticsController{store: store}
}

// Admin handles GET /admin-analytics: estimated user, menu-item, and payment
// counts plus total revenue.
func (c *AnalyticsController) Admin(w http.ResponseWriter, r *http.Request) {
	stats, err := c.store.Stats(r.Context())
	if err != nil {
		response.ServerError(w, "Error fetching admin analytics", err)
		return
	}
	response.Success(w, stats)
}

// Orders handles GET /order-analytics: per-category quantity, revenue, and
// average price across all recorded payments.
func (c *AnalyticsController) Orders(w http.ResponseWriter, r *http.Request) {
	stats, err := c.store.OrderStats(r.Context())
	if err != nil {
		response.ServerError(w, "Error fetching order analytics", err)
		return
	}
	response.Success(w, stats)
}
