package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartStore is the slice of the cart repository the controller needs.
type CartStore interface {
	WithMenuDetails(ctx context.Context, email string) ([]repositories.CartLine, error)
	Insert(ctx context.Context, entry models.CartEntry) (primitive.ObjectID, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// CartController serves the shopping cart endpoints.
type CartController struct {
	store CartStore
}

func NewCartController(store CartStore) *CartController {
	return &CartController{store: store}
}

// List handles GET /carts?query=<email>: the customer's cart entries joined
// with their menu details. Entries whose menu item no longer exists are
// absent from the result. With no query parameter the token email is used.
func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("query")
	if email == "" {
		email, _ = middleware.EmailFromCtx(r.Context())
	}

	lines, err := c.store.WithMenuDetails(r.Context(), email)
	if err != nil {
		response.ServerError(w, "Error fetching carts", err)
		return
	}

	response.Success(w, lines)
}

// Add handles POST /carts.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var entry models.CartEntry
	if errs, err := bind.JSON(r, &entry); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	entry.ID = primitive.NilObjectID

	id, err := c.store.Insert(r.Context(), entry)
	if err != nil {
		response.ServerError(w, "Error creating order", err)
		return
	}

	response.Success(w, map[string]string{"insertedId": id.Hex()})
}

// Remove handles DELETE /carts/{id}.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	deleted, err := c.store.DeleteByID(r.Context(), id)
	if err != nil {
		response.ServerError(w, "Error deleting cart", err)
		return
	}

	response.Success(w, map[string]int64{"deletedCount": deleted})
}

// ReviewController serves the read-only reviews listing.
type ReviewController struct {
	store *repositories.ReviewRepository
}

func NewReviewController(store *repositories.ReviewRepository) *ReviewController {
	return &ReviewController{store: store}
}

// List handles GET /reviews.
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.store.FindAll(r.Context(), nil, repositories.ListOptions{})
	if err != nil {
		response.ServerError(w, "Error fetching reviews", err)
		return
	}
	response.Success(w, reviews)
}
