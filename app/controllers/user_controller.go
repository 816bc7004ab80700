package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the slice of the user repository the controller needs.
type UserStore interface {
	FindAll(ctx context.Context, filter bson.M, opt repositories.ListOptions) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user models.User) (primitive.ObjectID, error)
	PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// UserController serves account management endpoints.
type UserController struct {
	store UserStore
}

func NewUserController(store UserStore) *UserController {
	return &UserController{store: store}
}

// List handles GET /users (admin only).
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.store.FindAll(r.Context(), nil, repositories.ListOptions{})
	if err != nil {
		response.ServerError(w, "Error fetching users", err)
		return
	}
	response.Success(w, users)
}

// IsAdmin handles GET /users/admin/{email}. A caller may only check their own
// role; a token/path email mismatch is forbidden.
func (c *UserController) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	tokenEmail, _ := middleware.EmailFromCtx(r.Context())
	if tokenEmail != email {
		response.Forbidden(w, "Forbidden access")
		return
	}

	admin := false
	user, err := c.store.FindByEmail(r.Context(), email)
	if err == nil {
		admin = user.IsAdmin()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		response.ServerError(w, "Error fetching user", err)
		return
	}

	response.Success(w, map[string]bool{"admin": admin})
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Photo    string `json:"photo"`
	Password string `json:"password"`
}

// Create handles POST /users. Creation is idempotent by email: a duplicate
// sign-up gets an "already exists" message and no second document.
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user := models.User{Name: body.Name, Email: body.Email, Photo: body.Photo}
	if body.Password != "" {
		hash, err := auth.HashPassword(body.Password)
		if err != nil {
			response.ServerError(w, "Error creating user", err)
			return
		}
		user.Password = hash
	}

	id, err := c.store.Create(r.Context(), user)
	if errors.Is(err, repositories.ErrUserExists) {
		response.SuccessMessage(w, "User already exists", nil)
		return
	}
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Error creating user")
		return
	}

	logger.WithCtx(r.Context()).Info("user created", "email", body.Email)
	response.Created(w, map[string]string{"insertedId": id.Hex()})
}

// Promote handles PATCH /users/admin/{id} (admin only).
func (c *UserController) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	modified, err := c.store.PromoteToAdmin(r.Context(), id)
	if err != nil {
		response.ServerError(w, "Error promoting user", err)
		return
	}

	response.Success(w, map[string]int64{"modifiedCount": modified})
}

// Delete handles DELETE /users/{id} (admin only).
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	deleted, err := c.store.DeleteByID(r.Context(), id)
	if err != nil {
		response.ServerError(w, "Error deleting user", err)
		return
	}

	response.Success(w, map[string]int64{"deletedCount": deleted})
}
