package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/cache"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	menuListCacheKey   = "menu:all"
	menuCountsCacheKey = "menu:category-counts"
	menuCacheTTL       = 5 * time.Minute
)

// MenuStore is the slice of the menu repository the controller needs.
type MenuStore interface {
	FindAll(ctx context.Context, filter bson.M, opt repositories.ListOptions) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.MenuItem, error)
	Insert(ctx context.Context, item models.MenuItem) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	CategoryCounts(ctx context.Context) ([]repositories.CategoryCount, error)
}

// MenuController serves the menu catalogue endpoints.
type MenuController struct {
	store MenuStore
}

func NewMenuController(store MenuStore) *MenuController {
	return &MenuController{store: store}
}

// listQuery extracts the category filter and pagination from the URL query.
// An unset or unparsable limit means "all matches"; skip is only applied
// together with a limit.
func listQuery(r *http.Request) (filter bson.M, opt repositories.ListOptions) {
	filter = bson.M{}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}

	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit > 0 {
		opt = repositories.ListOptions{Skip: skip, Limit: limit}
	}
	return filter, opt
}

// List handles GET /menu with optional category filter and skip/limit
// pagination. The unfiltered full listing is served from cache when possible.
func (c *MenuController) List(w http.ResponseWriter, r *http.Request) {
	filter, opt := listQuery(r)

	cacheable := len(filter) == 0 && opt.Limit == 0
	if cacheable {
		var cached []models.MenuItem
		if cache.Get(menuListCacheKey, &cached) {
			response.Success(w, cached)
			return
		}
	}

	items, err := c.store.FindAll(r.Context(), filter, opt)
	if err != nil {
		response.ServerError(w, "Error fetching menu", err)
		return
	}

	if cacheable {
		_ = cache.Set(menuListCacheKey, items, menuCacheTTL)
	}
	response.Success(w, items)
}

// CategoryCounts handles GET /menu/category-counts.
func (c *MenuController) CategoryCounts(w http.ResponseWriter, r *http.Request) {
	var cached []repositories.CategoryCount
	if cache.Get(menuCountsCacheKey, &cached) {
		response.Success(w, cached)
		return
	}

	counts, err := c.store.CategoryCounts(r.Context())
	if err != nil {
		response.ServerError(w, "Error fetching category counts", err)
		return
	}

	_ = cache.Set(menuCountsCacheKey, counts, menuCacheTTL)
	response.Success(w, counts)
}

// Get handles GET /menu/{id}. An absent document yields an empty body, not
// an error.
func (c *MenuController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	item, err := c.store.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		response.Success(w, nil)
		return
	}
	if err != nil {
		response.ServerError(w, "Error fetching menu item", err)
		return
	}

	response.Success(w, item)
}

// Create handles POST /menu (admin only).
func (c *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if errs, err := bind.JSON(r, &item); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.store.Insert(r.Context(), item)
	if err != nil {
		response.ServerError(w, "Error creating menu item", err)
		return
	}

	cache.Forget(menuListCacheKey, menuCountsCacheKey)
	logger.WithCtx(r.Context()).Info("menu item created", "id", id.Hex(), "name", item.Name)
	response.Created(w, map[string]string{"insertedId": id.Hex()})
}

// Update handles PUT /menu/{id} (admin only). The body is applied as a patch
// to the existing document.
func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	var patch bson.M
	if _, err := bind.JSON(r, &patch); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	delete(patch, "_id")

	modified, err := c.store.UpdateByID(r.Context(), id, patch)
	if err != nil {
		response.ServerError(w, "Error updating menu item", err)
		return
	}

	cache.Forget(menuListCacheKey, menuCountsCacheKey)
	response.Success(w, map[string]int64{"modifiedCount": modified})
}

// Delete handles DELETE /menu/{id} (admin only).
func (c *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	deleted, err := c.store.DeleteByID(r.Context(), id)
	if err != nil {
		response.ServerError(w, "Error deleting menu item", err)
		return
	}

	cache.Forget(menuListCacheKey, menuCountsCacheKey)
	response.Success(w, map[string]int64{"deletedCount": deleted})
}
