package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCartStore struct {
	lines    map[string][]repositories.CartLine
	inserted []models.CartEntry
}

func (f *fakeCartStore) WithMenuDetails(_ context.Context, email string) ([]repositories.CartLine, error) {
	return f.lines[email], nil
}

func (f *fakeCartStore) Insert(_ context.Context, entry models.CartEntry) (primitive.ObjectID, error) {
	f.inserted = append(f.inserted, entry)
	return primitive.NewObjectID(), nil
}

func (f *fakeCartStore) DeleteByID(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 1, nil
}

func TestCartList(t *testing.T) {
	store := &fakeCartStore{lines: map[string][]repositories.CartLine{
		"diner@example.com": {{Name: "Margherita", Price: 12.5}},
	}}
	ctl := NewCartController(store)

	t.Run("explicit query email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/carts?query=diner@example.com", nil)
		rec := httptest.NewRecorder()
		ctl.List(rec, req)

		var lines []repositories.CartLine
		if err := json.Unmarshal(decodeBody(t, rec).Data, &lines); err != nil {
			t.Fatal(err)
		}
		if len(lines) != 1 || lines[0].Name != "Margherita" {
			t.Errorf("lines = %+v", lines)
		}
	})

	t.Run("falls back to token email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/carts", nil)
		req = req.WithContext(middleware.WithEmail(req.Context(), "diner@example.com"))
		rec := httptest.NewRecorder()
		ctl.List(rec, req)

		var lines []repositories.CartLine
		if err := json.Unmarshal(decodeBody(t, rec).Data, &lines); err != nil {
			t.Fatal(err)
		}
		if len(lines) != 1 {
			t.Errorf("lines = %+v", lines)
		}
	})
}

func TestCartAdd(t *testing.T) {
	store := &fakeCartStore{}
	ctl := NewCartController(store)

	menuID := primitive.NewObjectID()
	req := httptest.NewRequest(http.MethodPost, "/carts", jsonBody(t, map[string]interface{}{
		"_id":            primitive.NewObjectID().Hex(), // client-supplied id must be ignored
		"menuId":         menuID.Hex(),
		"customer_email": "diner@example.com",
	}))
	rec := httptest.NewRecorder()
	ctl.Add(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d entries, want 1", len(store.inserted))
	}
	got := store.inserted[0]
	if got.ID != primitive.NilObjectID {
		t.Error("client-supplied _id was kept")
	}
	if got.MenuID != menuID || got.CustomerEmail != "diner@example.com" {
		t.Errorf("entry = %+v", got)
	}
}

func TestCartAddValidation(t *testing.T) {
	ctl := NewCartController(&fakeCartStore{})

	req := httptest.NewRequest(http.MethodPost, "/carts", jsonBody(t, map[string]interface{}{
		"menuId": primitive.NewObjectID().Hex(),
	}))
	rec := httptest.NewRecorder()
	ctl.Add(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
