package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(raw)
}

type fakePaymentStore struct {
	recorded  []models.PaymentRecord
	deleteErr error
	records   []models.PaymentRecord
}

func (f *fakePaymentStore) Record(_ context.Context, p models.PaymentRecord) (repositories.RecordResult, error) {
	f.recorded = append(f.recorded, p)
	return repositories.RecordResult{
		PaymentID:    primitive.NewObjectID(),
		DeletedCount: int64(len(p.CartIDs)),
		DeleteErr:    f.deleteErr,
	}, nil
}

func (f *fakePaymentStore) ByEmail(_ context.Context, email string) ([]models.PaymentRecord, error) {
	out := []models.PaymentRecord{}
	for _, r := range f.records {
		if r.Email == email {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeIntenter struct {
	gotAmount int64
	err       error
}

func (f *fakeIntenter) CreateIntent(_ context.Context, amountMinor int64) (string, error) {
	f.gotAmount = amountMinor
	if f.err != nil {
		return "", f.err
	}
	return "pi_test_secret", nil
}

func TestCreateIntent(t *testing.T) {
	intenter := &fakeIntenter{}
	ctl := NewPaymentController(&fakePaymentStore{}, intenter, nil)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent",
		jsonBody(t, map[string]float64{"price": 19.99}))
	rec := httptest.NewRecorder()
	ctl.CreateIntent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if intenter.gotAmount != 1999 {
		t.Errorf("amount = %d minor units, want 1999", intenter.gotAmount)
	}

	var data struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.Unmarshal(decodeBody(t, rec).Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.ClientSecret != "pi_test_secret" {
		t.Errorf("clientSecret = %q", data.ClientSecret)
	}
}

func TestCreateIntentProviderDown(t *testing.T) {
	ctl := NewPaymentController(&fakePaymentStore{}, &fakeIntenter{err: errors.New("stripe unreachable")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent",
		jsonBody(t, map[string]float64{"price": 5}))
	rec := httptest.NewRecorder()
	ctl.CreateIntent(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestPaymentRecord(t *testing.T) {
	store := &fakePaymentStore{}
	ctl := NewPaymentController(store, &fakeIntenter{}, nil)

	cartID := primitive.NewObjectID()
	req := httptest.NewRequest(http.MethodPost, "/payment-history", jsonBody(t, map[string]interface{}{
		"email":       "diner@example.com",
		"cartIds":     []string{cartID.Hex()},
		"menuIds":     []string{primitive.NewObjectID().Hex()},
		"total_price": 24.5,
	}))
	rec := httptest.NewRecorder()
	ctl.Record(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if len(store.recorded) != 1 {
		t.Fatalf("recorded %d payments, want 1", len(store.recorded))
	}
	got := store.recorded[0]
	if got.Date.IsZero() {
		t.Error("missing date was not defaulted")
	}
	if len(got.CartIDs) != 1 || got.CartIDs[0] != cartID {
		t.Errorf("cartIds = %v", got.CartIDs)
	}

	var data struct {
		PaymentID    string `json:"paymentId"`
		DeletedCount int64  `json:"deletedCount"`
	}
	if err := json.Unmarshal(decodeBody(t, rec).Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.PaymentID == "" || data.DeletedCount != 1 {
		t.Errorf("data = %+v", data)
	}
}

func TestPaymentRecordPartialCleanup(t *testing.T) {
	store := &fakePaymentStore{deleteErr: errors.New("write concern timeout")}
	ctl := NewPaymentController(store, &fakeIntenter{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/payment-history", jsonBody(t, map[string]interface{}{
		"email":       "diner@example.com",
		"cartIds":     []string{primitive.NewObjectID().Hex()},
		"total_price": 10.0,
	}))
	rec := httptest.NewRecorder()
	ctl.Record(rec, req)

	// the payment is stored, so the failed sweep still answers 200
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if msg := decodeBody(t, rec).Message; msg != "Payment recorded, cart cleanup incomplete" {
		t.Errorf("message = %q", msg)
	}
}

func TestPaymentHistory(t *testing.T) {
	store := &fakePaymentStore{records: []models.PaymentRecord{
		{Email: "diner@example.com", TotalPrice: 24.5},
		{Email: "other@example.com", TotalPrice: 9},
	}}
	ctl := NewPaymentController(store, &fakeIntenter{}, nil)

	r := chi.NewRouter()
	r.Get("/payment-history/{email}", ctl.History)

	t.Run("own history", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/payment-history/diner@example.com", nil)
		req = req.WithContext(middleware.WithEmail(req.Context(), "diner@example.com"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var records []models.PaymentRecord
		if err := json.Unmarshal(decodeBody(t, rec).Data, &records); err != nil {
			t.Fatal(err)
		}
		if len(records) != 1 || records[0].TotalPrice != 24.5 {
			t.Errorf("records = %+v", records)
		}
	})

	t.Run("someone else's history", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/payment-history/other@example.com", nil)
		req = req.WithContext(middleware.WithEmail(req.Context(), "diner@example.com"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if msg := decodeBody(t, rec).Message; msg != "Forbidden access" {
			t.Errorf("message = %q", msg)
		}
	})
}
