package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/payment"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"github.com/shashiranjanraj/bistro/pkg/ws"
)

// PaymentStore is the slice of the payment repository the controller needs.
type PaymentStore interface {
	Record(ctx context.Context, p models.PaymentRecord) (repositories.RecordResult, error)
	ByEmail(ctx context.Context, email string) ([]models.PaymentRecord, error)
}

// PaymentController serves checkout and payment history.
type PaymentController struct {
	store    PaymentStore
	intenter payment.Intenter
	feed     *ws.Hub
}

func NewPaymentController(store PaymentStore, intenter payment.Intenter, feed *ws.Hub) *PaymentController {
	return &PaymentController{store: store, intenter: intenter, feed: feed}
}

type intentRequest struct {
	Price float64 `json:"price" validate:"required,gte=0"`
}

// CreateIntent handles POST /create-payment-intent: asks the provider for an
// intent over the price converted to minor units and returns its client
// secret.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body intentRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	secret, err := c.intenter.CreateIntent(r.Context(), payment.MinorUnits(body.Price))
	if err != nil {
		response.ServerError(w, "Error creating payment intent", err)
		return
	}

	response.Success(w, map[string]string{"clientSecret": secret})
}

// History handles GET /payment-history/{email}. A caller may only read their
// own history.
func (c *PaymentController) History(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	tokenEmail, _ := middleware.EmailFromCtx(r.Context())
	if tokenEmail != email {
		response.Forbidden(w, "Forbidden access")
		return
	}

	records, err := c.store.ByEmail(r.Context(), email)
	if err != nil {
		response.ServerError(w, "Error fetching payment history", err)
		return
	}

	response.Success(w, records)
}

// Record handles POST /payment-history: store the payment record, then clear
// the cart entries it references. The two store operations are independent;
// when the cart sweep fails after a successful insert, the partial result is
// still returned with a 200 and the gap is logged.
func (c *PaymentController) Record(w http.ResponseWriter, r *http.Request) {
	var record models.PaymentRecord
	if errs, err := bind.JSON(r, &record); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if record.Date.IsZero() {
		record.Date = time.Now().UTC()
	}

	result, err := c.store.Record(r.Context(), record)
	if err != nil {
		response.ServerError(w, "Error recording payment", err)
		return
	}

	log := logger.WithCtx(r.Context())
	body := map[string]interface{}{
		"paymentId":    result.PaymentID.Hex(),
		"deletedCount": result.DeletedCount,
	}

	if result.DeleteErr != nil {
		// Payment stored but cart entries remain; nothing to roll back.
		log.Warn("cart sweep failed after payment insert",
			"payment_id", result.PaymentID.Hex(),
			"error", result.DeleteErr,
		)
		response.SuccessMessage(w, "Payment recorded, cart cleanup incomplete", body)
		return
	}

	c.broadcast(record, result)
	log.Info("payment recorded",
		"payment_id", result.PaymentID.Hex(),
		"email", record.Email,
		"total", record.TotalPrice,
	)
	response.Success(w, body)
}

// broadcast pushes the recorded payment to the admin dashboard feed.
func (c *PaymentController) broadcast(record models.PaymentRecord, result repositories.RecordResult) {
	if c.feed == nil {
		return
	}

	record.ID = result.PaymentID
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}

	select {
	case c.feed.Broadcast <- payload:
	default:
		// feed backlogged; the dashboard will catch up from the history API
	}
}
