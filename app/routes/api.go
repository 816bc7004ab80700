// Package routes wires the HTTP surface: middleware chain, guard
// combinations, and handler dispatch. No business logic lives here.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/payment"
	"github.com/shashiranjanraj/bistro/pkg/reqid"
	"github.com/shashiranjanraj/bistro/pkg/ws"
)

// Deps carries every dependency the route handlers need. All of them are
// constructed once at startup and injected here.
type Deps struct {
	Menu     controllers.MenuStore
	Reviews  *repositories.ReviewRepository
	Carts    controllers.CartStore
	Users    interface {
		controllers.UserStore
		middleware.RoleLookup
	}
	Payments interface {
		controllers.PaymentStore
		controllers.StatsStore
	}
	Intenter  payment.Intenter
	OrderFeed *ws.Hub
}

// New builds the router with the full middleware chain and route table.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(reqid.Middleware())
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))

	authController := controllers.NewAuthController()
	menuController := controllers.NewMenuController(d.Menu)
	reviewController := controllers.NewReviewController(d.Reviews)
	cartController := controllers.NewCartController(d.Carts)
	userController := controllers.NewUserController(d.Users)
	paymentController := controllers.NewPaymentController(d.Payments, d.Intenter, d.OrderFeed)
	analyticsController := controllers.NewAnalyticsController(d.Payments)

	requireAdmin := middleware.RequireAdmin(d.Users)

	// Liveness
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Bistro Boss is sitting"))
	})

	// Identity tokens
	r.Post("/jwt", authController.IssueToken)

	// Menu catalogue: reads are public, mutations are admin only
	r.Get("/menu", menuController.List)
	r.Get("/menu/category-counts", menuController.CategoryCounts)
	r.Get("/menu/{id}", menuController.Get)
	r.With(middleware.RequireToken, requireAdmin).Post("/menu", menuController.Create)
	r.With(middleware.RequireToken, requireAdmin).Put("/menu/{id}", menuController.Update)
	r.With(middleware.RequireToken, requireAdmin).Delete("/menu/{id}", menuController.Delete)

	// Carts require any authenticated identity
	r.With(middleware.RequireToken).Get("/carts", cartController.List)
	r.With(middleware.RequireToken).Post("/carts", cartController.Add)
	r.With(middleware.RequireToken).Delete("/carts/{id}", cartController.Remove)

	// Reviews
	r.Get("/reviews", reviewController.List)

	// Users
	r.With(middleware.RequireToken, requireAdmin).Get("/users", userController.List)
	r.With(middleware.RequireToken).Get("/users/admin/{email}", userController.IsAdmin)
	r.Post("/users", userController.Create)
	r.With(middleware.RequireToken, requireAdmin).Patch("/users/admin/{id}", userController.Promote)
	r.With(middleware.RequireToken, requireAdmin).Delete("/users/{id}", userController.Delete)

	// Payments
	r.Post("/create-payment-intent", paymentController.CreateIntent)
	r.With(middleware.RequireToken).Get("/payment-history/{email}", paymentController.History)
	r.Post("/payment-history", paymentController.Record)

	// Dashboards
	r.Get("/admin-analytics", analyticsController.Admin)
	r.Get("/order-analytics", analyticsController.Orders)

	// Live checkout feed for the admin dashboard
	if d.OrderFeed != nil {
		r.Get("/ws/orders", func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, d.OrderFeed)
		})
	}

	// Observability
	r.Get("/metrics", metrics.Handler())

	return r
}
