// Package server assembles the application: config, store connection,
// repositories, and the HTTP listener.
package server

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/app/routes"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/cache"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/payment"
	"github.com/shashiranjanraj/bistro/pkg/ws"
)

// Start wires every component and blocks serving HTTP.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	db, err := database.Connect(context.Background())
	if err != nil {
		return err
	}
	defer database.Disconnect(db) //nolint:errcheck

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		return err
	}

	// Request logs also land in the store's logs collection.
	mongoSink := logger.NewMongoHandler(db.Collection("logs"))
	defer mongoSink.Close()
	logger.Attach(mongoSink)

	cache.Connect()

	menuRepo := repositories.NewMenuRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	userRepo := repositories.NewUserRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db, cartRepo, userRepo, menuRepo)

	orderFeed := ws.NewHub()
	go orderFeed.Run()

	handler := routes.New(routes.Deps{
		Menu:      menuRepo,
		Reviews:   reviewRepo,
		Carts:     cartRepo,
		Users:     userRepo,
		Payments:  paymentRepo,
		Intenter:  payment.NewStripe(config.StripeSecret()),
		OrderFeed: orderFeed,
	})

	addr := ":" + config.AppPort()
	logger.Info("bistro boss listening", "addr", addr, "env", config.AppEnv())
	return http.ListenAndServe(addr, handler)
}
