package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/routes"
	"github.com/shashiranjanraj/bistro/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(_ *cobra.Command, _ []string) error {
		return server.Start()
	},
}

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print the registered routes",
	RunE: func(_ *cobra.Command, _ []string) error {
		// Registration only; handlers are never invoked, so empty deps are fine.
		handler := routes.New(routes.Deps{})

		router, ok := handler.(chi.Routes)
		if !ok {
			return fmt.Errorf("route:list: router does not expose its routes")
		}

		return chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			fmt.Printf("%-7s %s\n", method, route)
			return nil
		})
	},
}
