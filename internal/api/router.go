package api

import (
	_ "arbscanner/docs"
	"arbscanner/internal/arbitrage/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(resultsHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/assets", resultsHandler.GetTrackedAssets)
		r.Get("/results", resultsHandler.GetResults)
		r.Get("/results/{asset:[A-Za-z0-9]+}/latest", resultsHandler.GetLatest)
	})
	return router
}
