// Package api exposes the load generator over HTTP.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wesleyorama2/comparedemo/internal/loadgen"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(gen *loadgen.Generator, gatherer prometheus.Gatherer, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	loadH := NewLoadHandler(gen)

	r.Get("/health", Health)

	r.Route("/load", func(r chi.Router) {
		r.Post("/start/{tier}", loadH.Start)
		r.Post("/stop", loadH.Stop)
		r.Get("/status", loadH.Status)
		r.Get("/log", loadH.Log)
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
