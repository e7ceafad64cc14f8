// Package bridge exposes the query engines over HTTP. It is the calling
// boundary of this port: JSON in, JSON out, field names as the stable
// contract.
package bridge

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	shared "github.com/flomentum/health-bridge/pkg"
	"github.com/flomentum/health-bridge/pkg/domain/permissions"
	"github.com/flomentum/health-bridge/pkg/domain/query"
)

// Server routes bridge requests to the query engines.
type Server struct {
	provider    shared.HealthProvider
	logger      *slog.Logger
	samples     *query.SampleEngine
	aggregates  *query.AggregateEngine
	sleep       *query.SleepEngine
	workouts    *query.Orchestrator
	permissions *permissions.Service
}

func NewServer(provider shared.HealthProvider, logger *slog.Logger) *Server {
	return &Server{
		provider:    provider,
		logger:      logger.With("component", "bridge"),
		samples:     query.NewSampleEngine(provider, logger),
		aggregates:  query.NewAggregateEngine(provider, logger),
		sleep:       query.NewSleepEngine(provider, logger),
		workouts:    query.NewOrchestrator(provider, logger),
		permissions: permissions.NewService(provider, logger),
	}
}

// Handler builds the chi router for the bridge surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health/available", s.handleAvailable)
		r.Post("/health/permissions/check", s.handleCheckPermissions)
		r.Post("/health/permissions/request", s.handleRequestPermissions)

		r.Post("/query/latest-sample", s.handleLatestSample)
		r.Post("/query/weight", s.handleLatestFor("weight"))
		r.Post("/query/height", s.handleLatestFor("height"))
		r.Post("/query/heart-rate", s.handleLatestFor("heart-rate"))
		r.Post("/query/steps", s.handleLatestFor("steps"))

		r.Post("/query/aggregated", s.handleAggregated)
		r.Post("/query/sleep", s.handleSleep)
		r.Post("/query/workouts", s.handleWorkouts)
	})

	return r
}
