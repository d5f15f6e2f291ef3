package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"freight-match-service/internal/api/handlers"
	"freight-match-service/internal/ports"
	"freight-match-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(verifier *services.Verifier, loads ports.LoadRepository, assigner *services.Assigner, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))

	carrierHandler := &handlers.CarrierHandler{Verifier: verifier, Log: log}
	matchHandler := &handlers.MatchHandler{
		Verifier: verifier,
		Loads:    loads,
		Log:      log,
	}
	loadHandler := &handlers.LoadHandler{Repo: loads, Log: log}
	assignmentHandler := &handlers.AssignmentHandler{Assigner: assigner, Log: log}

	r.Get("/health", handlers.Health(log))
	r.Get("/carriers/{mcNumber}", carrierHandler.Verify)
	r.Get("/loads", loadHandler.List)
	r.Post("/matches", matchHandler.Match)
	r.Post("/assignments", assignmentHandler.Create)

	return r
}
