package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/seabattle/internal/api/handler"
	"github.com/mcoot/seabattle/internal/api/middleware"
	"github.com/mcoot/seabattle/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	SessionService *session.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	fleetHandler := handler.NewFleetHandler(cfg.Logger)
	simulationHandler := handler.NewSimulationHandler(cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.SessionService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	api.HandleFunc("/strategies", handler.Strategies).Methods(http.MethodGet)

	// Stateless generation and self-play
	api.HandleFunc("/fleets", fleetHandler.Generate).Methods(http.MethodPost)
	api.HandleFunc("/simulations", simulationHandler.Run).Methods(http.MethodPost)
	api.HandleFunc("/duels", simulationHandler.Duel).Methods(http.MethodPost)

	// Persisted bot opponents
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("", sessionHandler.List).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Delete).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/shots", sessionHandler.NextShot).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/results", sessionHandler.ReportResult).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/incoming", sessionHandler.Incoming).Methods(http.MethodPost)

	return r
}
