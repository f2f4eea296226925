package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/seabattle/internal/api/request"
	"github.com/mcoot/seabattle/internal/api/response"
	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/services/match"
)

// MaxSimulationGames bounds the games a single HTTP request may ask for
const MaxSimulationGames = match.MaxBatchGames

// SimulationHandler runs self-play games on the server. Each request gets
// its own seeded random source so results can be replayed.
type SimulationHandler struct {
	logger *slog.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(logger *slog.Logger) *SimulationHandler {
	return &SimulationHandler{logger: logger}
}

// Run handles POST /api/v1/simulations
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req request.SimulationRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Games < 1 || req.Games > MaxSimulationGames {
		WriteError(w, NewInvalidRequestError(fmt.Sprintf("games must be between 1 and %d", MaxSimulationGames)))
		return
	}

	rnd := random.NewSeeded(req.Seed)
	stats, err := match.NewSimulator(rnd, h.logger).RunBatch(r.Context(), match.BatchConfig{
		Strategy:   req.Strategy,
		Policy:     req.Policy,
		Games:      req.Games,
		Omniscient: req.Omniscient,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Simulation{BatchStats: *stats, Seed: rnd.Seed()})
}

// Duel handles POST /api/v1/duels
func (h *SimulationHandler) Duel(w http.ResponseWriter, r *http.Request) {
	var req request.DuelRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	names := [2]string{req.A.Name, req.B.Name}
	if names[0] == "" {
		names[0] = "a"
	}
	if names[1] == "" {
		names[1] = "b"
	}

	rnd := random.NewSeeded(req.Seed)
	result, err := match.NewSimulator(rnd, h.logger).Duel(r.Context(),
		match.Contender{Name: names[0], Strategy: req.A.Strategy, Policy: req.A.Policy},
		match.Contender{Name: names[1], Strategy: req.B.Strategy, Policy: req.B.Policy},
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DuelFromResult(names, rnd.Seed(), result))
}
