package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/seabattle/internal/api/request"
	"github.com/mcoot/seabattle/internal/api/response"
	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/services/placement"
)

// FleetHandler generates standalone fleet layouts
type FleetHandler struct {
	logger *slog.Logger
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(logger *slog.Logger) *FleetHandler {
	return &FleetHandler{logger: logger}
}

// Generate handles POST /api/v1/fleets
func (h *FleetHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateFleetRequest
	if err := decodeOptional(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	policy, err := placement.NewPolicy(req.Policy)
	if err != nil {
		WriteError(w, err)
		return
	}

	rnd := random.NewSeeded(req.Seed)
	layout, err := placement.NewGenerator(rnd, h.logger).Generate(policy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FleetFromModel(policy.Name(), rnd.Seed(), layout))
}
