package handler

import (
	"net/http"

	"github.com/mcoot/seabattle/internal/api/response"
)

// Strategies handles GET /api/v1/strategies
func Strategies(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.NewCatalog())
}

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
