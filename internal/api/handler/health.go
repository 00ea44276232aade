package handler

import (
	"net/http"

	"github.com/mesafacil/reservas/internal/api/response"
	"github.com/mesafacil/reservas/internal/dependencies/clock"
)

// Health returns a handler for GET /api/health
func Health(clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, response.OK("", response.Health{Status: "ok", Time: clk.Now()}))
	}
}
