package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mesafacil/reservas/internal/api/request"
	"github.com/mesafacil/reservas/internal/api/response"
	"github.com/mesafacil/reservas/internal/services/reservation"
)

// ReservationHandler handles the public reservation endpoints
type ReservationHandler struct {
	controller *reservation.Controller
	logger     *slog.Logger
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(controller *reservation.Controller, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{
		controller: controller,
		logger:     logger,
	}
}

// Create handles POST /api/reservations
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.controller.Create(r.Context(), req.ToModel())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated,
		response.OK("reservation created successfully", response.ReservationFromModel(created)))
}

// Availability handles GET /api/reservations/availability
func (h *ReservationHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if date := r.URL.Query().Get("date"); date != "" {
		avail, err := h.controller.Availability(r.Context(), date)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		response.JSON(w, http.StatusOK, response.OK("", response.AvailabilityFromModel(avail)))
		return
	}

	window, err := h.controller.AvailabilityWindow(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.OK("", response.AvailabilityWindowFromModel(window)))
}

// Verify handles GET /api/reservations/verify/{cpf}
func (h *ReservationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	found, err := h.controller.CheckActiveByCPF(r.Context(), mux.Vars(r)["cpf"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	message := "no active reservation for this cpf"
	if found != nil {
		message = "active reservation found"
	}
	response.JSON(w, http.StatusOK, response.OK(message, response.VerifyFromModel(found)))
}
