package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mesafacil/reservas/internal/api/request"
	"github.com/mesafacil/reservas/internal/api/response"
	"github.com/mesafacil/reservas/internal/calendar"
	"github.com/mesafacil/reservas/internal/services/auth"
	"github.com/mesafacil/reservas/internal/services/report"
)

// AdminHandler handles the admin login and reporting endpoints
type AdminHandler struct {
	authService   *auth.Service
	reportService *report.Service
	logger        *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *auth.Service, reportService *report.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		authService:   authService,
		reportService: reportService,
		logger:        logger,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if verr := req.Validate(); verr != nil {
		WriteError(w, verr)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.WarnContext(r.Context(), "failed admin login", slog.String("username", req.Username))
		}
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "admin logged in", slog.Int64("admin_id", int64(session.Admin.ID)))
	response.JSON(w, http.StatusOK, response.OK("login successful", response.LoginFromSession(session)))
}

// ListActive handles GET /api/admin/reservations
func (h *AdminHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	active, err := h.reportService.ListActive(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK("", response.ReservationList{
		Total:        len(active),
		Reservations: response.ReservationsFromModel(active),
	}))
}

// ListByDate handles GET /api/admin/reservations/{date}
func (h *AdminHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	list, err := h.reportService.ListByDate(r.Context(), date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK("", response.DateReservations{
		Date:         calendar.Format(date),
		DateISO:      date,
		Total:        len(list),
		Reservations: response.ReservationsFromModel(list),
	}))
}

// Statistics handles GET /api/admin/statistics
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportService.Statistics(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK("", response.StatisticsFromModel(stats)))
}
