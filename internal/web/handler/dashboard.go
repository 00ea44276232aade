package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mesafacil/reservas/internal/calendar"
	"github.com/mesafacil/reservas/internal/services/report"
	"github.com/mesafacil/reservas/internal/services/reservation"
	"github.com/mesafacil/reservas/internal/web/middleware"
	"github.com/mesafacil/reservas/internal/web/templates/layout"
	"github.com/mesafacil/reservas/internal/web/templates/pages"
)

// DashboardHandler serves the reporting pages
type DashboardHandler struct {
	reportService         *report.Service
	reservationController *reservation.Controller
	logger                *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reportService *report.Service, reservationController *reservation.Controller, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		reportService:         reportService,
		reservationController: reservationController,
		logger:                logger,
	}
}

// Overview renders statistics and the active reservations
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportService.Statistics(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	active, err := h.reportService.ListActive(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, pages.Dashboard(pages.DashboardData{
		PageData:     h.pageData(r, "Painel"),
		Stats:        stats,
		Reservations: active,
	}))
}

// Date renders the reservations booked for one date
func (h *DashboardHandler) Date(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	list, err := h.reportService.ListByDate(r.Context(), date)
	if err != nil {
		middleware.SetFlash(w, "error", "Invalid date: choose today or a later date")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	avail, err := h.reservationController.Availability(r.Context(), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, pages.Date(pages.DateData{
		PageData:     h.pageData(r, calendar.Format(date)),
		Date:         date,
		Availability: avail,
		Reservations: list,
	}))
}

func (h *DashboardHandler) pageData(r *http.Request, title string) layout.PageData {
	data := layout.PageData{
		Title: title,
		Flash: middleware.GetFlash(r.Context()),
	}
	if admin := middleware.GetAdmin(r.Context()); admin != nil {
		data.Username = admin.Username
	}
	return data
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", slog.String("error", err.Error()))
	}
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "dashboard request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
