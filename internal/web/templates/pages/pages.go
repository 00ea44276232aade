// Package pages renders full dashboard pages.
package pages

import (
	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/web/templates/layout"
)

// LoginData is the data for the login page
type LoginData struct {
	layout.PageData
	Username string
	Next     string
	Error    string
}

// DashboardData is the data for the overview page
type DashboardData struct {
	layout.PageData
	Stats        model.Statistics
	Reservations []*model.Reservation
}

// DateData is the data for a single date's page
type DateData struct {
	layout.PageData
	Date         string
	Availability model.Availability
	Reservations []*model.Reservation
}
