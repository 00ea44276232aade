package response

import (
	"time"

	"github.com/mesafacil/reservas/internal/calendar"
	"github.com/mesafacil/reservas/internal/cpf"
	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/services/auth"
)

// Envelope wraps every successful response
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK wraps data in a success envelope
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Reservation is a reservation formatted for display
type Reservation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId"`
	Phone     string    `json:"phone"`
	PartySize int       `json:"partySize"`
	Date      string    `json:"date"`
	DateISO   string    `json:"dateISO"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReservationFromModel converts a model.Reservation
func ReservationFromModel(r *model.Reservation) Reservation {
	return Reservation{
		ID:        int64(r.ID),
		Name:      r.Name,
		TaxID:     cpf.Format(r.CPF),
		Phone:     r.Phone,
		PartySize: r.PartySize,
		Date:      calendar.Format(r.Date),
		DateISO:   r.Date,
		CreatedAt: r.CreatedAt,
	}
}

// ReservationsFromModel converts a slice, never returning nil
func ReservationsFromModel(rs []*model.Reservation) []Reservation {
	out := make([]Reservation, len(rs))
	for i, r := range rs {
		out[i] = ReservationFromModel(r)
	}
	return out
}

// Availability describes the tables left on one date
type Availability struct {
	Date      string `json:"date"`
	DateISO   string `json:"dateISO"`
	Existing  int    `json:"existingReservations"`
	Remaining int    `json:"remaining"`
	Available bool   `json:"available"`
}

// AvailabilityFromModel converts model.Availability
func AvailabilityFromModel(a model.Availability) Availability {
	return Availability{
		Date:      calendar.Format(a.Date),
		DateISO:   a.Date,
		Existing:  a.Existing,
		Remaining: a.Remaining,
		Available: a.Available,
	}
}

// AvailabilityWindowFromModel converts the 30-day window, one entry per day
func AvailabilityWindowFromModel(as []model.Availability) []Availability {
	days := make([]Availability, len(as))
	for i, a := range as {
		days[i] = AvailabilityFromModel(a)
	}
	return days
}

// Verify is the result of an active-reservation check
type Verify struct {
	HasActive   bool         `json:"hasActive"`
	Reservation *Reservation `json:"reservation"`
}

// VerifyFromModel converts an optional reservation
func VerifyFromModel(r *model.Reservation) Verify {
	if r == nil {
		return Verify{}
	}
	res := ReservationFromModel(r)
	return Verify{HasActive: true, Reservation: &res}
}

// Admin is an admin account without its credentials
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Login is the response for a successful login
type Login struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Admin     Admin     `json:"admin"`
}

// LoginFromSession converts an auth.Session
func LoginFromSession(s *auth.Session) Login {
	return Login{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Admin:     Admin{ID: int64(s.Admin.ID), Username: s.Admin.Username},
	}
}

// ReservationList is a list of active reservations
type ReservationList struct {
	Total        int           `json:"total"`
	Reservations []Reservation `json:"reservations"`
}

// DateReservations lists the reservations of one date
type DateReservations struct {
	Date         string        `json:"date"`
	DateISO      string        `json:"dateISO"`
	Total        int           `json:"total"`
	Reservations []Reservation `json:"reservations"`
}

// DateCount pairs a date with its reservation count
type DateCount struct {
	Date    string `json:"date"`
	DateISO string `json:"dateISO"`
	Total   int    `json:"total"`
}

// Statistics summarizes the active reservations
type Statistics struct {
	TotalActive   int         `json:"totalReservations"`
	CountToday    int         `json:"reservationsToday"`
	BusiestDates  []DateCount `json:"busiestDates"`
	UpcomingDates []DateCount `json:"upcomingDates"`
}

// StatisticsFromModel converts model.Statistics
func StatisticsFromModel(s model.Statistics) Statistics {
	return Statistics{
		TotalActive:   s.TotalActive,
		CountToday:    s.CountToday,
		BusiestDates:  dateCounts(s.BusiestDates),
		UpcomingDates: dateCounts(s.UpcomingDates),
	}
}

func dateCounts(in []model.DateCount) []DateCount {
	out := make([]DateCount, len(in))
	for i, c := range in {
		out[i] = DateCount{Date: calendar.Format(c.Date), DateISO: c.Date, Total: c.Total}
	}
	return out
}

// Health is the health check response
type Health struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
