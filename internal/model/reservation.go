package model

import (
	"time"

	"github.com/mesafacil/reservas/internal/calendar"
)

const (
	// MaxReservationsPerDate is the number of tables available on any single date
	MaxReservationsPerDate = 5

	// MinPartySize and MaxPartySize bound the number of guests per reservation
	MinPartySize = 1
	MaxPartySize = 4
)

// ReservationID uniquely identifies a reservation
type ReservationID int64

// Reservation is a single table booking. Reservations are never mutated or deleted;
// past ones simply stop being active.
type Reservation struct {
	ID        ReservationID `json:"id"`
	Name      string        `json:"name"`
	CPF       string        `json:"cpf"`   // digits only
	Phone     string        `json:"phone"` // digits only
	PartySize int           `json:"partySize"`
	Date      string        `json:"date"` // ISO calendar date (YYYY-MM-DD)
	CreatedAt time.Time     `json:"createdAt"`
}

// NewReservation holds the caller-supplied fields of a reservation request
type NewReservation struct {
	Name      string
	CPF       string
	Phone     string
	PartySize int
	Date      string
}

// Availability describes how many tables remain on a date
type Availability struct {
	Date      string
	Existing  int
	Remaining int
	Available bool
}

// NewAvailability computes availability from the number of existing reservations
func NewAvailability(date string, existing int) Availability {
	remaining := MaxReservationsPerDate - existing
	return Availability{
		Date:      date,
		Existing:  existing,
		Remaining: remaining,
		Available: remaining > 0,
	}
}

// DateCount pairs a date with a number of reservations
type DateCount struct {
	Date  string
	Total int
}

// Statistics aggregates the active reservations
type Statistics struct {
	TotalActive   int
	CountToday    int
	BusiestDates  []DateCount // at most 5, most reservations first
	UpcomingDates []DateCount // at most 7, earliest first
}

// IsActive reports whether the reservation's date is today or later relative to now
func (r *Reservation) IsActive(now time.Time) bool {
	return calendar.IsValidFutureOrToday(r.Date, now)
}
