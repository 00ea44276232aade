package reservation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mesafacil/reservas/internal/calendar"
	"github.com/mesafacil/reservas/internal/cpf"
	"github.com/mesafacil/reservas/internal/dependencies/clock"
	"github.com/mesafacil/reservas/internal/events"
	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/storage"
)

// AvailabilityWindowDays is the number of days covered by AvailabilityWindow
const AvailabilityWindowDays = 30

// Controller owns the reservation write path and the public read operations.
// Create holds mu across load, check and persist so the per-cpf and per-date limits
// hold under concurrent requests within one process.
type Controller struct {
	storage   storage.Storage
	publisher events.Publisher
	clock     clock.Clock
	logger    *slog.Logger

	mu sync.Mutex
}

// NewController creates a new reservation Controller
func NewController(
	storage storage.Storage,
	publisher events.Publisher,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Controller{
		storage:   storage,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Create validates and admits a new reservation
func (c *Controller) Create(ctx context.Context, in model.NewReservation) (*model.Reservation, error) {
	in = Normalize(in)
	if verr := Validate(in, c.clock.Now()); verr != nil {
		return nil, verr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()

	reservations, err := c.storage.LoadReservations(ctx)
	if err != nil {
		return nil, err
	}

	if existing := findActiveByCPF(reservations, in.CPF, now); existing != nil {
		return nil, &model.DuplicateReservationError{Existing: existing}
	}

	if countOnDate(reservations, in.Date) >= model.MaxReservationsPerDate {
		return nil, model.ErrCapacityExceeded
	}

	reservation := &model.Reservation{
		ID:        nextID(reservations, now.UnixMilli()),
		Name:      in.Name,
		CPF:       in.CPF,
		Phone:     in.Phone,
		PartySize: in.PartySize,
		Date:      in.Date,
		CreatedAt: now,
	}

	if err := c.storage.AppendReservation(ctx, reservation); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "reservation created",
		slog.Int64("reservation_id", int64(reservation.ID)),
		slog.String("date", reservation.Date),
		slog.Int("party_size", reservation.PartySize),
	)

	event := events.ReservationCreatedEvent{
		ReservationID: int64(reservation.ID),
		Date:          reservation.Date,
		PartySize:     reservation.PartySize,
		CreatedAt:     reservation.CreatedAt,
	}
	if err := c.publisher.Publish(ctx, events.ReservationCreated, event); err != nil {
		c.logger.WarnContext(ctx, "failed to publish reservation event",
			slog.Int64("reservation_id", int64(reservation.ID)),
			slog.String("error", err.Error()),
		)
	}

	return reservation, nil
}

// CheckActiveByCPF returns the active reservation for a cpf, or nil if there is none
func (c *Controller) CheckActiveByCPF(ctx context.Context, taxID string) (*model.Reservation, error) {
	if !cpf.Validate(taxID) {
		return nil, model.NewValidationError("taxId", "invalid taxId")
	}

	reservations, err := c.storage.LoadReservations(ctx)
	if err != nil {
		return nil, err
	}
	return findActiveByCPF(reservations, cpf.Strip(taxID), c.clock.Now()), nil
}

// Availability reports the remaining tables for one date
func (c *Controller) Availability(ctx context.Context, date string) (model.Availability, error) {
	if _, ok := calendar.Parse(date, c.clock.Now().Location()); !ok {
		return model.Availability{}, model.NewValidationError("date", "date must be a valid YYYY-MM-DD date")
	}

	reservations, err := c.storage.LoadReservations(ctx)
	if err != nil {
		return model.Availability{}, err
	}
	return model.NewAvailability(date, countOnDate(reservations, date)), nil
}

// AvailabilityWindow reports availability for each of the next 30 days, starting today
func (c *Controller) AvailabilityWindow(ctx context.Context) ([]model.Availability, error) {
	reservations, err := c.storage.LoadReservations(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range reservations {
		counts[r.Date]++
	}

	dates := calendar.Next(c.clock.Now(), AvailabilityWindowDays)
	window := make([]model.Availability, 0, len(dates))
	for _, d := range dates {
		window = append(window, model.NewAvailability(d, counts[d]))
	}
	return window, nil
}

func findActiveByCPF(reservations []*model.Reservation, digits string, now time.Time) *model.Reservation {
	for _, r := range reservations {
		if r.CPF == digits && r.IsActive(now) {
			return r
		}
	}
	return nil
}

func countOnDate(reservations []*model.Reservation, date string) int {
	n := 0
	for _, r := range reservations {
		if r.Date == date {
			n++
		}
	}
	return n
}

// nextID returns a millisecond-based id that is strictly greater than every existing one
func nextID(reservations []*model.Reservation, nowMillis int64) model.ReservationID {
	id := model.ReservationID(nowMillis)
	for _, r := range reservations {
		if r.ID >= id {
			id = r.ID + 1
		}
	}
	return id
}
