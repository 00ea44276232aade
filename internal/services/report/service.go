// Package report implements the read-only admin queries over reservations.
package report

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/mesafacil/reservas/internal/calendar"
	"github.com/mesafacil/reservas/internal/dependencies/clock"
	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/storage"
)

const (
	// BusiestDatesLimit caps Statistics.BusiestDates
	BusiestDatesLimit = 5
	// UpcomingDatesLimit caps Statistics.UpcomingDates
	UpcomingDatesLimit = 7
)

// Service answers the reporting queries
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a report Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{storage: storage, clock: clock, logger: logger}
}

// ListActive returns every reservation dated today or later, earliest date first
func (s *Service) ListActive(ctx context.Context) ([]*model.Reservation, error) {
	reservations, err := s.storage.LoadReservations(ctx)
	if err != nil {
		return nil, err
	}
	active := activeOnly(reservations, s.clock.Now())
	sortByDate(active)
	return active, nil
}

// ListByDate returns the reservations booked for date in creation order.
// The date must be today or later.
func (s *Service) ListByDate(ctx context.Context, date string) ([]*model.Reservation, error) {
	if !calendar.IsValidFutureOrToday(date, s.clock.Now()) {
		return nil, model.NewValidationError("date", "date must be a valid YYYY-MM-DD date, today or later")
	}

	reservations, err := s.storage.LoadReservations(ctx)
	if err != nil {
		return nil, err
	}

	var out []*model.Reservation
	for _, r := range reservations {
		if r.Date == date {
			out = append(out, r)
		}
	}
	sortByDate(out)
	return out, nil
}

// Statistics aggregates the active reservations
func (s *Service) Statistics(ctx context.Context) (model.Statistics, error) {
	reservations, err := s.storage.LoadReservations(ctx)
	if err != nil {
		return model.Statistics{}, err
	}

	now := s.clock.Now()
	today := calendar.Today(now)
	active := activeOnly(reservations, now)

	stats := model.Statistics{TotalActive: len(active)}

	totals := make(map[string]int)
	for _, r := range active {
		totals[r.Date]++
		if r.Date == today {
			stats.CountToday++
		}
	}

	counts := make([]model.DateCount, 0, len(totals))
	for date, total := range totals {
		counts = append(counts, model.DateCount{Date: date, Total: total})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Total != counts[j].Total {
			return counts[i].Total > counts[j].Total
		}
		return counts[i].Date < counts[j].Date
	})
	stats.BusiestDates = head(counts, BusiestDatesLimit)

	sort.Slice(counts, func(i, j int) bool { return counts[i].Date < counts[j].Date })
	stats.UpcomingDates = head(counts, UpcomingDatesLimit)

	s.logger.DebugContext(ctx, "statistics computed",
		slog.Int("total_active", stats.TotalActive),
		slog.Int("count_today", stats.CountToday),
	)

	return stats, nil
}

func activeOnly(reservations []*model.Reservation, now time.Time) []*model.Reservation {
	active := make([]*model.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.IsActive(now) {
			active = append(active, r)
		}
	}
	return active
}

// sortByDate orders by ISO date, then by creation time
func sortByDate(reservations []*model.Reservation) {
	sort.SliceStable(reservations, func(i, j int) bool {
		a, b := reservations[i], reservations[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func head(counts []model.DateCount, n int) []model.DateCount {
	if len(counts) > n {
		counts = counts[:n]
	}
	out := make([]model.DateCount, len(counts))
	copy(out, counts)
	return out
}
