// Package events publishes reservation domain events to a message bus.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects
const (
	ReservationCreated = "reservation.created"
)

// ReservationCreatedEvent is published after a reservation has been persisted.
// It carries no personal data.
type ReservationCreatedEvent struct {
	ReservationID int64     `json:"reservationId"`
	Date          string    `json:"date"`
	PartySize     int       `json:"partySize"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Publisher sends events to subscribers
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

// NATSPublisher publishes JSON-encoded events to NATS
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("reservas-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

// Publish marshals data and publishes it on subject
func (p *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	p.logger.DebugContext(ctx, "publishing event", slog.String("subject", subject), slog.Int("size", len(payload)))

	return p.conn.Publish(subject, payload)
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// NopPublisher discards every event
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// Close does nothing
func (NopPublisher) Close() error { return nil }

var (
	_ Publisher = (*NATSPublisher)(nil)
	_ Publisher = NopPublisher{}
)
