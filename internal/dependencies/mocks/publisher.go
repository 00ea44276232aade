package mocks

import (
	"context"
	"sync"

	"github.com/mesafacil/reservas/internal/events"
)

// PublishedEvent is an event captured by MockPublisher
type PublishedEvent struct {
	Subject string
	Data    any
}

// MockPublisher records published events for assertions
type MockPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent

	// Err, when set, is returned from Publish
	Err error
}

// Ensure MockPublisher implements Publisher
var _ events.Publisher = (*MockPublisher)(nil)

// NewMockPublisher creates an empty MockPublisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish records the event
func (p *MockPublisher) Publish(_ context.Context, subject string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, PublishedEvent{Subject: subject, Data: data})
	return nil
}

// Close does nothing
func (p *MockPublisher) Close() error { return nil }

// Events returns a copy of the recorded events
func (p *MockPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedEvent, len(p.events))
	copy(out, p.events)
	return out
}
