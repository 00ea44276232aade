package factory

import (
	"context"
	"time"

	"github.com/mesafacil/reservas/internal/dependencies/mocks"
	"github.com/mesafacil/reservas/internal/services/auth"
	"github.com/mesafacil/reservas/internal/storage/memory"
	"github.com/mesafacil/reservas/internal/testutil"
)

// Credentials of the admin seeded by NewTestApp
const (
	TestAdminUsername = "admin"
	TestAdminPassword = "admin123"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MemoryStorage *memory.Storage
	MockClock     *mocks.MockClock
	MockPublisher *mocks.MockPublisher
}

// NewTestApp creates an App backed by memory storage with a mocked clock set to
// 2024-01-10 12:00 UTC and one seeded admin account
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	mockPublisher := mocks.NewMockPublisher()

	app := newWithDependencies(store, mockClock, mockPublisher,
		auth.Config{Secret: "test-secret", TokenDuration: 24 * time.Hour}, testutil.NopLogger())

	if _, err := app.AuthService.EnsureDefaultAdmin(context.Background(), TestAdminUsername, TestAdminPassword); err != nil {
		panic(err)
	}

	return &TestApp{
		App:           app,
		MemoryStorage: store,
		MockClock:     mockClock,
		MockPublisher: mockPublisher,
	}
}
