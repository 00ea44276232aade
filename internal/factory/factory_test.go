package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/storage/file"
	"github.com/mesafacil/reservas/internal/storage/memory"
	redisstorage "github.com/mesafacil/reservas/internal/storage/redis"
	"github.com/mesafacil/reservas/internal/testutil"
)

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &memory.Storage{}, app.Storage)
}

func TestNewFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	app, err := New(Config{StorageType: StorageTypeFile, DataDir: dir})
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &file.Storage{}, app.Storage)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestNewFileStorageRequiresDir(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeFile})
	assert.Error(t, err)
}

func TestNewRedisStorage(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &cfg})
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &redisstorage.Storage{}, app.Storage)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	assert.Error(t, err)
}

func TestNewFailsWhenNATSUnreachable(t *testing.T) {
	_, err := New(Config{NATSURL: "nats://127.0.0.1:1"})
	assert.Error(t, err)
}

// End-to-end flow through the wired services
func TestTestAppReservationFlow(t *testing.T) {
	app := NewTestApp()
	ctx := context.Background()

	created, err := app.ReservationController.Create(ctx, model.NewReservation{
		Name:      "Maria Souza",
		CPF:       testutil.ValidCPF(7),
		Phone:     "21987654321",
		PartySize: 3,
		Date:      "2024-01-12",
	})
	require.NoError(t, err)

	active, err := app.ReportService.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, created.ID, active[0].ID)

	session, err := app.AuthService.Login(ctx, TestAdminUsername, TestAdminPassword)
	require.NoError(t, err)
	_, err = app.AuthService.Verify(ctx, session.Token)
	require.NoError(t, err)

	assert.Len(t, app.MockPublisher.Events(), 1)

	// Three days later the reservation is no longer active
	app.MockClock.Advance(72 * time.Hour)
	active, err = app.ReportService.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
