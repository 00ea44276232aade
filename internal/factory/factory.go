package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mesafacil/reservas/internal/dependencies/clock"
	"github.com/mesafacil/reservas/internal/events"
	"github.com/mesafacil/reservas/internal/services/auth"
	"github.com/mesafacil/reservas/internal/services/report"
	"github.com/mesafacil/reservas/internal/services/reservation"
	"github.com/mesafacil/reservas/internal/storage"
	"github.com/mesafacil/reservas/internal/storage/file"
	"github.com/mesafacil/reservas/internal/storage/memory"
	redisstorage "github.com/mesafacil/reservas/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Publisher events.Publisher

	// Services
	ReservationController *reservation.Controller
	ReportService         *report.Service
	AuthService           *auth.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Location is the zone used to decide which calendar day it is (optional)
	Location *time.Location
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// DataDir is the directory holding the JSON files (required if StorageType is "file")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// NATSURL enables event publishing when set
	NATSURL string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var closers []io.Closer

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		fileStore, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("failed to create event publisher: %w", err)
		}
		publisher = natsPublisher
	}
	closers = append(closers, publisher)

	app := newWithDependencies(store, clock.New(cfg.Location), publisher, cfg.AuthConfig, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	publisher events.Publisher,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	return &App{
		Storage:               store,
		Clock:                 clk,
		Publisher:             publisher,
		ReservationController: reservation.NewController(store, publisher, clk, logger),
		ReportService:         report.New(store, clk, logger),
		AuthService:           auth.New(store, clk, authCfg),
	}
}

// Close releases external connections held by the app
func (a *App) Close() error {
	return closeAll(a.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
