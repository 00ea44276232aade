package storage

import (
	"context"

	"github.com/mesafacil/reservas/internal/model"
)

// Storage defines the interface for data persistence.
// Reservations are handled as a single list that is read and rewritten as a whole;
// implementations do not serialize writers, callers must.
type Storage interface {
	// Reservation operations
	LoadReservations(ctx context.Context) ([]*model.Reservation, error)
	AppendReservation(ctx context.Context, reservation *model.Reservation) error
	PersistReservations(ctx context.Context, reservations []*model.Reservation) error

	// Admin operations
	LoadAdmins(ctx context.Context) ([]*model.AdminAccount, error)
	SaveAdmin(ctx context.Context, admin *model.AdminAccount) error
	GetAdmin(ctx context.Context, id model.AdminID) (*model.AdminAccount, error)
	GetAdminByUsername(ctx context.Context, username string) (*model.AdminAccount, error)
}
