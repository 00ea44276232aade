package memory

import (
	"context"
	"sync"

	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	reservations  []*model.Reservation
	admins        map[model.AdminID]*model.AdminAccount
	usernameIndex map[string]model.AdminID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		reservations:  []*model.Reservation{},
		admins:        make(map[model.AdminID]*model.AdminAccount),
		usernameIndex: make(map[string]model.AdminID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Reservation operations

func (s *Storage) LoadReservations(ctx context.Context) ([]*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneReservations(s.reservations), nil
}

func (s *Storage) AppendReservation(ctx context.Context, reservation *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *reservation
	s.reservations = append(s.reservations, &r)
	return nil
}

func (s *Storage) PersistReservations(ctx context.Context, reservations []*model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = cloneReservations(reservations)
	return nil
}

// Admin operations

func (s *Storage) LoadAdmins(ctx context.Context) ([]*model.AdminAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admins := make([]*model.AdminAccount, 0, len(s.admins))
	for _, a := range s.admins {
		admin := *a
		admins = append(admins, &admin)
	}
	return admins, nil
}

func (s *Storage) SaveAdmin(ctx context.Context, admin *model.AdminAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *admin
	s.admins[a.ID] = &a
	s.usernameIndex[a.Username] = a.ID
	return nil
}

func (s *Storage) GetAdmin(ctx context.Context, id model.AdminID) (*model.AdminAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.admins[id]
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	a := *admin
	return &a, nil
}

func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*model.AdminAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	admin, ok := s.admins[id]
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	a := *admin
	return &a, nil
}

// DeleteAdmin removes an admin account. Not part of the storage interface; used by
// tests to simulate revoked access.
func (s *Storage) DeleteAdmin(ctx context.Context, id model.AdminID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if admin, ok := s.admins[id]; ok {
		delete(s.usernameIndex, admin.Username)
		delete(s.admins, id)
	}
	return nil
}

func cloneReservations(in []*model.Reservation) []*model.Reservation {
	out := make([]*model.Reservation, len(in))
	for i, r := range in {
		c := *r
		out[i] = &c
	}
	return out
}
