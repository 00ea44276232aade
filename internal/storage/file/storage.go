package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/storage"
)

// File names inside the data directory
const (
	ReservationsFile = "reservations.json"
	AdminsFile       = "admins.json"
)

// Storage persists reservations and admin accounts as JSON arrays in flat files.
// Every mutation rewrites the whole file.
type Storage struct {
	mu  sync.Mutex
	dir string
}

// New creates a file storage rooted at dir, creating the directory if needed
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Dir returns the data directory
func (s *Storage) Dir() string {
	return s.dir
}

// Reservation operations

func (s *Storage) LoadReservations(ctx context.Context) ([]*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reservations []*model.Reservation
	if err := s.readOrCreate(ReservationsFile, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *Storage) AppendReservation(ctx context.Context, reservation *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reservations []*model.Reservation
	if err := s.readOrCreate(ReservationsFile, &reservations); err != nil {
		return err
	}
	reservations = append(reservations, reservation)
	return s.write(ReservationsFile, reservations)
}

func (s *Storage) PersistReservations(ctx context.Context, reservations []*model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reservations == nil {
		reservations = []*model.Reservation{}
	}
	return s.write(ReservationsFile, reservations)
}

// Admin operations

func (s *Storage) LoadAdmins(ctx context.Context) ([]*model.AdminAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAdmins()
}

func (s *Storage) SaveAdmin(ctx context.Context, admin *model.AdminAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admins, err := s.loadAdmins()
	if err != nil {
		return err
	}

	replaced := false
	for i, a := range admins {
		if a.ID == admin.ID {
			admins[i] = admin
			replaced = true
			break
		}
	}
	if !replaced {
		admins = append(admins, admin)
	}
	return s.write(AdminsFile, admins)
}

func (s *Storage) GetAdmin(ctx context.Context, id model.AdminID) (*model.AdminAccount, error) {
	admins, err := s.LoadAdmins(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, model.ErrAdminNotFound
}

func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*model.AdminAccount, error) {
	admins, err := s.LoadAdmins(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, model.ErrAdminNotFound
}

func (s *Storage) loadAdmins() ([]*model.AdminAccount, error) {
	var admins []*model.AdminAccount
	if err := s.readOrCreate(AdminsFile, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// readOrCreate decodes the named file into v. A missing file is created holding an
// empty array and v is left as an empty slice.
func (s *Storage) readOrCreate(name string, v any) error {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.writeRaw(name, []byte("[]")); err != nil {
			return err
		}
		data = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Storage) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.writeRaw(name, data)
}

// writeRaw replaces the named file via a temp file and rename so readers never
// observe a partially written list
func (s *Storage) writeRaw(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
