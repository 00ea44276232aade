package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Reservations live in a single LIST of JSON documents in insertion order.
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   keys{prefix: cfg.KeyPrefix},
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Reservation operations

func (s *Storage) LoadReservations(ctx context.Context) ([]*model.Reservation, error) {
	values, err := s.client.LRange(ctx, s.keys.reservations(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	reservations := make([]*model.Reservation, 0, len(values))
	for _, val := range values {
		var r model.Reservation
		if err := json.Unmarshal([]byte(val), &r); err != nil {
			return nil, err
		}
		reservations = append(reservations, &r)
	}
	return reservations, nil
}

func (s *Storage) AppendReservation(ctx context.Context, reservation *model.Reservation) error {
	data, err := json.Marshal(reservation)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, s.keys.reservations(), data).Err()
}

func (s *Storage) PersistReservations(ctx context.Context, reservations []*model.Reservation) error {
	members := make([]interface{}, 0, len(reservations))
	for _, r := range reservations {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		members = append(members, data)
	}

	// Replace the list atomically
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.keys.reservations())
	if len(members) > 0 {
		pipe.RPush(ctx, s.keys.reservations(), members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Admin operations

func (s *Storage) LoadAdmins(ctx context.Context) ([]*model.AdminAccount, error) {
	ids, err := s.client.SMembers(ctx, s.keys.adminIDs()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.AdminAccount{}, nil
	}

	adminKeys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		adminKeys = append(adminKeys, s.keys.admin(model.AdminID(id)))
	}

	values, err := s.client.MGet(ctx, adminKeys...).Result()
	if err != nil {
		return nil, err
	}

	admins := make([]*model.AdminAccount, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // index entry without a document
		}
		var admin model.AdminAccount
		if err := json.Unmarshal([]byte(str), &admin); err != nil {
			return nil, err
		}
		admins = append(admins, &admin)
	}
	return admins, nil
}

func (s *Storage) SaveAdmin(ctx context.Context, admin *model.AdminAccount) error {
	data, err := json.Marshal(admin)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keys.admin(admin.ID), data, 0)
	pipe.SAdd(ctx, s.keys.adminIDs(), strconv.FormatInt(int64(admin.ID), 10))
	pipe.Set(ctx, s.keys.usernameIndex(admin.Username), strconv.FormatInt(int64(admin.ID), 10), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAdmin(ctx context.Context, id model.AdminID) (*model.AdminAccount, error) {
	data, err := s.client.Get(ctx, s.keys.admin(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAdminNotFound
		}
		return nil, err
	}

	var admin model.AdminAccount
	if err := json.Unmarshal(data, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*model.AdminAccount, error) {
	// Look up admin ID from username index
	raw, err := s.client.Get(ctx, s.keys.usernameIndex(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAdminNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, model.ErrAdminNotFound
	}
	return s.GetAdmin(ctx, model.AdminID(id))
}
