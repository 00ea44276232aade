package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesafacil/reservas/internal/dependencies/clock"
	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("access token not provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access denied")
)

// PasswordCost is the bcrypt cost used for admin passwords
const PasswordCost = 10

// Claims is the payload of an admin session token
type Claims struct {
	AdminID  int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is the result of a successful login
type Session struct {
	Token     string
	Admin     *model.AdminAccount
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	Secret        string
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// Service authenticates administrators and issues stateless session tokens
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	secret        []byte
	tokenDuration time.Duration
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		storage:       storage,
		clock:         clock,
		secret:        []byte(cfg.Secret),
		tokenDuration: cfg.TokenDuration,
	}
}

// Login checks the credentials and issues a session token.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	admin, err := s.storage.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(admin)
}

// Verify validates a session token and returns the admin it was issued to
func (s *Service) Verify(ctx context.Context, token string) (*model.AdminAccount, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	admin, err := s.storage.GetAdmin(ctx, model.AdminID(claims.AdminID))
	if err != nil {
		if errors.Is(err, model.ErrAdminNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return admin, nil
}

// EnsureDefaultAdmin creates an admin account when none exists yet.
// It reports whether an account was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	admins, err := s.storage.LoadAdmins(ctx)
	if err != nil {
		return false, err
	}
	if len(admins) > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := s.clock.Now()
	admin := &model.AdminAccount{
		ID:           model.AdminID(now.UnixMilli()),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := s.storage.SaveAdmin(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) issue(admin *model.AdminAccount) (*Session, error) {
	now := s.clock.Now()
	expires := now.Add(s.tokenDuration)

	claims := Claims{
		AdminID:  int64(admin.ID),
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{Token: signed, Admin: admin, ExpiresAt: expires}, nil
}
