package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/winter-cloth-service/internal/auth"
	"github.com/spec-kit/winter-cloth-service/internal/config"
	"github.com/spec-kit/winter-cloth-service/internal/domain"
	"github.com/spec-kit/winter-cloth-service/internal/events"
	"github.com/spec-kit/winter-cloth-service/internal/repository"
)

var (
	// ErrUserExists reports a registration against a taken email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: dispatcher,
	}
}

// Register creates a new account. Uniqueness is left to the storage layer
// rather than a lookup-then-insert, so racing registrations with the same
// email cannot both win.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return ErrUserExists
		}
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserRegistered, map[string]any{
			"user_id": user.ID,
			"email":   user.Email,
		}))
	}
	return nil
}

// Login authenticates an account and mints a token bound to its email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.tokenMgr.GenerateToken(user.Email)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
