// Package session holds the authenticated user state: the persisted
// token, the profile, and the boot flag that lets the UI distinguish
// "not yet determined" from "determined not authenticated".
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/config"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// Service manages the session lifecycle. It implements api.CredentialSource
// so every outgoing request carries the current token; construct it first,
// build the API client against it, then Bind the client.
type Service struct {
	logger *slog.Logger

	mu      sync.RWMutex
	client  *api.Client
	token   string
	scheme  config.TokenScheme
	user    *domain.User
	booting bool
}

// NewService creates a session seeded from the persisted configuration.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:  logger,
		token:   cfg.Server.Token,
		scheme:  cfg.Server.Scheme(),
		booting: true,
	}
}

// Bind attaches the API client. Required before Login/Boot/Logout.
func (s *Service) Bind(client *api.Client) {
	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
}

// Token implements api.CredentialSource.
func (s *Service) Token() (string, config.TokenScheme) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.scheme
}

// IsAuthenticated reports whether a session token is held.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Booting reports whether the startup profile fetch has not yet settled.
func (s *Service) Booting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.booting
}

// User returns the authenticated profile, or nil.
func (s *Service) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Boot validates the stored token by fetching the profile. A rejected
// token is cleared and the session becomes logged-out without surfacing
// an error: the silent downgrade.
func (s *Service) Boot(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.booting = false
		s.mu.Unlock()
	}()

	if !s.IsAuthenticated() {
		return
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.logger.Info("stored token rejected, clearing session", "error", err)
		s.clearToken()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Login exchanges credentials for a token, persists it, and fetches the
// profile. Returns domain.ErrInvalidCredentials on rejection.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) error {
	key, err := s.client.Login(ctx, creds)
	if err != nil {
		return err
	}

	s.setToken(key, config.SchemeToken)

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("profile fetch after login failed", "error", err)
		return nil // session is valid; profile can load later
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Register creates an account and immediately logs in with the new
// credentials.
func (s *Service) Register(ctx context.Context, reg domain.Registration) error {
	if err := s.client.Register(ctx, reg); err != nil {
		return err
	}
	return s.Login(ctx, domain.Credentials{Username: reg.Username, Password: reg.Password1})
}

// Logout notifies the backend best-effort, then unconditionally clears
// the local token and profile regardless of the network outcome.
func (s *Service) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn("logout request failed", "error", err)
	}
	s.clearToken()
}

func (s *Service) setToken(token string, scheme config.TokenScheme) {
	s.mu.Lock()
	s.token = token
	s.scheme = scheme
	s.mu.Unlock()

	if err := config.SaveToken(token, scheme); err != nil {
		s.logger.Error("failed to persist token", "error", err)
	}
}

func (s *Service) clearToken() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := config.ClearToken(); err != nil {
		s.logger.Error("failed to clear persisted token", "error", err)
	}
}
