package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// Login exchanges credentials for a session token key.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login/", nil, creds)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	var resp struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	return resp.Key, nil
}

// Register creates an account. The backend may or may not return a token
// key; callers log in afterwards regardless.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/registration/", nil, reg)
	return err
}

// Logout notifies the backend that the session token should be revoked.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil)
	return err
}

// CurrentUser fetches the authenticated profile, falling back to the
// alternate endpoint some backend deployments expose.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/user/", nil, nil)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			body, err = c.do(ctx, http.MethodGet, "/auth/users/me/", nil, nil)
		}
		if err != nil {
			return nil, err
		}
	}
	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}
