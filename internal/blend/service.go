// Package blend queries the backend for films compromising between two
// selected titles. The scoring is entirely server-side; the client sends
// one POST and renders the ranked results as returned.
package blend

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

const DefaultLimit = 10

// Service performs compromise queries.
type Service struct {
	client *api.Client
	logger *slog.Logger
}

// NewService creates a blend service.
func NewService(client *api.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// Compromise asks for films balancing filmA and filmB. slider is the UI
// weight toward film B in [0,1]; the backend's alpha weights film A, so
// the value is inverted exactly once here at the service boundary.
func (s *Service) Compromise(ctx context.Context, filmAID, filmBID int, slider float64, limit int) (*domain.BlendResponse, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	alpha := 1 - slider

	resp, err := s.client.Compromise(ctx, filmAID, filmBID, alpha, limit)
	if err != nil {
		s.logger.Error("compromise query failed", "filmA", filmAID, "filmB", filmBID, "error", err)
		return nil, err
	}
	s.logger.Debug("compromise results", "returned", resp.Meta.Returned, "alpha", resp.Meta.Alpha)
	return resp, nil
}

// UserMessage converts a compromise error into the message shown in the UI.
func UserMessage(err error) string {
	if errors.Is(err, domain.ErrAuthFailed) {
		return "You must be logged in to use Blend Mode."
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "One or both films not found."
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message("Failed to find compromise films")
	}
	return "Failed to find compromise films"
}
