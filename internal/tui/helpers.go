package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

func keyMatches(msg tea.KeyMsg, bindings ...key.Binding) bool {
	for _, b := range bindings {
		if key.Matches(msg, b) {
			return true
		}
	}
	return false
}

// feedErrorMessage maps a first-page failure to user-facing text.
func feedErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrServerOffline):
		return "Cannot reach the FilmHive server. Is it running?"
	case errors.Is(err, domain.ErrAuthFailed):
		return "Your session has expired. Log in again."
	default:
		return actionErrorMessage(err, "Could not load films.")
	}
}

// actionErrorMessage prefers the server's joined field errors, with a
// generic fallback.
func actionErrorMessage(err error, fallback string) string {
	if errors.Is(err, domain.ErrServerOffline) {
		return "Cannot reach the FilmHive server."
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, domain.ErrServerOffline):
		return "Cannot reach the FilmHive server."
	default:
		return actionErrorMessage(err, "Login failed.")
	}
}
