package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// WatchlistAdd is the payload for creating a watchlist membership.
// The film id is sent under both accepted field names.
type WatchlistAdd struct {
	FilmID    int    `json:"film_id"`
	Film      int    `json:"film"`
	Name      string `json:"name"`
	IsPrivate *bool  `json:"is_private,omitempty"`
	Position  *int   `json:"position,omitempty"`
}

// ListWatchlist returns the user's watchlist entries, optionally scoped to
// one named list.
func (c *Client) ListWatchlist(ctx context.Context, name string) ([]domain.WatchlistEntry, error) {
	var query url.Values
	if name != "" {
		query = url.Values{"name": []string{name}}
	}
	body, err := c.do(ctx, http.MethodGet, "/watchlist/", query, nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[domain.WatchlistEntry](body)
	return items, err
}

// AddToWatchlist creates a watchlist membership and returns the created entry.
func (c *Client) AddToWatchlist(ctx context.Context, add WatchlistAdd) (*domain.WatchlistEntry, error) {
	if add.Name == "" {
		add.Name = domain.DefaultWatchlistName
	}
	if add.Film == 0 {
		add.Film = add.FilmID
	}
	body, err := c.do(ctx, http.MethodPost, "/watchlist/", nil, add)
	if err != nil {
		return nil, err
	}
	var entry domain.WatchlistEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist entry: %w", err)
	}
	if entry.FilmID == 0 {
		entry.FilmID = add.FilmID
	}
	if entry.Name == "" {
		entry.Name = add.Name
	}
	return &entry, nil
}

// RemoveFromWatchlist deletes a watchlist membership by entry id.
func (c *Client) RemoveFromWatchlist(ctx context.Context, entryID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/watchlist/%d/", entryID), nil, nil)
	return err
}
