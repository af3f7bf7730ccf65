package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// ListFavourites returns all favourites-membership records for the
// current user.
func (c *Client) ListFavourites(ctx context.Context) ([]domain.Favourite, error) {
	body, err := c.do(ctx, http.MethodGet, "/favourites/", nil, nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[domain.Favourite](body)
	return items, err
}

// AddFavourite creates a favourite membership for the film.
func (c *Client) AddFavourite(ctx context.Context, filmID int) (*domain.Favourite, error) {
	body, err := c.do(ctx, http.MethodPost, "/favourites/", nil, map[string]int{"film": filmID})
	if err != nil {
		return nil, err
	}
	var fav domain.Favourite
	if err := json.Unmarshal(body, &fav); err != nil {
		return nil, fmt.Errorf("failed to parse favourite: %w", err)
	}
	if fav.FilmID == 0 {
		fav.FilmID = filmID
	}
	return &fav, nil
}

// DeleteFavourite removes a favourite membership by its favourite id
// (not the film id).
func (c *Client) DeleteFavourite(ctx context.Context, favouriteID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/favourites/%d/", favouriteID), nil, nil)
	return err
}
