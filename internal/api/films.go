package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// FilmsPath builds the catalog listing path with optional server-side
// search term and page limit.
func FilmsPath(search string, limit int) string {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if len(query) == 0 {
		return "/films/"
	}
	return "/films/?" + query.Encode()
}

// ForYouPath is the personalized recommendations listing. Requires a session.
func ForYouPath() string {
	return "/films/for-you/"
}

// FilmPage fetches one page of a film listing. path is either a listing
// path or the next-cursor URL from a previous page. next is "" when no
// further pages exist.
func (c *Client) FilmPage(ctx context.Context, path string) (films []domain.Film, next string, err error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, "", err
	}
	return decodeList[domain.Film](body)
}

// GetFilm fetches a single film with full detail (cast, genres, keywords).
func (c *Client) GetFilm(ctx context.Context, id int) (*domain.Film, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/films/%d/", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var film domain.Film
	if err := json.Unmarshal(body, &film); err != nil {
		return nil, fmt.Errorf("failed to parse film: %w", err)
	}
	return &film, nil
}

// blendRequest is the body of POST /compromise/.
type blendRequest struct {
	FilmAID int     `json:"film_a_id"`
	FilmBID int     `json:"film_b_id"`
	Alpha   float64 `json:"alpha"`
	Limit   int     `json:"limit"`
}

// Compromise asks the backend for films balancing two reference films.
// alpha weights film A per the backend's parameter semantics.
func (c *Client) Compromise(ctx context.Context, filmAID, filmBID int, alpha float64, limit int) (*domain.BlendResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/compromise/", nil, blendRequest{
		FilmAID: filmAID,
		FilmBID: filmBID,
		Alpha:   alpha,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	var resp domain.BlendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse compromise response: %w", err)
	}
	return &resp, nil
}
