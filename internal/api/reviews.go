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

// ListReviews returns all reviews for a film.
func (c *Client) ListReviews(ctx context.Context, filmID int) ([]domain.Review, error) {
	query := url.Values{"film": []string{strconv.Itoa(filmID)}}
	body, err := c.do(ctx, http.MethodGet, "/reviews/", query, nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[domain.Review](body)
	return items, err
}

type reviewPayload struct {
	Film   int    `json:"film,omitempty"`
	Rating int    `json:"rating"`
	Body   string `json:"body"`
}

// CreateReview posts a new review for a film.
func (c *Client) CreateReview(ctx context.Context, filmID, rating int, text string) (*domain.Review, error) {
	body, err := c.do(ctx, http.MethodPost, "/reviews/", nil, reviewPayload{Film: filmID, Rating: rating, Body: text})
	if err != nil {
		return nil, err
	}
	return parseReview(body)
}

// UpdateReview patches an existing review's rating and body.
func (c *Client) UpdateReview(ctx context.Context, reviewID, rating int, text string) (*domain.Review, error) {
	body, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/reviews/%d/", reviewID), nil, reviewPayload{Rating: rating, Body: text})
	if err != nil {
		return nil, err
	}
	return parseReview(body)
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, reviewID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/%d/", reviewID), nil, nil)
	return err
}

// LikeReview creates a like membership for a review.
func (c *Client) LikeReview(ctx context.Context, reviewID int) (*domain.ReviewLike, error) {
	body, err := c.do(ctx, http.MethodPost, "/review-likes/", nil, map[string]int{"review": reviewID})
	if err != nil {
		return nil, err
	}
	var like domain.ReviewLike
	if err := json.Unmarshal(body, &like); err != nil {
		return nil, fmt.Errorf("failed to parse review like: %w", err)
	}
	return &like, nil
}

// UnlikeReview removes a like by its like id.
func (c *Client) UnlikeReview(ctx context.Context, likeID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/review-likes/%d/", likeID), nil, nil)
	return err
}

// ReportReview files a report against a review.
func (c *Client) ReportReview(ctx context.Context, reviewID int) (*domain.ReviewReport, error) {
	body, err := c.do(ctx, http.MethodPost, "/review-reports/", nil, map[string]int{"review": reviewID})
	if err != nil {
		return nil, err
	}
	var report domain.ReviewReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to parse review report: %w", err)
	}
	return &report, nil
}

// UnreportReview withdraws a report by its report id.
func (c *Client) UnreportReview(ctx context.Context, reportID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/review-reports/%d/", reportID), nil, nil)
	return err
}

func parseReview(body []byte) (*domain.Review, error) {
	var review domain.Review
	if err := json.Unmarshal(body, &review); err != nil {
		return nil, fmt.Errorf("failed to parse review: %w", err)
	}
	return &review, nil
}
