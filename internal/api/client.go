package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Kerem-Haeger/filmhive/internal/config"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "FilmHive-TUI/1.0"
)

// CredentialSource supplies the current session token for outgoing requests.
// An empty token means no Authorization header is attached.
type CredentialSource interface {
	Token() (string, config.TokenScheme)
}

// Client is the FilmHive REST API client. The base URL is fixed at
// construction; callers supply resource paths under /api. Each call is
// at-most-once: no retries, callers decide whether to retry.
type Client struct {
	apiRoot    string
	creds      CredentialSource
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client rooted at baseURL's /api prefix.
func NewClient(baseURL string, creds CredentialSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiRoot: strings.TrimRight(baseURL, "/") + "/api",
		creds:   creds,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// do performs an authenticated HTTP request. path is either a resource path
// ("/films/") or an absolute URL (a pagination cursor issued by the backend).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	reqURL := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		reqURL = c.apiRoot + path
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(reqURL, "?") {
			sep = "&"
		}
		reqURL = reqURL + sep + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token, scheme := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("%s %s", scheme, token))
		}
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("api error response", "status", resp.StatusCode, "url", reqURL)
		return nil, newError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// Error is a structured non-2xx response: the HTTP status plus the backend's
// per-field validation messages, when the body carried any.
type Error struct {
	Status int
	Fields map[string][]string
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err == nil && len(raw) > 0 {
		e.Fields = make(map[string][]string, len(raw))
		for key, val := range raw {
			var list []string
			if err := json.Unmarshal(val, &list); err == nil {
				e.Fields[key] = list
				continue
			}
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				e.Fields[key] = []string{s}
				continue
			}
			e.Fields[key] = []string{string(val)}
		}
	}
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message(""))
}

// Unwrap maps status classes onto domain sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrAuthFailed
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// Message joins the backend's field messages into one display string.
// "detail" and "non_field_errors" values appear bare; other keys are
// prefixed. Keys are ordered for stable output.
func (e *Error) Message(fallback string) string {
	if len(e.Fields) == 0 {
		return fallback
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var messages []string
	for _, key := range keys {
		joined := strings.Join(e.Fields[key], " ")
		if key == "detail" || key == "non_field_errors" {
			messages = append(messages, joined)
		} else {
			messages = append(messages, fmt.Sprintf("%s: %s", key, joined))
		}
	}
	if len(messages) == 0 {
		return fallback
	}
	return strings.Join(messages, " • ")
}

// Detail returns the bare "detail" message, if the backend sent one.
func (e *Error) Detail() string {
	if e.Fields == nil {
		return ""
	}
	return strings.Join(e.Fields["detail"], " ")
}

// pagedBody is the backend's paginated list envelope.
type pagedBody struct {
	Results json.RawMessage `json:"results"`
	Next    *string         `json:"next"`
}

// decodeList decodes a list response that is either a {results, next}
// envelope or a bare JSON array. next is "" when exhausted.
func decodeList[T any](body []byte) ([]T, string, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, "", fmt.Errorf("failed to parse list response: %w", err)
		}
		return items, "", nil
	}

	var envelope pagedBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", fmt.Errorf("failed to parse paged response: %w", err)
	}
	var items []T
	if len(envelope.Results) > 0 {
		if err := json.Unmarshal(envelope.Results, &items); err != nil {
			return nil, "", fmt.Errorf("failed to parse page results: %w", err)
		}
	}
	next := ""
	if envelope.Next != nil {
		next = *envelope.Next
	}
	return items, next, nil
}
