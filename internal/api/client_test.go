package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/config"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// staticCreds supplies a fixed token for tests.
type staticCreds struct {
	token  string
	scheme config.TokenScheme
}

func (c staticCreds) Token() (string, config.TokenScheme) { return c.token, c.scheme }

func TestClientAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name   string
		creds  api.CredentialSource
		header string
	}{
		{"token scheme", staticCreds{"abc123", config.SchemeToken}, "Token abc123"},
		{"bearer scheme", staticCreds{"abc123", config.SchemeBearer}, "Bearer abc123"},
		{"empty token sends no header", staticCreds{"", config.SchemeToken}, ""},
		{"nil source sends no header", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				w.Write([]byte(`[]`))
			}))
			defer srv.Close()

			client := api.NewClient(srv.URL, tt.creds, nil)
			_, _, err := client.FilmPage(context.Background(), "/films/")
			require.NoError(t, err)
			assert.Equal(t, tt.header, got)
		})
	}
}

func TestClientRequestsUnderAPIRoot(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// Trailing slash on the base URL must not double up.
	client := api.NewClient(srv.URL+"/", nil, nil)
	_, _, err := client.FilmPage(context.Background(), "/films/")
	require.NoError(t, err)
	assert.Equal(t, "/api/films/", path)
}

func TestClientFollowsAbsoluteCursor(t *testing.T) {
	var path, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.RawQuery
		w.Write([]byte(`{"results": [], "next": null}`))
	}))
	defer srv.Close()

	client := api.NewClient("http://irrelevant.invalid", nil, nil)
	_, next, err := client.FilmPage(context.Background(), srv.URL+"/api/films/?page=2")
	require.NoError(t, err)
	assert.Equal(t, "/api/films/", path)
	assert.Equal(t, "page=2", query)
	assert.Empty(t, next)
}

func TestClientPaginationEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"id": 1, "title": "A"}, {"id": 2, "title": "B"}], "next": "http://example.com/api/films/?page=2"}`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, nil, nil)
	films, next, err := client.FilmPage(context.Background(), "/films/")
	require.NoError(t, err)
	assert.Len(t, films, 2)
	assert.Equal(t, "http://example.com/api/films/?page=2", next)
}

func TestClientBareArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 7, "title": "Solo"}]`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, nil, nil)
	films, next, err := client.FilmPage(context.Background(), "/films/")
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, 7, films[0].ID)
	assert.Empty(t, next, "a bare array means a single page")
}

func TestClientOfflineError(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1", nil, nil)
	_, _, err := client.FilmPage(context.Background(), "/films/")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestClientStatusSentinels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"401 is auth failure", http.StatusUnauthorized, domain.ErrAuthFailed},
		{"404 is not found", http.StatusNotFound, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"detail": "nope"}`))
			}))
			defer srv.Close()

			client := api.NewClient(srv.URL, nil, nil)
			_, err := client.GetFilm(context.Background(), 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Detail())
		})
	}
}

func TestErrorMessageJoining(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"detail is bare",
			`{"detail": "Invalid token."}`,
			"Invalid token.",
		},
		{
			"non_field_errors is bare",
			`{"non_field_errors": ["Unable to log in."]}`,
			"Unable to log in.",
		},
		{
			"field keys are prefixed and sorted",
			`{"username": ["This field is required."], "email": ["Enter a valid email."]}`,
			"email: Enter a valid email. • username: This field is required.",
		},
		{
			"mixed bare and prefixed",
			`{"detail": "Bad request.", "rating": ["Must be between 1 and 5."]}`,
			"Bad request. • rating: Must be between 1 and 5.",
		},
		{
			"empty body falls back",
			``,
			"fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := api.NewClient(srv.URL, nil, nil)
			_, err := client.GetFilm(context.Background(), 1)
			require.Error(t, err)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.want, apiErr.Message("fallback"))
		})
	}
}

func TestFilmsPath(t *testing.T) {
	assert.Equal(t, "/films/", api.FilmsPath("", 0))
	assert.Equal(t, "/films/?limit=24", api.FilmsPath("", 24))
	assert.Equal(t, "/films/?limit=24&search=dune", api.FilmsPath("dune", 24))
}
