package reviews_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/reviews"
)

type fakeSession struct {
	authed bool
	user   *domain.User
}

func (s fakeSession) IsAuthenticated() bool { return s.authed }
func (s fakeSession) User() *domain.User    { return s.user }

// reviewServer serves a fixed review list and records mutations.
type reviewServer struct {
	mu       sync.Mutex
	listBody string
	likes    int
	unlikes  int
	reports  int
	posts    []string // method + path, in order
	failLike bool
}

func (s *reviewServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reviews/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.posts = append(s.posts, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(s.listBody))
		case http.MethodPost, http.MethodPatch:
			var payload map[string]any
			_ = json.NewDecoder(r.Body).Decode(&payload)
			fmt.Fprintf(w, `{"id": 1, "rating": %v, "body": %q}`, payload["rating"], payload["body"])
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/api/review-likes/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.posts = append(s.posts, r.Method+" "+r.URL.Path)
		if s.failLike {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch r.Method {
		case http.MethodPost:
			s.likes++
			w.Write([]byte(`{"id": 900, "review": 1}`))
		case http.MethodDelete:
			s.unlikes++
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/api/review-reports/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.posts = append(s.posts, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			s.reports++
			w.Write([]byte(`{"id": 700, "review": 2}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	return mux
}

const twoReviews = `[
	{"id": 1, "film": 5, "user": 10, "username": "me", "rating": 4, "body": "good", "is_owner": true, "likes_count": 2},
	{"id": 2, "film": 5, "user": 11, "username": "other", "rating": 2, "body": "meh", "likes_count": 0}
]`

func newService(t *testing.T, backend *reviewServer, session reviews.Session) (*reviews.Service, func()) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	svc := reviews.NewService(api.NewClient(srv.URL, nil, nil), session, 5, nil)
	return svc, srv.Close
}

func TestMyReviewPrefersOwnerFlag(t *testing.T) {
	backend := &reviewServer{listBody: twoReviews}
	svc, done := newService(t, backend, fakeSession{authed: true})
	defer done()

	require.NoError(t, svc.Refresh(context.Background()))
	mine := svc.MyReview()
	require.NotNil(t, mine)
	assert.Equal(t, 1, mine.ID)
}

func TestMyReviewFallsBackToUserID(t *testing.T) {
	noFlags := strings.ReplaceAll(twoReviews, `"is_owner": true, `, "")
	backend := &reviewServer{listBody: noFlags}
	svc, done := newService(t, backend, fakeSession{authed: true, user: &domain.User{ID: 11}})
	defer done()

	require.NoError(t, svc.Refresh(context.Background()))
	mine := svc.MyReview()
	require.NotNil(t, mine)
	assert.Equal(t, 2, mine.ID)

	anon := reviews.NewService(nil, fakeSession{authed: false}, 5, nil)
	assert.Nil(t, anon.MyReview())
}

func TestSubmitCreatesOrUpdates(t *testing.T) {
	// No existing review: POST to the collection.
	backend := &reviewServer{listBody: `[]`}
	svc, done := newService(t, backend, fakeSession{authed: true})
	defer done()

	require.NoError(t, svc.Refresh(context.Background()))
	require.NoError(t, svc.Submit(context.Background(), 5, "great"))
	assert.Contains(t, backend.posts, "POST /api/reviews/")

	// Existing own review: PATCH to the member.
	backend2 := &reviewServer{listBody: twoReviews}
	svc2, done2 := newService(t, backend2, fakeSession{authed: true})
	defer done2()

	require.NoError(t, svc2.Refresh(context.Background()))
	require.NoError(t, svc2.Submit(context.Background(), 3, "revised"))
	assert.Contains(t, backend2.posts, "PATCH /api/reviews/1/")
}

func TestSubmitRequiresLogin(t *testing.T) {
	svc := reviews.NewService(nil, fakeSession{authed: false}, 5, nil)
	assert.ErrorIs(t, svc.Submit(context.Background(), 4, "x"), domain.ErrLoginRequired)
}

func TestDeleteWithoutOwnReview(t *testing.T) {
	backend := &reviewServer{listBody: `[]`}
	svc, done := newService(t, backend, fakeSession{authed: true})
	defer done()

	require.NoError(t, svc.Refresh(context.Background()))
	assert.ErrorIs(t, svc.Delete(context.Background()), domain.ErrNotFound)
}

func TestToggleLikeOptimisticFlow(t *testing.T) {
	backend := &reviewServer{listBody: twoReviews}
	svc, done := newService(t, backend, fakeSession{authed: true})
	defer done()

	require.NoError(t, svc.Refresh(context.Background()))

	// Like: count goes up, like id is remembered.
	require.NoError(t, svc.ToggleLike(context.Background(), 1))
	r := svc.Reviews()[0]
	assert.True(t, r.LikedByMe)
	assert.Equal(t, 3, r.LikesCount)
	require.NotNil(t, r.MyLikeID)
	assert.Equal(t, 900, *r.MyLikeID)
	assert.Equal(t, 1, backend.likes)

	// Unlike: count goes back down via DELETE on the like id.
	require.NoError(t, svc.ToggleLike(context.Background(), 1))
	r = svc.Reviews()[0]
	assert.False(t, r.LikedByMe)
	assert.Equal(t, 2, r.LikesCount)
	assert.Nil(t, r.MyLikeID)
	assert.Equal(t, 1, backend.unlikes)
	assert.Contains(t, backend.posts, "DELETE /api/review-likes/900/")
}

func TestToggleLikeRollsBackOnFailure(t *testing.T) {
	backend := &reviewServer{listBody: twoReviews, failLike: true}
	svc, done := newService(t, backend, fakeSession{authed: true})
	defer done()

	require.NoError(t, svc.Refresh(context.Background()))
	require.Error(t, svc.ToggleLike(context.Background(), 1))

	r := svc.Reviews()[0]
	assert.False(t, r.LikedByMe, "optimistic like must be rolled back")
	assert.Equal(t, 2, r.LikesCount)
}

func TestToggleLikeCountClampsAtZero(t *testing.T) {
	// A zero-count review reported as already liked: unliking must not
	// drive the count negative.
	liked := `[{"id": 3, "film": 5, "username": "x", "rating": 3, "likes_count": 0, "liked_by_me": true, "my_like_id": 55}]`
	backend := &reviewServer{listBody: liked}
	svc, done := newService(t, backend, fakeSession{authed: true})
	defer done()

	require.NoError(t, svc.Refresh(context.Background()))
	require.NoError(t, svc.ToggleLike(context.Background(), 3))

	r := svc.Reviews()[0]
	assert.False(t, r.LikedByMe)
	assert.Equal(t, 0, r.LikesCount)
}

func TestToggleLikeRequiresLogin(t *testing.T) {
	svc := reviews.NewService(nil, fakeSession{authed: false}, 5, nil)
	assert.ErrorIs(t, svc.ToggleLike(context.Background(), 1), domain.ErrLoginRequired)
}

func TestToggleReportRoundTrip(t *testing.T) {
	backend := &reviewServer{listBody: twoReviews}
	svc, done := newService(t, backend, fakeSession{authed: true})
	defer done()

	require.NoError(t, svc.Refresh(context.Background()))

	reported, err := svc.ToggleReport(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, reported)
	assert.True(t, svc.Reviews()[1].ReportedByMe)

	reported, err = svc.ToggleReport(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, reported)
	assert.False(t, svc.Reviews()[1].ReportedByMe)
	assert.Contains(t, backend.posts, "DELETE /api/review-reports/700/")
}
