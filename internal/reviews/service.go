// Package reviews manages the reviews of one film: listing, the user's own
// review, and optimistic like/report toggles.
package reviews

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
)

// Session is the slice of session state the review service needs.
type Session interface {
	IsAuthenticated() bool
	User() *domain.User
}

// Service holds the reviews of a single film.
type Service struct {
	client  *api.Client
	session Session
	logger  *slog.Logger

	mu      sync.RWMutex
	filmID  int
	reviews []domain.Review
	busy    map[int]bool // like-toggle latch per review id
}

// NewService creates a review service scoped to one film.
func NewService(client *api.Client, session Session, filmID int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  client,
		session: session,
		logger:  logger,
		filmID:  filmID,
		busy:    make(map[int]bool),
	}
}

// Refresh reloads the film's reviews.
func (s *Service) Refresh(ctx context.Context) error {
	reviews, err := s.client.ListReviews(ctx, s.filmID)
	if err != nil {
		s.logger.Error("failed to fetch reviews", "filmID", s.filmID, "error", err)
		return err
	}
	s.mu.Lock()
	s.reviews = reviews
	s.mu.Unlock()
	return nil
}

// Reviews returns the current review list.
func (s *Service) Reviews() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reviews := make([]domain.Review, len(s.reviews))
	copy(reviews, s.reviews)
	return reviews
}

// MyReview resolves the authenticated user's own review: the is_owner flag
// wins, falling back to a user-id match.
func (s *Service) MyReview() *domain.Review {
	if !s.session.IsAuthenticated() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.reviews {
		if s.reviews[i].IsOwner {
			r := s.reviews[i]
			return &r
		}
	}
	user := s.session.User()
	if user == nil {
		return nil
	}
	for i := range s.reviews {
		if s.reviews[i].User == user.ID {
			r := s.reviews[i]
			return &r
		}
	}
	return nil
}

// Submit creates the user's review, or updates it when one already exists.
func (s *Service) Submit(ctx context.Context, rating int, body string) error {
	if !s.session.IsAuthenticated() {
		return domain.ErrLoginRequired
	}

	var err error
	if mine := s.MyReview(); mine != nil {
		_, err = s.client.UpdateReview(ctx, mine.ID, rating, body)
	} else {
		_, err = s.client.CreateReview(ctx, s.filmID, rating, body)
	}
	if err != nil {
		s.logger.Error("failed to submit review", "filmID", s.filmID, "error", err)
		return err
	}
	return s.Refresh(ctx)
}

// Delete removes the user's own review.
func (s *Service) Delete(ctx context.Context) error {
	mine := s.MyReview()
	if mine == nil {
		return domain.ErrNotFound
	}
	if err := s.client.DeleteReview(ctx, mine.ID); err != nil {
		s.logger.Error("failed to delete review", "reviewID", mine.ID, "error", err)
		return err
	}
	return s.Refresh(ctx)
}

// ToggleLike flips the like state of a review, updating the count
// optimistically and rolling back on failure. A busy latch per review
// drops double-toggles while a call is in flight.
func (s *Service) ToggleLike(ctx context.Context, reviewID int) error {
	if !s.session.IsAuthenticated() {
		return domain.ErrLoginRequired
	}

	s.mu.Lock()
	if s.busy[reviewID] {
		s.mu.Unlock()
		return nil
	}
	idx := s.indexLocked(reviewID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	wasLiked := s.reviews[idx].LikedByMe
	likeID := s.reviews[idx].MyLikeID
	s.busy[reviewID] = true
	s.applyLikeLocked(idx, !wasLiked)
	s.mu.Unlock()

	var err error
	var created *domain.ReviewLike
	if wasLiked && likeID != nil {
		err = s.client.UnlikeReview(ctx, *likeID)
	} else if !wasLiked {
		created, err = s.client.LikeReview(ctx, reviewID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, reviewID)

	idx = s.indexLocked(reviewID)
	if idx < 0 {
		return err
	}
	if err != nil {
		// Roll back the optimistic flip.
		s.applyLikeLocked(idx, wasLiked)
		s.logger.Error("failed to toggle like", "reviewID", reviewID, "error", err)
		return err
	}
	if created != nil {
		id := created.ID
		s.reviews[idx].MyLikeID = &id
	} else {
		s.reviews[idx].MyLikeID = nil
	}
	return nil
}

// ToggleReport files or withdraws a report against a review.
func (s *Service) ToggleReport(ctx context.Context, reviewID int) (reported bool, err error) {
	if !s.session.IsAuthenticated() {
		return false, domain.ErrLoginRequired
	}

	s.mu.RLock()
	idx := s.indexLocked(reviewID)
	if idx < 0 {
		s.mu.RUnlock()
		return false, domain.ErrNotFound
	}
	wasReported := s.reviews[idx].ReportedByMe
	reportID := s.reviews[idx].MyReportID
	s.mu.RUnlock()

	if wasReported && reportID != nil {
		if err := s.client.UnreportReview(ctx, *reportID); err != nil {
			return true, err
		}
		s.setReport(reviewID, false, nil)
		return false, nil
	}

	report, err := s.client.ReportReview(ctx, reviewID)
	if err != nil {
		return false, err
	}
	s.setReport(reviewID, true, &report.ID)
	return true, nil
}

func (s *Service) setReport(reviewID int, reported bool, reportID *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(reviewID); idx >= 0 {
		s.reviews[idx].ReportedByMe = reported
		s.reviews[idx].MyReportID = reportID
	}
}

// indexLocked finds a review by id; callers hold the lock.
func (s *Service) indexLocked(reviewID int) int {
	for i := range s.reviews {
		if s.reviews[i].ID == reviewID {
			return i
		}
	}
	return -1
}

// applyLikeLocked sets the liked flag and adjusts the count, clamped at
// zero; callers hold the lock.
func (s *Service) applyLikeLocked(idx int, liked bool) {
	r := &s.reviews[idx]
	if liked == r.LikedByMe {
		return
	}
	r.LikedByMe = liked
	if liked {
		r.LikesCount++
	} else if r.LikesCount > 0 {
		r.LikesCount--
	}
}
