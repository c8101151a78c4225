package feedback

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cvmaker-backend/internal/users"
)

var (
	ErrMissingFields = errors.New("rating and feedback are required")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyFeedback = errors.New("feedback cannot be empty")
	ErrUserNotFound  = errors.New("user not found")
)

type UserLookup interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

type Service struct {
	Repo  Repo
	Users UserLookup
	Now   func() time.Time
}

func NewService(repo Repo, userLookup UserLookup) *Service {
	return &Service{Repo: repo, Users: userLookup, Now: func() time.Time { return time.Now().UTC() }}
}

// Submit stores feedback with a snapshot of the author's name and email.
func (s *Service) Submit(ctx context.Context, userID string, rating int, text string) (Feedback, error) {
	text = strings.TrimSpace(text)
	if rating < 1 || rating > 5 {
		return Feedback{}, ErrInvalidRating
	}
	if text == "" {
		return Feedback{}, ErrEmptyFeedback
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Feedback{}, ErrUserNotFound
		}
		return Feedback{}, err
	}

	fb := Feedback{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Rating:      rating,
		Feedback:    text,
		SubmittedAt: s.Now(),
	}
	if err := s.Repo.Create(ctx, fb); err != nil {
		return Feedback{}, err
	}
	return fb, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Feedback, error) {
	return s.Repo.ListAll(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Feedback, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Stats runs the count, average and distribution queries concurrently.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Repo.Count(gCtx)
		stats.TotalFeedbacks = n
		return err
	})
	g.Go(func() error {
		avg, err := s.Repo.Average(gCtx)
		stats.AverageRating = math.Round(avg*100) / 100
		return err
	})
	g.Go(func() error {
		dist, err := s.Repo.Distribution(gCtx)
		stats.RatingDistribution = dist
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	if stats.RatingDistribution == nil {
		stats.RatingDistribution = []RatingCount{}
	}
	return stats, nil
}
