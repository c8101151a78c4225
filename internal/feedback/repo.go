package feedback

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("feedback not found")

type Repo interface {
	Create(ctx context.Context, fb Feedback) error
	ListAll(ctx context.Context) ([]Feedback, error)
	ListByUser(ctx context.Context, userID string) ([]Feedback, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// Average returns 0 when there is no feedback.
	Average(ctx context.Context) (float64, error)
	// Distribution lists counts per rating in ascending rating order.
	Distribution(ctx context.Context) ([]RatingCount, error)
}
