package applications

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists")
)

type Repo interface {
	Create(ctx context.Context, app Application) error
	FindByUserAndJob(ctx context.Context, userID, jobID string) (Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	// ListByJob orders by ATS score descending, then earliest application.
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id string, status Status, now time.Time) (Application, error)
	DeleteOwned(ctx context.Context, id, userID string) error
}
