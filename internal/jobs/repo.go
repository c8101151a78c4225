package jobs

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("job not found")

type Repo interface {
	Create(ctx context.Context, job Job) error
	Get(ctx context.Context, id string) (Job, error)
	List(ctx context.Context) ([]Job, error)
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, id string) error
}
