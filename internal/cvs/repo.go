package cvs

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("cv not found")

// Repo persists processed CVs. Latest and List order by creation time, newest first.
type Repo interface {
	Create(ctx context.Context, cv CV) error
	Latest(ctx context.Context, userID string) (CV, error)
	List(ctx context.Context, userID string, limit, offset int) ([]CV, error)
}
