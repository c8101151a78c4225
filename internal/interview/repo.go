package interview

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("question set not found")

type Repo interface {
	Upsert(ctx context.Context, set QuestionSet) error
	Get(ctx context.Context, discipline string) (QuestionSet, error)
}
