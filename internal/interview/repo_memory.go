package interview

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	sets map[string]QuestionSet
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{sets: make(map[string]QuestionSet)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, set QuestionSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set.Questions = append([]string(nil), set.Questions...)
	r.sets[set.Discipline] = set
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, discipline string) (QuestionSet, error) {
	if err := ctx.Err(); err != nil {
		return QuestionSet{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[discipline]
	if !ok {
		return QuestionSet{}, ErrNotFound
	}
	return set, nil
}
