package cvs

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string][]CV
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string][]CV)}
}

func (r *MemoryRepo) Create(ctx context.Context, cv CV) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.byUser[cv.UserID], cv)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	r.byUser[cv.UserID] = list
	return nil
}

func (r *MemoryRepo) Latest(ctx context.Context, userID string) (CV, error) {
	if err := ctx.Err(); err != nil {
		return CV{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byUser[userID]
	if len(list) == 0 {
		return CV{}, ErrNotFound
	}
	return list[0], nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string, limit, offset int) ([]CV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byUser[userID]
	if offset >= len(list) || limit <= 0 {
		return []CV{}, nil
	}
	end := min(offset+limit, len(list))
	out := make([]CV, end-offset)
	copy(out, list[offset:end])
	return out, nil
}
