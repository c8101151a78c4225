package feedback

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Feedback
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Feedback)}
}

func (r *MemoryRepo) Create(ctx context.Context, fb Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[fb.ID] = fb
	return nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Feedback, error) {
	return r.list(ctx, func(Feedback) bool { return true })
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Feedback, error) {
	return r.list(ctx, func(fb Feedback) bool { return fb.UserID == userID })
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *MemoryRepo) Average(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.items) == 0 {
		return 0, nil
	}
	sum := 0
	for _, fb := range r.items {
		sum += fb.Rating
	}
	return float64(sum) / float64(len(r.items)), nil
}

func (r *MemoryRepo) Distribution(ctx context.Context) ([]RatingCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[int]int{}
	for _, fb := range r.items {
		counts[fb.Rating]++
	}
	out := make([]RatingCount, 0, len(counts))
	for rating, n := range counts {
		out = append(out, RatingCount{Rating: rating, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	return out, nil
}

func (r *MemoryRepo) list(ctx context.Context, keep func(Feedback) bool) ([]Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Feedback{}
	for _, fb := range r.items {
		if keep(fb) {
			out = append(out, fb)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}
