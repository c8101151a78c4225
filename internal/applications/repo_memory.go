package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	apps map[string]Application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{apps: make(map[string]Application)}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.UserID == app.UserID && existing.JobID == app.JobID {
			return ErrDuplicate
		}
	}
	r.apps[app.ID] = app
	return nil
}

func (r *MemoryRepo) FindByUserAndJob(ctx context.Context, userID, jobID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.apps {
		if app.UserID == userID && app.JobID == jobID {
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Application, error) {
	return r.filter(ctx, func(Application) bool { return true }, newestFirst)
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	return r.filter(ctx, func(a Application) bool { return a.UserID == userID }, newestFirst)
}

func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	return r.filter(ctx, func(a Application) bool { return a.JobID == jobID }, byRank)
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, status Status, now time.Time) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = now
	r.apps[id] = app
	return app, nil
}

func (r *MemoryRepo) DeleteOwned(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok || app.UserID != userID {
		return ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *MemoryRepo) filter(ctx context.Context, keep func(Application) bool, less func(a, b Application) bool) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Application{}
	for _, app := range r.apps {
		if keep(app) {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

func newestFirst(a, b Application) bool {
	if a.AppliedAt.Equal(b.AppliedAt) {
		return a.ID < b.ID
	}
	return a.AppliedAt.After(b.AppliedAt)
}

func byRank(a, b Application) bool {
	if a.ATSScore != b.ATSScore {
		return a.ATSScore > b.ATSScore
	}
	if !a.AppliedAt.Equal(b.AppliedAt) {
		return a.AppliedAt.Before(b.AppliedAt)
	}
	return a.ID < b.ID
}
