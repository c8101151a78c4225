package users

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email || (user.GoogleID != "" && existing.GoogleID == user.GoogleID) {
			return ErrDuplicate
		}
	}
	if _, ok := r.users[user.ID]; ok {
		return ErrDuplicate
	}
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range r.users {
		if id != user.ID && (other.Email == user.Email || (user.GoogleID != "" && other.GoogleID == user.GoogleID)) {
			return ErrDuplicate
		}
	}
	user.CreatedAt = existing.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.find(ctx, func(u User) bool { return u.ID == userID })
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.find(ctx, func(u User) bool { return u.Email == email })
}

func (r *MemoryRepo) GetByGoogleID(ctx context.Context, googleID string) (User, error) {
	return r.find(ctx, func(u User) bool { return googleID != "" && u.GoogleID == googleID })
}

func (r *MemoryRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error) {
	return r.find(ctx, func(u User) bool {
		return tokenHash != "" && u.ResetTokenHash == tokenHash && u.ResetExpiresAt != nil && u.ResetExpiresAt.After(now)
	})
}

func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) find(ctx context.Context, match func(User) bool) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}
