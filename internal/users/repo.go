package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

type Repo interface {
	Create(ctx context.Context, user User) error
	Update(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByGoogleID(ctx context.Context, googleID string) (User, error)
	// GetByResetToken returns the user holding tokenHash if it expires after now.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error)
	List(ctx context.Context) ([]User, error)
}
