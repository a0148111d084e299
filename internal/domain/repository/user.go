package repository

import (
	"context"
	"time"

	"github.com/polkiloo/meetsum/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, id, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// SetPro flips the subscription flag without a payment. Returns ErrAlreadyPro when already set.
	SetPro(ctx context.Context, id string, since time.Time) (*model.User, error)
}
