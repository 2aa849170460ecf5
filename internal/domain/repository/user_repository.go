package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user-related storage operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// GetByEmail is an exact, case-sensitive match.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
