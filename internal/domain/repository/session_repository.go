package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
)

// SessionRepository stores one row per sign-in.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	// GetOwnerBySessionID returns the owning user of a session whose expiry has
	// not passed. Expired or unknown sessions yield ErrNotFound.
	GetOwnerBySessionID(ctx context.Context, sessionID uuid.UUID) (*entity.User, error)
}
