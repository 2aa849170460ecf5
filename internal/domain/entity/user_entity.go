package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for the identity domain.
// Password holds the argon2id hash, never the raw value.
// DeletedAt is reserved for soft deletes; nothing sets it yet.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	Bio       string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
