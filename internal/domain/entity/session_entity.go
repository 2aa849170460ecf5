package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one sign-in from one device. Exp is the only termination signal.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	UserAgent string
	Exp       time.Time
}
