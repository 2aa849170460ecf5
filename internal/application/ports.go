package application

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
)

// TokenCodec signs and verifies the two token kinds.
type TokenCodec interface {
	IssueAccess(userID uuid.UUID, email string) (string, time.Time, error)
	IssueRefresh(sessionID uuid.UUID) (string, time.Time, error)
	DecodeAccess(token string) (helpers.AccessIdentity, error)
	DecodeRefresh(token string) (uuid.UUID, error)
}

// PasswordHasher hashes off the request goroutine's critical path.
type PasswordHasher interface {
	Hash(ctx context.Context, raw string) (string, error)
	Verify(ctx context.Context, encoded, attempt string) (bool, error)
}

// Notification kinds map one to one onto email templates.
const (
	NotifyWelcome        = "welcome"
	NotifyLogin          = "login_notification"
	NotifyProfileUpdated = "profile_updated"
)

type Notification struct {
	Kind      string
	Name      string
	Email     string
	UserAgent string
	IP        string
	Changes   map[string]string
	At        time.Time
}

// Notifier delivers user-facing notifications. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type UserHit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// UserDirectory is a searchable projection of user profiles.
type UserDirectory interface {
	Index(ctx context.Context, u *entity.User) error
	Search(ctx context.Context, q string, size int) ([]UserHit, error)
}

// AvatarStore persists profile images and returns their public URL.
type AvatarStore interface {
	Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, r io.Reader) (string, error)
}
