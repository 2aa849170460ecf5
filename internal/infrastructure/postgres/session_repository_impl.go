package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/internal/domain/repository"
)

type SessionRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewSessionRepository compares expiry against now rather than the database
// clock so the store and the token codec agree on time.
func NewSessionRepository(pool *pgxpool.Pool, now func() time.Time) *SessionRepository {
	if now == nil {
		now = time.Now
	}
	return &SessionRepository{pool: pool, now: now}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (user_id, user_agent, exp)
		VALUES ($1, $2, $3)
		RETURNING id
	`, s.UserID, s.UserAgent, s.Exp)

	return mapErr(row.Scan(&s.ID))
}

func (r *SessionRepository) GetOwnerBySessionID(ctx context.Context, sessionID uuid.UUID) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.password, u.bio, u.image, u.created_at, u.updated_at, u.deleted_at
		FROM sessions s
		INNER JOIN users u ON u.id = s.user_id
		WHERE s.id = $1 AND s.exp >= $2
	`, sessionID, r.now()))
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
