package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/internal/domain/repository"
)

type SessionRepository struct{ s *Store }

func (r *SessionRepository) Create(_ context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[sess.UserID]; !ok {
		return repository.ErrNotFound
	}
	sess.ID = uuid.New()
	r.s.sessions[sess.ID] = *sess
	return nil
}

func (r *SessionRepository) GetOwnerBySessionID(_ context.Context, sessionID uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sess, ok := r.s.sessions[sessionID]
	if !ok || sess.Exp.Before(r.s.now()) {
		return nil, repository.ErrNotFound
	}
	u, ok := r.s.users[sess.UserID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
