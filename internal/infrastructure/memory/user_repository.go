package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/internal/domain/repository"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	now := r.s.now()
	u.ID = uuid.New()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.s.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.UpdatedAt = r.s.now()
	r.s.users[u.ID] = *u
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
