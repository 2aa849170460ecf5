package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/internal/domain/repository"
)

type CategoryRepository struct{ s *Store }

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	c.ID = uuid.New()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Category, 0)
	for _, c := range r.s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	byCreated(out, func(c entity.Category) time.Time { return c.CreatedAt }, func(c entity.Category) uuid.UUID { return c.ID })
	return out, nil
}

func (r *CategoryRepository) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Name, cur.CatType = c.Name, c.CatType
	cur.UpdatedAt = r.s.now()
	r.s.categories[c.ID] = cur
	*c = cur
	return nil
}

// Delete cascades to budgets and expenses like the foreign keys do.
func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.categories, id)
	for bid, b := range r.s.budgets {
		if b.CategoryID == id {
			delete(r.s.budgets, bid)
		}
	}
	for eid, e := range r.s.expenses {
		if e.CategoryID == id {
			delete(r.s.expenses, eid)
		}
	}
	return nil
}

type BudgetRepository struct{ s *Store }

func (r *BudgetRepository) Create(_ context.Context, b *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[b.CategoryID]; !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	b.ID = uuid.New()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.budgets[b.ID] = *b
	return nil
}

func (r *BudgetRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.budgets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BudgetRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	owned := r.s.ownedCategories(userID)
	out := make([]entity.Budget, 0)
	for _, b := range r.s.budgets {
		if owned[b.CategoryID] {
			out = append(out, b)
		}
	}
	byCreated(out, func(b entity.Budget) time.Time { return b.CreatedAt }, func(b entity.Budget) uuid.UUID { return b.ID })
	return out, nil
}

func (r *BudgetRepository) Update(_ context.Context, b *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.budgets[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.CategoryID, cur.Amount, cur.Description, cur.Plan = b.CategoryID, b.Amount, b.Description, b.Plan
	cur.UpdatedAt = r.s.now()
	r.s.budgets[b.ID] = cur
	*b = cur
	return nil
}

func (r *BudgetRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.budgets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.budgets, id)
	return nil
}

type ExpenseRepository struct{ s *Store }

func (r *ExpenseRepository) Create(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[e.CategoryID]; !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	e.ID = uuid.New()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *ExpenseRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	owned := r.s.ownedCategories(userID)
	out := make([]entity.Expense, 0)
	for _, e := range r.s.expenses {
		if owned[e.CategoryID] {
			out = append(out, e)
		}
	}
	byCreated(out, func(e entity.Expense) time.Time { return e.CreatedAt }, func(e entity.Expense) uuid.UUID { return e.ID })
	return out, nil
}

func (r *ExpenseRepository) Update(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.expenses[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.CategoryID, cur.Amount, cur.Description = e.CategoryID, e.Amount, e.Description
	cur.UpdatedAt = r.s.now()
	r.s.expenses[e.ID] = cur
	*e = cur
	return nil
}

func (r *ExpenseRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

var (
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.BudgetRepository   = (*BudgetRepository)(nil)
	_ repository.ExpenseRepository  = (*ExpenseRepository)(nil)
)
