// Package memory keeps every repository in process memory. It backs tests and
// STORAGE=memory; data is lost on restart.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
)

type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	users      map[uuid.UUID]entity.User
	sessions   map[uuid.UUID]entity.Session
	categories map[uuid.UUID]entity.Category
	budgets    map[uuid.UUID]entity.Budget
	expenses   map[uuid.UUID]entity.Expense
}

// NewStore uses now for timestamps and for session expiry checks.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:        now,
		users:      map[uuid.UUID]entity.User{},
		sessions:   map[uuid.UUID]entity.Session{},
		categories: map[uuid.UUID]entity.Category{},
		budgets:    map[uuid.UUID]entity.Budget{},
		expenses:   map[uuid.UUID]entity.Expense{},
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s} }
func (s *Store) Sessions() *SessionRepository { return &SessionRepository{s} }
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s} }
func (s *Store) Budgets() *BudgetRepository { return &BudgetRepository{s} }
func (s *Store) Expenses() *ExpenseRepository { return &ExpenseRepository{s} }

// ownedCategories must be called with s.mu held.
func (s *Store) ownedCategories(userID uuid.UUID) map[uuid.UUID]bool {
	owned := map[uuid.UUID]bool{}
	for id, c := range s.categories {
		if c.UserID == userID {
			owned[id] = true
		}
	}
	return owned
}

func byCreated[T any](items []T, created func(T) time.Time, id func(T) uuid.UUID) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if ci.Equal(cj) {
			return id(items[i]).String() < id(items[j]).String()
		}
		return ci.Before(cj)
	})
}
