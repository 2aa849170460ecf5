package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	repo "github.com/oksasatya/budget-ledger-api/internal/domain/repository"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

const (
	msgCategoryNotFound = "category was not found"
	msgBudgetNotFound   = "budget was not found"
	msgExpenseNotFound  = "expense was not found"
)

// Guard authorizes reads and mutations of owned resources. Existence is checked
// first, so a missing id is NotFound and someone else's id is Forbidden.
type Guard struct {
	Categories repo.CategoryRepository
	Budgets    repo.BudgetRepository
	Expenses   repo.ExpenseRepository
}

// Category is owned directly through user_id.
func (g *Guard) Category(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	c, err := g.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgCategoryNotFound)
	}
	if c.UserID != userID {
		return nil, apperror.Forbidden()
	}
	return c, nil
}

// Budget ownership is membership in the user's own budget listing.
func (g *Guard) Budget(ctx context.Context, userID, id uuid.UUID) (*entity.Budget, error) {
	b, err := g.Budgets.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBudgetNotFound)
	}
	owned, err := g.Budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !contains(owned, id, func(b entity.Budget) uuid.UUID { return b.ID }) {
		return nil, apperror.Forbidden()
	}
	return b, nil
}

// Expense ownership is membership in the user's own expense listing.
func (g *Guard) Expense(ctx context.Context, userID, id uuid.UUID) (*entity.Expense, error) {
	e, err := g.Expenses.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgExpenseNotFound)
	}
	owned, err := g.Expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !contains(owned, id, func(e entity.Expense) uuid.UUID { return e.ID }) {
		return nil, apperror.Forbidden()
	}
	return e, nil
}

func contains[T any](items []T, id uuid.UUID, key func(T) uuid.UUID) bool {
	for _, it := range items {
		if key(it) == id {
			return true
		}
	}
	return false
}

func lookupErr(err error, notFound string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound(notFound)
	}
	return apperror.Internal(err)
}

// mutationErr maps a failed write on a row that passed the guard.
func mutationErr(err error, notFound string) error {
	if err == nil {
		return nil
	}
	return lookupErr(err, notFound)
}
