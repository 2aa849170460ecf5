package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetRepository lists through categories.user_id.
type BudgetRepository interface {
	Create(ctx context.Context, b *entity.Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Budget, error)
	Update(ctx context.Context, b *entity.Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Expense, error)
	Update(ctx context.Context, e *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}
