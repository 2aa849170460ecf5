package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	repo "github.com/oksasatya/budget-ledger-api/internal/domain/repository"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

type BudgetService struct {
	Budgets repo.BudgetRepository
	Guard   *Guard
	Logger  logrus.FieldLogger
}

type BudgetInput struct {
	CategoryID  *uuid.UUID
	Amount      *float64
	Description *string
	Plan        *entity.PlanType
}

// Create requires the category to belong to userID. Plan defaults to Monthly.
func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, b entity.Budget) (*entity.Budget, error) {
	if _, err := s.Guard.Category(ctx, userID, b.CategoryID); err != nil {
		return nil, err
	}
	if b.Plan == "" {
		b.Plan = entity.PlanMonthly
	}
	if err := s.Budgets.Create(ctx, &b); err != nil {
		return nil, mutationErr(err, msgCategoryNotFound)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "budget_id": b.ID}).Debug("budget created")
	return &b, nil
}

func (s *BudgetService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Budget, error) {
	return s.Guard.Budget(ctx, userID, id)
}

func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]entity.Budget, error) {
	out, err := s.Budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

// Update moving the budget to another category re-checks ownership of the target.
func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, in BudgetInput) (*entity.Budget, error) {
	b, err := s.Guard.Budget(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != b.CategoryID {
		if _, err := s.Guard.Category(ctx, userID, *in.CategoryID); err != nil {
			return nil, err
		}
		b.CategoryID = *in.CategoryID
	}
	if in.Amount != nil {
		b.Amount = *in.Amount
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Plan != nil {
		b.Plan = *in.Plan
	}
	if err := s.Budgets.Update(ctx, b); err != nil {
		return nil, mutationErr(err, msgBudgetNotFound)
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Guard.Budget(ctx, userID, id); err != nil {
		return err
	}
	return mutationErr(s.Budgets.Delete(ctx, id), msgBudgetNotFound)
}
