package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	repo "github.com/oksasatya/budget-ledger-api/internal/domain/repository"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

type ExpenseService struct {
	Expenses repo.ExpenseRepository
	Guard    *Guard
	Logger   logrus.FieldLogger
}

type ExpenseInput struct {
	CategoryID  *uuid.UUID
	Amount      *float64
	Description *string
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, e entity.Expense) (*entity.Expense, error) {
	if _, err := s.Guard.Category(ctx, userID, e.CategoryID); err != nil {
		return nil, err
	}
	if err := s.Expenses.Create(ctx, &e); err != nil {
		return nil, mutationErr(err, msgCategoryNotFound)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "expense_id": e.ID}).Debug("expense created")
	return &e, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Expense, error) {
	return s.Guard.Expense(ctx, userID, id)
}

func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID) ([]entity.Expense, error) {
	out, err := s.Expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, in ExpenseInput) (*entity.Expense, error) {
	e, err := s.Guard.Expense(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != e.CategoryID {
		if _, err := s.Guard.Category(ctx, userID, *in.CategoryID); err != nil {
			return nil, err
		}
		e.CategoryID = *in.CategoryID
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if err := s.Expenses.Update(ctx, e); err != nil {
		return nil, mutationErr(err, msgExpenseNotFound)
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Guard.Expense(ctx, userID, id); err != nil {
		return err
	}
	return mutationErr(s.Expenses.Delete(ctx, id), msgExpenseNotFound)
}
