package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

type ledgerFixture struct {
	alice, bob uuid.UUID
	category   *entity.Category
	budget     *entity.Budget
	expense    *entity.Expense
}

// newLedger gives bob one category holding one budget and one expense.
func newLedger(t *testing.T, e *env) ledgerFixture {
	t.Helper()
	ctx := context.Background()
	alice := e.signup(t, "alice@x.com", "Alice", "secret1").ID
	bob := e.signup(t, "bob@x.com", "Bob", "secret1").ID

	c, err := e.svc.Categories.Create(ctx, bob, "Rent", entity.CategoryEssential)
	require.NoError(t, err)
	b, err := e.svc.Budgets.Create(ctx, bob, entity.Budget{CategoryID: c.ID, Amount: 900})
	require.NoError(t, err)
	x, err := e.svc.Expenses.Create(ctx, bob, entity.Expense{CategoryID: c.ID, Amount: 850, Description: "march"})
	require.NoError(t, err)
	return ledgerFixture{alice: alice, bob: bob, category: c, budget: b, expense: x}
}

func TestOwnershipForeignResourcesAreForbidden(t *testing.T) {
	e := newEnv(t)
	f := newLedger(t, e)
	ctx := context.Background()

	checks := map[string]func(id uuid.UUID) error{
		"get category": func(id uuid.UUID) error {
			_, err := e.svc.Categories.Get(ctx, f.alice, id)
			return err
		},
		"update category": func(id uuid.UUID) error {
			_, err := e.svc.Categories.Update(ctx, f.alice, id, CategoryInput{Name: ptr("mine")})
			return err
		},
		"delete category": func(id uuid.UUID) error { return e.svc.Categories.Delete(ctx, f.alice, id) },
	}
	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			assert.True(t, apperror.Is(check(f.category.ID), apperror.KindForbidden))
			assert.True(t, apperror.Is(check(uuid.New()), apperror.KindNotFound))
		})
	}

	budgetChecks := map[string]func(id uuid.UUID) error{
		"get budget": func(id uuid.UUID) error {
			_, err := e.svc.Budgets.Get(ctx, f.alice, id)
			return err
		},
		"update budget": func(id uuid.UUID) error {
			_, err := e.svc.Budgets.Update(ctx, f.alice, id, BudgetInput{Amount: ptr(1.0)})
			return err
		},
		"delete budget": func(id uuid.UUID) error { return e.svc.Budgets.Delete(ctx, f.alice, id) },
	}
	for name, check := range budgetChecks {
		t.Run(name, func(t *testing.T) {
			assert.True(t, apperror.Is(check(f.budget.ID), apperror.KindForbidden))
			assert.True(t, apperror.Is(check(uuid.New()), apperror.KindNotFound))
		})
	}

	expenseChecks := map[string]func(id uuid.UUID) error{
		"get expense": func(id uuid.UUID) error {
			_, err := e.svc.Expenses.Get(ctx, f.alice, id)
			return err
		},
		"update expense": func(id uuid.UUID) error {
			_, err := e.svc.Expenses.Update(ctx, f.alice, id, ExpenseInput{Amount: ptr(1.0)})
			return err
		},
		"delete expense": func(id uuid.UUID) error { return e.svc.Expenses.Delete(ctx, f.alice, id) },
	}
	for name, check := range expenseChecks {
		t.Run(name, func(t *testing.T) {
			assert.True(t, apperror.Is(check(f.expense.ID), apperror.KindForbidden))
			assert.True(t, apperror.Is(check(uuid.New()), apperror.KindNotFound))
		})
	}

	// Nothing alice attempted changed bob's data.
	got, err := e.svc.Budgets.Get(ctx, f.bob, f.budget.ID)
	require.NoError(t, err)
	assert.Equal(t, 900.0, got.Amount)
	cat, err := e.svc.Categories.Get(ctx, f.bob, f.category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rent", cat.Name)
}

func TestCreateInForeignCategoryIsForbidden(t *testing.T) {
	e := newEnv(t)
	f := newLedger(t, e)
	ctx := context.Background()

	_, err := e.svc.Budgets.Create(ctx, f.alice, entity.Budget{CategoryID: f.category.ID, Amount: 1})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	_, err = e.svc.Expenses.Create(ctx, f.alice, entity.Expense{CategoryID: f.category.ID, Amount: 1})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	_, err = e.svc.Budgets.Create(ctx, f.alice, entity.Budget{CategoryID: uuid.New(), Amount: 1})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestMoveIntoForeignCategoryIsForbidden(t *testing.T) {
	e := newEnv(t)
	f := newLedger(t, e)
	ctx := context.Background()
	mine, err := e.svc.Categories.Create(ctx, f.alice, "Food", "")
	require.NoError(t, err)
	b, err := e.svc.Budgets.Create(ctx, f.alice, entity.Budget{CategoryID: mine.ID, Amount: 100})
	require.NoError(t, err)

	_, err = e.svc.Budgets.Update(ctx, f.alice, b.ID, BudgetInput{CategoryID: &f.category.ID})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}

func TestOwnerCRUD(t *testing.T) {
	e := newEnv(t)
	f := newLedger(t, e)
	ctx := context.Background()

	assert.Equal(t, entity.PlanMonthly, f.budget.Plan, "plan defaults to Monthly")

	c, err := e.svc.Categories.Create(ctx, f.bob, "Games", "")
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryNonEssential, c.CatType, "type defaults to NonEssential")

	updated, err := e.svc.Budgets.Update(ctx, f.bob, f.budget.ID, BudgetInput{Description: ptr("rent"), Plan: ptr(entity.PlanWeekly)})
	require.NoError(t, err)
	assert.Equal(t, 900.0, updated.Amount, "unset fields are kept")
	assert.Equal(t, "rent", updated.Description)
	assert.Equal(t, entity.PlanWeekly, updated.Plan)

	moved, err := e.svc.Expenses.Update(ctx, f.bob, f.expense.ID, ExpenseInput{CategoryID: &c.ID})
	require.NoError(t, err)
	assert.Equal(t, c.ID, moved.CategoryID)
	assert.Equal(t, "march", moved.Description)

	budgets, err := e.svc.Budgets.List(ctx, f.bob)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)
	none, err := e.svc.Budgets.List(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, e.svc.Expenses.Delete(ctx, f.bob, f.expense.ID))
	_, err = e.svc.Expenses.Get(ctx, f.bob, f.expense.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, e.svc.Categories.Delete(ctx, f.bob, f.category.ID))
	_, err = e.svc.Budgets.Get(ctx, f.bob, f.budget.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
