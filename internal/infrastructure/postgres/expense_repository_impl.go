package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/internal/domain/repository"
)

const expenseColumns = `e.id, e.category_id, e.amount, e.description, e.created_at, e.updated_at, e.deleted_at`

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func scanExpense(row pgx.Row) (entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(&e.ID, &e.CategoryID, &e.Amount, &e.Description, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt)
	return e, err
}

func (r *ExpenseRepository) Create(ctx context.Context, e *entity.Expense) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (category_id, amount, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, e.CategoryID, e.Amount, e.Description)
	return mapErr(row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	e, err := scanExpense(r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses e WHERE e.id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		INNER JOIN categories c ON c.id = e.category_id
		WHERE c.user_id = $1
		ORDER BY e.created_at, e.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, e *entity.Expense) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET category_id = $1, amount = $2, description = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, e.CategoryID, e.Amount, e.Description, e.ID)
	return mapErr(row.Scan(&e.UpdatedAt))
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ExpenseRepository = (*ExpenseRepository)(nil)
