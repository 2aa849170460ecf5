package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/internal/domain/repository"
)

const budgetColumns = `b.id, b.category_id, b.amount, b.description, b.plan, b.created_at, b.updated_at, b.deleted_at`

type BudgetRepository struct {
	pool *pgxpool.Pool
}

func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

func scanBudget(row pgx.Row) (entity.Budget, error) {
	var b entity.Budget
	err := row.Scan(&b.ID, &b.CategoryID, &b.Amount, &b.Description, &b.Plan,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt)
	return b, err
}

func (r *BudgetRepository) Create(ctx context.Context, b *entity.Budget) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (category_id, amount, description, plan)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, b.CategoryID, b.Amount, b.Description, b.Plan)
	return mapErr(row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt))
}

func (r *BudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	b, err := scanBudget(r.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets b WHERE b.id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *BudgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets b
		INNER JOIN categories c ON c.id = b.category_id
		WHERE c.user_id = $1
		ORDER BY b.created_at, b.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, b *entity.Budget) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE budgets
		SET category_id = $1, amount = $2, description = $3, plan = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, b.CategoryID, b.Amount, b.Description, b.Plan, b.ID)
	return mapErr(row.Scan(&b.UpdatedAt))
}

func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BudgetRepository = (*BudgetRepository)(nil)
