package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/internal/domain/repository"
)

const categoryColumns = `id, name, cat_type, user_id, created_at, updated_at`

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.CatType, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, cat_type, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Name, c.CatType, c.UserID)
	return mapErr(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $1, cat_type = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, c.Name, c.CatType, c.ID)
	return mapErr(row.Scan(&c.UpdatedAt))
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
