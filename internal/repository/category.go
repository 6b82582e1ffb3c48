package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sirajstore/commerce-api/internal/domain/category"
)

const (
	listCategoriesSQL = `SELECT id, name, sort_order, created_at FROM categories ORDER BY sort_order ASC, name ASC`

	insertCategorySQL = `INSERT INTO categories (id, name, sort_order) VALUES ($1, $2, $3) RETURNING created_at`

	updateCategorySQL = `UPDATE categories SET name = $2, sort_order = $3 WHERE id = $1`

	deleteCategorySQL = `DELETE FROM categories WHERE id = $1`
)

var _ category.Repository = (*CategoryRepository)(nil)

// CategoryRepository implements category.Repository backed by PostgreSQL.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a CategoryRepository that uses the given pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// List returns all categories in display order.
func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	rows, err := queryEngine(ctx, r.pool).Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return pgx.CollectRows(rows, scanCategory)
}

// Create persists a new category. Returns category.ErrDuplicateName when the
// name is already taken.
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	err := queryEngine(ctx, r.pool).QueryRow(ctx, insertCategorySQL, c.ID, c.Name, c.SortOrder).
		Scan(&c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrDuplicateName
		}
		return fmt.Errorf("creating category %q: %w", c.Name, err)
	}
	return nil
}

// Update overwrites an existing category.
func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx, updateCategorySQL, c.ID, c.Name, c.SortOrder)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrDuplicateName
		}
		return fmt.Errorf("updating category %q: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx, deleteCategorySQL, id)
	if err != nil {
		return fmt.Errorf("deleting category %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.CollectableRow) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.SortOrder, &c.CreatedAt)
	return c, err
}
