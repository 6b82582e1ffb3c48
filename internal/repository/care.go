package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sirajstore/commerce-api/internal/domain/care"
)

const (
	listCareSQL = `SELECT id, category, title, content, created_at FROM care_instructions ORDER BY category ASC`

	insertCareSQL = `INSERT INTO care_instructions (id, category, title, content)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	updateCareSQL = `UPDATE care_instructions SET category = $2, title = $3, content = $4 WHERE id = $1`

	deleteCareSQL = `DELETE FROM care_instructions WHERE id = $1`
)

var _ care.Repository = (*CareRepository)(nil)

// CareRepository implements care.Repository backed by PostgreSQL.
type CareRepository struct {
	pool *pgxpool.Pool
}

// NewCareRepository returns a CareRepository that uses the given pool.
func NewCareRepository(pool *pgxpool.Pool) *CareRepository {
	return &CareRepository{pool: pool}
}

// List returns all care instructions ordered by category.
func (r *CareRepository) List(ctx context.Context) ([]care.Instruction, error) {
	rows, err := queryEngine(ctx, r.pool).Query(ctx, listCareSQL)
	if err != nil {
		return nil, fmt.Errorf("listing care instructions: %w", err)
	}
	return pgx.CollectRows(rows, scanCare)
}

// Create persists a new care instruction. Returns care.ErrDuplicateCategory
// when the category already has one.
func (r *CareRepository) Create(ctx context.Context, i *care.Instruction) error {
	err := queryEngine(ctx, r.pool).QueryRow(ctx, insertCareSQL, i.ID, i.Category, i.Title, i.Content).
		Scan(&i.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return care.ErrDuplicateCategory
		}
		return fmt.Errorf("creating care instruction for %q: %w", i.Category, err)
	}
	return nil
}

// Update overwrites an existing care instruction.
func (r *CareRepository) Update(ctx context.Context, i *care.Instruction) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx, updateCareSQL, i.ID, i.Category, i.Title, i.Content)
	if err != nil {
		if isUniqueViolation(err) {
			return care.ErrDuplicateCategory
		}
		return fmt.Errorf("updating care instruction %q: %w", i.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return care.ErrNotFound
	}
	return nil
}

// Delete removes a care instruction.
func (r *CareRepository) Delete(ctx context.Context, id string) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx, deleteCareSQL, id)
	if err != nil {
		return fmt.Errorf("deleting care instruction %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return care.ErrNotFound
	}
	return nil
}

func scanCare(row pgx.CollectableRow) (care.Instruction, error) {
	var i care.Instruction
	err := row.Scan(&i.ID, &i.Category, &i.Title, &i.Content, &i.CreatedAt)
	return i, err
}
