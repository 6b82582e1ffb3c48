package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sirajstore/commerce-api/internal/domain/discount"
)

const discountColumns = `id, code, discount_type, value, applies_to, categories, products, status, created_at`

const (
	getActiveDiscountSQL = `SELECT ` + discountColumns + ` FROM discounts
		WHERE UPPER(code) = UPPER($1) AND status = 'active'`

	listDiscountsSQL = `SELECT ` + discountColumns + ` FROM discounts ORDER BY created_at DESC`

	insertDiscountSQL = `INSERT INTO discounts (id, code, discount_type, value, applies_to, categories, products, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	updateDiscountSQL = `UPDATE discounts SET code = $2, discount_type = $3, value = $4, applies_to = $5,
		categories = $6, products = $7, status = $8
		WHERE id = $1`

	deleteDiscountSQL = `DELETE FROM discounts WHERE id = $1`

	upsertDiscountSQL = `INSERT INTO discounts (id, code, discount_type, value, applies_to, categories, products, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO UPDATE SET
			discount_type = EXCLUDED.discount_type,
			value = EXCLUDED.value,
			applies_to = EXCLUDED.applies_to,
			status = EXCLUDED.status`
)

var _ discount.Repository = (*DiscountRepository)(nil)

// DiscountRepository implements discount.Repository backed by PostgreSQL.
type DiscountRepository struct {
	pool *pgxpool.Pool
}

// NewDiscountRepository returns a DiscountRepository that uses the given pool.
func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// FindActiveByCode looks up an active discount by its code (case-insensitive).
// Returns discount.ErrNotFound when no matching active discount exists.
func (r *DiscountRepository) FindActiveByCode(ctx context.Context, code string) (*discount.Discount, error) {
	rows, err := queryEngine(ctx, r.pool).Query(ctx, getActiveDiscountSQL, code)
	if err != nil {
		return nil, fmt.Errorf("finding discount by code %q: %w", code, err)
	}

	d, err := pgx.CollectExactlyOneRow(rows, scanDiscount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, discount.ErrNotFound
		}
		return nil, fmt.Errorf("finding discount by code %q: %w", code, err)
	}
	return &d, nil
}

// List returns all discounts, newest first.
func (r *DiscountRepository) List(ctx context.Context) ([]discount.Discount, error) {
	rows, err := queryEngine(ctx, r.pool).Query(ctx, listDiscountsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing discounts: %w", err)
	}
	return pgx.CollectRows(rows, scanDiscount)
}

// Create persists a new discount. Returns discount.ErrDuplicateCode when the
// code is already taken.
func (r *DiscountRepository) Create(ctx context.Context, d *discount.Discount) error {
	categories, products, err := marshalDiscountJSON(d)
	if err != nil {
		return err
	}

	err = queryEngine(ctx, r.pool).QueryRow(ctx, insertDiscountSQL,
		d.ID, d.Code, d.Type, d.Value, d.AppliesTo, categories, products, d.Status,
	).Scan(&d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return discount.ErrDuplicateCode
		}
		return fmt.Errorf("creating discount %q: %w", d.Code, err)
	}
	return nil
}

// Update overwrites an existing discount.
func (r *DiscountRepository) Update(ctx context.Context, d *discount.Discount) error {
	categories, products, err := marshalDiscountJSON(d)
	if err != nil {
		return err
	}

	tag, err := queryEngine(ctx, r.pool).Exec(ctx, updateDiscountSQL,
		d.ID, d.Code, d.Type, d.Value, d.AppliesTo, categories, products, d.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return discount.ErrDuplicateCode
		}
		return fmt.Errorf("updating discount %q: %w", d.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return discount.ErrNotFound
	}
	return nil
}

// Delete removes a discount.
func (r *DiscountRepository) Delete(ctx context.Context, id string) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx, deleteDiscountSQL, id)
	if err != nil {
		return fmt.Errorf("deleting discount %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return discount.ErrNotFound
	}
	return nil
}

// Upsert inserts a discount or refreshes the rule of an existing code.
// Used by the bulk promo-code ingest tool.
func (r *DiscountRepository) Upsert(ctx context.Context, d *discount.Discount) error {
	categories, products, err := marshalDiscountJSON(d)
	if err != nil {
		return err
	}

	_, err = queryEngine(ctx, r.pool).Exec(ctx, upsertDiscountSQL,
		d.ID, d.Code, d.Type, d.Value, d.AppliesTo, categories, products, d.Status,
	)
	if err != nil {
		return fmt.Errorf("upserting discount %q: %w", d.Code, err)
	}
	return nil
}

func marshalDiscountJSON(d *discount.Discount) (categories, products []byte, err error) {
	if d.Categories == nil {
		d.Categories = []string{}
	}
	if d.Products == nil {
		d.Products = []string{}
	}
	if categories, err = json.Marshal(d.Categories); err != nil {
		return nil, nil, fmt.Errorf("marshaling discount categories: %w", err)
	}
	if products, err = json.Marshal(d.Products); err != nil {
		return nil, nil, fmt.Errorf("marshaling discount products: %w", err)
	}
	return categories, products, nil
}

func scanDiscount(row pgx.CollectableRow) (discount.Discount, error) {
	var (
		d          discount.Discount
		categories []byte
		products   []byte
	)
	err := row.Scan(
		&d.ID, &d.Code, &d.Type, &d.Value, &d.AppliesTo, &categories, &products, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal(categories, &d.Categories); err != nil {
		return d, fmt.Errorf("unmarshaling discount categories: %w", err)
	}
	if err := json.Unmarshal(products, &d.Products); err != nil {
		return d, fmt.Errorf("unmarshaling discount products: %w", err)
	}
	return d, nil
}
