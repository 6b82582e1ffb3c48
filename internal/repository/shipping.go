package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sirajstore/commerce-api/internal/domain/shipping"
)

const (
	listRatesSQL = `SELECT id, city, fee, created_at FROM shipping_rates ORDER BY city ASC`

	getRateByCitySQL = `SELECT id, city, fee, created_at FROM shipping_rates WHERE city = $1`

	insertRateSQL = `INSERT INTO shipping_rates (id, city, fee) VALUES ($1, $2, $3) RETURNING created_at`

	updateRateSQL = `UPDATE shipping_rates SET city = $2, fee = $3 WHERE id = $1`

	deleteRateSQL = `DELETE FROM shipping_rates WHERE id = $1`
)

var _ shipping.Repository = (*ShippingRepository)(nil)

// ShippingRepository implements shipping.Repository backed by PostgreSQL.
type ShippingRepository struct {
	pool *pgxpool.Pool
}

// NewShippingRepository returns a ShippingRepository that uses the given pool.
func NewShippingRepository(pool *pgxpool.Pool) *ShippingRepository {
	return &ShippingRepository{pool: pool}
}

// List returns all shipping rates ordered by city.
func (r *ShippingRepository) List(ctx context.Context) ([]shipping.Rate, error) {
	rows, err := queryEngine(ctx, r.pool).Query(ctx, listRatesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing shipping rates: %w", err)
	}
	return pgx.CollectRows(rows, scanRate)
}

// GetByCity returns the shipping rate for a city.
func (r *ShippingRepository) GetByCity(ctx context.Context, city string) (*shipping.Rate, error) {
	rows, err := queryEngine(ctx, r.pool).Query(ctx, getRateByCitySQL, city)
	if err != nil {
		return nil, fmt.Errorf("getting shipping rate for %q: %w", city, err)
	}

	rate, err := pgx.CollectExactlyOneRow(rows, scanRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shipping.ErrNotFound
		}
		return nil, fmt.Errorf("getting shipping rate for %q: %w", city, err)
	}
	return &rate, nil
}

// Create persists a new shipping rate. Returns shipping.ErrDuplicateCity when
// the city already has a rate.
func (r *ShippingRepository) Create(ctx context.Context, rate *shipping.Rate) error {
	err := queryEngine(ctx, r.pool).QueryRow(ctx, insertRateSQL, rate.ID, rate.City, rate.Fee).
		Scan(&rate.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return shipping.ErrDuplicateCity
		}
		return fmt.Errorf("creating shipping rate for %q: %w", rate.City, err)
	}
	return nil
}

// Update overwrites an existing shipping rate.
func (r *ShippingRepository) Update(ctx context.Context, rate *shipping.Rate) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx, updateRateSQL, rate.ID, rate.City, rate.Fee)
	if err != nil {
		if isUniqueViolation(err) {
			return shipping.ErrDuplicateCity
		}
		return fmt.Errorf("updating shipping rate %q: %w", rate.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return shipping.ErrNotFound
	}
	return nil
}

// Delete removes a shipping rate.
func (r *ShippingRepository) Delete(ctx context.Context, id string) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx, deleteRateSQL, id)
	if err != nil {
		return fmt.Errorf("deleting shipping rate %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return shipping.ErrNotFound
	}
	return nil
}

func scanRate(row pgx.CollectableRow) (shipping.Rate, error) {
	var rate shipping.Rate
	err := row.Scan(&rate.ID, &rate.City, &rate.Fee, &rate.CreatedAt)
	return rate, err
}
