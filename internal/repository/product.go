package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sirajstore/commerce-api/internal/domain/product"
)

const productColumns = `id, product_type, name, description, category, price, stock, status, featured,
	images, scents, size, burn_time, wick_type, coverage_space, variants, bundle_items,
	created_at, updated_at`

const (
	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	getProductForUpdateSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	insertProductSQL = `INSERT INTO products (id, product_type, name, description, category, price, stock,
		status, featured, images, scents, size, burn_time, wick_type, coverage_space, variants, bundle_items)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at`

	updateProductSQL = `UPDATE products SET product_type = $2, name = $3, description = $4, category = $5,
		price = $6, stock = $7, status = $8, featured = $9, images = $10, scents = $11, size = $12,
		burn_time = $13, wick_type = $14, coverage_space = $15, variants = $16, bundle_items = $17,
		updated_at = now()
		WHERE id = $1 RETURNING updated_at`

	updateProductStockSQL = `UPDATE products SET stock = $2, variants = $3, updated_at = now() WHERE id = $1`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
// Variants and bundle items live in JSONB columns on the product row, so a
// row-locked read covers them too.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns the catalog page matching the filter plus the total match count.
func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]product.Product, int, error) {
	where, args := buildProductWhere(f)

	var total int
	countSQL := `SELECT count(*) FROM products` + where
	if err := queryEngine(ctx, r.pool).QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	listSQL := `SELECT ` + productColumns + ` FROM products` + where + orderClause(f.Sort)
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		listSQL += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, (page-1)*f.Limit)
	}

	rows, err := queryEngine(ctx, r.pool).Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing products: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, 0, fmt.Errorf("scanning products: %w", err)
	}
	return products, total, nil
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	return r.get(ctx, getProductByIDSQL, id)
}

// GetForUpdate returns a product with its row locked for the duration of the
// surrounding transaction.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*product.Product, error) {
	return r.get(ctx, getProductForUpdateSQL, id)
}

func (r *ProductRepository) get(ctx context.Context, sql, id string) (*product.Product, error) {
	rows, err := queryEngine(ctx, r.pool).Query(ctx, sql, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	return &p, nil
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	images, variants, bundleItems, err := marshalProductJSON(p)
	if err != nil {
		return err
	}

	err = queryEngine(ctx, r.pool).QueryRow(ctx, insertProductSQL,
		p.ID, p.Type, p.Name, p.Description, p.Category, p.Price, p.Stock, p.Status, p.Featured,
		images, p.Scents, p.Size, p.BurnTime, p.WickType, p.CoverageSpace, variants, bundleItems,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating product %q: %w", p.ID, err)
	}
	return nil
}

// Update overwrites every mutable field of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	images, variants, bundleItems, err := marshalProductJSON(p)
	if err != nil {
		return err
	}

	err = queryEngine(ctx, r.pool).QueryRow(ctx, updateProductSQL,
		p.ID, p.Type, p.Name, p.Description, p.Category, p.Price, p.Stock, p.Status, p.Featured,
		images, p.Scents, p.Size, p.BurnTime, p.WickType, p.CoverageSpace, variants, bundleItems,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.ErrNotFound
		}
		return fmt.Errorf("updating product %q: %w", p.ID, err)
	}
	return nil
}

// UpdateStock persists the main stock counter and the variant list.
func (r *ProductRepository) UpdateStock(ctx context.Context, p *product.Product) error {
	variants, err := json.Marshal(p.Variants)
	if err != nil {
		return fmt.Errorf("marshaling variants: %w", err)
	}

	tag, err := queryEngine(ctx, r.pool).Exec(ctx, updateProductStockSQL, p.ID, p.Stock, variants)
	if err != nil {
		return fmt.Errorf("updating stock for %q: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return fmt.Errorf("deleting product %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func buildProductWhere(f product.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ActiveOnly {
		conds = append(conds, "status = "+arg(string(product.StatusActive)))
	}
	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if f.Type != "" {
		conds = append(conds, "product_type = "+arg(string(f.Type)))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, "(name ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if f.Featured {
		conds = append(conds, "featured = TRUE")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(sort string) string {
	switch sort {
	case "price_asc":
		return " ORDER BY price ASC"
	case "price_desc":
		return " ORDER BY price DESC"
	default:
		return " ORDER BY created_at DESC"
	}
}

func marshalProductJSON(p *product.Product) (images, variants, bundleItems []byte, err error) {
	if p.Images == nil {
		p.Images = []string{}
	}
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, fmt.Errorf("marshaling images: %w", err)
	}
	if variants, err = json.Marshal(p.Variants); err != nil {
		return nil, nil, nil, fmt.Errorf("marshaling variants: %w", err)
	}
	if bundleItems, err = json.Marshal(p.BundleItems); err != nil {
		return nil, nil, nil, fmt.Errorf("marshaling bundle items: %w", err)
	}
	return images, variants, bundleItems, nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var (
		p           product.Product
		images      []byte
		variants    []byte
		bundleItems []byte
	)
	err := row.Scan(
		&p.ID, &p.Type, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock, &p.Status, &p.Featured,
		&images, &p.Scents, &p.Size, &p.BurnTime, &p.WickType, &p.CoverageSpace, &variants, &bundleItems,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return p, fmt.Errorf("unmarshaling images: %w", err)
	}
	if err := json.Unmarshal(variants, &p.Variants); err != nil {
		return p, fmt.Errorf("unmarshaling variants: %w", err)
	}
	if err := json.Unmarshal(bundleItems, &p.BundleItems); err != nil {
		return p, fmt.Errorf("unmarshaling bundle items: %w", err)
	}
	return p, nil
}
