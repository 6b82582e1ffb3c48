package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist or is not
// visible to the caller.
var ErrNotFound = errors.New("product not found")

// Type distinguishes standalone products from customizable bundles.
type Type string

const (
	TypeSingle Type = "Single"
	TypeBundle Type = "Bundle"
)

// Status controls catalog visibility. Inactive products are excluded from
// public reads and cannot be ordered.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Product represents a catalog item available for purchase. A product carries
// exactly one canonical name and one canonical base price regardless of type.
type Product struct {
	ID          string          `json:"id"`
	Type        Type            `json:"productType"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      Status          `json:"status"`
	Featured    bool            `json:"featured"`
	Images      []string        `json:"images"`

	// Single-product detail fields.
	Scents        string `json:"scents,omitempty"`
	Size          string `json:"size,omitempty"`
	BurnTime      string `json:"burnTime,omitempty"`
	WickType      string `json:"wickType,omitempty"`
	CoverageSpace string `json:"coverageSpace,omitempty"`

	// Variants is present only for products sold in multiple configurations.
	// Each variant tracks its own price and stock.
	Variants []Variant `json:"variants,omitempty"`

	// BundleItems describes the customizable components of a bundle. Bundle
	// components have no stock of their own; stock lives on the parent record.
	BundleItems []BundleItem `json:"bundleItems,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Variant is a purchasable configuration of a product (size, scent, color)
// with its own price and stock.
type Variant struct {
	Name  string          `json:"variantName"`
	Type  string          `json:"variantType"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	SKU   string          `json:"sku,omitempty"`
}

// BundleItem is one customizable component of a bundle.
type BundleItem struct {
	Name          string   `json:"name"`
	Size          string   `json:"size"`
	AllowedScents []string `json:"allowedScents"`
}

// FindVariant returns the variant with the given name, matched exactly,
// or nil when no such variant exists.
func (p *Product) FindVariant(name string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i]
		}
	}
	return nil
}

// Filter narrows a catalog listing.
type Filter struct {
	Category string
	Type     Type
	Search   string
	Featured bool

	// ActiveOnly excludes Inactive products. Public reads always set it.
	ActiveOnly bool

	Page  int
	Limit int
	Sort  string // "price_asc", "price_desc", "newest" (default)
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, int, error)
	GetByID(ctx context.Context, id string) (*Product, error)

	// GetForUpdate loads a product with a row lock so concurrent order
	// placements against the same product serialize. Must run inside a
	// transaction scope.
	GetForUpdate(ctx context.Context, id string) (*Product, error)

	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error

	// UpdateStock persists the product's main stock and variant stocks.
	// Called by the order coordinator inside the placement transaction.
	UpdateStock(ctx context.Context, p *Product) error

	Delete(ctx context.Context, id string) error
}
