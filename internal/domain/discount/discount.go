package discount

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no matching active discount exists.
	ErrNotFound = errors.New("discount not found")
	// ErrDuplicateCode is returned when creating a discount whose code is taken.
	ErrDuplicateCode = errors.New("discount code already exists")
)

// Type enumerates the supported discount strategies.
type Type string

const (
	// TypePercentage reduces the subtotal by value percent.
	TypePercentage Type = "percentage"
	// TypeFixed reduces the subtotal by a fixed amount.
	TypeFixed Type = "fixed"
)

// Status controls whether a code is redeemable.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Scope narrows which cart lines a discount nominally applies to. The order
// calculation applies every discount to the full subtotal regardless of
// scope; the scope fields are stored and served for administration.
type Scope string

const (
	ScopeEntire     Scope = "entire"
	ScopeCategories Scope = "categories"
	ScopeProducts   Scope = "products"
)

// Discount is a redeemable promotional code. Codes are stored uppercase.
type Discount struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Type       Type            `json:"type"`
	Value      decimal.Decimal `json:"value"`
	AppliesTo  Scope           `json:"appliesTo"`
	Categories []string        `json:"categories"`
	Products   []string        `json:"products"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Amount returns the discount amount for the given subtotal, floored at zero
// and rounded to 2 decimal places.
func (d *Discount) Amount(subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.Type {
	case TypePercentage:
		amount = subtotal.Mul(d.Value).Div(decimal.NewFromInt(100))
	case TypeFixed:
		amount = d.Value
	default:
		return decimal.Zero
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount.Round(2)
}

// Repository defines persistence operations for discounts.
type Repository interface {
	// FindActiveByCode resolves an active discount by uppercased code.
	// Returns ErrNotFound when the code is unknown or inactive.
	FindActiveByCode(ctx context.Context, code string) (*Discount, error)

	List(ctx context.Context) ([]Discount, error)
	Create(ctx context.Context, d *Discount) error
	Update(ctx context.Context, d *Discount) error
	Delete(ctx context.Context, id string) error
}
