// Package shipping holds the per-city flat shipping fee table.
package shipping

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no rate exists for a city or ID.
	ErrNotFound = errors.New("shipping rate not found")
	// ErrDuplicateCity is returned when creating a rate for a city that
	// already has one.
	ErrDuplicateCity = errors.New("shipping rate for this city already exists")
)

// Rate maps a city to its flat shipping fee.
type Rate struct {
	ID        string          `json:"id"`
	City      string          `json:"city"`
	Fee       decimal.Decimal `json:"shippingFee"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Repository defines persistence operations for shipping rates.
type Repository interface {
	List(ctx context.Context) ([]Rate, error)
	GetByCity(ctx context.Context, city string) (*Rate, error)
	Create(ctx context.Context, r *Rate) error
	Update(ctx context.Context, r *Rate) error
	Delete(ctx context.Context, id string) error
}
