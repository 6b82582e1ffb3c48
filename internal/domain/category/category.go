// Package category holds the catalog navigation categories.
package category

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateName = errors.New("category already exists")
)

// Category is one storefront navigation entry, ordered by SortOrder.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository defines persistence operations for categories.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}
