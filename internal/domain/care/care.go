// Package care holds the per-category product care instructions.
package care

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound          = errors.New("care instruction not found")
	ErrDuplicateCategory = errors.New("care instruction for this category already exists")
)

// Instruction is the care guidance shown for one product category.
type Instruction struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"careTitle"`
	Content   string    `json:"careContent"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository defines persistence operations for care instructions.
type Repository interface {
	List(ctx context.Context) ([]Instruction, error)
	Create(ctx context.Context, i *Instruction) error
	Update(ctx context.Context, i *Instruction) error
	Delete(ctx context.Context, id string) error
}
