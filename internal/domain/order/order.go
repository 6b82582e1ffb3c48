package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod is recorded when the request names no payment method.
// Payment is a label only; nothing is charged.
const DefaultPaymentMethod = "Cash on Delivery"

// Status is the fulfillment state of an order. Any status may be set from any
// other; only membership in the enum is enforced.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Valid reports whether s is a member of the status enum.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Sentinel errors surfaced by order operations. The messages are the
// user-visible failure reasons.
var (
	ErrNotFound            = errors.New("Order not found")
	ErrNoItems             = errors.New("No order items provided")
	ErrMissingCustomerInfo = errors.New("Missing required customer information")
	ErrVariantNotFound     = errors.New("Variant not found")
)

// ProductNotFoundError indicates a cart item references a product that does
// not exist or cannot be ordered.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product not found: %s", e.ProductID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("Invalid quantity for product %s", e.ProductID)
}

// InsufficientStockError indicates the requested quantity exceeds the live
// stock of a product or variant.
type InsufficientStockError struct {
	Name string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.Name)
}

// InvalidStatusError indicates a status update named a value outside the enum.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("Invalid order status: %s", e.Status)
}

// CustomerInfo identifies the order recipient. All fields except Notes are
// required before an order can be committed.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes,omitempty"`
}

// Complete reports whether every required field is populated.
func (c CustomerInfo) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Phone != "" && c.Address != "" && c.City != ""
}

// LineItem is a frozen snapshot of one cart line at purchase time. The unit
// price is resolved by the server and never changes after the order commits,
// even if the underlying product is repriced.
type LineItem struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"price"`
	VariantName   string          `json:"variantName,omitempty"`
	Customization []string        `json:"customization,omitempty"`
}

// Order is a committed customer order. Once created it is mutated only through
// status transitions.
type Order struct {
	ID            string          `json:"id"`
	Customer      CustomerInfo    `json:"customerInfo"`
	Items         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingFee   decimal.Decimal `json:"shippingFee"`
	Discount      decimal.Decimal `json:"discountAmount"`
	DiscountCode  string          `json:"discountCode,omitempty"`
	Total         decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)

	// UpdateStatus overwrites the status of an existing order.
	// Returns ErrNotFound when the order does not exist.
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// TxManager runs a function inside one atomic transaction scope. Every store
// operation invoked within fn joins the same transaction; returning an error
// rolls the whole scope back.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
