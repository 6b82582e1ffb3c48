package order

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sirajstore/commerce-api/internal/domain/discount"
	"github.com/sirajstore/commerce-api/internal/domain/pricing"
	"github.com/sirajstore/commerce-api/internal/domain/product"
)

// ItemRequest is one cart line as submitted by the client. Prices are never
// taken from the client; only the reference and quantity are.
type ItemRequest struct {
	ProductID     string
	Quantity      int
	VariantName   string
	Customization []string
}

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	Customer      CustomerInfo
	Items         []ItemRequest
	PaymentMethod string
	DiscountCode  string

	// ShippingFeeHint is the city fee the storefront resolved for the
	// customer. Ignored when the subtotal qualifies for free shipping.
	ShippingFeeHint decimal.Decimal
}

// Service coordinates order placement and administration. PlaceOrder is the
// only code path that decrements stock.
type Service struct {
	products  product.Repository
	discounts discount.Repository
	orders    Repository
	tx        TxManager
}

// NewService creates an order Service with the required dependencies.
func NewService(
	products product.Repository,
	discounts discount.Repository,
	orders Repository,
	tx TxManager,
) *Service {
	return &Service{
		products:  products,
		discounts: discounts,
		orders:    orders,
		tx:        tx,
	}
}

// PlaceOrder validates the cart against live inventory, deducts stock,
// computes pricing, and persists the order inside one transaction.
// Any failure aborts the transaction: no stock change survives, no order is
// created, and the error carries the user-visible reason.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	if !req.Customer.Complete() {
		return nil, ErrMissingCustomerInfo
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, &InvalidQuantityError{ProductID: item.ProductID}
		}
	}

	var placed *Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		items := make([]LineItem, 0, len(req.Items))
		subtotal := decimal.Zero

		for _, item := range req.Items {
			// Row-locked load: concurrent placements against the same
			// product serialize here.
			p, err := s.products.GetForUpdate(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, product.ErrNotFound) {
					return &ProductNotFoundError{ProductID: item.ProductID}
				}
				return errors.Wrapf(err, "load product %s", item.ProductID)
			}
			if p.Status == product.StatusInactive {
				return &ProductNotFoundError{ProductID: item.ProductID}
			}

			unitPrice := p.Price
			if item.VariantName != "" {
				v := p.FindVariant(item.VariantName)
				if v == nil {
					return ErrVariantNotFound
				}
				if v.Stock < item.Quantity {
					return &InsufficientStockError{Name: p.Name}
				}
				v.Stock -= item.Quantity
				unitPrice = v.Price
			} else {
				if p.Stock < item.Quantity {
					return &InsufficientStockError{Name: p.Name}
				}
				p.Stock -= item.Quantity
			}

			if err := s.products.UpdateStock(ctx, p); err != nil {
				return errors.Wrapf(err, "update stock for %s", p.ID)
			}

			items = append(items, LineItem{
				ProductID:     p.ID,
				Name:          p.Name,
				Quantity:      item.Quantity,
				UnitPrice:     unitPrice,
				VariantName:   item.VariantName,
				Customization: item.Customization,
			})
			subtotal = subtotal.Add(pricing.LineTotal(unitPrice, item.Quantity))
		}

		shippingFee := pricing.Shipping(subtotal, req.ShippingFeeHint)

		// Unknown or inactive codes are ignored, not rejected.
		discountAmount := decimal.Zero
		appliedCode := ""
		if req.DiscountCode != "" {
			code := strings.ToUpper(strings.TrimSpace(req.DiscountCode))
			d, err := s.discounts.FindActiveByCode(ctx, code)
			switch {
			case err == nil:
				discountAmount = d.Amount(subtotal)
				appliedCode = d.Code
			case errors.Is(err, discount.ErrNotFound):
			default:
				return errors.Wrapf(err, "lookup discount %s", code)
			}
		}

		paymentMethod := req.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = DefaultPaymentMethod
		}

		o := &Order{
			ID:            uuid.New().String(),
			Customer:      req.Customer,
			Items:         items,
			Subtotal:      subtotal.Round(2),
			ShippingFee:   shippingFee,
			Discount:      discountAmount,
			DiscountCode:  appliedCode,
			Total:         pricing.Total(subtotal, shippingFee, discountAmount),
			PaymentMethod: paymentMethod,
			Status:        StatusPending,
		}
		if err := s.orders.Create(ctx, o); err != nil {
			return errors.Wrap(err, "create order")
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.orders.List(ctx)
}

// Get returns a single order by ID.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// SetStatus transitions an order to the given status. Only membership in the
// status enum is checked; setting the current status again is a no-op success.
func (s *Service) SetStatus(ctx context.Context, id string, status string) error {
	st := Status(status)
	if !st.Valid() {
		return &InvalidStatusError{Status: status}
	}
	return s.orders.UpdateStatus(ctx, id, st)
}
