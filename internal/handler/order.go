package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/sirajstore/commerce-api/internal/domain/order"
)

type orderItemRequest struct {
	ProductID     string   `json:"productId"`
	Quantity      int      `json:"quantity"`
	VariantName   string   `json:"variantName"`
	Customization []string `json:"customization"`
}

type placeOrderRequest struct {
	CustomerInfo  order.CustomerInfo `json:"customerInfo"`
	Items         []orderItemRequest `json:"items"`
	PaymentMethod string             `json:"paymentMethod"`
	DiscountCode  string             `json:"discountCode"`
	ShippingFee   float64            `json:"shippingFee"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

type orderLineResponse struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name"`
	Quantity      int      `json:"quantity"`
	Price         float64  `json:"price"`
	VariantName   string   `json:"variantName,omitempty"`
	Customization []string `json:"customization,omitempty"`
}

type orderResponse struct {
	ID            string              `json:"id"`
	CustomerInfo  order.CustomerInfo  `json:"customerInfo"`
	Items         []orderLineResponse `json:"items"`
	Subtotal      float64             `json:"subtotal"`
	ShippingFee   float64             `json:"shippingFee"`
	Discount      float64             `json:"discountAmount"`
	DiscountCode  string              `json:"discountCode,omitempty"`
	Total         float64             `json:"totalAmount"`
	PaymentMethod string              `json:"paymentMethod"`
	Status        order.Status        `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// PlaceOrder runs the order-creation transaction and responds with the new
// order ID.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]order.ItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.ItemRequest{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			VariantName:   item.VariantName,
			Customization: item.Customization,
		}
	}

	placed, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		Customer:        req.CustomerInfo,
		Items:           items,
		PaymentMethod:   req.PaymentMethod,
		DiscountCode:    req.DiscountCode,
		ShippingFeeHint: decimal.NewFromFloat(req.ShippingFee),
	})
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Order created successfully",
		"orderId": placed.ID,
	})
}

// ListOrders returns all orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		respondInternal(w, r, "Error fetching orders", err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	respondJSON(w, http.StatusOK, out)
}

// GetOrder returns a single order by ID.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondError(w, http.StatusNotFound, order.ErrNotFound.Error())
			return
		}
		respondInternal(w, r, "Error fetching order", err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(o))
}

// UpdateOrderStatus transitions an order to the requested status.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.orders.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		h.respondOrderError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}

// respondOrderError maps the order failure taxonomy onto HTTP status codes:
// invalid input 400, missing references 404, stock conflicts 409, anything
// else 500 with the details logged rather than echoed.
func (h *Handler) respondOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalidQty    *order.InvalidQuantityError
		invalidStatus *order.InvalidStatusError
		notFound      *order.ProductNotFoundError
		noStock       *order.InsufficientStockError
	)
	switch {
	case errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrMissingCustomerInfo),
		errors.As(err, &invalidQty),
		errors.As(err, &invalidStatus):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, order.ErrVariantNotFound),
		errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &noStock):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondInternal(w, r, "Server error creating order", err)
	}
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]orderLineResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderLineResponse{
			ProductID:     item.ProductID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			Price:         item.UnitPrice.InexactFloat64(),
			VariantName:   item.VariantName,
			Customization: item.Customization,
		}
	}
	return orderResponse{
		ID:            o.ID,
		CustomerInfo:  o.Customer,
		Items:         items,
		Subtotal:      o.Subtotal.InexactFloat64(),
		ShippingFee:   o.ShippingFee.InexactFloat64(),
		Discount:      o.Discount.InexactFloat64(),
		DiscountCode:  o.DiscountCode,
		Total:         o.Total.InexactFloat64(),
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}
