// Package handler exposes the storefront and admin REST API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/sirajstore/commerce-api/internal/domain/care"
	"github.com/sirajstore/commerce-api/internal/domain/category"
	"github.com/sirajstore/commerce-api/internal/domain/discount"
	"github.com/sirajstore/commerce-api/internal/domain/order"
	"github.com/sirajstore/commerce-api/internal/domain/product"
	"github.com/sirajstore/commerce-api/internal/domain/shipping"
	"github.com/sirajstore/commerce-api/internal/upload"
)

// Handler holds the API dependencies and owns the route table.
type Handler struct {
	products   product.Repository
	orders     *order.Service
	discounts  discount.Repository
	shipping   shipping.Repository
	categories category.Repository
	care       care.Repository
	uploader   upload.Uploader
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(
	products product.Repository,
	orders *order.Service,
	discounts discount.Repository,
	shippingRates shipping.Repository,
	categories category.Repository,
	careInstructions care.Repository,
	uploader upload.Uploader,
) *Handler {
	return &Handler{
		products:   products,
		orders:     orders,
		discounts:  discounts,
		shipping:   shippingRates,
		categories: categories,
		care:       careInstructions,
		uploader:   uploader,
	}
}

// Routes returns the API route table, mounted under /api by the server.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.PlaceOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Put("/{id}/status", h.UpdateOrderStatus)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/bundles", func(r chi.Router) {
		r.Get("/", h.ListBundles)
		r.Post("/", h.CreateBundle)
		r.Get("/{id}", h.GetBundle)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/discounts", func(r chi.Router) {
		r.Get("/", h.ListDiscounts)
		r.Post("/", h.CreateDiscount)
		r.Post("/validate", h.ValidateDiscount)
		r.Put("/{id}", h.UpdateDiscount)
		r.Delete("/{id}", h.DeleteDiscount)
	})

	r.Route("/shipping-rates", func(r chi.Router) {
		r.Get("/", h.ListShippingRates)
		r.Post("/", h.CreateShippingRate)
		r.Get("/city/{city}", h.GetShippingRateByCity)
		r.Put("/{id}", h.UpdateShippingRate)
		r.Delete("/{id}", h.DeleteShippingRate)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Put("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})

	r.Route("/care", func(r chi.Router) {
		r.Get("/", h.ListCareInstructions)
		r.Post("/", h.CreateCareInstruction)
		r.Put("/{id}", h.UpdateCareInstruction)
		r.Delete("/{id}", h.DeleteCareInstruction)
	})

	r.Post("/uploads", h.UploadImages)

	return r
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes the API error shape: {"message": "..."}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondInternal logs err and writes a generic 500 so storage details never
// leak to clients.
func respondInternal(w http.ResponseWriter, r *http.Request, message string, err error) {
	zctx.From(r.Context()).Error(message, zap.Error(err))
	respondError(w, http.StatusInternalServerError, message)
}

// decodeJSON parses the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
