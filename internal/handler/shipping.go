package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sirajstore/commerce-api/internal/domain/shipping"
)

type shippingRatePayload struct {
	City string  `json:"city"`
	Fee  float64 `json:"shippingFee"`
}

type shippingRateResponse struct {
	ID        string    `json:"id"`
	City      string    `json:"city"`
	Fee       float64   `json:"shippingFee"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListShippingRates returns all rates ordered by city.
func (h *Handler) ListShippingRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.shipping.List(r.Context())
	if err != nil {
		respondInternal(w, r, "Error fetching shipping rates", err)
		return
	}

	out := make([]shippingRateResponse, len(rates))
	for i := range rates {
		out[i] = toRateResponse(&rates[i])
	}
	respondJSON(w, http.StatusOK, out)
}

// GetShippingRateByCity returns the fee for one city.
func (h *Handler) GetShippingRateByCity(w http.ResponseWriter, r *http.Request) {
	rate, err := h.shipping.GetByCity(r.Context(), chi.URLParam(r, "city"))
	if err != nil {
		if errors.Is(err, shipping.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Shipping rate not found for this city")
			return
		}
		respondInternal(w, r, "Error fetching shipping rate", err)
		return
	}
	respondJSON(w, http.StatusOK, toRateResponse(rate))
}

// CreateShippingRate adds a city fee.
func (h *Handler) CreateShippingRate(w http.ResponseWriter, r *http.Request) {
	var req shippingRatePayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.City) == "" {
		respondError(w, http.StatusBadRequest, "City is required")
		return
	}
	if req.Fee < 0 {
		respondError(w, http.StatusBadRequest, "Shipping fee must not be negative")
		return
	}

	rate := &shipping.Rate{
		ID:   uuid.New().String(),
		City: strings.TrimSpace(req.City),
		Fee:  decimal.NewFromFloat(req.Fee),
	}
	if err := h.shipping.Create(r.Context(), rate); err != nil {
		if errors.Is(err, shipping.ErrDuplicateCity) {
			respondError(w, http.StatusBadRequest, "Shipping rate for this city already exists")
			return
		}
		respondInternal(w, r, "Error creating shipping rate", err)
		return
	}
	respondJSON(w, http.StatusCreated, toRateResponse(rate))
}

// UpdateShippingRate overwrites an existing city fee.
func (h *Handler) UpdateShippingRate(w http.ResponseWriter, r *http.Request) {
	var req shippingRatePayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rate := &shipping.Rate{
		ID:   chi.URLParam(r, "id"),
		City: strings.TrimSpace(req.City),
		Fee:  decimal.NewFromFloat(req.Fee),
	}
	if err := h.shipping.Update(r.Context(), rate); err != nil {
		switch {
		case errors.Is(err, shipping.ErrNotFound):
			respondError(w, http.StatusNotFound, "Shipping rate not found")
		case errors.Is(err, shipping.ErrDuplicateCity):
			respondError(w, http.StatusBadRequest, "Shipping rate for this city already exists")
		default:
			respondInternal(w, r, "Error updating shipping rate", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, toRateResponse(rate))
}

// DeleteShippingRate removes a city fee.
func (h *Handler) DeleteShippingRate(w http.ResponseWriter, r *http.Request) {
	if err := h.shipping.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, shipping.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Shipping rate not found")
			return
		}
		respondInternal(w, r, "Error deleting shipping rate", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Shipping rate deleted successfully"})
}

func toRateResponse(rate *shipping.Rate) shippingRateResponse {
	return shippingRateResponse{
		ID:        rate.ID,
		City:      rate.City,
		Fee:       rate.Fee.InexactFloat64(),
		CreatedAt: rate.CreatedAt,
	}
}
