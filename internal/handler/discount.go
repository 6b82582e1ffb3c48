package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sirajstore/commerce-api/internal/domain/discount"
)

type discountPayload struct {
	Code       string          `json:"code"`
	Type       discount.Type   `json:"type"`
	Value      float64         `json:"value"`
	AppliesTo  discount.Scope  `json:"appliesTo"`
	Categories []string        `json:"categories"`
	Products   []string        `json:"products"`
	Status     discount.Status `json:"status"`
}

type discountResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Type       discount.Type   `json:"type"`
	Value      float64         `json:"value"`
	AppliesTo  discount.Scope  `json:"appliesTo"`
	Categories []string        `json:"categories"`
	Products   []string        `json:"products"`
	Status     discount.Status `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type validateDiscountRequest struct {
	Code string `json:"code"`
}

// ListDiscounts returns every discount for administration.
func (h *Handler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.discounts.List(r.Context())
	if err != nil {
		respondInternal(w, r, "Error fetching discounts", err)
		return
	}

	out := make([]discountResponse, len(discounts))
	for i := range discounts {
		out[i] = toDiscountResponse(&discounts[i])
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateDiscount registers a new code. Codes are stored uppercase.
func (h *Handler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "Discount code is required")
		return
	}
	if req.Type != discount.TypePercentage && req.Type != discount.TypeFixed {
		respondError(w, http.StatusBadRequest, "Discount type must be percentage or fixed")
		return
	}
	if req.Value < 0 {
		respondError(w, http.StatusBadRequest, "Discount value must not be negative")
		return
	}

	d := payloadToDiscount(&req)
	d.ID = uuid.New().String()

	if err := h.discounts.Create(r.Context(), d); err != nil {
		if errors.Is(err, discount.ErrDuplicateCode) {
			respondError(w, http.StatusBadRequest, "Discount code already exists")
			return
		}
		respondInternal(w, r, "Error creating discount", err)
		return
	}
	respondJSON(w, http.StatusCreated, toDiscountResponse(d))
}

// UpdateDiscount overwrites an existing discount.
func (h *Handler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d := payloadToDiscount(&req)
	d.ID = chi.URLParam(r, "id")

	if err := h.discounts.Update(r.Context(), d); err != nil {
		switch {
		case errors.Is(err, discount.ErrNotFound):
			respondError(w, http.StatusNotFound, "Discount not found")
		case errors.Is(err, discount.ErrDuplicateCode):
			respondError(w, http.StatusBadRequest, "Discount code already exists")
		default:
			respondInternal(w, r, "Error updating discount", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, toDiscountResponse(d))
}

// DeleteDiscount removes a discount.
func (h *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	if err := h.discounts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, discount.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Discount not found")
			return
		}
		respondInternal(w, r, "Error deleting discount", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Discount deleted successfully"})
}

// ValidateDiscount checks a code for the storefront checkout. Invalid codes
// answer 404 with valid=false rather than an error.
func (h *Handler) ValidateDiscount(w http.ResponseWriter, r *http.Request) {
	var req validateDiscountRequest
	if err := decodeJSON(r, &req); err != nil || req.Code == "" {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"valid":   false,
			"message": "No code provided",
		})
		return
	}

	d, err := h.discounts.FindActiveByCode(r.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, discount.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, map[string]any{
				"valid":   false,
				"message": "Invalid or expired code",
			})
			return
		}
		respondInternal(w, r, "Server error checking discount", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"discount": map[string]any{
			"code":  d.Code,
			"type":  d.Type,
			"value": d.Value.InexactFloat64(),
		},
	})
}

func payloadToDiscount(req *discountPayload) *discount.Discount {
	appliesTo := req.AppliesTo
	if appliesTo == "" {
		appliesTo = discount.ScopeEntire
	}
	status := req.Status
	if status == "" {
		status = discount.StatusActive
	}
	return &discount.Discount{
		Code:       strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:       req.Type,
		Value:      decimal.NewFromFloat(req.Value),
		AppliesTo:  appliesTo,
		Categories: req.Categories,
		Products:   req.Products,
		Status:     status,
	}
}

func toDiscountResponse(d *discount.Discount) discountResponse {
	return discountResponse{
		ID:         d.ID,
		Code:       d.Code,
		Type:       d.Type,
		Value:      d.Value.InexactFloat64(),
		AppliesTo:  d.AppliesTo,
		Categories: d.Categories,
		Products:   d.Products,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
	}
}
