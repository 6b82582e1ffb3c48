package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/sirajstore/commerce-api/internal/domain/category"
)

type categoryPayload struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// ListCategories returns all categories in display order.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		respondInternal(w, r, "Error fetching categories", err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a navigation category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	c := &category.Category{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
	}
	if err := h.categories.Create(r.Context(), c); err != nil {
		if errors.Is(err, category.ErrDuplicateName) {
			respondError(w, http.StatusBadRequest, "Category already exists")
			return
		}
		respondInternal(w, r, "Error creating category", err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// UpdateCategory overwrites an existing category.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c := &category.Category{
		ID:        chi.URLParam(r, "id"),
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
	}
	if err := h.categories.Update(r.Context(), c); err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			respondError(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, category.ErrDuplicateName):
			respondError(w, http.StatusBadRequest, "Category already exists")
		default:
			respondInternal(w, r, "Error updating category", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Category not found")
			return
		}
		respondInternal(w, r, "Error deleting category", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
