package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/sirajstore/commerce-api/internal/domain/care"
)

type carePayload struct {
	Category string `json:"category"`
	Title    string `json:"careTitle"`
	Content  string `json:"careContent"`
}

// ListCareInstructions returns all care instructions ordered by category.
func (h *Handler) ListCareInstructions(w http.ResponseWriter, r *http.Request) {
	instructions, err := h.care.List(r.Context())
	if err != nil {
		respondInternal(w, r, "Error fetching care instructions", err)
		return
	}
	respondJSON(w, http.StatusOK, instructions)
}

// CreateCareInstruction adds care guidance for a category.
func (h *Handler) CreateCareInstruction(w http.ResponseWriter, r *http.Request) {
	var req carePayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Category) == "" || req.Title == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "Category, title, and content are required")
		return
	}

	i := &care.Instruction{
		ID:       uuid.New().String(),
		Category: strings.TrimSpace(req.Category),
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := h.care.Create(r.Context(), i); err != nil {
		if errors.Is(err, care.ErrDuplicateCategory) {
			respondError(w, http.StatusBadRequest, "Care instruction for this category already exists")
			return
		}
		respondInternal(w, r, "Error creating care instruction", err)
		return
	}
	respondJSON(w, http.StatusCreated, i)
}

// UpdateCareInstruction overwrites existing care guidance.
func (h *Handler) UpdateCareInstruction(w http.ResponseWriter, r *http.Request) {
	var req carePayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	i := &care.Instruction{
		ID:       chi.URLParam(r, "id"),
		Category: strings.TrimSpace(req.Category),
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := h.care.Update(r.Context(), i); err != nil {
		switch {
		case errors.Is(err, care.ErrNotFound):
			respondError(w, http.StatusNotFound, "Care instruction not found")
		case errors.Is(err, care.ErrDuplicateCategory):
			respondError(w, http.StatusBadRequest, "Care instruction for this category already exists")
		default:
			respondInternal(w, r, "Error updating care instruction", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, i)
}

// DeleteCareInstruction removes care guidance.
func (h *Handler) DeleteCareInstruction(w http.ResponseWriter, r *http.Request) {
	if err := h.care.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, care.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Care instruction not found")
			return
		}
		respondInternal(w, r, "Error deleting care instruction", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Care instruction deleted successfully"})
}
