package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sirajstore/commerce-api/internal/domain/product"
)

type variantPayload struct {
	Name  string  `json:"variantName"`
	Type  string  `json:"variantType"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
	SKU   string  `json:"sku,omitempty"`
}

type productPayload struct {
	Type          product.Type         `json:"productType"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Price         float64              `json:"price"`
	Stock         int                  `json:"stock"`
	Status        product.Status       `json:"status"`
	Featured      bool                 `json:"featured"`
	Images        []string             `json:"images"`
	Scents        string               `json:"scents"`
	Size          string               `json:"size"`
	BurnTime      string               `json:"burnTime"`
	WickType      string               `json:"wickType"`
	CoverageSpace string               `json:"coverageSpace"`
	Variants      []variantPayload     `json:"variants"`
	BundleItems   []product.BundleItem `json:"bundleItems"`
}

type productResponse struct {
	ID            string               `json:"id"`
	Type          product.Type         `json:"productType"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Category      string               `json:"category"`
	Price         float64              `json:"price"`
	Stock         int                  `json:"stock"`
	Status        product.Status       `json:"status"`
	Featured      bool                 `json:"featured"`
	Images        []string             `json:"images"`
	Scents        string               `json:"scents,omitempty"`
	Size          string               `json:"size,omitempty"`
	BurnTime      string               `json:"burnTime,omitempty"`
	WickType      string               `json:"wickType,omitempty"`
	CoverageSpace string               `json:"coverageSpace,omitempty"`
	Variants      []variantPayload     `json:"variants,omitempty"`
	BundleItems   []product.BundleItem `json:"bundleItems,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type productListResponse struct {
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Results []productResponse `json:"results"`
}

// ListProducts returns the public catalog page matching the query filters.
// Inactive products are never listed.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, product.Type(r.URL.Query().Get("productType")))
}

// ListBundles is the bundle view of the catalog.
func (h *Handler) ListBundles(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, product.TypeBundle)
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request, typ product.Type) {
	q := r.URL.Query()
	f := product.Filter{
		Category:   q.Get("category"),
		Type:       typ,
		Search:     q.Get("search"),
		Featured:   q.Get("featured") == "true",
		ActiveOnly: true,
		Page:       intQuery(q.Get("page"), 1),
		Limit:      intQuery(q.Get("limit"), 12),
		Sort:       q.Get("sort"),
	}

	products, total, err := h.products.List(r.Context(), f)
	if err != nil {
		respondInternal(w, r, "Failed to fetch products", err)
		return
	}

	results := make([]productResponse, len(products))
	for i := range products {
		results[i] = toProductResponse(&products[i])
	}
	respondJSON(w, http.StatusOK, productListResponse{
		Total:   total,
		Page:    f.Page,
		Limit:   f.Limit,
		Results: results,
	})
}

// GetProduct returns a single active product by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	h.getCatalogEntry(w, r, "")
}

// GetBundle returns a single active bundle by ID.
func (h *Handler) GetBundle(w http.ResponseWriter, r *http.Request) {
	h.getCatalogEntry(w, r, product.TypeBundle)
}

func (h *Handler) getCatalogEntry(w http.ResponseWriter, r *http.Request, typ product.Type) {
	p, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondInternal(w, r, "Failed to fetch product", err)
		return
	}
	if p.Status == product.StatusInactive || (typ != "" && p.Type != typ) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(p))
}

// CreateProduct creates a catalog entry from the admin payload.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.createCatalogEntry(w, r, "")
}

// CreateBundle creates a bundle-typed catalog entry.
func (h *Handler) CreateBundle(w http.ResponseWriter, r *http.Request) {
	h.createCatalogEntry(w, r, product.TypeBundle)
}

func (h *Handler) createCatalogEntry(w http.ResponseWriter, r *http.Request, forceType product.Type) {
	var req productPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if forceType != "" {
		req.Type = forceType
	}
	if req.Name == "" || req.Category == "" {
		respondError(w, http.StatusBadRequest, "Name and category are required")
		return
	}

	p := payloadToProduct(&req)
	p.ID = uuid.New().String()

	if err := h.products.Create(r.Context(), p); err != nil {
		respondInternal(w, r, "Server error during product creation", err)
		return
	}
	respondJSON(w, http.StatusCreated, toProductResponse(p))
}

// UpdateProduct overwrites an existing catalog entry.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p := payloadToProduct(&req)
	p.ID = chi.URLParam(r, "id")

	if err := h.products.Update(r.Context(), p); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondInternal(w, r, "Server error during product update", err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(p))
}

// DeleteProduct removes a catalog entry.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondInternal(w, r, "Server error during product deletion", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func payloadToProduct(req *productPayload) *product.Product {
	typ := req.Type
	if typ == "" {
		typ = product.TypeSingle
	}
	status := req.Status
	if status == "" {
		status = product.StatusActive
	}

	variants := make([]product.Variant, len(req.Variants))
	for i, v := range req.Variants {
		variants[i] = product.Variant{
			Name:  v.Name,
			Type:  v.Type,
			Price: decimal.NewFromFloat(v.Price),
			Stock: v.Stock,
			SKU:   v.SKU,
		}
	}

	return &product.Product{
		Type:          typ,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         decimal.NewFromFloat(req.Price),
		Stock:         req.Stock,
		Status:        status,
		Featured:      req.Featured,
		Images:        req.Images,
		Scents:        req.Scents,
		Size:          req.Size,
		BurnTime:      req.BurnTime,
		WickType:      req.WickType,
		CoverageSpace: req.CoverageSpace,
		Variants:      variants,
		BundleItems:   req.BundleItems,
	}
}

func toProductResponse(p *product.Product) productResponse {
	variants := make([]variantPayload, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = variantPayload{
			Name:  v.Name,
			Type:  v.Type,
			Price: v.Price.InexactFloat64(),
			Stock: v.Stock,
			SKU:   v.SKU,
		}
	}
	return productResponse{
		ID:            p.ID,
		Type:          p.Type,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price.InexactFloat64(),
		Stock:         p.Stock,
		Status:        p.Status,
		Featured:      p.Featured,
		Images:        p.Images,
		Scents:        p.Scents,
		Size:          p.Size,
		BurnTime:      p.BurnTime,
		WickType:      p.WickType,
		CoverageSpace: p.CoverageSpace,
		Variants:      variants,
		BundleItems:   p.BundleItems,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func intQuery(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
