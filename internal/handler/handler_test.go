package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirajstore/commerce-api/internal/domain/care"
	"github.com/sirajstore/commerce-api/internal/domain/category"
	"github.com/sirajstore/commerce-api/internal/domain/discount"
	"github.com/sirajstore/commerce-api/internal/domain/order"
	"github.com/sirajstore/commerce-api/internal/domain/product"
	"github.com/sirajstore/commerce-api/internal/domain/shipping"
	"github.com/sirajstore/commerce-api/internal/upload"
)

// --- Mock implementations ---

type mockProductRepo struct {
	byID       map[string]*product.Product
	lastFilter product.Filter
	listErr    error
}

func (m *mockProductRepo) List(_ context.Context, f product.Filter) ([]product.Product, int, error) {
	m.lastFilter = f
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var out []product.Product
	for _, p := range m.byID {
		if f.ActiveOnly && p.Status == product.StatusInactive {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) GetForUpdate(ctx context.Context, id string) (*product.Product, error) {
	return m.GetByID(ctx, id)
}

func (m *mockProductRepo) Create(_ context.Context, p *product.Product) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *product.Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return product.ErrNotFound
	}
	m.byID[p.ID] = p
	return nil
}

func (m *mockProductRepo) UpdateStock(_ context.Context, p *product.Product) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return product.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type mockDiscountRepo struct {
	byCode map[string]*discount.Discount
}

func (m *mockDiscountRepo) FindActiveByCode(_ context.Context, code string) (*discount.Discount, error) {
	d, ok := m.byCode[strings.ToUpper(code)]
	if !ok || d.Status != discount.StatusActive {
		return nil, discount.ErrNotFound
	}
	return d, nil
}

func (m *mockDiscountRepo) List(_ context.Context) ([]discount.Discount, error) {
	var out []discount.Discount
	for _, d := range m.byCode {
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockDiscountRepo) Create(_ context.Context, d *discount.Discount) error {
	if _, ok := m.byCode[d.Code]; ok {
		return discount.ErrDuplicateCode
	}
	m.byCode[d.Code] = d
	return nil
}

func (m *mockDiscountRepo) Update(_ context.Context, d *discount.Discount) error {
	m.byCode[d.Code] = d
	return nil
}

func (m *mockDiscountRepo) Delete(_ context.Context, _ string) error { return nil }

type mockOrderRepo struct {
	byID      map[string]*order.Order
	lastOrder *order.Order
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) error {
	m.lastOrder = o
	m.byID[o.ID] = o
	return nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.byID {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status order.Status) error {
	o, ok := m.byID[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	return nil
}

type mockShippingRepo struct {
	byCity map[string]*shipping.Rate
}

func (m *mockShippingRepo) List(_ context.Context) ([]shipping.Rate, error) {
	var out []shipping.Rate
	for _, r := range m.byCity {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockShippingRepo) GetByCity(_ context.Context, city string) (*shipping.Rate, error) {
	r, ok := m.byCity[city]
	if !ok {
		return nil, shipping.ErrNotFound
	}
	return r, nil
}

func (m *mockShippingRepo) Create(_ context.Context, r *shipping.Rate) error {
	if _, ok := m.byCity[r.City]; ok {
		return shipping.ErrDuplicateCity
	}
	m.byCity[r.City] = r
	return nil
}

func (m *mockShippingRepo) Update(_ context.Context, r *shipping.Rate) error {
	m.byCity[r.City] = r
	return nil
}

func (m *mockShippingRepo) Delete(_ context.Context, _ string) error { return nil }

type mockCategoryRepo struct {
	byName map[string]*category.Category
}

func (m *mockCategoryRepo) List(_ context.Context) ([]category.Category, error) {
	var out []category.Category
	for _, c := range m.byName {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepo) Create(_ context.Context, c *category.Category) error {
	if _, ok := m.byName[c.Name]; ok {
		return category.ErrDuplicateName
	}
	m.byName[c.Name] = c
	return nil
}

func (m *mockCategoryRepo) Update(_ context.Context, c *category.Category) error {
	m.byName[c.Name] = c
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, _ string) error { return nil }

type mockCareRepo struct {
	byCategory map[string]*care.Instruction
}

func (m *mockCareRepo) List(_ context.Context) ([]care.Instruction, error) { return nil, nil }

func (m *mockCareRepo) Create(_ context.Context, i *care.Instruction) error {
	if _, ok := m.byCategory[i.Category]; ok {
		return care.ErrDuplicateCategory
	}
	m.byCategory[i.Category] = i
	return nil
}

func (m *mockCareRepo) Update(_ context.Context, i *care.Instruction) error {
	m.byCategory[i.Category] = i
	return nil
}

func (m *mockCareRepo) Delete(_ context.Context, _ string) error { return nil }

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockUploader struct {
	files []upload.File
	urls  []string
	err   error
}

func (m *mockUploader) Upload(_ context.Context, files []upload.File) ([]string, error) {
	m.files = files
	return m.urls, m.err
}

// --- Helpers ---

type fixture struct {
	handler   http.Handler
	products  *mockProductRepo
	orders    *mockOrderRepo
	discounts *mockDiscountRepo
	uploader  *mockUploader
}

func newFixture(products ...product.Product) *fixture {
	byID := make(map[string]*product.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	productRepo := &mockProductRepo{byID: byID}
	orderRepo := &mockOrderRepo{byID: make(map[string]*order.Order)}
	discountRepo := &mockDiscountRepo{byCode: make(map[string]*discount.Discount)}
	uploader := &mockUploader{}

	svc := order.NewService(productRepo, discountRepo, orderRepo, passthroughTx{})
	h := NewHandler(
		productRepo,
		svc,
		discountRepo,
		&mockShippingRepo{byCity: make(map[string]*shipping.Rate)},
		&mockCategoryRepo{byName: make(map[string]*category.Category)},
		&mockCareRepo{byCategory: make(map[string]*care.Instruction)},
		uploader,
	)
	return &fixture{
		handler:   h.Routes(),
		products:  productRepo,
		orders:    orderRepo,
		discounts: discountRepo,
		uploader:  uploader,
	}
}

func newTestProduct(id, name string, price int64, stock int) product.Product {
	return product.Product{
		ID:       id,
		Type:     product.TypeSingle,
		Name:     name,
		Category: "Candles",
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		Status:   product.StatusActive,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func validOrderPayload(items ...map[string]any) map[string]any {
	return map[string]any{
		"customerInfo": map[string]any{
			"name":    "Amina Khan",
			"email":   "amina@example.com",
			"phone":   "+92 300 0000000",
			"address": "12 Garden Road",
			"city":    "Karachi",
		},
		"items": items,
	}
}

// --- Order endpoints ---

func TestPlaceOrder_Created(t *testing.T) {
	f := newFixture(newTestProduct("p1", "Amber Glow", 850, 10))

	w := f.do(t, http.MethodPost, "/orders", validOrderPayload(
		map[string]any{"productId": "p1", "quantity": 2},
	))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Order created successfully", body["message"])
	assert.NotEmpty(t, body["orderId"])

	require.NotNil(t, f.orders.lastOrder)
	assert.Equal(t, body["orderId"], f.orders.lastOrder.ID)
	assert.Equal(t, 8, f.products.byID["p1"].Stock)
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/orders", validOrderPayload())

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No order items provided", decodeBody(t, w)["message"])
}

func TestPlaceOrder_MissingCustomerInfo(t *testing.T) {
	f := newFixture(newTestProduct("p1", "Amber Glow", 850, 10))

	payload := validOrderPayload(map[string]any{"productId": "p1", "quantity": 1})
	payload["customerInfo"] = map[string]any{"name": "Amina Khan"}
	w := f.do(t, http.MethodPost, "/orders", payload)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required customer information", decodeBody(t, w)["message"])
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/orders", validOrderPayload(
		map[string]any{"productId": "missing", "quantity": 1},
	))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found: missing", decodeBody(t, w)["message"])
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	f := newFixture(newTestProduct("p1", "Amber Glow", 850, 1))

	w := f.do(t, http.MethodPost, "/orders", validOrderPayload(
		map[string]any{"productId": "p1", "quantity": 5},
	))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Insufficient stock for Amber Glow", decodeBody(t, w)["message"])
}

func TestPlaceOrder_InvalidBody(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodGet, "/orders/nope", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decodeBody(t, w)["message"])
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(newTestProduct("p1", "Amber Glow", 850, 10))

	w := f.do(t, http.MethodPost, "/orders", validOrderPayload(
		map[string]any{"productId": "p1", "quantity": 1},
	))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["orderId"].(string)

	w = f.do(t, http.MethodPut, "/orders/"+id+"/status", map[string]string{"status": "Shipped"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.StatusShipped, f.orders.byID[id].Status)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPut, "/orders/missing/status", map[string]string{"status": "Shipped"})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decodeBody(t, w)["message"])
}

func TestUpdateOrderStatus_Invalid(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPut, "/orders/o1/status", map[string]string{"status": "Shipped!!"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], "Invalid order status")
}

// --- Product endpoints ---

func TestListProducts_ActiveOnly(t *testing.T) {
	active := newTestProduct("p1", "Amber Glow", 850, 10)
	inactive := newTestProduct("p2", "Retired", 500, 0)
	inactive.Status = product.StatusInactive
	f := newFixture(active, inactive)

	w := f.do(t, http.MethodGet, "/products", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(12), body["limit"])
	assert.True(t, f.products.lastFilter.ActiveOnly)
}

func TestGetProduct_Inactive(t *testing.T) {
	p := newTestProduct("p1", "Retired", 500, 0)
	p.Status = product.StatusInactive
	f := newFixture(p)

	w := f.do(t, http.MethodGet, "/products/p1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBundle_TypeMismatch(t *testing.T) {
	f := newFixture(newTestProduct("p1", "Amber Glow", 850, 10))

	w := f.do(t, http.MethodGet, "/bundles/p1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct_MissingName(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/products", map[string]any{"category": "Candles"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name and category are required", decodeBody(t, w)["message"])
}

func TestCreateBundle_ForcesType(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/bundles", map[string]any{
		"name":     "Classic Trio",
		"category": "Bundles",
		"price":    2100,
		"stock":    20,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, string(product.TypeBundle), body["productType"])
}

// --- Discount endpoints ---

func TestValidateDiscount(t *testing.T) {
	f := newFixture()
	f.discounts.byCode["WELCOME10"] = &discount.Discount{
		Code:   "WELCOME10",
		Type:   discount.TypePercentage,
		Value:  decimal.NewFromInt(10),
		Status: discount.StatusActive,
	}

	w := f.do(t, http.MethodPost, "/discounts/validate", map[string]string{"code": "WELCOME10"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["valid"])
	d := body["discount"].(map[string]any)
	assert.Equal(t, "WELCOME10", d["code"])
	assert.Equal(t, float64(10), d["value"])
}

func TestValidateDiscount_Invalid(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/discounts/validate", map[string]string{"code": "BOGUS"})

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "Invalid or expired code", body["message"])
}

func TestValidateDiscount_NoCode(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/discounts/validate", map[string]string{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["valid"])
}

func TestCreateDiscount_UppercasesCode(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/discounts", map[string]any{
		"code":  "welcome10",
		"type":  "percentage",
		"value": 10,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "WELCOME10", decodeBody(t, w)["code"])
}

func TestCreateDiscount_BadType(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/discounts", map[string]any{
		"code":  "ODD",
		"type":  "bogus",
		"value": 10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Shipping, category, and care endpoints ---

func TestShippingRateByCity_NotFound(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodGet, "/shipping-rates/city/Atlantis", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Shipping rate not found for this city", decodeBody(t, w)["message"])
}

func TestCreateShippingRate_Duplicate(t *testing.T) {
	f := newFixture()

	payload := map[string]any{"city": "Karachi", "shippingFee": 150}
	w := f.do(t, http.MethodPost, "/shipping-rates", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/shipping-rates", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Shipping rate for this city already exists", decodeBody(t, w)["message"])
}

func TestCreateCategory_Duplicate(t *testing.T) {
	f := newFixture()

	payload := map[string]any{"name": "Candles"}
	w := f.do(t, http.MethodPost, "/categories", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/categories", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category already exists", decodeBody(t, w)["message"])
}

func TestCreateCareInstruction_Duplicate(t *testing.T) {
	f := newFixture()

	payload := map[string]any{
		"category":    "Candles",
		"careTitle":   "Candle Care",
		"careContent": "Trim the wick.",
	}
	w := f.do(t, http.MethodPost, "/care", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/care", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Care instruction for this category already exists", decodeBody(t, w)["message"])
}

// --- Uploads ---

func TestUploadImages(t *testing.T) {
	f := newFixture()
	f.uploader.urls = []string{"/uploads/abc.jpg"}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("images", "candle.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	urls := body["urls"].([]any)
	require.Len(t, urls, 1)
	assert.Equal(t, "/uploads/abc.jpg", urls[0])

	require.Len(t, f.uploader.files, 1)
	assert.Equal(t, "candle.jpg", f.uploader.files[0].Name)
	assert.Equal(t, []byte("fake image bytes"), f.uploader.files[0].Content)
}

func TestUploadImages_NoFiles(t *testing.T) {
	f := newFixture()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No images provided", decodeBody(t, w)["message"])
}
