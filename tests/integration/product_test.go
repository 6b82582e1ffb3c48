//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	page := decodeJSON[productListResponse](t, resp)
	if page.Total != 5 {
		t.Errorf("total: got %d, want 5", page.Total)
	}
	if page.Page != 1 {
		t.Errorf("page: got %d, want 1", page.Page)
	}
	for _, p := range page.Results {
		if p.Status != "Active" {
			t.Errorf("product %s: inactive product in public listing", p.ID)
		}
	}
}

func TestListProducts_FilterByCategory(t *testing.T) {
	resp := doGet(t, "/api/products?category=Candles")
	defer resp.Body.Close()

	page := decodeJSON[productListResponse](t, resp)
	if page.Total == 0 {
		t.Fatal("expected candle products")
	}
	for _, p := range page.Results {
		if p.Category != "Candles" {
			t.Errorf("product %s: category %q leaked into Candles filter", p.ID, p.Category)
		}
	}
}

func TestListBundles(t *testing.T) {
	resp := doGet(t, "/api/bundles")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	page := decodeJSON[productListResponse](t, resp)
	if page.Total != 1 {
		t.Fatalf("total: got %d, want 1", page.Total)
	}
	if page.Results[0].Type != "Bundle" {
		t.Errorf("productType: got %q, want Bundle", page.Results[0].Type)
	}
}

func TestGetProduct(t *testing.T) {
	resp := doGet(t, "/api/products/cndl-amber-glow")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	p := decodeJSON[productResponse](t, resp)
	if p.Name != "Amber Glow" {
		t.Errorf("name: got %q, want Amber Glow", p.Name)
	}
	if p.Price != 850 {
		t.Errorf("price: got %v, want 850", p.Price)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	resp := doGet(t, "/api/products/nope")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetBundle_SingleProductHidden(t *testing.T) {
	// A single product is not reachable through the bundle view.
	resp := doGet(t, "/api/bundles/cndl-amber-glow")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
