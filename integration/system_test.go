//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

// TestSystem_E2E runs one shopper through browse, cart, wishlist, review
// and checkout against a live instance. With E2E_RESTART=1 the service is
// restarted and the order must still be readable, which only holds when
// it runs with DATABASE_URL.
func TestSystem_E2E(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	sid := fmt.Sprintf("e2e-%d-%d", time.Now().Unix(), rand.Intn(100000))

	var products []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/api/products", sid, nil, &products, 200)
	if len(products) == 0 {
		t.Fatalf("expected non-empty products")
	}

	pid, _ := products[0]["id"].(float64)
	if pid == 0 {
		t.Fatalf("product id missing in response: %#v", products[0])
	}

	var cart struct {
		SessionID string `json:"sessionId"`
		ItemCount int    `json:"itemCount"`
	}
	doJSON(t, http.MethodPost, baseURL+"/api/cart/add", sid, map[string]any{
		"productId": pid,
		"quantity":  2,
	}, &cart, 200)
	doJSON(t, http.MethodPost, baseURL+"/api/cart/add", sid, map[string]any{
		"productId": pid,
	}, &cart, 200)
	if cart.SessionID != sid || cart.ItemCount != 3 {
		t.Fatalf("cart after merge: %+v", cart)
	}

	doJSON(t, http.MethodPost, baseURL+"/api/wishlist/add", sid, map[string]any{"productId": pid}, nil, 200)

	var check struct {
		InWishlist bool `json:"inWishlist"`
	}
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/wishlist/check/%d", baseURL, int64(pid)), sid, nil, &check, 200)
	if !check.InWishlist {
		t.Fatalf("product %v not in wishlist", pid)
	}

	var reviewed struct {
		Product struct {
			ReviewCount int `json:"reviewCount"`
		} `json:"product"`
	}
	doJSON(t, http.MethodPost, baseURL+"/api/reviews/add", sid, map[string]any{
		"productId": pid,
		"rating":    4,
		"title":     "e2e",
		"comment":   "placed by the system test",
	}, &reviewed, 200)
	if reviewed.Product.ReviewCount == 0 {
		t.Fatalf("review count not refreshed: %+v", reviewed)
	}

	var placed struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
	}
	doJSON(t, http.MethodPost, baseURL+"/api/checkout", sid, map[string]any{
		"fullName":      "E2E Shopper",
		"email":         "e2e@example.com",
		"address":       "1 Test St",
		"city":          "Testville",
		"state":         "TS",
		"zipCode":       "00000",
		"country":       "US",
		"paymentMethod": "card",
	}, &placed, 200)
	if !placed.Success || placed.OrderID == "" {
		t.Fatalf("checkout: %+v", placed)
	}

	doJSON(t, http.MethodGet, baseURL+"/api/cart", sid, nil, &cart, 200)
	if cart.ItemCount != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", cart)
	}

	var got map[string]any
	doJSON(t, http.MethodGet, baseURL+"/api/orders/"+placed.OrderID, sid, nil, &got, 200)
	doJSON(t, http.MethodGet, baseURL+"/api/orders/"+placed.OrderID, sid+"-other", nil, nil, 404)

	if os.Getenv("E2E_RESTART") == "1" {
		restartService(t, ctx, getenv("E2E_SERVICE", "storefront"))
		waitReady(t, ctx, baseURL+"/readyz")
		doJSON(t, http.MethodGet, baseURL+"/api/orders/"+placed.OrderID, sid, nil, &got, 200)
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url, sid string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.Header.Set("sessionid", sid)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
