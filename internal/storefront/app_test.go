package storefront_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/session"
	"Storefront/internal/storefront"
	"Storefront/pkg/kit"
)

func newStorefrontTS(t *testing.T, deps storefront.Deps, httpDeps storefront.HTTPDeps) *httptest.Server {
	t.Helper()

	if deps.Catalog == nil {
		deps.Catalog = catalog.NewMemStore()
	}
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}
	httpDeps.Service = "storefront"

	h, err := storefront.NewHandler(deps, httpDeps)
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

type client struct {
	t    *testing.T
	base string
	sid  string
}

// do sends body as JSON and remembers the session id the server hands out.
func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sid != "" {
		req.Header.Set(session.Header, c.sid)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	if c.sid == "" {
		c.sid = resp.Header.Get(session.Header)
	}
	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func TestStorefront_ShoppingFlow(t *testing.T) {
	ts := newStorefrontTS(t, storefront.Deps{}, storefront.HTTPDeps{})
	c := &client{t: t, base: ts.URL}

	var featured []catalog.Product
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/featured-products", nil, &featured))
	assert.LessOrEqual(t, len(featured), catalog.FeaturedLimit)
	require.NotEmpty(t, c.sid, "first response assigns a session")

	var p catalog.Product
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/products/1", nil, &p))
	assert.Equal(t, "Cat Print Summer Dress", p.Name)

	var cartResp struct {
		SessionID string  `json:"sessionId"`
		ItemCount int     `json:"itemCount"`
		Subtotal  float64 `json:"subtotal"`
		AddedItem struct {
			ID int64 `json:"id"`
		} `json:"addedItem"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/cart/add", map[string]any{"productId": 1, "quantity": 2}, &cartResp))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/cart/add", map[string]any{"productId": 4}, &cartResp))
	assert.Equal(t, c.sid, cartResp.SessionID)
	assert.Equal(t, 3, cartResp.ItemCount)
	assert.InDelta(t, 145.97, cartResp.Subtotal, 1e-9)

	var wish struct {
		Items []json.RawMessage `json:"items"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/wishlist/add", map[string]any{"productId": 7}, &wish))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/wishlist/add", map[string]any{"productId": 7}, &wish))
	assert.Len(t, wish.Items, 1)

	var added struct {
		Product catalog.Product `json:"product"`
	}
	for _, rating := range []int{5, 3} {
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/reviews/add", map[string]any{
			"productId": 4, "rating": rating, "title": "t", "comment": "c",
		}, &added))
	}
	assert.Equal(t, 4.0, added.Product.Rating)
	assert.Equal(t, 2, added.Product.ReviewCount)

	var order struct {
		Success      bool   `json:"success"`
		OrderID      string `json:"orderId"`
		OrderDetails struct {
			Shipping float64 `json:"shipping"`
			Total    float64 `json:"total"`
		} `json:"orderDetails"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/checkout", map[string]any{
		"fullName": "Ada Cat", "email": "ada@example.com", "address": "1 Whisker Way",
		"city": "Portland", "state": "OR", "zipCode": "97201", "country": "US", "paymentMethod": "card",
	}, &order))
	assert.True(t, order.Success)
	assert.Zero(t, order.OrderDetails.Shipping)
	assert.InDelta(t, 145.97, order.OrderDetails.Total, 1e-9)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/cart", nil, &cartResp))
	assert.Zero(t, cartResp.ItemCount)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/orders/"+order.OrderID, nil, nil))

	other := &client{t: t, base: ts.URL, sid: "someone-else"}
	assert.Equal(t, http.StatusNotFound, other.do(http.MethodGet, "/api/orders/"+order.OrderID, nil, nil))
}

func TestStorefront_SessionsAreIsolated(t *testing.T) {
	ts := newStorefrontTS(t, storefront.Deps{}, storefront.HTTPDeps{})
	a := &client{t: t, base: ts.URL, sid: "alice"}
	b := &client{t: t, base: ts.URL, sid: "bob"}

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/cart/add", map[string]any{"productId": 2}, nil))

	var got struct {
		SessionID string `json:"sessionId"`
		ItemCount int    `json:"itemCount"`
	}
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, "/api/cart", nil, &got))
	assert.Equal(t, "bob", got.SessionID)
	assert.Zero(t, got.ItemCount)
}

func TestStorefront_HealthAndReady(t *testing.T) {
	ts := newStorefrontTS(t, storefront.Deps{}, storefront.HTTPDeps{})
	c := &client{t: t, base: ts.URL}

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/healthz", nil, nil))
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/readyz", nil, nil))
}

type downCatalog struct{ catalog.Store }

func (downCatalog) Ping(context.Context) error { return errors.New("connection refused") }

func TestStorefront_ReadyFailsWhenCatalogIsDown(t *testing.T) {
	ts := newStorefrontTS(t, storefront.Deps{Catalog: downCatalog{Store: catalog.NewMemStore()}}, storefront.HTTPDeps{})
	c := &client{t: t, base: ts.URL}

	assert.Equal(t, http.StatusServiceUnavailable, c.do(http.MethodGet, "/readyz", nil, nil))
}

func TestStorefront_MetricsRequireToken(t *testing.T) {
	reg := prometheus.NewRegistry()
	ts := newStorefrontTS(t, storefront.Deps{}, storefront.HTTPDeps{
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   "scrape-me",
	})
	c := &client{t: t, base: ts.URL, sid: "abc"}

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/cart/add", map[string]any{"productId": 3}, nil))

	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/metrics", nil, nil))

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer scrape-me")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, `storefront_events_total{event="cart_add",service="storefront"} 1`)
	assert.Contains(t, body, `path="/api/cart/add"`)
}

func newLimiter(perMinute int) *kit.IPRateLimiter {
	return kit.NewIPRateLimiter(perMinute, time.Minute)
}

func TestStorefront_ReviewRateLimit(t *testing.T) {
	ts := newStorefrontTS(t, storefront.Deps{ReviewLimiter: newLimiter(1)}, storefront.HTTPDeps{})
	c := &client{t: t, base: ts.URL, sid: "abc"}
	body := map[string]any{"productId": 1, "rating": 5, "title": "t", "comment": "c"}

	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/reviews/add", body, nil))
	assert.Equal(t, http.StatusTooManyRequests, c.do(http.MethodPost, "/api/reviews/add", body, nil))

	var reviews []json.RawMessage
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/reviews/product/1", nil, &reviews))
	assert.Len(t, reviews, 1)
}

func TestStorefront_ErrorEnvelope(t *testing.T) {
	ts := newStorefrontTS(t, storefront.Deps{}, storefront.HTTPDeps{})

	resp, err := http.Post(ts.URL+"/api/cart/add", "application/json", strings.NewReader(`{"productId":999}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var env struct {
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "product not found", env.Error)
	assert.NotEmpty(t, env.RequestID)
}

func TestStorefront_RequiresCatalog(t *testing.T) {
	_, err := storefront.NewHandler(storefront.Deps{}, storefront.HTTPDeps{})
	assert.Error(t, err)
}

func TestStorefront_UnknownProductID(t *testing.T) {
	ts := newStorefrontTS(t, storefront.Deps{}, storefront.HTTPDeps{})
	c := &client{t: t, base: ts.URL}

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/products/"+strconv.Itoa(404), nil, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/products/cat", nil, nil))
}
