package wishlist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/session"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	s := &Server{Store: NewMemStore(catalog.NewMemStore()), Log: zap.NewNop()}
	r := chi.NewRouter()
	r.Use(session.Middleware)
	r.Route("/wishlist", s.Routes)
	return r
}

func call(t *testing.T, h http.Handler, method, path, body string, out any) int {
	t.Helper()

	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set(session.Header, "abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

type listBody struct {
	SessionID string `json:"sessionId"`
	Items     []Item `json:"items"`
	Added     *Entry `json:"added"`
}

func TestHTTP_AddCheckRemove(t *testing.T) {
	h := newTestServer(t)

	var first, second listBody
	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, "/wishlist/add", `{"productId":9}`, &first))
	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, "/wishlist/add", `{"productId":9}`, &second))

	require.NotNil(t, first.Added)
	require.NotNil(t, second.Added)
	assert.Equal(t, first.Added.ID, second.Added.ID)
	assert.Len(t, second.Items, 1)
	assert.Equal(t, "abc", second.SessionID)

	var chk checkResp
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/wishlist/check/9", "", &chk))
	assert.True(t, chk.InWishlist)
	assert.Equal(t, int64(9), chk.ProductID)

	var after listBody
	path := "/wishlist/remove/" + strconv.FormatInt(first.Added.ID, 10)
	require.Equal(t, http.StatusOK, call(t, h, http.MethodDelete, path, "", &after))
	assert.Empty(t, after.Items)

	require.Equal(t, http.StatusOK, call(t, h, http.MethodDelete, path, "", &after))

	chk = checkResp{}
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/wishlist/check/9", "", &chk))
	assert.False(t, chk.InWishlist)
}

func TestHTTP_AddErrors(t *testing.T) {
	h := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodPost, "/wishlist/add", `{"productId":77}`, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodPost, "/wishlist/add", `{}`, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodGet, "/wishlist/check/abc", "", nil))
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodDelete, "/wishlist/remove/0", "", nil))
}

func TestHTTP_Clear(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, "/wishlist/add", `{"productId":1}`, nil))
	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, "/wishlist/add", `{"productId":2}`, nil))

	var got listBody
	require.Equal(t, http.StatusOK, call(t, h, http.MethodDelete, "/wishlist/clear", "", &got))
	assert.Empty(t, got.Items)

	got = listBody{}
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/wishlist", "", &got))
	assert.Empty(t, got.Items)
}
