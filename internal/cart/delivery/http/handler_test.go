package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartrepo "github.com/pixelpour/storefront/internal/cart/repository"
	catalogrepo "github.com/pixelpour/storefront/internal/catalog/repository"
	"github.com/pixelpour/storefront/internal/notify"
	"github.com/pixelpour/storefront/internal/session"
	sessiondomain "github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/pkg/auth"
	"github.com/pixelpour/storefront/pkg/kvstore"
)

// One handler per test binary: the constructor registers Prometheus
// collectors and a second registration would panic.
var (
	setupOnce    sync.Once
	testRouter   *mux.Router
	testSessions *session.Manager
)

func router(t *testing.T) *mux.Router {
	t.Helper()
	setupOnce.Do(func() {
		testSessions = session.NewManager()
		handler := NewCartHandler(
			cartrepo.NewKVCartRepository(kvstore.NewMemoryStore()),
			catalogrepo.NewMemoryCatalogRepository(catalogrepo.SeedProducts()),
			testSessions,
			notify.NewCenter(),
			nil,
		)
		testRouter = mux.NewRouter()
		handler.RegisterRoutes(testRouter)
	})
	return testRouter
}

func login(t *testing.T, userID string) string {
	t.Helper()
	testSessions.Begin(sessiondomain.User{ID: userID, Email: userID + "@example.com", Name: "Ada"})
	token, err := auth.GenerateToken(userID, userID+"@example.com", "Ada")
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, r *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type cartView struct {
	Items []struct {
		ID       int     `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	} `json:"items"`
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartView {
	t.Helper()
	var view cartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestCartRoutes_RequireAuth(t *testing.T) {
	r := router(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/cart"},
		{http.MethodDelete, "/cart"},
		{http.MethodPost, "/cart/items"},
		{http.MethodPut, "/cart/items/1"},
		{http.MethodDelete, "/cart/items/1"},
	} {
		rec := doJSON(t, r, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code,
			fmt.Sprintf("%s %s", route.method, route.path))
	}
}

func TestGetCart_StartsEmpty(t *testing.T) {
	r := router(t)
	token := login(t, "empty-cart-user")

	rec := doJSON(t, r, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeCart(t, rec)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalItems)
	assert.Zero(t, view.TotalPrice)
	// items must serialize as [], not null
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestAddItem_ResolvesProductFromCatalog(t *testing.T) {
	r := router(t)
	token := login(t, "add-user")

	rec := doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]int{
		"product_id": 1, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view := decodeCart(t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Azure Classic", view.Items[0].Name)
	assert.InDelta(t, 29.99, view.Items[0].Price, 0.001)
	assert.Equal(t, 2, view.TotalItems)
	assert.InDelta(t, 59.98, view.TotalPrice, 0.001)
}

func TestAddItem_UnknownProductIs404(t *testing.T) {
	r := router(t)
	token := login(t, "missing-product-user")

	rec := doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]int{
		"product_id": 999, "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateQuantity(t *testing.T) {
	r := router(t)
	token := login(t, "update-user")

	doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]int{
		"product_id": 2, "quantity": 1,
	})

	rec := doJSON(t, r, http.MethodPut, "/cart/items/2", token, map[string]int{
		"quantity": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeCart(t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, 5, view.TotalItems)
}

func TestUpdateQuantity_ZeroRemovesItem(t *testing.T) {
	r := router(t)
	token := login(t, "drop-user")

	doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]int{
		"product_id": 3, "quantity": 2,
	})

	rec := doJSON(t, r, http.MethodPut, "/cart/items/3", token, map[string]int{
		"quantity": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestRemoveItem(t *testing.T) {
	r := router(t)
	token := login(t, "remove-user")

	doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]int{
		"product_id": 4, "quantity": 1,
	})
	doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]int{
		"product_id": 5, "quantity": 1,
	})

	rec := doJSON(t, r, http.MethodDelete, "/cart/items/4", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeCart(t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].ID)
}

func TestClearCart(t *testing.T) {
	r := router(t)
	token := login(t, "clear-user")

	doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]int{
		"product_id": 6, "quantity": 3,
	})

	rec := doJSON(t, r, http.MethodDelete, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)

	rec = doJSON(t, r, http.MethodGet, "/cart", token, nil)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCart_LogoutEndsAccess(t *testing.T) {
	r := router(t)
	token := login(t, "logout-user")

	doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]int{
		"product_id": 7, "quantity": 1,
	})

	testSessions.End("logout-user")

	rec := doJSON(t, r, http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logging back in finds the cart intact; it was persisted, not dropped.
	token = login(t, "logout-user")
	rec = doJSON(t, r, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeCart(t, rec).Items, 1)
}
