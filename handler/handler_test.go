package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-ordering/app"
	"menu-ordering/model"
	"menu-ordering/service"
	"menu-ordering/store"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	st := store.NewMemoryStore()
	cat := service.NewCatalog(st, service.EmbeddedAsset{}, nil)
	s := app.New(app.Deps{
		Catalog: cat,
		Cart:    service.NewCart(st),
		Orders:  service.NewOrders(st),
	})
	app.Bootstrap(context.Background(), s)
	return NewHandler(s, service.NewReviews(st, cat, nil), nil).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestListProducts(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]model.Product](t, rr), 8)

	rr = do(t, h, http.MethodGet, "/products?category=Pizza&search=diav", "")
	got := decodeBody[[]model.Product](t, rr)
	require.Len(t, got, 1)
	assert.Equal(t, "Pizza Diavola", got[0].Name)

	rr = do(t, h, http.MethodGet, "/categories", "")
	cats := decodeBody[[]string](t, rr)
	assert.Equal(t, "All", cats[0])
	assert.Contains(t, cats, "Desserts")
}

func TestCartAndCheckout(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, http.MethodPost, "/cart/add", `{"product_id": 1}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	do(t, h, http.MethodPost, "/cart/add", `{"product_id": 1}`)
	rr = do(t, h, http.MethodPost, "/cart/add", `{"product_id": 8}`)

	sum := decodeBody[app.CartSummary](t, rr)
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, "29.23", sum.Total.StringFixed(2))

	rr = do(t, h, http.MethodPost, "/cart/remove", `{"product_id": 1}`)
	sum = decodeBody[app.CartSummary](t, rr)
	assert.Equal(t, 2, sum.Count)

	rr = do(t, h, http.MethodPost, "/cart/add", `{"product_id": 999}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPost, "/cart/checkout", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	order := decodeBody[model.Order](t, rr)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, "16.24", order.TotalPrice.StringFixed(2))

	rr = do(t, h, http.MethodGet, "/cart", "")
	assert.Equal(t, 0, decodeBody[app.CartSummary](t, rr).Count)

	rr = do(t, h, http.MethodPost, "/cart/checkout", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "cart is empty")

	rr = do(t, h, http.MethodGet, "/orders", "")
	assert.Len(t, decodeBody[[]model.Order](t, rr), 1)
}

func TestOrders(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, http.MethodPost, "/orders", `{"items":[{"productId":4,"productName":"Pasta Carbonara","price":10.99,"quantity":1,"total":10.99}],"totalPrice":10.99}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeBody[model.Order](t, rr)
	assert.Equal(t, model.StatusPending, created.Status)

	path := fmt.Sprintf("/orders/%d", created.ID)
	rr = do(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created.ID, decodeBody[model.Order](t, rr).ID)

	rr = do(t, h, http.MethodPatch, path+"/status", `{"status":"CONFIRMED"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, model.StatusConfirmed, decodeBody[model.Order](t, rr).Status)

	rr = do(t, h, http.MethodPatch, path+"/status", `{"status":"SHIPPED"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"order not found"}`, rr.Body.String())
}

func TestCreateOrder_Validation(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, http.MethodPost, "/orders", `{"items":[{"productId":1,"quantity":0}]}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody[errorBody](t, rr)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "items[0].quantity", body.Fields[0].Field)

	rr = do(t, h, http.MethodPost, "/orders", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReviews(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, http.MethodGet, "/reviews", "")
	require.Equal(t, http.StatusOK, rr.Code)
	views := decodeBody[[]reviewView](t, rr)
	require.Len(t, views, 3)
	assert.Equal(t, "Pizza Margherita", views[0].ProductName)
	assert.Len(t, views[0].Stars, 5)

	rr = do(t, h, http.MethodPost, "/reviews", `{"productId":999,"username":"sam","rating":2,"comment":"cold when it arrived"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/reviews", "")
	views = decodeBody[[]reviewView](t, rr)
	require.Len(t, views, 4)
	assert.Equal(t, service.UnknownProduct, views[0].ProductName)
	assert.Equal(t, []string{"★", "★", "☆", "☆", "☆"}, views[0].Stars)

	rr = do(t, h, http.MethodPost, "/reviews", `{"productId":1,"username":"x","rating":9,"comment":"short"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Len(t, decodeBody[errorBody](t, rr).Fields, 3)
}

func TestBodyLimit(t *testing.T) {
	st := store.NewMemoryStore()
	s := app.New(app.Deps{
		Catalog: service.NewCatalog(st, service.EmbeddedAsset{}, nil),
		Cart:    service.NewCart(st),
		Orders:  service.NewOrders(st),
	})
	h := NewHandler(s, nil, nil)
	h.MaxBodySize = 16

	rr := do(t, h.Router(), http.MethodPost, "/orders", `{"items":[],"totalPrice":123456789}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestMiddleware(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	rr = do(t, h, http.MethodGet, "/debug/actions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "[Orders] Load Orders")

	panicky := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec = httptest.NewRecorder()
	panicky.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type offlineAsset struct{ fetches int }

func (a *offlineAsset) Fetch(context.Context) ([]byte, error) {
	a.fetches++
	return nil, errors.New("menu host unreachable")
}

func TestListReviews_CatalogUnavailable(t *testing.T) {
	st := store.NewMemoryStore()
	asset := &offlineAsset{}
	cat := service.NewCatalog(st, asset, nil)
	s := app.New(app.Deps{Catalog: cat, Cart: service.NewCart(st), Orders: service.NewOrders(st)})
	app.Bootstrap(context.Background(), s)
	h := NewHandler(s, service.NewReviews(st, cat, nil), nil).Router()
	before := asset.fetches

	rr := do(t, h, http.MethodGet, "/reviews", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	views := decodeBody[[]reviewView](t, rr)
	require.Len(t, views, 3)
	for _, v := range views {
		assert.Equal(t, service.UnknownProduct, v.ProductName)
	}
	assert.Equal(t, 1, asset.fetches-before, "one catalog load per listing")
}

// flakyStore fails writes to one key while failKey is set.
type flakyStore struct {
	*store.MemoryStore
	failKey string
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func newFlakyServer(t *testing.T) (http.Handler, *flakyStore) {
	t.Helper()
	st := &flakyStore{MemoryStore: store.NewMemoryStore()}
	cat := service.NewCatalog(st, service.EmbeddedAsset{}, nil)
	s := app.New(app.Deps{Catalog: cat, Cart: service.NewCart(st), Orders: service.NewOrders(st)})
	app.Bootstrap(context.Background(), s)
	return NewHandler(s, service.NewReviews(st, cat, nil), nil).Router(), st
}

func TestCheckout_StockSaveFailureStillCreated(t *testing.T) {
	h, st := newFlakyServer(t)
	do(t, h, http.MethodPost, "/cart/add", `{"product_id": 2}`)

	st.failKey = store.KeyMenu
	rr := do(t, h, http.MethodPost, "/cart/checkout", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	order := decodeBody[model.Order](t, rr)

	persisted, err := service.NewOrders(st).GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, persisted.Items, 1)
}

func TestInternalErrorCarriesRequestID(t *testing.T) {
	h, st := newFlakyServer(t)
	st.failKey = store.KeyCart

	req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(`{"product_id": 1}`))
	req.Header.Set(requestIDHeader, "req-500")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody[errorBody](t, rr)
	assert.Equal(t, "internal error", body.Error)
	assert.Equal(t, "req-500", body.RequestID)
}
