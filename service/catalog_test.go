package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-ordering/model"
	"menu-ordering/store"
)

type countingAsset struct {
	body  []byte
	err   error
	calls int
}

func (a *countingAsset) Fetch(context.Context) ([]byte, error) {
	a.calls++
	return a.body, a.err
}

func TestCatalog_FetchesOnceThenServesCache(t *testing.T) {
	st := store.NewMemoryStore()
	src := &countingAsset{body: []byte(`[{"id":1,"name":"Pizza","price":12.99,"stock":5,"category":"Pizza"}]`)}
	c := NewCatalog(st, src, nil)
	ctx := context.Background()

	products, err := c.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pizza", products[0].Name)

	// stock changes are persisted and survive the next load
	products[0] = products[0].DecreaseStock(2)
	require.NoError(t, c.SaveProducts(ctx, products))

	again, err := c.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, again[0].Stock)
	assert.Equal(t, 1, src.calls, "asset fetched only once")

	require.NoError(t, c.Reset(ctx))
	_, err = c.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCatalog_AcceptsWrappedDocument(t *testing.T) {
	c := NewCatalog(store.NewMemoryStore(), EmbeddedAsset{}, nil)

	products, err := c.LoadProducts(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, products)
	assert.Equal(t, "Pizza Margherita", products[0].Name)
}

func TestCatalog_FetchFailure(t *testing.T) {
	st := store.NewMemoryStore()
	c := NewCatalog(st, &countingAsset{err: errors.New("offline")}, nil)

	_, err := c.LoadProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, st.Len(), "nothing cached on failure")

	c = NewCatalog(st, &countingAsset{body: []byte(`<html>`)}, nil)
	_, err = c.LoadProducts(context.Background())
	assert.Error(t, err)
}

func TestHTTPAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/api-menu.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"id":9,"name":"Soup","price":4,"stock":1,"category":"Starters"}]}`))
	}))
	defer srv.Close()

	c := NewCatalog(store.NewMemoryStore(), NewHTTPAsset(srv.URL+"/assets/api-menu.json", time.Second), nil)
	products, err := c.LoadProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids(products))

	_, err = NewHTTPAsset(srv.URL+"/missing.json", time.Second).Fetch(context.Background())
	assert.ErrorContains(t, err, "404")
}

func TestDecodeMenu(t *testing.T) {
	products, err := decodeMenu([]byte(`  {"other": 1}`))
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func ids(ps []model.Product) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
