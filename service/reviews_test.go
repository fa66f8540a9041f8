package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-ordering/store"
)

func newTestReviews() (*Reviews, *store.MemoryStore) {
	st := store.NewMemoryStore()
	r := NewReviews(st, NewCatalog(st, EmbeddedAsset{}, nil), nil)
	r.now = func() time.Time { return time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC) }
	return r, st
}

func TestReviews_ListSeedsSamplesOnce(t *testing.T) {
	r, st := newTestReviews()
	ctx := context.Background()

	reviews, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "John Doe", reviews[0].Username)

	_, err = st.Get(ctx, store.KeyReviews)
	require.NoError(t, err, "samples are persisted")

	require.NoError(t, store.SaveList(ctx, st, store.KeyReviews, reviews[:1]))
	reviews, err = r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 1, "stored list wins over samples")
}

func TestReviews_Submit(t *testing.T) {
	r, _ := newTestReviews()
	ctx := context.Background()

	_, err := r.List(ctx)
	require.NoError(t, err)

	rv, err := r.Submit(ctx, ReviewInput{ProductID: 4, Username: "Ana", Comment: "Silky sauce, generous portion."})
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating, "rating defaults to five")
	assert.Equal(t, time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC), rv.Date)

	reviews, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 4)
	assert.Equal(t, rv.ID, reviews[0].ID, "new review goes first")
}

func TestReviews_SubmitValidation(t *testing.T) {
	r, _ := newTestReviews()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    ReviewInput
		field string
	}{
		{"missing product", ReviewInput{Username: "Ana", Rating: 4, Comment: "long enough comment"}, "productId"},
		{"short username", ReviewInput{ProductID: 1, Username: "A", Rating: 4, Comment: "long enough comment"}, "username"},
		{"rating too high", ReviewInput{ProductID: 1, Username: "Ana", Rating: 6, Comment: "long enough comment"}, "rating"},
		{"rating negative", ReviewInput{ProductID: 1, Username: "Ana", Rating: -1, Comment: "long enough comment"}, "rating"},
		{"short comment", ReviewInput{ProductID: 1, Username: "Ana", Rating: 4, Comment: "meh"}, "comment"},
		{"long comment", ReviewInput{ProductID: 1, Username: "Ana", Rating: 4, Comment: strings.Repeat("x", 501)}, "comment"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Submit(ctx, tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
		})
	}
}

func TestReviews_ProductName(t *testing.T) {
	r, _ := newTestReviews()
	ctx := context.Background()

	assert.Equal(t, "Burger Classic", r.ProductName(ctx, 2))
	assert.Equal(t, UnknownProduct, r.ProductName(ctx, 999))
}

type unreachableAsset struct{ fetches int }

func (a *unreachableAsset) Fetch(context.Context) ([]byte, error) {
	a.fetches++
	return nil, errors.New("connection refused")
}

func TestReviews_ProductNamesWithoutCatalog(t *testing.T) {
	st := store.NewMemoryStore()
	asset := &unreachableAsset{}
	r := NewReviews(st, NewCatalog(st, asset, nil), nil)
	ctx := context.Background()

	names := r.ProductNames(ctx)
	assert.Empty(t, names)
	assert.Equal(t, UnknownProduct, NameOf(names, 1))
	assert.Equal(t, 1, asset.fetches)
}
