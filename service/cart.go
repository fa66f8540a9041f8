package service

import (
	"context"

	"menu-ordering/model"
	"menu-ordering/store"
)

// Cart persists the cart lines under the cart key.
type Cart struct {
	store store.Store
}

func NewCart(s store.Store) *Cart { return &Cart{store: s} }

func (c *Cart) Load(ctx context.Context) ([]model.CartItem, error) {
	return store.LoadList[model.CartItem](ctx, c.store, store.KeyCart)
}

func (c *Cart) Save(ctx context.Context, items []model.CartItem) error {
	return store.SaveList(ctx, c.store, store.KeyCart, items)
}

// Clear removes the cart key entirely.
func (c *Cart) Clear(ctx context.Context) error {
	return c.store.Remove(ctx, store.KeyCart)
}
