package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"menu-ordering/model"
	"menu-ordering/store"
)

// Catalog serves products from the menu key, filling it from the static
// asset the first time.
type Catalog struct {
	store  store.Store
	source AssetSource
	log    *zap.Logger
}

func NewCatalog(s store.Store, source AssetSource, log *zap.Logger) *Catalog {
	if source == nil {
		source = EmbeddedAsset{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{store: s, source: source, log: log}
}

func (c *Catalog) LoadProducts(ctx context.Context) ([]model.Product, error) {
	raw, err := c.store.Get(ctx, store.KeyMenu)
	if err == nil {
		products, err := decodeMenu(raw)
		if err != nil {
			return nil, fmt.Errorf("decode cached menu: %w", err)
		}
		return products, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	raw, err = c.source.Fetch(ctx)
	if err != nil {
		c.log.Error("menu asset fetch failed", zap.Error(err))
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	products, err := decodeMenu(raw)
	if err != nil {
		c.log.Error("menu asset is malformed", zap.Error(err))
		return nil, fmt.Errorf("decode menu asset: %w", err)
	}
	if err := c.SaveProducts(ctx, products); err != nil {
		return nil, err
	}
	c.log.Info("menu cached", zap.Int("products", len(products)))
	return products, nil
}

func (c *Catalog) SaveProducts(ctx context.Context, products []model.Product) error {
	return store.SaveList(ctx, c.store, store.KeyMenu, products)
}

// Reset drops the cached menu so the next load refetches the asset.
func (c *Catalog) Reset(ctx context.Context) error {
	return c.store.Remove(ctx, store.KeyMenu)
}

// decodeMenu accepts either a bare product array or {"products": [...]}.
func decodeMenu(raw []byte) ([]model.Product, error) {
	trimmed := bytes.TrimSpace(raw)
	var products []model.Product
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, err
		}
	} else {
		var doc struct {
			Products []model.Product `json:"products"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		products = doc.Products
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}
