package service

import (
	"context"

	"menu-ordering/model"
)

type OrderService interface {
	GetAll(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id int64) (model.Order, error)
	Create(ctx context.Context, in NewOrder) (model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (StatusChange, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

type CatalogService interface {
	LoadProducts(ctx context.Context) ([]model.Product, error)
	SaveProducts(ctx context.Context, products []model.Product) error
	Reset(ctx context.Context) error
}

type CartService interface {
	Load(ctx context.Context) ([]model.CartItem, error)
	Save(ctx context.Context, items []model.CartItem) error
	Clear(ctx context.Context) error
}

type ReviewService interface {
	List(ctx context.Context) ([]model.Review, error)
	Submit(ctx context.Context, in ReviewInput) (model.Review, error)
	ProductNames(ctx context.Context) map[int64]string
	ProductName(ctx context.Context, productID int64) string
}

var (
	_ OrderService   = (*Orders)(nil)
	_ CatalogService = (*Catalog)(nil)
	_ CartService    = (*Cart)(nil)
	_ ReviewService  = (*Reviews)(nil)
)
