package catalog

import "menu-ordering/model"

type (
	LoadProducts        struct{}
	LoadProductsSuccess struct{ Products []model.Product }
	LoadProductsFailure struct{ Err error }

	AddToCart      struct{ Product model.Product }
	RemoveFromCart struct{ ProductID int64 }
	ClearCart      struct{}

	SetCategory   struct{ Category string }
	SetSearchTerm struct{ SearchTerm string }

	LoadCart            struct{}
	LoadCartFromStorage struct{ Cart []model.CartItem }

	DecreaseProductStock struct {
		ProductID int64
		Quantity  int
	}
	IncreaseProductStock struct {
		ProductID int64
		Quantity  int
	}

	Checkout        struct{}
	CheckoutSuccess struct{ Order model.Order }
	CheckoutFailure struct{ Err error }

	// StorageFailure reports a failed read or write of persisted state.
	StorageFailure struct {
		Op  string
		Err error
	}
)

func (LoadProducts) Type() string         { return "[Product] Load Products" }
func (LoadProductsSuccess) Type() string  { return "[Product] Load Products Success" }
func (LoadProductsFailure) Type() string  { return "[Product] Load Products Failure" }
func (AddToCart) Type() string            { return "[Cart] Add To Cart" }
func (RemoveFromCart) Type() string       { return "[Cart] Remove From Cart" }
func (ClearCart) Type() string            { return "[Cart] Clear Cart" }
func (SetCategory) Type() string          { return "[Filter] Set Category" }
func (SetSearchTerm) Type() string        { return "[Filter] Set Search Term" }
func (LoadCart) Type() string             { return "[Cart] Load" }
func (LoadCartFromStorage) Type() string  { return "[Cart] Load From Storage" }
func (DecreaseProductStock) Type() string { return "[Stock] Decrease Product Stock" }
func (IncreaseProductStock) Type() string { return "[Stock] Increase Product Stock" }
func (Checkout) Type() string             { return "[Cart] Checkout" }
func (CheckoutSuccess) Type() string      { return "[Cart] Checkout Success" }
func (CheckoutFailure) Type() string      { return "[Cart] Checkout Failure" }
func (StorageFailure) Type() string       { return "[Catalog] Storage Failure" }
