package catalog

import (
	"context"

	"menu-ordering/service"
	"menu-ordering/state"
)

// Effects performs the catalog's I/O: loading the menu and the cart, and
// persisting cart and stock changes after they have been reduced.
type Effects struct {
	Catalog service.CatalogService
	Cart    service.CartService
}

func (e Effects) Run(ctx context.Context, a state.Action, s State) []state.Action {
	switch a.(type) {
	case LoadProducts:
		products, err := e.Catalog.LoadProducts(ctx)
		if err != nil {
			return []state.Action{LoadProductsFailure{Err: err}}
		}
		return []state.Action{LoadProductsSuccess{Products: products}}

	case LoadCart:
		cart, err := e.Cart.Load(ctx)
		if err != nil {
			return []state.Action{StorageFailure{Op: "load cart", Err: err}}
		}
		return []state.Action{LoadCartFromStorage{Cart: cart}}

	case AddToCart, RemoveFromCart:
		if err := e.Cart.Save(ctx, s.Cart); err != nil {
			return []state.Action{StorageFailure{Op: "save cart", Err: err}}
		}

	case ClearCart:
		if err := e.Cart.Clear(ctx); err != nil {
			return []state.Action{StorageFailure{Op: "clear cart", Err: err}}
		}

	case DecreaseProductStock, IncreaseProductStock:
		// an unloaded catalog must not overwrite the cached menu
		if len(s.Products) == 0 {
			return nil
		}
		if err := e.Catalog.SaveProducts(ctx, s.Products); err != nil {
			return []state.Action{StorageFailure{Op: "save products", Err: err}}
		}
	}
	return nil
}
