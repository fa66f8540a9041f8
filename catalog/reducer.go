package catalog

import (
	"menu-ordering/model"
	"menu-ordering/state"
)

// Reduce never edits slices of prev in place; every change allocates.
func Reduce(s State, a state.Action) State {
	switch a := a.(type) {
	case LoadProducts:
		s.Loading = true
		s.Err = nil
	case LoadProductsSuccess:
		s.Products = nonNil(a.Products)
		s.Loading = false
	case LoadProductsFailure:
		s.Products = []model.Product{}
		s.Loading = false
		s.Err = a.Err

	case AddToCart:
		s.Cart = addToCart(s.Cart, a.Product)
		s.Err = nil
	case RemoveFromCart:
		s.Cart = removeFromCart(s.Cart, a.ProductID)
		s.Err = nil
	case ClearCart:
		s.Cart = []model.CartItem{}
		s.Err = nil
	case LoadCartFromStorage:
		s.Cart = nonNil(a.Cart)

	case SetCategory:
		s.SelectedCategory = a.Category
	case SetSearchTerm:
		s.SearchTerm = a.SearchTerm

	case DecreaseProductStock:
		s.Products = mapProduct(s.Products, a.ProductID, func(p model.Product) model.Product {
			return p.DecreaseStock(a.Quantity)
		})
	case IncreaseProductStock:
		s.Products = mapProduct(s.Products, a.ProductID, func(p model.Product) model.Product {
			return p.IncreaseStock(a.Quantity)
		})

	case Checkout:
		s.Err = nil
		s.LastOrder = nil
	case CheckoutSuccess:
		order := a.Order
		s.LastOrder = &order
	case CheckoutFailure:
		s.Err = a.Err
	case StorageFailure:
		s.Err = a.Err
	}
	return s
}

func addToCart(cart []model.CartItem, p model.Product) []model.CartItem {
	out := make([]model.CartItem, 0, len(cart)+1)
	found := false
	for _, it := range cart {
		if it.ID == p.ID {
			it.Quantity++
			found = true
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, model.CartItem{Product: p, Quantity: 1})
	}
	return out
}

// removeFromCart drops one unit, removing the line at quantity one.
func removeFromCart(cart []model.CartItem, productID int64) []model.CartItem {
	out := make([]model.CartItem, 0, len(cart))
	for _, it := range cart {
		if it.ID == productID {
			if it.Quantity <= 1 {
				continue
			}
			it.Quantity--
		}
		out = append(out, it)
	}
	return out
}

func mapProduct(products []model.Product, id int64, fn func(model.Product) model.Product) []model.Product {
	out := make([]model.Product, len(products))
	for i, p := range products {
		if p.ID == id {
			p = fn(p)
		}
		out[i] = p
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
