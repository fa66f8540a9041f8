// Package catalog holds the menu and cart slice of application state.
package catalog

import (
	"errors"

	"menu-ordering/model"
)

// ErrEmptyCart is reported when checking out with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

type State struct {
	Products         []model.Product
	Cart             []model.CartItem
	SelectedCategory string
	SearchTerm       string
	Loading          bool

	// LastOrder is the order created by the most recent successful checkout.
	LastOrder *model.Order
	// Err is the most recent failure, cleared by the next request.
	Err error
}

func Initial() State {
	return State{
		Products:         []model.Product{},
		Cart:             []model.CartItem{},
		SelectedCategory: model.AllCategories,
	}
}
