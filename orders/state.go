// Package orders holds the order list slice of application state.
package orders

import "menu-ordering/model"

type State struct {
	Orders        []model.Order
	SelectedOrder *model.Order
	Loading       bool
	Err           error
}

func Initial() State {
	return State{Orders: []model.Order{}}
}
