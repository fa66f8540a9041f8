package orders

import (
	"menu-ordering/model"
	"menu-ordering/state"
)

// Reduce mirrors each request/success/failure triple: the request sets
// Loading and clears Err, success applies the result, failure records Err.
func Reduce(s State, a state.Action) State {
	switch a := a.(type) {
	case LoadOrders, LoadOrderByID, CreateOrder, UpdateOrderStatus, DeleteOrder:
		s.Loading = true
		s.Err = nil

	case LoadOrdersSuccess:
		s.Orders = a.Orders
		if s.Orders == nil {
			s.Orders = []model.Order{}
		}
		s.Loading = false

	case LoadOrderByIDSuccess:
		order := a.Order
		s.SelectedOrder = &order
		s.Loading = false

	case CreateOrderSuccess:
		s.Orders = append([]model.Order{a.Order}, s.Orders...)
		s.Loading = false

	case UpdateOrderStatusSuccess:
		out := make([]model.Order, len(s.Orders))
		for i, o := range s.Orders {
			if o.ID == a.Order.ID {
				o = a.Order
			}
			out[i] = o
		}
		s.Orders = out
		if s.SelectedOrder != nil && s.SelectedOrder.ID == a.Order.ID {
			order := a.Order
			s.SelectedOrder = &order
		}
		s.Loading = false

	case DeleteOrderSuccess:
		out := make([]model.Order, 0, len(s.Orders))
		for _, o := range s.Orders {
			if o.ID != a.ID {
				out = append(out, o)
			}
		}
		s.Orders = out
		if s.SelectedOrder != nil && s.SelectedOrder.ID == a.ID {
			s.SelectedOrder = nil
		}
		s.Loading = false

	case LoadOrdersFailure:
		s.Err, s.Loading = a.Err, false
	case LoadOrderByIDFailure:
		s.Err, s.Loading = a.Err, false
	case CreateOrderFailure:
		s.Err, s.Loading = a.Err, false
	case UpdateOrderStatusFailure:
		s.Err, s.Loading = a.Err, false
	case DeleteOrderFailure:
		s.Err, s.Loading = a.Err, false
	}
	return s
}
