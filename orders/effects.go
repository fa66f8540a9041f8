package orders

import (
	"context"

	"menu-ordering/service"
	"menu-ordering/state"
)

// Effects forwards order requests to the order service and reports the
// outcome as success or failure actions.
type Effects struct {
	Orders service.OrderService
}

func (e Effects) Run(ctx context.Context, a state.Action, _ State) []state.Action {
	switch a := a.(type) {
	case LoadOrders:
		all, err := e.Orders.GetAll(ctx)
		if err != nil {
			return []state.Action{LoadOrdersFailure{Err: err}}
		}
		return []state.Action{LoadOrdersSuccess{Orders: all}}

	case LoadOrderByID:
		order, err := e.Orders.GetByID(ctx, a.ID)
		if err != nil {
			return []state.Action{LoadOrderByIDFailure{Err: err}}
		}
		return []state.Action{LoadOrderByIDSuccess{Order: order}}

	case CreateOrder:
		created, err := e.Orders.Create(ctx, a.Order)
		if err != nil {
			return []state.Action{CreateOrderFailure{Err: err}}
		}
		return []state.Action{CreateOrderSuccess{Order: created}}

	case UpdateOrderStatus:
		change, err := e.Orders.UpdateStatus(ctx, a.ID, a.Status)
		if err != nil {
			return []state.Action{UpdateOrderStatusFailure{Err: err}}
		}
		return []state.Action{UpdateOrderStatusSuccess{Order: change.Order, Previous: change.Previous}}

	case DeleteOrder:
		if err := e.Orders.Delete(ctx, a.ID); err != nil {
			return []state.Action{DeleteOrderFailure{Err: err}}
		}
		return []state.Action{DeleteOrderSuccess{ID: a.ID}}
	}
	return nil
}
