package orders

import (
	"menu-ordering/model"
	"menu-ordering/service"
)

type (
	LoadOrders        struct{}
	LoadOrdersSuccess struct{ Orders []model.Order }
	LoadOrdersFailure struct{ Err error }

	LoadOrderByID        struct{ ID int64 }
	LoadOrderByIDSuccess struct{ Order model.Order }
	LoadOrderByIDFailure struct{ Err error }

	CreateOrder        struct{ Order service.NewOrder }
	CreateOrderSuccess struct{ Order model.Order }
	CreateOrderFailure struct{ Err error }

	UpdateOrderStatus struct {
		ID     int64
		Status model.OrderStatus
	}
	UpdateOrderStatusSuccess struct {
		Order    model.Order
		Previous model.OrderStatus
	}
	UpdateOrderStatusFailure struct{ Err error }

	DeleteOrder        struct{ ID int64 }
	DeleteOrderSuccess struct{ ID int64 }
	DeleteOrderFailure struct{ Err error }
)

func (LoadOrders) Type() string               { return "[Orders] Load Orders" }
func (LoadOrdersSuccess) Type() string        { return "[Orders] Load Orders Success" }
func (LoadOrdersFailure) Type() string        { return "[Orders] Load Orders Failure" }
func (LoadOrderByID) Type() string            { return "[Orders] Load Order By Id" }
func (LoadOrderByIDSuccess) Type() string     { return "[Orders] Load Order By Id Success" }
func (LoadOrderByIDFailure) Type() string     { return "[Orders] Load Order By Id Failure" }
func (CreateOrder) Type() string              { return "[Orders] Create Order" }
func (CreateOrderSuccess) Type() string       { return "[Orders] Create Order Success" }
func (CreateOrderFailure) Type() string       { return "[Orders] Create Order Failure" }
func (UpdateOrderStatus) Type() string        { return "[Orders] Update Order Status" }
func (UpdateOrderStatusSuccess) Type() string { return "[Orders] Update Order Status Success" }
func (UpdateOrderStatusFailure) Type() string { return "[Orders] Update Order Status Failure" }
func (DeleteOrder) Type() string              { return "[Orders] Delete Order" }
func (DeleteOrderSuccess) Type() string       { return "[Orders] Delete Order Success" }
func (DeleteOrderFailure) Type() string       { return "[Orders] Delete Order Failure" }
