package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"menu-ordering/model"
	"menu-ordering/store"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// NewOrder holds the caller-supplied part of an order. Missing items,
// total and status default to empty, zero and PENDING.
type NewOrder struct {
	Items      []model.OrderItem `json:"items" validate:"dive"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	Status     model.OrderStatus `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}

// StatusChange is the result of a status update.
type StatusChange struct {
	Order    model.Order
	Previous model.OrderStatus
}

// Orders persists orders as one JSON array, newest first.
type Orders struct {
	store store.Store
	now   func() time.Time
}

func NewOrders(s store.Store) *Orders {
	return &Orders{store: s, now: time.Now}
}

func (o *Orders) GetAll(ctx context.Context) ([]model.Order, error) {
	return store.LoadList[model.Order](ctx, o.store, store.KeyOrders)
}

func (o *Orders) GetByID(ctx context.Context, id int64) (model.Order, error) {
	orders, err := o.GetAll(ctx)
	if err != nil {
		return model.Order{}, err
	}
	for _, ord := range orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return model.Order{}, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
}

func (o *Orders) Create(ctx context.Context, in NewOrder) (model.Order, error) {
	if err := validateStruct(in); err != nil {
		return model.Order{}, err
	}
	ord := model.Order{
		ID:         model.NewID(),
		Items:      in.Items,
		TotalPrice: in.TotalPrice,
		Status:     in.Status,
		CreatedAt:  o.now().UTC(),
	}
	if ord.Items == nil {
		ord.Items = []model.OrderItem{}
	}
	if ord.Status == "" {
		ord.Status = model.StatusPending
	}

	err := store.UpdateList(ctx, o.store, store.KeyOrders, func(orders []model.Order) ([]model.Order, error) {
		return append([]model.Order{ord}, orders...), nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return ord, nil
}

func (o *Orders) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (StatusChange, error) {
	if !status.Valid() {
		return StatusChange{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	var change StatusChange
	err := store.UpdateList(ctx, o.store, store.KeyOrders, func(orders []model.Order) ([]model.Order, error) {
		for i := range orders {
			if orders[i].ID == id {
				change.Previous = orders[i].Status
				orders[i].Status = status
				change.Order = orders[i]
				return orders, nil
			}
		}
		return nil, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
	})
	if err != nil {
		return StatusChange{}, err
	}
	return change, nil
}

func (o *Orders) Delete(ctx context.Context, id int64) error {
	return store.UpdateList(ctx, o.store, store.KeyOrders, func(orders []model.Order) ([]model.Order, error) {
		out := orders[:0]
		for _, ord := range orders {
			if ord.ID != id {
				out = append(out, ord)
			}
		}
		if len(out) == len(orders) {
			return nil, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
		}
		return out, nil
	})
}

// Clear drops every stored order.
func (o *Orders) Clear(ctx context.Context) error {
	return o.store.Remove(ctx, store.KeyOrders)
}
