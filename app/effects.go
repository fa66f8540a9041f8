package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"menu-ordering/catalog"
	"menu-ordering/model"
	"menu-ordering/orders"
	"menu-ordering/service"
	"menu-ordering/state"
)

type checkoutEffects struct {
	orders service.OrderService
	log    *zap.Logger
}

// checkout turns the cart into a PENDING order, takes the ordered
// quantities out of stock and empties the cart.
func (e checkoutEffects) checkout(ctx context.Context, a state.Action, s AppState) []state.Action {
	if _, ok := a.(catalog.Checkout); !ok {
		return nil
	}
	cart := s.Catalog.Cart
	if len(cart) == 0 {
		return []state.Action{catalog.CheckoutFailure{Err: catalog.ErrEmptyCart}}
	}

	items := make([]model.OrderItem, 0, len(cart))
	for _, it := range cart {
		items = append(items, model.OrderItemFromCart(it))
	}
	total := catalog.SelectCartTotal(s.Catalog)

	order, err := e.orders.Create(ctx, service.NewOrder{
		Items:      items,
		TotalPrice: total,
		Status:     model.StatusPending,
	})
	if err != nil {
		return []state.Action{catalog.CheckoutFailure{Err: err}}
	}
	e.log.Info("checkout",
		zap.Int64("order_id", order.ID),
		zap.Int("lines", len(items)),
		zap.String("total", total.StringFixed(2)),
	)

	out := []state.Action{orders.CreateOrderSuccess{Order: order}}
	for _, it := range cart {
		out = append(out, catalog.DecreaseProductStock{ProductID: it.ID, Quantity: it.Quantity})
	}
	return append(out, catalog.ClearCart{}, catalog.CheckoutSuccess{Order: order})
}

// restockOnCancel returns an order's quantities to stock when it moves to
// CANCELLED from any other status.
func restockOnCancel(_ context.Context, a state.Action, _ AppState) []state.Action {
	upd, ok := a.(orders.UpdateOrderStatusSuccess)
	if !ok || upd.Order.Status != model.StatusCancelled || upd.Previous == model.StatusCancelled {
		return nil
	}
	out := make([]state.Action, 0, len(upd.Order.Items))
	for _, it := range upd.Order.Items {
		out = append(out, catalog.IncreaseProductStock{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

// CartSummary is the cart with its derived totals.
type CartSummary struct {
	Items []model.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
	Count int              `json:"count"`
}

func SelectCartSummary(s AppState) CartSummary {
	return CartSummary{
		Items: catalog.SelectCart(s.Catalog),
		Total: catalog.SelectCartTotal(s.Catalog),
		Count: catalog.SelectCartItemCount(s.Catalog),
	}
}
