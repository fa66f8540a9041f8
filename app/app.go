// Package app wires the catalog and orders slices into one store.
package app

import (
	"context"

	"go.uber.org/zap"

	"menu-ordering/catalog"
	"menu-ordering/orders"
	"menu-ordering/service"
	"menu-ordering/state"
)

type AppState struct {
	Catalog catalog.State
	Orders  orders.State
}

func Initial() AppState {
	return AppState{Catalog: catalog.Initial(), Orders: orders.Initial()}
}

// Reduce hands every action to both slices.
func Reduce(s AppState, a state.Action) AppState {
	return AppState{
		Catalog: catalog.Reduce(s.Catalog, a),
		Orders:  orders.Reduce(s.Orders, a),
	}
}

type Store = state.Store[AppState]

// Deps are the services the effects talk to.
type Deps struct {
	Catalog service.CatalogService
	Cart    service.CartService
	Orders  service.OrderService
	Log     *zap.Logger
	// HistorySize bounds the recorded action history; zero keeps the
	// store default.
	HistorySize int
}

func New(d Deps) *Store {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	catalogFx := catalog.Effects{Catalog: d.Catalog, Cart: d.Cart}
	ordersFx := orders.Effects{Orders: d.Orders}
	checkoutFx := checkoutEffects{orders: d.Orders, log: d.Log}

	opts := []state.Option[AppState]{
		state.WithEffects[AppState](
			state.Scope(selectCatalog, catalogFx.Run),
			state.Scope(selectOrders, ordersFx.Run),
			checkoutFx.checkout,
			restockOnCancel,
		),
		state.WithLogger[AppState](d.Log.Named("store")),
	}
	if d.HistorySize > 0 {
		opts = append(opts, state.WithHistory[AppState](d.HistorySize))
	}
	return state.New(Initial(), Reduce, opts...)
}

// Bootstrap loads the menu, the saved cart and the order list.
func Bootstrap(ctx context.Context, s *Store) AppState {
	s.Dispatch(ctx, catalog.LoadProducts{})
	s.Dispatch(ctx, catalog.LoadCart{})
	return s.Dispatch(ctx, orders.LoadOrders{})
}

func selectCatalog(s AppState) catalog.State { return s.Catalog }
func selectOrders(s AppState) orders.State   { return s.Orders }
