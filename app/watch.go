package app

import (
	"context"

	"go.uber.org/zap"

	"menu-ordering/catalog"
)

// WatchState logs a summary of every state change at debug level until ctx
// is done. Intermediate states may be skipped when changes arrive faster
// than they are logged.
func WatchState(ctx context.Context, s *Store, log *zap.Logger) {
	ch, cancel := s.Subscribe(8)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			log.Debug("state changed",
				zap.Int("products", len(st.Catalog.Products)),
				zap.Int("cart_items", catalog.SelectCartItemCount(st.Catalog)),
				zap.String("cart_total", catalog.SelectCartTotal(st.Catalog).StringFixed(2)),
				zap.Int("orders", len(st.Orders.Orders)),
			)
		}
	}
}
