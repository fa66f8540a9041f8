package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"menu-ordering/app"
	"menu-ordering/config"
	"menu-ordering/logger"
	"menu-ordering/service"
	"menu-ordering/store"
)

// appEnv is everything a subcommand needs, built from configuration.
type appEnv struct {
	cfg     *config.Config
	log     *zap.Logger
	store   store.Store
	catalog *service.Catalog
	cart    *service.Cart
	orders  *service.Orders
	reviews *service.Reviews
}

// openEnv loads configuration and opens storage. A non-nil logOut takes
// the place of a stdout log output, keeping command output parseable.
func openEnv(ctx context.Context, logOut io.Writer) (*appEnv, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	var log *zap.Logger
	if logOut != nil && (cfg.Log.Output == "" || strings.EqualFold(cfg.Log.Output, "stdout")) {
		log = logger.NewTo(cfg.Log, logOut)
	} else {
		log = logger.New(cfg.Log)
	}
	log = log.With(zap.String("app", cfg.App.Name))

	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	var source service.AssetSource = service.EmbeddedAsset{}
	if cfg.Catalog.AssetURL != "" {
		source = service.NewHTTPAsset(cfg.Catalog.AssetURL, cfg.Catalog.FetchTimeout)
	}
	cat := service.NewCatalog(st, source, log.Named("catalog"))

	return &appEnv{
		cfg:     cfg,
		log:     log,
		store:   st,
		catalog: cat,
		cart:    service.NewCart(st),
		orders:  service.NewOrders(st),
		reviews: service.NewReviews(st, cat, log.Named("reviews")),
	}, nil
}

func (e *appEnv) newStore() *app.Store {
	return app.New(app.Deps{
		Catalog:     e.catalog,
		Cart:        e.cart,
		Orders:      e.orders,
		Log:         e.log,
		HistorySize: e.cfg.State.HistorySize,
	})
}

func (e *appEnv) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing store", zap.Error(err))
	}
	_ = e.log.Sync()
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
