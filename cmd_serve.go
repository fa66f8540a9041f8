package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"menu-ordering/app"
	"menu-ordering/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := openEnv(ctx, nil)
	if err != nil {
		return err
	}
	defer env.Close()
	log := env.log

	st := env.newStore()
	boot := app.Bootstrap(ctx, st)
	log.Info("state loaded",
		zap.Int("products", len(boot.Catalog.Products)),
		zap.Int("cart_lines", len(boot.Catalog.Cart)),
		zap.Int("orders", len(boot.Orders.Orders)),
	)
	if boot.Catalog.Err != nil {
		log.Warn("menu unavailable, serving an empty catalog", zap.Error(boot.Catalog.Err))
	}

	h := handler.NewHandler(st, env.reviews, log.Named("http"))
	h.MaxBodySize = env.cfg.HTTP.MaxBodySize

	srv := &http.Server{
		Addr:         env.cfg.HTTP.Addr,
		Handler:      h.Router(),
		ReadTimeout:  env.cfg.HTTP.ReadTimeout,
		WriteTimeout: env.cfg.HTTP.WriteTimeout,
		IdleTimeout:  env.cfg.HTTP.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.WatchState(gctx, st, log.Named("state"))
		return nil
	})
	g.Go(func() error {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", env.cfg.Storage.Backend),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), env.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	log.Info("server exited")
	return nil
}
