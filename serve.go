// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/pollgram/cliparse"
	"github.com/danielhkuo/pollgram/db"
	"github.com/danielhkuo/pollgram/event"
	"github.com/danielhkuo/pollgram/metrics"
	"github.com/danielhkuo/pollgram/notify"
	"github.com/danielhkuo/pollgram/router"
	"github.com/danielhkuo/pollgram/social"
	"github.com/danielhkuo/pollgram/store/sqlstore"
	"github.com/danielhkuo/pollgram/voting"
)

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
	}
	flags := cliparse.RegisterFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := flags.Load()
		if err != nil {
			return err
		}
		if cfg.Debug {
			globalFlags.debug = true
		}
		return serveRun(cmd.Context(), cfg, commonRun())
	}
	return cmd
}

func serveRun(ctx context.Context, cfg cliparse.Config, logger *slog.Logger) error {
	conn, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close(conn)

	if err := db.CreateSchema(conn); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	logger.Info("Database schema ready", "type", cfg.DatabaseType)

	st := sqlstore.New(conn)
	m := metrics.New()
	bus := event.NewBus(m.Registry(), logger, cfg.EventWorkers)
	defer bus.Stop()

	graph := social.NewGraph(st, bus)
	graph.Subscribe(bus)
	notifier := notify.New(st.Notification())
	notifier.Subscribe(bus)

	svc := voting.NewService(st, graph,
		voting.WithPublisher(bus),
		voting.WithMetrics(m),
		voting.WithStrictChoiceOrders(cfg.StrictChoiceOrders),
	)

	server := &http.Server{
		Addr: ":" + strconv.Itoa(cfg.Port),
		Handler: router.NewHandler(router.Deps{
			Config:   cfg,
			Store:    st,
			Voting:   svc,
			Graph:    graph,
			Users:    social.NewDirectory(st, bus),
			Notifier: notifier,
			Metrics:  m,
		}),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("Listening", "port", cfg.Port)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server closed")
	return nil
}
