package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/courierflow/courier"
	httpadapter "github.com/courierflow/courier/internal/adapters/http"
	"github.com/courierflow/courier/internal/config"
	"github.com/courierflow/courier/internal/logging"
	"github.com/courierflow/courier/pkg/adapters/console"
	"github.com/courierflow/courier/pkg/adapters/memory"
	"github.com/courierflow/courier/pkg/adapters/redis"
	"github.com/courierflow/courier/pkg/observability"
	"github.com/courierflow/courier/pkg/ports"
	"github.com/courierflow/courier/pkg/triage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the triage HTTP server",
	Long:  `Starts courier in server mode, exposing the workflow as a JSON API with health and metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.New(level)

		var store ports.ResultStore
		if cfg.Redis.Addr != "" {
			redisStore := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
				redis.WithTTL(cfg.Redis.TTLDuration()))
			defer redisStore.Close()
			store = redisStore
			logger.Info("using redis outcome archive", "addr", cfg.Redis.Addr)
		} else {
			store = memory.NewStore()
			logger.Info("using in-memory outcome archive")
		}

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		opts := []courier.Option{
			courier.WithLogger(logger),
			courier.WithStore(store),
			courier.WithMetrics(metrics),
		}
		if cfg.UnflaggedFallback {
			opts = append(opts, courier.WithUnflaggedFallback())
		}

		svc, err := courier.New(triage.Collaborators{
			Classifier: memory.DefaultClassifier(),
			Responder:  memory.NewResponder(),
			Notifier:   console.New(console.WithPlainOutput()),
		}, opts...)
		if err != nil {
			return err
		}

		handler := httpadapter.NewHandler(svc, store, registry, logger)
		srv := &nethttp.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting courier server", "addr", cfg.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("config", "", "Path to the YAML config file")
	rootCmd.AddCommand(serveCmd)
}
