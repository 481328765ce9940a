package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"palette/internal/engine"
	"palette/internal/metrics"
	"palette/internal/server"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd returns the HTTP server command
func ServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the palette over HTTP",
		Long: `Serve one palette instance over HTTP:

  GET  /snapshot          current state
  PUT  /query             {"query": "..."}
  POST /navigate/{kind}   next, prev, first, last, nextGroup, prevGroup
  POST /select            {"value": "..."}
  POST /activate          activate the selected item
  GET  /metrics           Prometheus metrics (when enabled)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Metrics.Addr
			}

			log, err := newLogger(cfg.Logging, "")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			rec, err := metrics.NewRecorder(reg)
			if err != nil {
				return err
			}

			e, err := newEngine(cfg, engine.WithLogger(log), engine.WithRecorder(rec))
			if err != nil {
				return err
			}
			defer e.Close()

			routeOpts := server.Options{
				Middleware: []func(http.Handler) http.Handler{rec.Middleware()},
			}
			if cfg.Metrics.Enabled {
				routeOpts.Gatherer = reg
			}

			srv := &http.Server{
				Addr:         addr,
				Handler:      server.New(e, log).Routes(routeOpts),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}
			return listen(srv, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to metrics.addr from the config)")
	return cmd
}

// listen runs srv until SIGINT/SIGTERM, then shuts it down gracefully
func listen(srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server stopped gracefully")
	return nil
}
