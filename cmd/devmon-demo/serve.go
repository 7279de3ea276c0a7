package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/devmon/pkg/devmon"
	"github.com/vango-dev/devmon/pkg/telemetry"
	"github.com/vango-dev/devmon/pkg/wsbridge"
)

// serveCmd runs the demo HTTP server.
func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page, WebSocket endpoint and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}

func serve(addr string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	bridgeCfg := wsbridge.DefaultConfig()
	bridgeCfg.Logger = logger
	bridge := wsbridge.New(bridgeCfg)

	monitor := devmon.New(bridge,
		devmon.WithLogger(logger),
		devmon.WithObserver(telemetry.Multi(
			telemetry.Prometheus(),
			telemetry.OpenTelemetry(),
		)),
	)

	monitor.AddSizeChangeListener(func(args ...any) {
		logger.Info("size class changed",
			"size", monitor.Size(),
			"width", monitor.Width(),
			"height", monitor.Height(),
		)
	}, false)

	monitor.AddOrientationChangeListener(func(args ...any) {
		logger.Info("orientation event",
			"orientation", monitor.Orientation(),
		)
	}, false)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/", servePage)
	r.Handle("/devmon/ws", bridge)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// servePage serves the embedded demo page.
func servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(demoPage))
}
