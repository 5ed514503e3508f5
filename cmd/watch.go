package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"member-organizer/internal/eslint"
	"member-organizer/internal/watcher"

	"github.com/spf13/cobra"
)

var (
	metricsAddr string
	enablePprof bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Organize TypeScript files as they are saved",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	watchCmd.Flags().BoolVar(&enablePprof, "pprof", false, "serve pprof profiles next to the metrics")
}

// newMetricsMux exposes the run metrics and, when enabled, the pprof handlers.
func newMetricsMux(withPprof bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	if withPprof {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return mux
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}

	addr := app.cfg.Watch.MetricsAddr
	if cmd.Flags().Changed("metrics-addr") {
		addr = metricsAddr
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	w, err := watcher.New(abs, app.organize, app.scanner, app.logger, watcher.Options{
		Debounce:     time.Duration(app.cfg.Watch.DebounceMillis) * time.Millisecond,
		Invalidator:  app.policy,
		IsConfigFile: eslint.IsConfigFile,
	})
	if err != nil {
		return err
	}
	// a failed Start releases the OS watches itself
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	var server *http.Server
	if addr != "" {
		server = &http.Server{Addr: addr, Handler: newMetricsMux(enablePprof)}
		go func() {
			app.logger.Info("metrics server starting on %s", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				app.logger.Error("metrics server error: %v", err)
			}
		}()
	}

	// Handle system signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	select {
	case <-signals:
		app.logger.Info("received shutdown signal, shutting down gracefully...")
	case <-ctx.Done():
	}

	if server != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("metrics server shutdown: %v", err)
		}
	}

	stats := w.Stats()
	app.logger.Info("watch finished: %d events, %d organized, %d changed, %d errors",
		stats.Events, stats.Organized, stats.Changed, stats.Errors)
	return nil
}
