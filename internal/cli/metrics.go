package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// serveMetrics exposes gatherer on http://<addr>/metrics until ctx ends and
// returns the bound address.
func serveMetrics(ctx context.Context, addr string, gatherer prometheus.Gatherer) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listening for metrics: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return ln.Addr().String(), nil
}

// FlushMetrics writes the metrics gathered by this process to MetricsFile
// in the Prometheus text format, replacing the previous snapshot. It does
// nothing when no file is configured.
func (a *App) FlushMetrics() error {
	if a.MetricsFile == "" || a.Metrics == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.MetricsFile), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(a.MetricsFile, a.Metrics); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
