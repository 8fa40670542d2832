package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/awaygame-sync/internal/config"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
)

// StartMetricsServer serves /metrics and /healthz on METRICS_ADDR, plus the
// pprof endpoints when METRICS_PPROF_ENABLED is set. It returns nil when no
// address is configured.
func StartMetricsServer(cfg config.Config, metrics http.Handler, logger *logging.Logger) *http.Server {
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.MetricsAddr == "" {
		logger.Info("metrics server disabled", "reason", "METRICS_ADDR empty")
		return nil
	}

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           newMetricsMux(metrics, cfg.MetricsPprofEnabled),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", "addr", cfg.MetricsAddr, "pprof", cfg.MetricsPprofEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return srv
}

func newMetricsMux(metrics http.Handler, withPprof bool) *http.ServeMux {
	mux := http.NewServeMux()
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if withPprof {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return mux
}

func StopMetricsServer(srv *http.Server, logger *logging.Logger, timeout time.Duration) error {
	if srv == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("metrics server stopped")

	return nil
}
