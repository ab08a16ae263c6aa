package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swapverse/swapverse/app/health"
)

// metricsServer serves /metrics and the health endpoints
type metricsServer struct {
	srv    *http.Server
	logger log.Logger
}

func newMetricsServer(addr string, checker *health.Checker, logger log.Logger) *metricsServer {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	checker.RegisterRoutes(router)

	handler := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(router)
	handler = handlers.CompressHandler(handler)
	handler = handlers.CombinedLoggingHandler(os.Stderr, handler)

	return &metricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger.With("module", "metrics"),
	}
}

// start runs the server in the background. Errors after startup are logged
// but not fatal.
func (m *metricsServer) start() {
	go func() {
		m.logger.Info("starting metrics server", "address", m.srv.Addr)
		if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("metrics server error", "error", err)
		}
	}()
}

func (m *metricsServer) shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
