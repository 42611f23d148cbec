package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/schooltech/scheduler-core/internal/metrics"
	"github.com/schooltech/scheduler-core/pkg/errors"
	"github.com/schooltech/scheduler-core/pkg/storage"
)

// startMetricsServer brings up the opt-in /metrics, /healthz, and
// /reports/:token HTTP surface on addr, returning the collector that
// feeds it and a shutdown func. Callers that never pass --metrics-addr
// never call this, so no port is bound by default.
func startMetricsServer(app *appContext, addr string) (*metrics.Collector, func(context.Context) error, error) {
	collector := metrics.NewCollector()

	store, err := storage.NewDir(app.cfg.Reports.StorageDir)
	if err != nil {
		return nil, nil, errors.InputError("prepare report storage for metrics server", err)
	}
	signer := storage.NewSigner(app.cfg.Reports.SignedURLSecret, app.cfg.Reports.SignedURLTTL)

	server := metrics.NewServer(collector, store, signer, app.log)
	httpServer := &http.Server{Addr: addr, Handler: server.Handler()}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.log.Sugar().Warnf("metrics server stopped: %v", err)
		}
	}()
	fmt.Printf("Metrics server listening on %s\n", addr)

	return collector, httpServer.Shutdown, nil
}
