// Package handler exposes the booking API as a single serverless function.
package handler

import (
	"net/http"
	"sync"

	"bookit/config"
	"bookit/di"
	"bookit/infras/metrics"
	"bookit/shared/logger"
)

var (
	once sync.Once
	mux  http.Handler
)

// Handler serves one request. The container builds the router on the first
// call and reuses it while warm. The sweeper does not run here, schedulers hit
// the internal sweep route instead.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.Configure(cfg)
		metrics.Register()

		mux = di.InitializeService().HTTP.Handler()
	})

	r.RequestURI = r.URL.String()

	mux.ServeHTTP(w, r)
}
