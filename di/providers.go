package di

import (
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"bookit/config"
	"bookit/infras/otel"
	"bookit/internal/worker"
	"bookit/shared/ratelimit"
	"bookit/transport/http"
)

const intakeLimiterPrefix = "limiter:intake"

// App is everything cmd/app runs.
type App struct {
	HTTP    *http.HTTP
	Sweeper *worker.Sweeper
	Otel    otel.Otel
}

func provideIntakeLimiter(client *goRedis.Client, otel otel.Otel, cfg *config.Config) ratelimit.Limiter {
	window := time.Duration(cfg.Booking.IntakeLimit.WindowSeconds) * time.Second

	return ratelimit.NewSlidingWindow(client, otel, intakeLimiterPrefix, cfg.Booking.IntakeLimit.MaxRequests, window)
}
