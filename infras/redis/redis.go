package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"bookit/config"
)

const (
	pingAttempts = 5
	pingTimeout  = 2 * time.Second
)

// New connects to the primary Redis used for caching, rate limits, BID
// counters and the sweep lock. The process cannot serve without it.
func New(cfg *config.Config) *goRedis.Client {
	client := goRedis.NewClient(Options(cfg))

	if err := Ping(context.Background(), client); err != nil {
		log.Fatal().Err(err).Str("addr", client.Options().Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", cfg.Cache.Redis.Primary.DB).
		Str("addr", client.Options().Addr).
		Msg("Connected to Redis")

	return client
}

func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	}
}

// Ping retries with exponential backoff so a Redis that starts together with
// the app is not treated as down.
func Ping(ctx context.Context, client *goRedis.Client) error {
	_, err := backoff.Retry(ctx, func() (string, error) {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		return client.Ping(pingCtx).Result()
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(pingAttempts))
	if err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	return nil
}
