package ratelimit

//go:generate go run go.uber.org/mock/mockgen -source=./ratelimit.go -destination=./mocks/ratelimit_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bookit/infras/otel"
)

const (
	otelScopeName         = "ratelimit"
	otelLimiterKeyAttr    = "ratelimit.key"
	otelLimiterResultAttr = "ratelimit.allowed"
)

// slidingWindowScript trims entries older than the window, counts the rest and
// records the attempt only when the count is still under the limit. An empty
// member only reports whether an attempt would pass.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
	local retry = window
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	if oldest[2] then
		retry = tonumber(oldest[2]) + window - now
	end

	return {0, count, retry}
end

if ARGV[4] == '' then
	return {1, count, 0}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)

return {1, count + 1, 0}
`)

type Result struct {
	Allowed    bool
	Count      int
	Limit      int
	RetryAfter time.Duration
}

type Limiter interface {
	// Allow checks and records an attempt in one step.
	Allow(ctx context.Context, key string) (Result, error)
	// Check reports whether an attempt would pass without recording it.
	Check(ctx context.Context, key string) (Result, error)
	// Record counts an attempt that already went through.
	Record(ctx context.Context, key string) error
}

type Option func(*slidingWindow)

// WithClock replaces the wall clock used to score attempts.
func WithClock(now func() time.Time) Option {
	return func(s *slidingWindow) {
		s.now = now
	}
}

type slidingWindow struct {
	client *redis.Client
	otel   otel.Otel
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewSlidingWindow counts attempts per key over a trailing window held in a Redis sorted set.
func NewSlidingWindow(client *redis.Client, otl otel.Otel, prefix string, limit int, window time.Duration, opts ...Option) Limiter {
	limiter := &slidingWindow{
		client: client,
		otel:   otl,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(limiter)
	}

	return limiter
}

func (s *slidingWindow) Allow(ctx context.Context, key string) (res Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Allow")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	redisKey := s.key(key)
	scope.SetAttribute(otelLimiterKeyAttr, redisKey)

	res, err = s.evaluate(ctx, redisKey, s.member())
	if err != nil {
		return res, err
	}

	scope.SetAttribute(otelLimiterResultAttr, res.Allowed)

	return res, nil
}

func (s *slidingWindow) Check(ctx context.Context, key string) (res Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Check")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	redisKey := s.key(key)
	scope.SetAttribute(otelLimiterKeyAttr, redisKey)

	res, err = s.evaluate(ctx, redisKey, "")
	if err != nil {
		return res, err
	}

	scope.SetAttribute(otelLimiterResultAttr, res.Allowed)

	return res, nil
}

func (s *slidingWindow) Record(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Record")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	redisKey := s.key(key)
	scope.SetAttribute(otelLimiterKeyAttr, redisKey)

	now := s.now()

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: s.memberAt(now)})
		pipe.PExpire(ctx, redisKey, s.window)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record rate limit attempt: %w", err)
	}

	return nil
}

func (s *slidingWindow) evaluate(ctx context.Context, redisKey, member string) (res Result, err error) {
	now := s.now().UnixMilli()

	values, err := slidingWindowScript.Run(ctx, s.client, []string{redisKey}, now, s.window.Milliseconds(), s.limit, member).Int64Slice()
	if err != nil {
		return res, fmt.Errorf("failed to evaluate rate limit: %w", err)
	}

	if len(values) != 3 {
		return res, fmt.Errorf("unexpected rate limit reply of length %d", len(values))
	}

	return Result{
		Allowed:    values[0] == 1,
		Count:      int(values[1]),
		Limit:      s.limit,
		RetryAfter: time.Duration(values[2]) * time.Millisecond,
	}, nil
}

func (s *slidingWindow) key(key string) string {
	return s.prefix + ":" + key
}

func (s *slidingWindow) member() string {
	return s.memberAt(s.now())
}

func (s *slidingWindow) memberAt(at time.Time) string {
	return fmt.Sprintf("%d-%s", at.UnixMilli(), uuid.NewString())
}
