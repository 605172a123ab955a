// Package sequence issues human readable identifiers that restart every day
// for every store, such as BK240110001 for the first booking of 10 January 2024.
package sequence

//go:generate go run go.uber.org/mock/mockgen -source=./sequence.go -destination=./mocks/sequence_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bookit/infras/otel"
	"bookit/shared"
	"bookit/shared/constant"
)

const (
	cacheKeySequence = "sequence"
	counterTTL       = 48 * time.Hour
	dateLayout       = "060102"
	keyDateLayout    = "20060102"
)

type Kind string

const (
	KindBooking Kind = "booking"
	KindRequest Kind = "request"
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

var prefixes = map[Kind]string{
	KindBooking: "BK",
	KindRequest: "RQ",
	KindExpense: "EX",
	KindIncome:  "IN",
}

func (k Kind) Valid() bool {
	_, ok := prefixes[k]

	return ok
}

func (k Kind) Prefix() string {
	return prefixes[k]
}

type Sequence interface {
	Next(ctx context.Context, kind Kind, storeID string, date time.Time) (string, error)
}

type redisSequence struct {
	client *redis.Client
	otel   otel.Otel
}

func New(client *redis.Client, otel otel.Otel) Sequence {
	return &redisSequence{
		client: client,
		otel:   otel,
	}
}

// Next increments the counter of the kind, store and date on the Redis server,
// so concurrent callers never see the same number. A counter lost with Redis
// starts again at 1 and the unique bid constraint rejects the repeat.
func (s *redisSequence) Next(ctx context.Context, kind Kind, storeID string, date time.Time) (bid string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".sequence.Next")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !kind.Valid() {
		return "", fmt.Errorf("unknown sequence kind %q", kind)
	}

	key := Key(kind, storeID, date)
	scope.SetAttribute("sequence.key", key)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterTTL)

	if _, err = pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to increment sequence: %w", err)
	}

	return Format(kind, date, incr.Val()), nil
}

func Key(kind Kind, storeID string, date time.Time) string {
	return shared.BuildCacheKey(cacheKeySequence, string(kind), storeID, date.Format(keyDateLayout))
}

// Format renders <PREFIX><yymmdd><NNN>. Numbers past 999 keep all their digits.
func Format(kind Kind, date time.Time, number int64) string {
	return fmt.Sprintf("%s%s%03d", kind.Prefix(), date.Format(dateLayout), number)
}
