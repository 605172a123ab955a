package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// transientClasses are the SQLSTATE classes worth another attempt:
// connection exceptions, operator intervention and transaction rollbacks.
var transientClasses = []string{"08", "57", "40"}

// RetryRead runs an idempotent read, retrying transient failures with exponential backoff.
func RetryRead[R any](ctx context.Context, maxTries int, operation func() (R, error)) (R, error) {
	if maxTries <= 1 {
		return operation()
	}

	attempt := 0

	return backoff.Retry(ctx, func() (R, error) { //nolint:wrapcheck
		attempt++

		res, err := operation()
		if err == nil {
			return res, nil
		}

		if !IsTransient(err) {
			return res, backoff.Permanent(err)
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("transient read failure, retrying")

		return res, err
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(uint(maxTries)))
}

// IsTransient reports whether err is a connectivity or contention failure rather than a query fault.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		for _, class := range transientClasses {
			if strings.HasPrefix(string(pqErr.Code), class) {
				return true
			}
		}

		return false
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
