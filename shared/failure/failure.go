package failure

import (
	"errors"
	"math"
	"net/http"
	"time"
)

// Kind names the class of a failure independently of the transport.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindAuthorization   Kind = "authorization"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindExpired         Kind = "expired"
	KindRateLimited     Kind = "rate_limited"
	KindInternal        Kind = "internal"
)

var kinds = map[int]Kind{
	http.StatusBadRequest:      KindValidation,
	http.StatusUnauthorized:    KindUnauthenticated,
	http.StatusForbidden:       KindAuthorization,
	http.StatusNotFound:        KindNotFound,
	http.StatusConflict:        KindConflict,
	http.StatusGone:            KindExpired,
	http.StatusTooManyRequests: KindRateLimited,
}

// Failure is an error the caller can act on, carrying the HTTP status it maps to.
type Failure struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after,omitempty"`

	cause error
}

var (
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

func (e *Failure) Kind() Kind {
	if kind, ok := kinds[e.Code]; ok {
		return kind
	}

	return KindInternal
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest turns a decoding or parsing error into a validation failure.
// The original error stays reachable through errors.Is and errors.As.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error(), cause: err}
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound reports an entity, token or route that does not resolve.
func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, entityName)
}

// Conflict reports a lost race or a state that no longer allows the action.
func Conflict(message string) error {
	return newFailure(http.StatusConflict, message)
}

// Expired reports an entity that resolved but can no longer be acted on.
func Expired(msg string) error {
	return newFailure(http.StatusGone, msg)
}

// TooManyRequests tells the caller when it may retry, rounded up to whole seconds.
func TooManyRequests(msg string, retryAfter time.Duration) error {
	return &Failure{
		Code:       http.StatusTooManyRequests,
		Message:    msg,
		RetryAfter: int(math.Ceil(retryAfter.Seconds())),
	}
}

// GetCode returns the HTTP status of err. Anything that is not a Failure is
// an internal error.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetRetryAfter returns the retry hint in seconds, or zero.
func GetRetryAfter(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.RetryAfter
	}

	return 0
}

func KindOf(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind()
	}

	return KindInternal
}

// Is reports whether err is a Failure carrying the given code.
func Is(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}
