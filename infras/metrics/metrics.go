package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bookit"

const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeConflict    = "conflict"
	OutcomeRateLimited = "rate_limited"
	OutcomeNoop        = "noop"
	OutcomeError       = "error"
)

var (
	once sync.Once

	bookingTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transition_total",
			Help:      "Count of booking status transitions by source, target and outcome.",
		},
		[]string{"from", "to", "outcome"},
	)

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_created_total",
			Help:      "Count of staff created bookings by outcome.",
		},
		[]string{"outcome"},
	)

	requestIntake = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_request_intake_total",
			Help:      "Count of public booking request submissions by outcome.",
		},
		[]string{"outcome"},
	)

	requestAction = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_request_action_total",
			Help:      "Count of token confirm and cancel actions by outcome.",
		},
		[]string{"action", "outcome"},
	)

	requestConverted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_request_conversion_total",
			Help:      "Count of booking request conversions by outcome.",
		},
		[]string{"outcome"},
	)

	requestExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_request_expired_total",
			Help:      "Count of pending booking requests expired by the sweep.",
		},
	)

	availabilityLookup = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_lookup_total",
			Help:      "Count of cached availability lookups by cache result.",
		},
		[]string{"cache"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status code.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingTransition,
			bookingCreated,
			requestIntake,
			requestAction,
			requestConverted,
			requestExpired,
			availabilityLookup,
			httpDuration,
		)
	})
}

func IncBookingTransition(from, to, outcome string) {
	bookingTransition.WithLabelValues(from, to, outcome).Inc()
}

func IncBookingCreated(outcome string) {
	bookingCreated.WithLabelValues(outcome).Inc()
}

func IncRequestIntake(outcome string) {
	requestIntake.WithLabelValues(outcome).Inc()
}

func IncRequestAction(action, outcome string) {
	requestAction.WithLabelValues(action, outcome).Inc()
}

func IncRequestConverted(outcome string) {
	requestConverted.WithLabelValues(outcome).Inc()
}

func AddRequestExpired(count int) {
	if count <= 0 {
		return
	}

	requestExpired.Add(float64(count))
}

func IncAvailabilityLookup(hit bool) {
	label := "miss"
	if hit {
		label = "hit"
	}

	availabilityLookup.WithLabelValues(label).Inc()
}

func ObserveHTTP(method, route, status string, seconds float64) {
	httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}
