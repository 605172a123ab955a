package timezone

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/shared/constant"
)

var appLocation atomic.Pointer[time.Location]

func init() {
	name := config.Get().App.Timezone

	if name == constant.Empty {
		log.Warn().Msg("No timezone configured, using UTC as default")
		appLocation.Store(time.UTC)

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")
		appLocation.Store(time.UTC)

		return
	}

	appLocation.Store(loc)
	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// SetLocation replaces the store timezone and returns the previous one.
func SetLocation(loc *time.Location) *time.Location {
	if loc == nil {
		loc = time.UTC
	}

	return appLocation.Swap(loc)
}

// GetLocation returns the store timezone.
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the store timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today returns midnight of the current business day.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay returns midnight of t's calendar day in the store timezone.
func StartOfDay(t time.Time) time.Time {
	year, month, day := ToAppTime(t).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, GetLocation())
}

// ToAppTime converts a time to the store timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse parses a time string in the store timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// ParseDay parses a YYYY-MM-DD business date.
func ParseDay(value string) (time.Time, error) {
	return Parse(constant.DayLayout, value)
}

// Format formats a time in the store timezone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
