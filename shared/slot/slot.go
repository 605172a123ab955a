// Package slot models time-of-day intervals on a 24 hour clock.
//
// An interval whose end is not after its start crosses midnight: Normalize
// pushes the end into the next day before any comparison. Intervals are
// half-open, so one that ends exactly when another starts does not overlap it.
package slot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

var (
	ErrInvalidClock    = errors.New("invalid time of day")
	ErrZeroLength      = errors.New("start and end time must differ")
	ErrDurationInvalid = errors.New("duration does not match start and end time")
)

type Interval struct {
	Start int
	End   int
}

func New(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// Parse builds an interval from two clock strings.
func Parse(start, end string) (Interval, error) {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}

	endMinutes, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}

	return New(startMinutes, endMinutes), nil
}

// ParseClock converts "15:04" or "15:04:05" into minutes after midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	limits := []int{24, 60, 60}
	numbers := make([]int, len(parts))

	for idx, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
		}

		number, err := strconv.Atoi(part)
		if err != nil || number < 0 || number >= limits[idx] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
		}

		numbers[idx] = number
	}

	return numbers[0]*MinutesPerHour + numbers[1], nil
}

// FormatClock renders minutes after midnight as "15:04", wrapping past midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	return fmt.Sprintf("%02d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// Normalize returns the interval with End moved to the next day when End <= Start.
func (i Interval) Normalize() Interval {
	if i.End <= i.Start {
		i.End += MinutesPerDay
	}

	return i
}

// Duration is the wrapped length of the interval in minutes.
func (i Interval) Duration() int {
	normalized := i.Normalize()

	return normalized.End - normalized.Start
}

// Shift moves both bounds by the given number of minutes.
func (i Interval) Shift(minutes int) Interval {
	return Interval{Start: i.Start + minutes, End: i.End + minutes}
}

// Validate rejects intervals with equal bounds and, when duration is positive,
// a duration that disagrees with the wrapped difference of the bounds.
func (i Interval) Validate(duration int) error {
	if i.Start == i.End {
		return ErrZeroLength
	}

	if duration > 0 && duration != i.Duration() {
		return fmt.Errorf("%w: expected %d minutes, got %d", ErrDurationInvalid, i.Duration(), duration)
	}

	return nil
}

// Bounds anchors the interval on a calendar date and returns absolute start and end instants.
func (i Interval) Bounds(date time.Time) (time.Time, time.Time) {
	normalized := i.Normalize()
	midnight := Day(date)

	return midnight.Add(time.Duration(normalized.Start) * time.Minute),
		midnight.Add(time.Duration(normalized.End) * time.Minute)
}

func (i Interval) String() string {
	return FormatClock(i.Start) + "-" + FormatClock(i.End)
}

// Overlaps reports whether two intervals share any minute after both are normalized.
func Overlaps(a, b Interval) bool {
	a = a.Normalize()
	b = b.Normalize()

	return !(a.End <= b.Start || a.Start >= b.End)
}

// Day truncates t to midnight of its calendar date, keeping its location.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b, ignoring the time of day.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24)
}
