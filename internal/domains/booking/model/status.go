package model

import (
	"database/sql/driver"
	"fmt"
)

// Status is the lifecycle state of a booking. The zero value is not a valid status.
type Status uint8

const (
	StatusReserved Status = iota + 1
	StatusCheckedIn
	StatusCheckedOut
	StatusCancelled
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusReserved, StatusCheckedIn, StatusCheckedOut, StatusCancelled}

// Code is the short code stored in the bookings table.
func (s Status) Code() string {
	switch s {
	case StatusReserved:
		return "BO"
	case StatusCheckedIn:
		return "CI"
	case StatusCheckedOut:
		return "CO"
	case StatusCancelled:
		return "BATAL"
	default:
		return ""
	}
}

func (s Status) String() string {
	switch s {
	case StatusReserved:
		return "Reserved"
	case StatusCheckedIn:
		return "CheckedIn"
	case StatusCheckedOut:
		return "CheckedOut"
	case StatusCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

func (s Status) Valid() bool {
	return s >= StatusReserved && s <= StatusCancelled
}

// Occupying reports whether a booking in this status holds its room.
func (s Status) Occupying() bool {
	return s == StatusReserved || s == StatusCheckedIn
}

// ParseStatus accepts either the stored code ("BO") or the name ("Reserved").
func ParseStatus(value string) (Status, bool) {
	for _, status := range Statuses {
		if value == status.Code() || value == status.String() {
			return status, true
		}
	}

	return 0, false
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid booking status %d", uint8(s))
	}

	return s.Code(), nil
}

func (s *Status) Scan(src any) error {
	var code string

	switch value := src.(type) {
	case string:
		code = value
	case []byte:
		code = string(value)
	default:
		return fmt.Errorf("cannot scan %T into booking status", src)
	}

	status, ok := ParseStatus(code)
	if !ok {
		return fmt.Errorf("unknown booking status %q", code)
	}

	*s = status

	return nil
}
