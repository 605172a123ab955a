package model

// Status is the lifecycle state of a booking request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
	StatusCheckIn   Status = "check-in"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusExpired, StatusCheckIn, StatusCompleted}

var next = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusCheckIn, StatusCancelled},
	StatusCheckIn:   {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusExpired, StatusCheckIn, StatusCompleted:
		return true
	default:
		return false
	}
}

// Terminal statuses accept no further transition.
func (s Status) Terminal() bool {
	switch s {
	case StatusCancelled, StatusExpired, StatusCompleted:
		return true
	case StatusPending, StatusConfirmed, StatusCheckIn:
		return false
	default:
		return false
	}
}

// Holding reports whether a request in this status keeps its slot.
func (s Status) Holding() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckIn:
		return true
	case StatusCancelled, StatusExpired, StatusCompleted:
		return false
	default:
		return false
	}
}

// Convertible reports whether staff may turn the request into a booking.
func (s Status) Convertible() bool {
	return s == StatusConfirmed || s == StatusCheckIn
}

func (s Status) CanMoveTo(to Status) bool {
	for _, candidate := range next[s] {
		if candidate == to {
			return true
		}
	}

	return false
}
