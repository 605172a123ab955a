// Package engine decides whether rooms are free for a candidate slot. It does
// no I/O: callers load the occupants of the date and its neighbours and pass
// them in, so the same code serves cached previews and the in-transaction
// check made before every insert.
package engine

import (
	"time"

	bookingModel "bookit/internal/domains/booking/model"
	requestModel "bookit/internal/domains/bookingrequest/model"
	roomModel "bookit/internal/domains/room/model"
	"bookit/shared/slot"
)

type Booking struct {
	ID     string
	RoomID *string
	Date   time.Time
	Slot   slot.Interval
	Status bookingModel.Status
}

type Request struct {
	ID                 string
	RoomID             *string
	CategoryID         *string
	Date               time.Time
	Slot               slot.Interval
	Status             requestModel.Status
	ExpiredAt          *time.Time
	ConvertedBookingID *string
}

type Result struct {
	Available bool `json:"available"`
	Count     int  `json:"count"`
}

func (b Booking) occupies() bool {
	return b.Status.Occupying()
}

// occupies drops converted requests, whose booking now counts instead, and
// pending requests past their payment window even before the sweep runs.
func (r Request) occupies(now time.Time) bool {
	if !r.Status.Holding() || r.ConvertedBookingID != nil {
		return false
	}

	if r.Status == requestModel.StatusPending && r.ExpiredAt != nil && !r.ExpiredAt.After(now) {
		return false
	}

	return true
}

// clash places an occupant's slot on the candidate's timeline. Occupants from
// the previous or next day are shifted by a whole day so an overnight slot
// meets the morning of the following date.
func clash(date time.Time, candidate slot.Interval, occupantDate time.Time, occupant slot.Interval) bool {
	days := slot.DaysBetween(date, occupantDate)
	if days < -1 || days > 1 {
		return false
	}

	return slot.Overlaps(candidate.Normalize(), occupant.Normalize().Shift(days*slot.MinutesPerDay))
}

// IsRoomFree reports whether no active booking or holding request on roomID overlaps candidate on date.
// Requests without a room are ignored here; AvailableRoomCount accounts for them.
func IsRoomFree(roomID string, date time.Time, candidate slot.Interval, bookings []Booking, requests []Request, now time.Time) bool {
	for _, booking := range bookings {
		if booking.RoomID == nil || *booking.RoomID != roomID || !booking.occupies() {
			continue
		}

		if clash(date, candidate, booking.Date, booking.Slot) {
			return false
		}
	}

	for _, request := range requests {
		if request.RoomID == nil || *request.RoomID != roomID || !request.occupies(now) {
			continue
		}

		if clash(date, candidate, request.Date, request.Slot) {
			return false
		}
	}

	return true
}

// AvailableRoomCount counts the Active rooms of a category that are free for
// candidate. Holding requests of the category that have no room yet each take
// one of those rooms, so they are subtracted from the count.
func AvailableRoomCount(
	categoryID string,
	date time.Time,
	candidate slot.Interval,
	rooms []roomModel.Room,
	bookings []Booking,
	requests []Request,
	now time.Time,
) Result {
	var res Result

	for _, room := range rooms {
		if !room.InCategory(categoryID) || !room.Status.Bookable() {
			continue
		}

		if IsRoomFree(room.ID, date, candidate, bookings, requests, now) {
			res.Count++
		}
	}

	res.Count = max(res.Count-unassigned(categoryID, date, candidate, requests, now), 0)
	res.Available = res.Count > 0

	return res
}

// unassigned counts the holding requests of a category that wait for a room and overlap candidate.
func unassigned(categoryID string, date time.Time, candidate slot.Interval, requests []Request, now time.Time) int {
	var count int

	for _, request := range requests {
		if request.RoomID != nil || !request.inCategory(categoryID) || !request.occupies(now) {
			continue
		}

		if clash(date, candidate, request.Date, request.Slot) {
			count++
		}
	}

	return count
}

func (r Request) inCategory(categoryID string) bool {
	if r.CategoryID == nil {
		return categoryID == ""
	}

	return *r.CategoryID == categoryID
}

// Without drops the occupants that belong to the operation being checked, such
// as the request that is being converted.
func Without(bookings []Booking, requests []Request, bookingID, requestID string) ([]Booking, []Request) {
	keptBookings := make([]Booking, 0, len(bookings))

	for _, booking := range bookings {
		if bookingID == "" || booking.ID != bookingID {
			keptBookings = append(keptBookings, booking)
		}
	}

	keptRequests := make([]Request, 0, len(requests))

	for _, request := range requests {
		if requestID == "" || request.ID != requestID {
			keptRequests = append(keptRequests, request)
		}
	}

	return keptBookings, keptRequests
}

// Occupancy is everything that may hold a room around a date.
type Occupancy struct {
	Bookings []Booking
	Requests []Request
}
