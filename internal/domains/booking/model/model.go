package model

import (
	"time"

	"bookit/shared/model"
	"bookit/shared/slot"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                  = "id"
	FieldBID                 = "bid"
	FieldStoreID             = "store_id"
	FieldRoomID              = "room_id"
	FieldBookingRequestID    = "booking_request_id"
	FieldCustomerName        = "customer_name"
	FieldCustomerPhone       = "customer_phone"
	FieldBookingDate         = "booking_date"
	FieldStartTime           = "start_time"
	FieldEndTime             = "end_time"
	FieldStatus              = "status"
	FieldConfirmedBy         = "confirmed_by"
	FieldConfirmedAt         = "confirmed_at"
	FieldCheckedInBy         = "checked_in_by"
	FieldCheckedInAt         = "checked_in_at"
	FieldCheckedOutBy        = "checked_out_by"
	FieldCheckedOutAt        = "checked_out_at"
	FieldCancelledBy         = "cancelled_by"
	FieldCancelledAt         = "cancelled_at"
	FieldPaymentMethod       = "payment_method"
	FieldSecondPaymentMethod = "second_payment_method"
)

type Booking struct {
	ID                  string     `db:"id"`
	BID                 string     `db:"bid"`
	StoreID             string     `db:"store_id"`
	RoomID              *string    `db:"room_id"`
	BookingRequestID    *string    `db:"booking_request_id"`
	CustomerName        string     `db:"customer_name"`
	CustomerPhone       string     `db:"customer_phone"`
	BookingDate         time.Time  `db:"booking_date"`
	StartTime           string     `db:"start_time"`
	EndTime             string     `db:"end_time"`
	Duration            int        `db:"duration"`
	StartsAt            time.Time  `db:"starts_at"`
	EndsAt              time.Time  `db:"ends_at"`
	Status              Status     `db:"status"`
	Price               float64    `db:"price"`
	SecondPrice         float64    `db:"second_price"`
	PaymentMethod       string     `db:"payment_method"`
	SecondPaymentMethod string     `db:"second_payment_method"`
	Note                string     `db:"note"`
	ConfirmedBy         *string    `db:"confirmed_by"`
	ConfirmedAt         *time.Time `db:"confirmed_at"`
	CheckedInBy         *string    `db:"checked_in_by"`
	CheckedInAt         *time.Time `db:"checked_in_at"`
	CheckedOutBy        *string    `db:"checked_out_by"`
	CheckedOutAt        *time.Time `db:"checked_out_at"`
	CancelledBy         *string    `db:"cancelled_by"`
	CancelledAt         *time.Time `db:"cancelled_at"`
	model.Metadata
}

// Slot returns the booked time of day. Stored times are always well formed.
func (b Booking) Slot() slot.Interval {
	interval, _ := slot.Parse(b.StartTime, b.EndTime)

	return interval
}

// Window anchors the slot on the booking date so overnight bookings end on the next day.
func (b Booking) Window() (time.Time, time.Time) {
	return b.Slot().Bounds(b.BookingDate)
}
