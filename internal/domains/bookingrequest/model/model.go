package model

import (
	"time"

	"bookit/shared/model"
	"bookit/shared/slot"
)

const (
	TableName  = "booking_requests"
	EntityName = "booking_request"

	FieldID                 = "id"
	FieldBID                = "bid"
	FieldStoreID            = "store_id"
	FieldCategoryID         = "category_id"
	FieldRoomID             = "room_id"
	FieldCustomerPhone      = "customer_phone"
	FieldBookingDate        = "booking_date"
	FieldStatus             = "status"
	FieldConfirmationToken  = "confirmation_token"
	FieldExpiredAt          = "expired_at"
	FieldConvertedBookingID = "converted_booking_id"
	FieldConvertedAt        = "converted_at"
)

type BookingRequest struct {
	ID                 string     `db:"id"`
	BID                string     `db:"bid"`
	StoreID            string     `db:"store_id"`
	CategoryID         *string    `db:"category_id"`
	RoomID             *string    `db:"room_id"`
	VariantName        string     `db:"variant_name"`
	CustomerName       string     `db:"customer_name"`
	CustomerPhone      string     `db:"customer_phone"`
	CustomerEmail      string     `db:"customer_email"`
	BookingDate        time.Time  `db:"booking_date"`
	StartTime          string     `db:"start_time"`
	EndTime            string     `db:"end_time"`
	Duration           int        `db:"duration"`
	Price              float64    `db:"price"`
	Note               string     `db:"note"`
	Status             Status     `db:"status"`
	ConfirmationToken  string     `db:"confirmation_token"`
	ExpiredAt          *time.Time `db:"expired_at"`
	PaymentProof       string     `db:"payment_proof"`
	ConvertedBookingID *string    `db:"converted_booking_id"`
	ConvertedAt        *time.Time `db:"converted_at"`
	model.Metadata
}

func (r BookingRequest) Slot() slot.Interval {
	interval, _ := slot.Parse(r.StartTime, r.EndTime)

	return interval
}

func (r BookingRequest) Converted() bool {
	return r.ConvertedBookingID != nil
}

// PaymentOverdue reports a pending request whose payment window has passed,
// whether or not the sweep has marked it expired yet.
func (r BookingRequest) PaymentOverdue(now time.Time) bool {
	return r.Status == StatusPending && r.ExpiredAt != nil && !r.ExpiredAt.After(now)
}
