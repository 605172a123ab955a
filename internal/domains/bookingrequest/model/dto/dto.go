package dto

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	bookingModel "bookit/internal/domains/booking/model"
	"bookit/internal/domains/bookingrequest/model"
	variantModel "bookit/internal/domains/variant/model"
	"bookit/shared"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	gModel "bookit/shared/model"
	"bookit/shared/slot"
	"bookit/shared/timezone"
)

const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// IntakeRequest is what a customer submits from the public booking page. The
// slot length and price come from the chosen variant.
type IntakeRequest struct {
	CategoryID    string `json:"category_id"    validate:"required_without=RoomID,omitempty,uuid"`
	RoomID        string `json:"room_id"        validate:"omitempty,uuid"`
	VariantName   string `json:"variant_name"   validate:"required,max=100"`
	CustomerName  string `json:"customer_name"  validate:"required,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,phone"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=100"`
	Date          string `json:"date"           validate:"required,day"`
	StartTime     string `json:"start_time"     validate:"required,clock"`
	Note          string `json:"note"           validate:"omitempty,max=500"`
}

func (i *IntakeRequest) Room() *string {
	if i.RoomID == constant.Empty {
		return nil
	}

	return &i.RoomID
}

func (i *IntakeRequest) ToModel(
	storeID, categoryID, bid, token string,
	variant variantModel.Variant,
	date time.Time,
	interval slot.Interval,
	expiredAt, now time.Time,
) model.BookingRequest {
	var category *string
	if categoryID != constant.Empty {
		category = &categoryID
	}

	return model.BookingRequest{
		ID:                uuid.NewString(),
		BID:               bid,
		StoreID:           storeID,
		CategoryID:        category,
		RoomID:            i.Room(),
		VariantName:       variant.Name,
		CustomerName:      i.CustomerName,
		CustomerPhone:     NormalizePhone(i.CustomerPhone),
		CustomerEmail:     i.CustomerEmail,
		BookingDate:       date,
		StartTime:         slot.FormatClock(interval.Start),
		EndTime:           slot.FormatClock(interval.End),
		Duration:          interval.Duration(),
		Price:             variant.Price,
		Note:              i.Note,
		Status:            model.StatusPending,
		ConfirmationToken: token,
		ExpiredAt:         &expiredAt,
		Metadata:          gModel.NewMetadata(constant.ContextGuest, now),
	}
}

// NormalizePhone keeps the digits of a phone number so that "+62 812-3456" and
// "628123456" count as the same caller.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, phone)
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled check-in completed"`
}

type ConvertRequest struct {
	RoomID        string `json:"room_id"        validate:"required,uuid"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,max=50"`
}

// ToBooking carries the customer, slot and price of the request over to a
// Reserved booking on the chosen room.
func (c *ConvertRequest) ToBooking(request model.BookingRequest, user string, now time.Time) bookingModel.Booking {
	startsAt, endsAt := request.Slot().Bounds(request.BookingDate)
	roomID := c.RoomID
	requestID := request.ID

	return bookingModel.Booking{
		ID:               uuid.NewString(),
		BID:              request.BID,
		StoreID:          request.StoreID,
		RoomID:           &roomID,
		BookingRequestID: &requestID,
		CustomerName:     request.CustomerName,
		CustomerPhone:    request.CustomerPhone,
		BookingDate:      request.BookingDate,
		StartTime:        request.StartTime,
		EndTime:          request.EndTime,
		Duration:         request.Duration,
		StartsAt:         startsAt,
		EndsAt:           endsAt,
		Status:           bookingModel.StatusReserved,
		Price:            request.Price,
		PaymentMethod:    c.PaymentMethod,
		Note:             request.Note,
		ConfirmedBy:      &user,
		ConfirmedAt:      &now,
		Metadata:         gModel.NewMetadata(user, now),
	}
}

type RequestResponse struct {
	ID                 string  `json:"id"`
	BID                string  `json:"bid"`
	StoreID            string  `json:"store_id"`
	CategoryID         *string `json:"category_id"`
	RoomID             *string `json:"room_id"`
	VariantName        string  `json:"variant_name"`
	CustomerName       string  `json:"customer_name"`
	CustomerPhone      string  `json:"customer_phone"`
	CustomerEmail      string  `json:"customer_email"`
	Date               string  `json:"date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	Duration           int     `json:"duration"`
	Price              float64 `json:"price"`
	Note               string  `json:"note"`
	Status             string  `json:"status"`
	ExpiredAt          *string `json:"expired_at"`
	HasPaymentProof    bool    `json:"has_payment_proof"`
	ConvertedBookingID *string `json:"converted_booking_id"`
	ConvertedAt        *string `json:"converted_at"`
	gDto.Metadata
}

func (r *RequestResponse) FromModel(model model.BookingRequest) {
	r.ID = model.ID
	r.BID = model.BID
	r.StoreID = model.StoreID
	r.CategoryID = model.CategoryID
	r.RoomID = model.RoomID
	r.VariantName = model.VariantName
	r.CustomerName = model.CustomerName
	r.CustomerPhone = model.CustomerPhone
	r.CustomerEmail = model.CustomerEmail
	r.Date = model.BookingDate.Format(constant.DayLayout)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Duration = model.Duration
	r.Price = model.Price
	r.Note = model.Note
	r.Status = string(model.Status)
	r.ExpiredAt = formatTime(model.ExpiredAt)
	r.HasPaymentProof = model.PaymentProof != constant.Empty
	r.ConvertedBookingID = model.ConvertedBookingID
	r.ConvertedAt = formatTime(model.ConvertedAt)
	r.Metadata.FromModel(model.Metadata)
}

type GetRequestsResponse struct {
	Requests  []RequestResponse `json:"requests"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetRequestsResponse) FromModels(models []model.BookingRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Requests = make([]RequestResponse, len(models))
	for i, mod := range models {
		r.Requests[i].FromModel(mod)
	}
}

// PublicRequestResponse is what the token holder sees. It leaves out staff
// fields and the token itself.
type PublicRequestResponse struct {
	BID          string  `json:"bid"`
	VariantName  string  `json:"variant_name"`
	CustomerName string  `json:"customer_name"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Duration     int     `json:"duration"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
	ExpiredAt    *string `json:"expired_at"`
}

func (r *PublicRequestResponse) FromModel(model model.BookingRequest) {
	r.BID = model.BID
	r.VariantName = model.VariantName
	r.CustomerName = model.CustomerName
	r.Date = model.BookingDate.Format(constant.DayLayout)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Duration = model.Duration
	r.Price = model.Price
	r.Status = string(model.Status)
	r.ExpiredAt = formatTime(model.ExpiredAt)
}

type IntakeResponse struct {
	PublicRequestResponse
	ConfirmationURL string `json:"confirmation_url"`
}

type PaymentProofResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

type SweepResponse struct {
	Expired int `json:"expired"`
}

func formatTime(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := timezone.Format(*value, constant.DateFormat)

	return &formatted
}
