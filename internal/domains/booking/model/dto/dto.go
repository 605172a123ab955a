package dto

import (
	"time"

	"github.com/google/uuid"

	"bookit/internal/domains/booking/model"
	"bookit/shared"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	gModel "bookit/shared/model"
	"bookit/shared/slot"
	"bookit/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID              string  `json:"room_id"               validate:"required,uuid"`
	CustomerName        string  `json:"customer_name"         validate:"required,max=100"`
	CustomerPhone       string  `json:"customer_phone"        validate:"omitempty,max=20"`
	Date                string  `json:"date"                  validate:"required,day"`
	StartTime           string  `json:"start_time"            validate:"required,clock"`
	EndTime             string  `json:"end_time"              validate:"required,clock"`
	Duration            int     `json:"duration"              validate:"omitempty,gt=0"`
	Price               float64 `json:"price"                 validate:"gte=0"`
	SecondPrice         float64 `json:"second_price"          validate:"gte=0"`
	PaymentMethod       string  `json:"payment_method"        validate:"omitempty,max=50"`
	SecondPaymentMethod string  `json:"second_payment_method" validate:"omitempty,max=50"`
	Note                string  `json:"note"                  validate:"omitempty,max=500"`
}

// ToModel builds a Reserved booking confirmed by the creating staff member.
func (c *CreateBookingRequest) ToModel(storeID, bid, user string, date time.Time, interval slot.Interval, now time.Time) model.Booking {
	startsAt, endsAt := interval.Bounds(date)
	roomID := c.RoomID

	return model.Booking{
		ID:                  uuid.NewString(),
		BID:                 bid,
		StoreID:             storeID,
		RoomID:              &roomID,
		CustomerName:        c.CustomerName,
		CustomerPhone:       c.CustomerPhone,
		BookingDate:         date,
		StartTime:           slot.FormatClock(interval.Start),
		EndTime:             slot.FormatClock(interval.End),
		Duration:            interval.Duration(),
		StartsAt:            startsAt,
		EndsAt:              endsAt,
		Status:              model.StatusReserved,
		Price:               c.Price,
		SecondPrice:         c.SecondPrice,
		PaymentMethod:       c.PaymentMethod,
		SecondPaymentMethod: c.SecondPaymentMethod,
		Note:                c.Note,
		ConfirmedBy:         &user,
		ConfirmedAt:         &now,
		Metadata:            gModel.NewMetadata(user, now),
	}
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type AddProductRequest struct {
	ProductName string  `json:"product_name" validate:"required,max=100"`
	Qty         int     `json:"qty"          validate:"required,gt=0"`
	Price       float64 `json:"price"        validate:"gte=0"`
}

func (a *AddProductRequest) ToModel(bookingID, user string) model.Product {
	return model.Product{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		ProductName: a.ProductName,
		Qty:         a.Qty,
		Price:       a.Price,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type ProductResponse struct {
	ID          string  `json:"id"`
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

func (p *ProductResponse) FromModel(model model.Product) {
	p.ID = model.ID
	p.ProductName = model.ProductName
	p.Qty = model.Qty
	p.Price = model.Price
	p.Total = model.Total()
}

type GetProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    float64           `json:"total"`
}

func (r *GetProductsResponse) FromModels(models []model.Product) {
	r.Products = make([]ProductResponse, len(models))
	for i, mod := range models {
		r.Products[i].FromModel(mod)
		r.Total += r.Products[i].Total
	}
}

type Stamp struct {
	By *string `json:"by"`
	At *string `json:"at"`
}

func newStamp(by *string, at *time.Time) Stamp {
	stamp := Stamp{By: by}

	if at != nil {
		formatted := timezone.Format(*at, constant.DateFormat)
		stamp.At = &formatted
	}

	return stamp
}

type BookingResponse struct {
	ID                  string  `json:"id"`
	BID                 string  `json:"bid"`
	StoreID             string  `json:"store_id"`
	RoomID              *string `json:"room_id"`
	BookingRequestID    *string `json:"booking_request_id"`
	CustomerName        string  `json:"customer_name"`
	CustomerPhone       string  `json:"customer_phone"`
	Date                string  `json:"date"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	Duration            int     `json:"duration"`
	Status              string  `json:"status"`
	StatusName          string  `json:"status_name"`
	Price               float64 `json:"price"`
	SecondPrice         float64 `json:"second_price"`
	PaymentMethod       string  `json:"payment_method"`
	SecondPaymentMethod string  `json:"second_payment_method"`
	Note                string  `json:"note"`
	Confirmed           Stamp   `json:"confirmed"`
	CheckedIn           Stamp   `json:"checked_in"`
	CheckedOut          Stamp   `json:"checked_out"`
	Cancelled           Stamp   `json:"cancelled"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BID = model.BID
	r.StoreID = model.StoreID
	r.RoomID = model.RoomID
	r.BookingRequestID = model.BookingRequestID
	r.CustomerName = model.CustomerName
	r.CustomerPhone = model.CustomerPhone
	r.Date = model.BookingDate.Format(constant.DayLayout)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Duration = model.Duration
	r.Status = model.Status.Code()
	r.StatusName = model.Status.String()
	r.Price = model.Price
	r.SecondPrice = model.SecondPrice
	r.PaymentMethod = model.PaymentMethod
	r.SecondPaymentMethod = model.SecondPaymentMethod
	r.Note = model.Note
	r.Confirmed = newStamp(model.ConfirmedBy, model.ConfirmedAt)
	r.CheckedIn = newStamp(model.CheckedInBy, model.CheckedInAt)
	r.CheckedOut = newStamp(model.CheckedOutBy, model.CheckedOutAt)
	r.Cancelled = newStamp(model.CancelledBy, model.CancelledAt)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
