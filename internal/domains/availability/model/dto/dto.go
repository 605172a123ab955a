package dto

import (
	"net/http"

	"bookit/internal/domains/availability/engine"
	"bookit/shared/constant"
	"bookit/shared/slot"
)

type AvailabilityQuery struct {
	Date      string `json:"date"       validate:"required,day"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
}

func (q *AvailabilityQuery) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.Date = query.Get(constant.RequestParamDate)
	q.StartTime = query.Get(constant.RequestParamStart)
	q.EndTime = query.Get(constant.RequestParamEnd)
}

type RoomAvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Bookable  bool   `json:"bookable"`
	Free      bool   `json:"free"`
}

func (r *RoomAvailabilityResponse) FromResult(roomID, date string, candidate slot.Interval, bookable, free bool) {
	r.RoomID = roomID
	r.Date = date
	r.StartTime = slot.FormatClock(candidate.Start)
	r.EndTime = slot.FormatClock(candidate.End)
	r.Bookable = bookable
	r.Free = bookable && free
}

type CategoryAvailabilityResponse struct {
	CategoryID string `json:"category_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	engine.Result
}

func (r *CategoryAvailabilityResponse) FromResult(categoryID, date string, candidate slot.Interval, res engine.Result) {
	r.CategoryID = categoryID
	r.Date = date
	r.StartTime = slot.FormatClock(candidate.Start)
	r.EndTime = slot.FormatClock(candidate.End)
	r.Result = res
}
