package dto

import (
	"bookit/internal/domains/roomstatus/model"
	"bookit/shared/constant"
	"bookit/shared/timezone"
)

type SetStatusRequest struct {
	Date   string `json:"date"   validate:"required,day"`
	Status string `json:"status" validate:"required,oneof=Ready Dirty Maintenance"`
}

type DailyStatusResponse struct {
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	UpdatedBy string `json:"updated_by"`
	UpdatedAt string `json:"updated_at"`
}

func (r *DailyStatusResponse) FromModel(model model.DailyStatus) {
	r.RoomID = model.RoomID
	r.Date = model.StatusDate.Format(constant.DayLayout)
	r.Status = string(model.Status)
	r.UpdatedBy = model.UpdatedBy
	r.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
}

type GetDailyStatusesResponse struct {
	Date     string                `json:"date"`
	Statuses []DailyStatusResponse `json:"statuses"`
}

func (r *GetDailyStatusesResponse) FromModels(date string, models []model.DailyStatus) {
	r.Date = date

	r.Statuses = make([]DailyStatusResponse, len(models))
	for i, mod := range models {
		r.Statuses[i].FromModel(mod)
	}
}
