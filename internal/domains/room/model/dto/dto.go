package dto

import (
	"github.com/google/uuid"

	"bookit/internal/domains/room/model"
	"bookit/shared"
	gDto "bookit/shared/dto"
	gModel "bookit/shared/model"
	"bookit/shared/timezone"
)

type CreateRoomRequest struct {
	Name       string  `json:"name"        validate:"required,max=100"`
	CategoryID *string `json:"category_id" validate:"omitempty,uuid"`
	Status     string  `json:"status"      validate:"omitempty,oneof=Active Broken Maintenance"`
}

func (c *CreateRoomRequest) ToModel(storeID, user string) model.Room {
	status := model.StatusActive
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	return model.Room{
		ID:         uuid.NewString(),
		StoreID:    storeID,
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Status:     status,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Name       string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	CategoryID *string `db:"category_id" json:"category_id" validate:"omitempty,uuid"`
	Status     string  `db:"status"      json:"status"      validate:"omitempty,oneof=Active Broken Maintenance"`
}

type RoomResponse struct {
	ID         string  `json:"id"`
	StoreID    string  `json:"store_id"`
	CategoryID *string `json:"category_id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.StoreID = model.StoreID
	r.CategoryID = model.CategoryID
	r.Name = model.Name
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
