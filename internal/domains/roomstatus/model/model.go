package model

import "time"

const (
	TableName  = "room_daily_statuses"
	EntityName = "room_daily_status"

	FieldRoomID     = "room_id"
	FieldStoreID    = "store_id"
	FieldStatusDate = "status_date"
	FieldStatus     = "status"
	FieldUpdatedBy  = "updated_by"
	FieldUpdatedAt  = "updated_at"
)

// Status is the housekeeping state of a room for one calendar date.
type Status string

const (
	StatusReady       Status = "Ready"
	StatusDirty       Status = "Dirty"
	StatusMaintenance Status = "Maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusReady, StatusDirty, StatusMaintenance:
		return true
	default:
		return false
	}
}

// DailyStatus holds the current status of a room on a date. There is at most one row per room and date.
type DailyStatus struct {
	RoomID     string    `db:"room_id"`
	StoreID    string    `db:"store_id"`
	StatusDate time.Time `db:"status_date"`
	Status     Status    `db:"status"`
	UpdatedBy  string    `db:"updated_by"`
	UpdatedAt  time.Time `db:"updated_at"`
}
