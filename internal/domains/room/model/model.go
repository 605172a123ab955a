package model

import "bookit/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldStoreID    = "store_id"
	FieldCategoryID = "category_id"
	FieldName       = "name"
	FieldStatus     = "status"
)

// Status is the physical condition of a room. Only Active rooms can be booked.
type Status string

const (
	StatusActive      Status = "Active"
	StatusBroken      Status = "Broken"
	StatusMaintenance Status = "Maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBroken, StatusMaintenance:
		return true
	default:
		return false
	}
}

func (s Status) Bookable() bool {
	return s == StatusActive
}

type Room struct {
	ID         string  `db:"id"`
	StoreID    string  `db:"store_id"`
	CategoryID *string `db:"category_id"`
	Name       string  `db:"name"`
	Status     Status  `db:"status"`
	model.Metadata
}

// InCategory reports whether the room belongs to categoryID. Rooms without a
// category only match an empty categoryID.
func (r Room) InCategory(categoryID string) bool {
	if r.CategoryID == nil {
		return categoryID == ""
	}

	return *r.CategoryID == categoryID
}
