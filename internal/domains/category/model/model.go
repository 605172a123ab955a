package model

import "bookit/shared/model"

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID      = "id"
	FieldStoreID = "store_id"
	FieldName    = "name"
)

type Category struct {
	ID      string `db:"id"`
	StoreID string `db:"store_id"`
	Name    string `db:"name"`
	model.Metadata
}
