package dto

import (
	"bookit/shared/constant"
	"bookit/shared/model"
	"bookit/shared/timezone"
)

// Metadata renders audit stamps in the store's time zone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(stamp model.Metadata) {
	m.CreatedAt = timezone.Format(stamp.CreatedAt, constant.DateFormat)
	m.CreatedBy = stamp.CreatedBy

	if !stamp.Edited() {
		return
	}

	m.ModifiedAt = timezone.Format(stamp.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = stamp.ModifiedBy
}
