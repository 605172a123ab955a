package model

import "time"

// Metadata is the audit stamp every stored row carries.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

func NewMetadata(user string, now time.Time) Metadata {
	return Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}

// Touch records who changed the row last.
func (m *Metadata) Touch(user string, now time.Time) {
	m.ModifiedAt = now
	m.ModifiedBy = user
}

func (m Metadata) Edited() bool {
	return m.ModifiedAt.After(m.CreatedAt)
}
