package model

import (
	"slices"

	"bookit/shared/model"
)

const (
	TableName  = "variants"
	EntityName = "variant"

	FieldID       = "id"
	FieldStoreID  = "store_id"
	FieldRoomID   = "room_id"
	FieldName     = "name"
	FieldDuration = "duration_minutes"
	FieldPrice    = "price"
	FieldActive   = "active"
)

// Variant is a bookable package of a room: a named duration with a price.
type Variant struct {
	ID              string  `db:"id"`
	StoreID         string  `db:"store_id"`
	RoomID          string  `db:"room_id"`
	Name            string  `db:"name"`
	DurationMinutes int     `db:"duration_minutes"`
	Price           float64 `db:"price"`
	Active          bool    `db:"active"`
	model.Metadata
}

// Merge collapses variants of several rooms into one list keyed by name. The
// input must already be ordered by room name; the first variant seen for a name
// wins. The result is sorted by duration, ties keep their first-seen order.
func Merge(variants []Variant) []Variant {
	seen := make(map[string]struct{}, len(variants))
	merged := make([]Variant, 0, len(variants))

	for _, variant := range variants {
		if !variant.Active {
			continue
		}

		if _, ok := seen[variant.Name]; ok {
			continue
		}

		seen[variant.Name] = struct{}{}
		merged = append(merged, variant)
	}

	slices.SortStableFunc(merged, func(a, b Variant) int {
		return a.DurationMinutes - b.DurationMinutes
	})

	return merged
}

// Find returns the active variant with the given name.
func Find(variants []Variant, name string) (Variant, bool) {
	idx := slices.IndexFunc(variants, func(v Variant) bool {
		return v.Active && v.Name == name
	})

	if idx == -1 {
		return Variant{}, false
	}

	return variants[idx], true
}
