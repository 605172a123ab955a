package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/internal/domains/variant/model"
)

func TestMerge(t *testing.T) {
	variants := []model.Variant{
		{RoomID: "room-a", Name: "3 Hours", DurationMinutes: 180, Price: 300, Active: true},
		{RoomID: "room-a", Name: "1 Hour", DurationMinutes: 60, Price: 100, Active: true},
		{RoomID: "room-b", Name: "1 Hour", DurationMinutes: 60, Price: 120, Active: true},
		{RoomID: "room-b", Name: "2 Hours", DurationMinutes: 120, Price: 200, Active: true},
		{RoomID: "room-b", Name: "Overnight", DurationMinutes: 600, Price: 900, Active: false},
	}

	merged := model.Merge(variants)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"1 Hour", "2 Hours", "3 Hours"}, []string{merged[0].Name, merged[1].Name, merged[2].Name})
	assert.InDelta(t, 100, merged[0].Price, 0.001, "first room in name order wins")
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, model.Merge(nil))
}

func TestFind(t *testing.T) {
	variants := []model.Variant{
		{Name: "1 Hour", DurationMinutes: 60, Active: true},
		{Name: "2 Hours", DurationMinutes: 120, Active: false},
	}

	found, ok := model.Find(variants, "1 Hour")
	assert.True(t, ok)
	assert.Equal(t, 60, found.DurationMinutes)

	_, ok = model.Find(variants, "2 Hours")
	assert.False(t, ok, "inactive variants are not offered")

	_, ok = model.Find(variants, "Overnight")
	assert.False(t, ok)
}
