package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookit/internal/domains/room/model"
)

func TestStatus(t *testing.T) {
	assert.True(t, model.StatusActive.Valid())
	assert.True(t, model.StatusBroken.Valid())
	assert.True(t, model.StatusMaintenance.Valid())
	assert.False(t, model.Status("Closed").Valid())

	assert.True(t, model.StatusActive.Bookable())
	assert.False(t, model.StatusBroken.Bookable())
	assert.False(t, model.StatusMaintenance.Bookable())
}

func TestInCategory(t *testing.T) {
	category := "vip"

	assert.True(t, model.Room{CategoryID: &category}.InCategory("vip"))
	assert.False(t, model.Room{CategoryID: &category}.InCategory("regular"))
	assert.True(t, model.Room{}.InCategory(""))
	assert.False(t, model.Room{}.InCategory("vip"))
}
