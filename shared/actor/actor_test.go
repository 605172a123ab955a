package actor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookit/shared/actor"
	"bookit/shared/constant"
)

func TestFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	assert.Equal(t, actor.Actor{ID: "user-1", Role: constant.RoleAdmin}, actor.FromContext(ctx))
}

func TestFromContextWithoutUser(t *testing.T) {
	act := actor.FromContext(context.Background())

	assert.True(t, act.IsGuest())
	assert.Empty(t, act.Role)
}

func TestNewScope(t *testing.T) {
	scope := actor.NewScope("store-1", actor.System())

	assert.Equal(t, "store-1", scope.StoreID)
	assert.Equal(t, constant.ContextSystem, scope.Actor.ID)
	assert.False(t, scope.Actor.IsGuest())
}

func TestScopeOf(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

	scope := actor.ScopeOf(ctx, "store-2")

	assert.Equal(t, "store-2", scope.StoreID)
	assert.Equal(t, "user-1", scope.Actor.ID)
	assert.Equal(t, constant.RoleUser, scope.Actor.Role)
	assert.True(t, actor.ScopeOf(context.Background(), "store-2").Actor.IsGuest())
}
