// Package actor carries the caller identity and store scope into domain operations.
package actor

import (
	"context"

	"bookit/shared/constant"
)

type Actor struct {
	ID   string
	Role string
}

// Scope binds an actor to the store an operation runs against.
type Scope struct {
	StoreID string
	Actor   Actor
}

func NewScope(storeID string, act Actor) Scope {
	return Scope{StoreID: storeID, Actor: act}
}

// FromContext reads the authenticated actor placed on the context by the auth middleware.
// Unauthenticated callers resolve to the guest actor with no role.
func FromContext(ctx context.Context) Actor {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if id == constant.Empty {
		return Guest()
	}

	return Actor{ID: id, Role: role}
}

func Guest() Actor {
	return Actor{ID: constant.ContextGuest}
}

// System is the actor recorded for background jobs.
func System() Actor {
	return Actor{ID: constant.ContextSystem}
}

func (a Actor) IsGuest() bool {
	return a.ID == constant.ContextGuest
}

// ScopeOf binds the actor on ctx to storeID.
func ScopeOf(ctx context.Context, storeID string) Scope {
	return NewScope(storeID, FromContext(ctx))
}
