package model

import (
	"errors"
	"time"

	roomStatusModel "bookit/internal/domains/roomstatus/model"
	"bookit/permissions"
	"bookit/shared/constant"
)

var (
	ErrFrozen            = errors.New("this booking was already cancelled and can only be restored by an administrator")
	ErrUnknownStatus     = errors.New("unknown booking status")
	ErrIllegalTransition = errors.New("booking cannot move to the requested status")
	ErrNotPermitted      = errors.New("you don't have permission to change this booking")
)

// Effect is the bookkeeping a transition performs besides changing the status.
type Effect uint8

const (
	EffectCheckIn Effect = iota + 1
	EffectCheckOut
	EffectCancel
	EffectRestore
)

type Transition struct {
	From        Status
	To          Status
	Effect      Effect
	Permissions []string
}

var transitions = []Transition{
	{From: StatusReserved, To: StatusCheckedIn, Effect: EffectCheckIn, Permissions: []string{permissions.ActionBookingEdit}},
	{From: StatusCheckedIn, To: StatusCheckedOut, Effect: EffectCheckOut, Permissions: []string{permissions.ActionBookingEdit}},
	{From: StatusReserved, To: StatusCheckedOut, Effect: EffectCheckOut, Permissions: []string{permissions.ActionBookingEdit}},
	{From: StatusReserved, To: StatusCancelled, Effect: EffectCancel, Permissions: []string{permissions.ActionBookingCancel}},
	{From: StatusCheckedIn, To: StatusCancelled, Effect: EffectCancel, Permissions: []string{permissions.ActionBookingCancel}},
	{
		From:        StatusCheckedOut,
		To:          StatusCancelled,
		Effect:      EffectCancel,
		Permissions: []string{permissions.ActionBookingCancel, permissions.ActionBookingCancelCheckedOut},
	},
	{From: StatusCancelled, To: StatusReserved, Effect: EffectRestore, Permissions: []string{permissions.ActionBookingRestore}},
}

// Lookup returns the rule for moving from one status to another.
func Lookup(from, to Status) (Transition, error) {
	if !to.Valid() {
		return Transition{}, ErrUnknownStatus
	}

	for _, transition := range transitions {
		if transition.From == from && transition.To == to {
			return transition, nil
		}
	}

	return Transition{}, ErrIllegalTransition
}

// Authorize decides whether the caller may move a booking from one status to
// another. A cancelled booking is frozen first, then the rule is looked up and
// finally every permission the rule names is checked.
func Authorize(from, to Status, allowed func(action string) bool) (Transition, error) {
	if from == StatusCancelled && !allowed(permissions.ActionBookingManageCancelled) {
		return Transition{}, ErrFrozen
	}

	transition, err := Lookup(from, to)
	if err != nil {
		return Transition{}, err
	}

	for _, action := range transition.Permissions {
		if !allowed(action) {
			return Transition{}, ErrNotPermitted
		}
	}

	return transition, nil
}

// DailyStatusChange is the room readiness a transition leaves behind.
type DailyStatusChange struct {
	RoomID string
	Date   time.Time
	Status roomStatusModel.Status
}

// Apply stamps the transition on the booking and returns the changed columns
// together with the daily status to record, if any. Check-out marks the room
// Dirty for the day it happens, cancellation frees it on the booking date.
func (t Transition) Apply(booking *Booking, actorID string, now time.Time) (map[string]any, *DailyStatusChange) {
	booking.Status = t.To
	booking.Touch(actorID, now)

	fields := map[string]any{
		FieldStatus:              t.To.Code(),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actorID,
	}

	var change *DailyStatusChange

	switch t.Effect {
	case EffectCheckIn:
		booking.CheckedInBy, booking.CheckedInAt = &actorID, &now
		fields[FieldCheckedInBy], fields[FieldCheckedInAt] = actorID, now
	case EffectCheckOut:
		booking.CheckedOutBy, booking.CheckedOutAt = &actorID, &now
		fields[FieldCheckedOutBy], fields[FieldCheckedOutAt] = actorID, now

		if booking.RoomID != nil {
			change = &DailyStatusChange{RoomID: *booking.RoomID, Date: now, Status: roomStatusModel.StatusDirty}
		}
	case EffectCancel:
		booking.CancelledBy, booking.CancelledAt = &actorID, &now
		fields[FieldCancelledBy], fields[FieldCancelledAt] = actorID, now

		if booking.RoomID != nil {
			change = &DailyStatusChange{RoomID: *booking.RoomID, Date: booking.BookingDate, Status: roomStatusModel.StatusReady}
		}
	case EffectRestore:
		booking.CancelledBy, booking.CancelledAt = nil, nil
		fields[FieldCancelledBy], fields[FieldCancelledAt] = nil, nil
	}

	return fields, change
}
