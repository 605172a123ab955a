package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/internal/domains/booking/model"
	roomStatusModel "bookit/internal/domains/roomstatus/model"
	"bookit/permissions"
)

func allowAll(string) bool { return true }

func allowOnly(actions ...string) func(string) bool {
	return func(action string) bool {
		for _, a := range actions {
			if a == action {
				return true
			}
		}

		return false
	}
}

func TestAuthorize_EveryPair(t *testing.T) {
	legal := map[[2]model.Status]bool{
		{model.StatusReserved, model.StatusCheckedIn}:   true,
		{model.StatusCheckedIn, model.StatusCheckedOut}: true,
		{model.StatusReserved, model.StatusCheckedOut}:  true,
		{model.StatusReserved, model.StatusCancelled}:   true,
		{model.StatusCheckedIn, model.StatusCancelled}:  true,
		{model.StatusCheckedOut, model.StatusCancelled}: true,
		{model.StatusCancelled, model.StatusReserved}:   true,
	}

	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				transition, err := model.Authorize(from, to, allowAll)

				if legal[[2]model.Status{from, to}] {
					require.NoError(t, err)
					assert.Equal(t, from, transition.From)
					assert.Equal(t, to, transition.To)

					return
				}

				assert.ErrorIs(t, err, model.ErrIllegalTransition)
			})
		}
	}
}

func TestAuthorize_UnknownTarget(t *testing.T) {
	for _, to := range []model.Status{0, model.Status(42)} {
		_, err := model.Authorize(model.StatusReserved, to, allowAll)

		assert.ErrorIs(t, err, model.ErrUnknownStatus)
	}
}

func TestAuthorize_Permissions(t *testing.T) {
	tests := []struct {
		name    string
		from    model.Status
		to      model.Status
		allowed func(string) bool
		wantErr error
	}{
		{
			name:    "edit checks in",
			from:    model.StatusReserved,
			to:      model.StatusCheckedIn,
			allowed: allowOnly(permissions.ActionBookingEdit),
		},
		{
			name:    "cancel without permission",
			from:    model.StatusReserved,
			to:      model.StatusCancelled,
			allowed: allowOnly(permissions.ActionBookingEdit),
			wantErr: model.ErrNotPermitted,
		},
		{
			name:    "cancelling a checked out booking needs the elevated permission",
			from:    model.StatusCheckedOut,
			to:      model.StatusCancelled,
			allowed: allowOnly(permissions.ActionBookingCancel),
			wantErr: model.ErrNotPermitted,
		},
		{
			name:    "elevated cancel",
			from:    model.StatusCheckedOut,
			to:      model.StatusCancelled,
			allowed: allowOnly(permissions.ActionBookingCancel, permissions.ActionBookingCancelCheckedOut),
		},
		{
			name:    "cancelled booking is frozen",
			from:    model.StatusCancelled,
			to:      model.StatusReserved,
			allowed: allowOnly(permissions.ActionBookingRestore),
			wantErr: model.ErrFrozen,
		},
		{
			name:    "frozen before the rule is looked up",
			from:    model.StatusCancelled,
			to:      model.StatusCheckedIn,
			allowed: allowOnly(permissions.ActionBookingEdit),
			wantErr: model.ErrFrozen,
		},
		{
			name:    "restore",
			from:    model.StatusCancelled,
			to:      model.StatusReserved,
			allowed: allowOnly(permissions.ActionBookingManageCancelled, permissions.ActionBookingRestore),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.Authorize(tt.from, tt.to, tt.allowed)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestTransition_Apply(t *testing.T) {
	roomID := "room-1"
	bookingDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 11, 1, 30, 0, 0, time.UTC)

	newBooking := func(status model.Status) *model.Booking {
		return &model.Booking{ID: "booking-1", RoomID: &roomID, BookingDate: bookingDate, Status: status}
	}

	t.Run("check out marks the room dirty today", func(t *testing.T) {
		booking := newBooking(model.StatusCheckedIn)
		transition, err := model.Lookup(model.StatusCheckedIn, model.StatusCheckedOut)
		require.NoError(t, err)

		fields, change := transition.Apply(booking, "staff-1", now)

		assert.Equal(t, "CO", fields[model.FieldStatus])
		assert.Equal(t, "staff-1", fields[model.FieldCheckedOutBy])
		require.NotNil(t, change)
		assert.Equal(t, roomStatusModel.StatusDirty, change.Status)
		assert.Equal(t, now, change.Date)
		assert.Equal(t, "staff-1", *booking.CheckedOutBy)
	})

	t.Run("cancel frees the room on the booking date", func(t *testing.T) {
		booking := newBooking(model.StatusReserved)
		transition, err := model.Lookup(model.StatusReserved, model.StatusCancelled)
		require.NoError(t, err)

		fields, change := transition.Apply(booking, "staff-1", now)

		assert.Equal(t, "BATAL", fields[model.FieldStatus])
		require.NotNil(t, change)
		assert.Equal(t, roomStatusModel.StatusReady, change.Status)
		assert.Equal(t, bookingDate, change.Date)
	})

	t.Run("check in leaves the daily status alone", func(t *testing.T) {
		booking := newBooking(model.StatusReserved)
		transition, err := model.Lookup(model.StatusReserved, model.StatusCheckedIn)
		require.NoError(t, err)

		fields, change := transition.Apply(booking, "staff-1", now)

		assert.Nil(t, change)
		assert.Equal(t, now, fields[model.FieldCheckedInAt])
	})

	t.Run("restore clears the cancellation but keeps check in stamps", func(t *testing.T) {
		booking := newBooking(model.StatusCancelled)
		checkedIn := now.Add(-time.Hour)
		actor := "staff-0"
		booking.CheckedInBy, booking.CheckedInAt = &actor, &checkedIn
		booking.CancelledBy, booking.CancelledAt = &actor, &checkedIn

		transition, err := model.Lookup(model.StatusCancelled, model.StatusReserved)
		require.NoError(t, err)

		fields, change := transition.Apply(booking, "owner", now)

		assert.Nil(t, change)
		assert.Contains(t, fields, model.FieldCancelledBy)
		assert.Nil(t, fields[model.FieldCancelledBy])
		assert.Nil(t, booking.CancelledAt)
		assert.NotNil(t, booking.CheckedInAt)
	})

	t.Run("booking without a room has no daily status", func(t *testing.T) {
		booking := newBooking(model.StatusReserved)
		booking.RoomID = nil
		transition, err := model.Lookup(model.StatusReserved, model.StatusCancelled)
		require.NoError(t, err)

		_, change := transition.Apply(booking, "staff-1", now)

		assert.Nil(t, change)
	})
}

func TestStatus_Codes(t *testing.T) {
	for _, status := range model.Statuses {
		parsed, ok := model.ParseStatus(status.Code())
		require.True(t, ok)
		assert.Equal(t, status, parsed)

		byName, ok := model.ParseStatus(status.String())
		require.True(t, ok)
		assert.Equal(t, status, byName)
	}

	_, ok := model.ParseStatus("XX")
	assert.False(t, ok)

	var scanned model.Status
	require.NoError(t, scanned.Scan([]byte("CI")))
	assert.Equal(t, model.StatusCheckedIn, scanned)
	assert.Error(t, scanned.Scan(12))

	_, err := model.Status(0).Value()
	assert.Error(t, err)
}
