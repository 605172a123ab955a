package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookit/config"
	otelMocks "bookit/infras/otel/mocks"
	"bookit/internal/domains/availability/engine"
	availabilityMocks "bookit/internal/domains/availability/mocks"
	availabilityService "bookit/internal/domains/availability/service"
	bookingMocks "bookit/internal/domains/booking/mocks"
	"bookit/internal/domains/booking/model"
	"bookit/internal/domains/booking/model/dto"
	"bookit/internal/domains/booking/service"
	categoryMocks "bookit/internal/domains/category/mocks"
	roomMocks "bookit/internal/domains/room/mocks"
	roomModel "bookit/internal/domains/room/model"
	roomStatusMocks "bookit/internal/domains/roomstatus/mocks"
	roomStatusModel "bookit/internal/domains/roomstatus/model"
	"bookit/internal/domains/sequence"
	sequenceMocks "bookit/internal/domains/sequence/mocks"
	"bookit/internal/events"
	eventMocks "bookit/internal/events/mocks"
	"bookit/permissions"
	"bookit/shared/actor"
	cacheMocks "bookit/shared/cache/mocks"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	repoMocks "bookit/shared/repository/mocks"
)

const policyJSON = `{"actions":{
	"superadmin":["*"],
	"admin":["booking.create","booking.edit","booking.cancel","booking.cancel_checked_out","booking.delete"],
	"user":["booking.create","booking.edit","booking.cancel"]
}}`

type fixture struct {
	svc            service.Booking
	repo           *bookingMocks.MockBooking
	productRepo    *bookingMocks.MockProduct
	roomRepo       *roomMocks.MockRoom
	roomStatusRepo *roomStatusMocks.MockRoomStatus
	availability   *availabilityMocks.MockAvailabilityService
	sequence       *sequenceMocks.MockSequence
	events         *eventMocks.MockPublisher
	transactor     *repoMocks.MockTransactor
	cache          *cacheMocks.MockRedisCache
}

func newPolicy(t *testing.T) permissions.Policy {
	t.Helper()

	data, err := permissions.Parse([]byte(policyJSON))
	require.NoError(t, err)

	return permissions.NewPolicy(data)
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:           bookingMocks.NewMockBooking(ctrl),
		productRepo:    bookingMocks.NewMockProduct(ctrl),
		roomRepo:       roomMocks.NewMockRoom(ctrl),
		roomStatusRepo: roomStatusMocks.NewMockRoomStatus(ctrl),
		availability:   availabilityMocks.NewMockAvailabilityService(ctrl),
		sequence:       sequenceMocks.NewMockSequence(ctrl),
		events:         eventMocks.NewMockPublisher(ctrl),
		transactor:     repoMocks.NewMockTransactor(ctrl),
		cache:          cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.productRepo, f.roomRepo, f.roomStatusRepo, f.availability, f.sequence,
		f.events, newPolicy(t), f.transactor, cfg, f.cache, otelMocks.NewOtel())

	f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.availability.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return f
}

func scopeOf(role string) actor.Scope {
	return actor.NewScope("store-1", actor.Actor{ID: "staff-1", Role: role})
}

func ptr[T any](value T) *T {
	return &value
}

var day = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func booked(status model.Status) model.Booking {
	return model.Booking{
		ID:          "booking-1",
		BID:         "BK240110001",
		StoreID:     "store-1",
		RoomID:      ptr("room-r"),
		BookingDate: day,
		StartTime:   "09:00",
		EndTime:     "11:00",
		Duration:    120,
		Status:      status,
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:       "room-r",
		CustomerName: "Budi",
		Date:         "2024-01-10",
		StartTime:    "09:00",
		EndTime:      "11:00",
		Duration:     120,
		Price:        150000,
	}
}

func TestBookingService_Create(t *testing.T) {
	room := roomModel.Room{ID: "room-r", StoreID: "store-1", Name: "R1", Status: roomModel.StatusActive}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.sequence.EXPECT().Next(gomock.Any(), sequence.KindBooking, "store-1", day).Return("BK240110001", nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), "store-1", "room-r", day, gomock.Any(), availabilityService.Exclude{}).Return(nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				assert.Equal(t, model.StatusReserved, booking.Status)
				assert.Equal(t, "BK240110001", booking.BID)
				assert.Equal(t, "staff-1", *booking.ConfirmedBy)

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any()).Do(func(_ context.Context, audit events.Audit) {
			assert.Equal(t, events.TypeBookingCreated, audit.Type)
		})

		res, err := f.svc.Create(context.Background(), scopeOf(constant.RoleUser), createRequest())
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "BO", res.Status)
		assert.Equal(t, "BK240110001", res.BID)
	})

	t.Run("slot shorter than duration", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.Duration = 180

		_, err := f.svc.Create(context.Background(), scopeOf(constant.RoleUser), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("room under maintenance", func(t *testing.T) {
		f := newFixture(t)

		broken := room
		broken.Status = roomModel.StatusBroken
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(broken, nil)

		_, err := f.svc.Create(context.Background(), scopeOf(constant.RoleUser), createRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("room of another store", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(context.Background(), scopeOf(constant.RoleUser), createRequest())

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("slot taken", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("BK240110002", nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.Conflict("slot no longer available, please pick another time or room"))

		_, err := f.svc.Create(context.Background(), scopeOf(constant.RoleUser), createRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("exclusion constraint backstop", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("BK240110002", nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeExclusion})

		_, err := f.svc.Create(context.Background(), scopeOf(constant.RoleUser), createRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("sequence unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))

		_, err := f.svc.Create(context.Background(), scopeOf(constant.RoleUser), createRequest())

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("role without create permission", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), scopeOf("viewer"), createRequest())

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestBookingService_Transition(t *testing.T) {
	t.Run("check in stamps the actor", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusReserved), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCheckedIn.Code(), fields[model.FieldStatus])
				assert.Equal(t, "staff-1", fields[model.FieldCheckedInBy])

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any()).Times(1)

		res, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleUser), "booking-1", dto.TransitionRequest{Status: "CI"})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "CI", res.Status)
		assert.Equal(t, "staff-1", *res.CheckedIn.By)
	})

	t.Run("check out marks the room dirty", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusCheckedIn), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.roomStatusRepo.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, status roomStatusModel.DailyStatus) error {
				assert.Equal(t, "room-r", status.RoomID)
				assert.Equal(t, roomStatusModel.StatusDirty, status.Status)

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())

		_, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleUser), "booking-1", dto.TransitionRequest{Status: "CO"})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("cancel marks the room ready on the booking date", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusReserved), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.roomStatusRepo.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, status roomStatusModel.DailyStatus) error {
				assert.Equal(t, roomStatusModel.StatusReady, status.Status)
				assert.True(t, status.StatusDate.Equal(day))

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())

		res, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleUser), "booking-1", dto.TransitionRequest{Status: "BATAL"})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "staff-1", *res.Cancelled.By)
	})

	t.Run("cancelled booking is frozen for admins", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusCancelled), nil)

		_, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleAdmin), "booking-1", dto.TransitionRequest{Status: "CI"})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		assert.Contains(t, err.Error(), "already cancelled")
	})

	t.Run("superadmin restores a cancelled booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusCancelled), nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), "store-1", "room-r", day, gomock.Any(),
			availabilityService.Exclude{BookingID: "booking-1"}).Return(nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Nil(t, fields[model.FieldCancelledBy])

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())

		res, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleSuperAdmin), "booking-1", dto.TransitionRequest{Status: "BO"})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "BO", res.Status)
		assert.Nil(t, res.Cancelled.By)
	})

	t.Run("restore into a taken slot", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusCancelled), nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.Conflict("slot no longer available, please pick another time or room"))

		_, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleSuperAdmin), "booking-1", dto.TransitionRequest{Status: "BO"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("cancelling a checked out booking needs the extra permission", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusCheckedOut), nil)

		_, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleUser), "booking-1", dto.TransitionRequest{Status: "BATAL"})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("illegal transition", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusCheckedOut), nil)

		_, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleUser), "booking-1", dto.TransitionRequest{Status: "CI"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusReserved), nil)

		_, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleUser), "booking-1", dto.TransitionRequest{Status: "LOST"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("booking of another store", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Transition(context.Background(), scopeOf(constant.RoleUser), "booking-1", dto.TransitionRequest{Status: "CI"})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("admin deletes booking and products", func(t *testing.T) {
		f := newFixture(t)

		gomock.InOrder(
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusCheckedOut), nil),
			f.productRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())

		err := f.svc.Delete(context.Background(), scopeOf(constant.RoleAdmin), "booking-1")
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("user may not delete", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusReserved), nil)

		err := f.svc.Delete(context.Background(), scopeOf(constant.RoleUser), "booking-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("cancelled booking is frozen", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked(model.StatusCancelled), nil)

		err := f.svc.Delete(context.Background(), scopeOf(constant.RoleAdmin), "booking-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("from database", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "booking:get:store-1:booking-1", gomock.Any()).Return(errors.New("miss"))
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booked(model.StatusReserved), nil)

		res, err := f.svc.Get(context.Background(), "store-1", "booking-1")
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "Reserved", res.StatusName)
		assert.Equal(t, "2024-01-10", res.Date)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "store-1", "booking-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booked(model.StatusReserved)}, nil)

	res, err := f.svc.GetAll(context.Background(), "store-1", gDto.QueryParams{Page: 1, Limit: 1}, gDto.FilterGroup{})
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_Products(t *testing.T) {
	t.Run("add to a live booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booked(model.StatusCheckedIn), nil)
		f.productRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.AddProduct(context.Background(), scopeOf(constant.RoleUser), "booking-1",
			dto.AddProductRequest{ProductName: "Cola", Qty: 2, Price: 10000})

		require.NoError(t, err)
		assert.Equal(t, "Cola", res.ProductName)
		assert.InDelta(t, 20000, res.Total, 0.001)
	})

	t.Run("cancelled booking takes no products", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booked(model.StatusCancelled), nil)

		_, err := f.svc.AddProduct(context.Background(), scopeOf(constant.RoleUser), "booking-1",
			dto.AddProductRequest{ProductName: "Cola", Qty: 2, Price: 10000})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("list with total", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.productRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Product{
			{ID: "p1", BookingID: "booking-1", ProductName: "Cola", Qty: 2, Price: 10000},
			{ID: "p2", BookingID: "booking-1", ProductName: "Chips", Qty: 1, Price: 5000},
		}, nil)

		res, err := f.svc.GetProducts(context.Background(), "store-1", "booking-1")

		require.NoError(t, err)
		assert.Len(t, res.Products, 2)
		assert.InDelta(t, 25000, res.Total, 0.001)
	})
}

// lockingTransactor serializes transactions the way the per-date advisory lock does.
type lockingTransactor struct {
	mu sync.Mutex
}

func (l *lockingTransactor) WithTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return fn(nil)
}

func TestBookingService_ConcurrentCreate(t *testing.T) {
	ctrl := gomock.NewController(t)

	var (
		mu     sync.Mutex
		stored []engine.Booking
	)

	availabilityRepo := availabilityMocks.NewMockAvailability(ctrl)
	availabilityRepo.EXPECT().LockDateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	availabilityRepo.EXPECT().OccupancyTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *sqlx.Tx, string, time.Time) (engine.Occupancy, error) {
			mu.Lock()
			defer mu.Unlock()

			return engine.Occupancy{Bookings: append([]engine.Booking(nil), stored...)}, nil
		}).AnyTimes()

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	roomRepo := roomMocks.NewMockRoom(ctrl)
	roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(roomModel.Room{ID: "room-r", StoreID: "store-1", Status: roomModel.StatusActive}, nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	availability := availabilityService.New(availabilityRepo, roomRepo, categoryMocks.NewMockCategory(ctrl), cfg, cache, otelMocks.NewOtel())

	var issued atomic.Int64

	seq := sequenceMocks.NewMockSequence(ctrl)
	seq.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, kind sequence.Kind, _ string, date time.Time) (string, error) {
			return sequence.Format(kind, date, issued.Add(1)), nil
		}).AnyTimes()

	repo := bookingMocks.NewMockBooking(ctrl)
	repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			mu.Lock()
			defer mu.Unlock()

			stored = append(stored, engine.Booking{
				ID:     booking.ID,
				RoomID: booking.RoomID,
				Date:   booking.BookingDate,
				Slot:   booking.Slot(),
				Status: booking.Status,
			})

			return nil
		}).AnyTimes()

	publisher := eventMocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Audit(gomock.Any(), gomock.Any()).Times(1)

	svc := service.New(repo, bookingMocks.NewMockProduct(ctrl), roomRepo, roomStatusMocks.NewMockRoomStatus(ctrl), availability,
		seq, publisher, newPolicy(t), &lockingTransactor{}, cfg, cache, otelMocks.NewOtel())

	const attempts = 8

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Create(context.Background(), scopeOf(constant.RoleUser), createRequest())

			switch {
			case err == nil:
				successes.Add(1)
			case failure.GetCode(err) == http.StatusConflict:
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(attempts-1), conflicts.Load())
	assert.Len(t, stored, 1)
}
