package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookit/config"
	otelMocks "bookit/infras/otel/mocks"
	s3Mocks "bookit/infras/s3/mocks"
	availabilityMocks "bookit/internal/domains/availability/mocks"
	availabilityService "bookit/internal/domains/availability/service"
	bookingMocks "bookit/internal/domains/booking/mocks"
	bookingModel "bookit/internal/domains/booking/model"
	requestMocks "bookit/internal/domains/bookingrequest/mocks"
	"bookit/internal/domains/bookingrequest/model"
	"bookit/internal/domains/bookingrequest/model/dto"
	"bookit/internal/domains/bookingrequest/service"
	categoryMocks "bookit/internal/domains/category/mocks"
	categoryModel "bookit/internal/domains/category/model"
	roomMocks "bookit/internal/domains/room/mocks"
	roomModel "bookit/internal/domains/room/model"
	"bookit/internal/domains/sequence"
	sequenceMocks "bookit/internal/domains/sequence/mocks"
	variantMocks "bookit/internal/domains/variant/mocks"
	variantModel "bookit/internal/domains/variant/model"
	"bookit/internal/events"
	eventMocks "bookit/internal/events/mocks"
	"bookit/permissions"
	"bookit/shared/actor"
	cacheMocks "bookit/shared/cache/mocks"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	"bookit/shared/ratelimit"
	ratelimitMocks "bookit/shared/ratelimit/mocks"
	repoMocks "bookit/shared/repository/mocks"
	"bookit/shared/token"
)

const policyJSON = `{"actions":{
	"admin":["request.manage","request.convert"],
	"user":["request.manage"]
}}`

type fixture struct {
	svc          service.BookingRequest
	repo         *requestMocks.MockBookingRequest
	bookingRepo  *bookingMocks.MockBooking
	roomRepo     *roomMocks.MockRoom
	categoryRepo *categoryMocks.MockCategory
	variant      *variantMocks.MockVariantService
	availability *availabilityMocks.MockAvailabilityService
	sequence     *sequenceMocks.MockSequence
	limiter      *ratelimitMocks.MockLimiter
	events       *eventMocks.MockPublisher
	storage      *s3Mocks.MockS3
	cache        *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	return newFixtureWithLimiter(t, nil)
}

// newFixtureWithLimiter wires limiter into the service in place of the mock when it is set.
func newFixtureWithLimiter(t *testing.T, limiter ratelimit.Limiter) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         requestMocks.NewMockBookingRequest(ctrl),
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		categoryRepo: categoryMocks.NewMockCategory(ctrl),
		variant:      variantMocks.NewMockVariantService(ctrl),
		availability: availabilityMocks.NewMockAvailabilityService(ctrl),
		sequence:     sequenceMocks.NewMockSequence(ctrl),
		limiter:      ratelimitMocks.NewMockLimiter(ctrl),
		events:       eventMocks.NewMockPublisher(ctrl),
		storage:      s3Mocks.NewMockS3(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	data, err := permissions.Parse([]byte(policyJSON))
	require.NoError(t, err)

	transactor := repoMocks.NewMockTransactor(ctrl)
	transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.App.PublicBaseURL = "https://book.example.com"
	cfg.Booking.PaymentWindowMinutes = 30
	cfg.External.S3.BucketName = "proofs"
	cfg.External.S3.PresignExpireMinutes = 15

	if limiter == nil {
		limiter = f.limiter
	}

	f.svc = service.New(f.repo, f.bookingRepo, f.roomRepo, f.categoryRepo, f.variant, f.availability, f.sequence,
		limiter, f.events, permissions.NewPolicy(data), transactor, f.storage, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.availability.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return f
}

func ptr[T any](value T) *T {
	return &value
}

func staff(role string) actor.Scope {
	return actor.NewScope("store-1", actor.Actor{ID: "staff-1", Role: role})
}

func tomorrow() time.Time {
	now := time.Now().UTC()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

func newToken(t *testing.T) string {
	t.Helper()

	value, err := token.New()
	require.NoError(t, err)

	return value
}

func pending(expiredAt time.Time) model.BookingRequest {
	return model.BookingRequest{
		ID:            "request-1",
		BID:           "RQ240110001",
		StoreID:       "store-1",
		CategoryID:    ptr("cat-vip"),
		VariantName:   "2 Hours",
		CustomerName:  "Sari",
		CustomerPhone: "628123456",
		BookingDate:   tomorrow(),
		StartTime:     "20:00",
		EndTime:       "22:00",
		Duration:      120,
		Price:         200000,
		Status:        model.StatusPending,
		ExpiredAt:     &expiredAt,
	}
}

func intakeRequest() dto.IntakeRequest {
	return dto.IntakeRequest{
		CategoryID:    "cat-vip",
		VariantName:   "2 Hours",
		CustomerName:  "Sari",
		CustomerPhone: "+62 812-3456",
		Date:          tomorrow().Format(constant.DayLayout),
		StartTime:     "23:00",
	}
}

var vipVariant = variantModel.Variant{ID: "variant-1", Name: "2 Hours", DurationMinutes: 120, Price: 200000, Active: true}

func TestBookingRequestService_Intake(t *testing.T) {
	t.Run("category request holds a slot until the payment window closes", func(t *testing.T) {
		f := newFixture(t)

		f.limiter.EXPECT().Check(gomock.Any(), "628123456").Return(ratelimit.Result{Allowed: true, Count: 1, Limit: 5}, nil)
		f.limiter.EXPECT().Record(gomock.Any(), "628123456").Return(nil)
		f.categoryRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(categoryModel.Category{ID: "cat-vip", Name: "VIP"}, nil)
		f.variant.EXPECT().Resolve(gomock.Any(), "store-1", "cat-vip", nil, "2 Hours").Return(vipVariant, nil)
		f.sequence.EXPECT().Next(gomock.Any(), sequence.KindRequest, "store-1", gomock.Any()).Return("RQ240110001", nil)
		f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), "store-1", "cat-vip", gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, request model.BookingRequest) error {
				assert.Equal(t, model.StatusPending, request.Status)
				assert.Equal(t, "23:00", request.StartTime)
				assert.Equal(t, "01:00", request.EndTime)
				assert.Equal(t, 120, request.Duration)
				assert.True(t, token.Valid(request.ConfirmationToken))
				assert.WithinDuration(t, time.Now().Add(30*time.Minute), *request.ExpiredAt, time.Minute)

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())
		f.events.EXPECT().RequestCreated(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event events.RequestCreated) {
			assert.Equal(t, "VIP", *event.Category)
			assert.Nil(t, event.Room)
			assert.True(t, strings.HasPrefix(event.ConfirmationURL, "https://book.example.com/v1/public/booking-requests/confirmation/"))
		})

		res, err := f.svc.Intake(context.Background(), "store-1", intakeRequest())
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "pending", res.Status)
		assert.Equal(t, "RQ240110001", res.BID)
		assert.NotEmpty(t, res.ConfirmationURL)
	})

	t.Run("room request claims that room", func(t *testing.T) {
		f := newFixture(t)

		room := roomModel.Room{ID: "room-r", StoreID: "store-1", Name: "R1", CategoryID: ptr("cat-vip"), Status: roomModel.StatusActive}
		req := intakeRequest()
		req.RoomID = "room-r"

		f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(ratelimit.Result{Allowed: true}, nil)
		f.limiter.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.categoryRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(categoryModel.Category{ID: "cat-vip", Name: "VIP"}, nil)
		f.variant.EXPECT().Resolve(gomock.Any(), "store-1", "cat-vip", gomock.Any(), "2 Hours").Return(vipVariant, nil)
		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RQ240110002", nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), "store-1", "room-r", gomock.Any(), gomock.Any(), availabilityService.Exclude{}).Return(nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())
		f.events.EXPECT().RequestCreated(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event events.RequestCreated) {
			assert.Equal(t, "R1", *event.Room)
		})

		_, err := f.svc.Intake(context.Background(), "store-1", req)
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("room outside the requested category", func(t *testing.T) {
		f := newFixture(t)

		req := intakeRequest()
		req.RoomID = "room-s"

		f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(ratelimit.Result{Allowed: true}, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-s", CategoryID: ptr("cat-regular"), Status: roomModel.StatusActive}, nil)

		_, err := f.svc.Intake(context.Background(), "store-1", req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("sixth request within the window is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).
			Return(ratelimit.Result{Allowed: false, Count: 5, Limit: 5, RetryAfter: 90 * time.Second}, nil)

		_, err := f.svc.Intake(context.Background(), "store-1", intakeRequest())

		assert.Equal(t, http.StatusTooManyRequests, failure.GetCode(err))
		assert.Equal(t, 90, failure.GetRetryAfter(err))
	})

	t.Run("limiter outage lets the request through", func(t *testing.T) {
		f := newFixture(t)

		f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(ratelimit.Result{}, errors.New("redis down"))
		f.limiter.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
		f.categoryRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(categoryModel.Category{ID: "cat-vip", Name: "VIP"}, nil)
		f.variant.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(vipVariant, nil)
		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RQ240110003", nil)
		f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())
		f.events.EXPECT().RequestCreated(gomock.Any(), gomock.Any())

		_, err := f.svc.Intake(context.Background(), "store-1", intakeRequest())
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("no room left in the category", func(t *testing.T) {
		f := newFixture(t)

		f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(ratelimit.Result{Allowed: true}, nil)
		f.categoryRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(categoryModel.Category{ID: "cat-vip", Name: "VIP"}, nil)
		f.variant.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(vipVariant, nil)
		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RQ240110004", nil)
		f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.Conflict("slot no longer available, please pick another time or room"))

		_, err := f.svc.Intake(context.Background(), "store-1", intakeRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("rejected requests do not use up the quota", func(t *testing.T) {
		server := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: server.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		limiter := ratelimit.NewSlidingWindow(client, otelMocks.NewOtel(), "intake", 1, time.Hour)
		f := newFixtureWithLimiter(t, limiter)

		f.categoryRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(categoryModel.Category{ID: "cat-vip", Name: "VIP"}, nil).Times(3)
		f.variant.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(vipVariant, nil).Times(3)
		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RQ240110005", nil).Times(3)

		gomock.InOrder(
			f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(failure.Conflict("slot no longer available, please pick another time or room")),
			f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(failure.Conflict("slot no longer available, please pick another time or room")),
			f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil),
		)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())
		f.events.EXPECT().RequestCreated(gomock.Any(), gomock.Any())

		for range 2 {
			_, err := f.svc.Intake(context.Background(), "store-1", intakeRequest())
			assert.Equal(t, http.StatusConflict, failure.GetCode(err))

			res, err := limiter.Check(context.Background(), "628123456")
			require.NoError(t, err)
			assert.Equal(t, 0, res.Count)
		}

		_, err := f.svc.Intake(context.Background(), "store-1", intakeRequest())
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, err)

		res, err := limiter.Check(context.Background(), "628123456")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.False(t, res.Allowed)

		_, err = f.svc.Intake(context.Background(), "store-1", intakeRequest())
		assert.Equal(t, http.StatusTooManyRequests, failure.GetCode(err))
	})

	t.Run("refused claim leaves its number unused", func(t *testing.T) {
		f := newFixture(t)

		f.limiter.EXPECT().Check(gomock.Any(), gomock.Any()).Return(ratelimit.Result{Allowed: true}, nil).Times(2)
		f.limiter.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
		f.categoryRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(categoryModel.Category{ID: "cat-vip", Name: "VIP"}, nil).Times(2)
		f.variant.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(vipVariant, nil).Times(2)
		gomock.InOrder(
			f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RQ240110006", nil),
			f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RQ240110007", nil),
		)
		gomock.InOrder(
			f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(failure.Conflict("slot no longer available, please pick another time or room")),
			f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil),
		)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, request model.BookingRequest) error {
				assert.Equal(t, "RQ240110007", request.BID)

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())
		f.events.EXPECT().RequestCreated(gomock.Any(), gomock.Any())

		_, err := f.svc.Intake(context.Background(), "store-1", intakeRequest())
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))

		res, err := f.svc.Intake(context.Background(), "store-1", intakeRequest())
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "RQ240110007", res.BID)
	})

	t.Run("date in the past", func(t *testing.T) {
		f := newFixture(t)

		req := intakeRequest()
		req.Date = "2020-01-01"

		_, err := f.svc.Intake(context.Background(), "store-1", req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingRequestService_ActByToken(t *testing.T) {
	t.Run("confirm twice changes the request once", func(t *testing.T) {
		f := newFixture(t)
		tok := newToken(t)

		request := pending(time.Now().Add(20 * time.Minute))
		confirmed := request
		confirmed.Status = model.StatusConfirmed

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil),
			f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil),
		)
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any()).Times(1)

		first, err := f.svc.ActByToken(context.Background(), tok, dto.ActionConfirm)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", first.Status)

		second, err := f.svc.ActByToken(context.Background(), tok, dto.ActionConfirm)
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "confirmed", second.Status)
	})

	t.Run("losing a concurrent confirm is a no-op", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now().Add(20 * time.Minute))
		confirmed := request
		confirmed.Status = model.StatusConfirmed

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil),
			f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil),
		)

		res, err := f.svc.ActByToken(context.Background(), newToken(t), dto.ActionConfirm)

		require.NoError(t, err)
		assert.Equal(t, "confirmed", res.Status)
	})

	t.Run("pending past its window cannot be confirmed before the sweep", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(time.Now().Add(-time.Minute)), nil)

		_, err := f.svc.ActByToken(context.Background(), newToken(t), dto.ActionConfirm)

		assert.Equal(t, http.StatusGone, failure.GetCode(err))
	})

	t.Run("checked in request cannot be cancelled by the customer", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now().Add(20 * time.Minute))
		request.Status = model.StatusCheckIn
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)

		_, err := f.svc.ActByToken(context.Background(), newToken(t), dto.ActionCancel)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("confirmed request can be cancelled", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now().Add(-time.Hour))
		request.Status = model.StatusConfirmed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, "cancelled", fields[model.FieldStatus])

				return 1, nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any()).Do(func(_ context.Context, audit events.Audit) {
			assert.Equal(t, events.TypeRequestCancelled, audit.Type)
		})

		res, err := f.svc.ActByToken(context.Background(), newToken(t), dto.ActionCancel)
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "cancelled", res.Status)
	})

	t.Run("expired request", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now().Add(-time.Hour))
		request.Status = model.StatusExpired
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)

		_, err := f.svc.ActByToken(context.Background(), newToken(t), dto.ActionCancel)

		assert.Equal(t, http.StatusGone, failure.GetCode(err))
	})

	t.Run("malformed token never reaches the database", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ActByToken(context.Background(), "not-a-token", dto.ActionConfirm)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown action", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ActByToken(context.Background(), newToken(t), "approve")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingRequestService_GetByToken(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(time.Now().Add(10*time.Minute)), nil)

	res, err := f.svc.GetByToken(context.Background(), newToken(t))

	require.NoError(t, err)
	assert.Equal(t, "RQ240110001", res.BID)
	assert.NotNil(t, res.ExpiredAt)
}

func TestBookingRequestService_Convert(t *testing.T) {
	room := roomModel.Room{ID: "room-r", StoreID: "store-1", CategoryID: ptr("cat-vip"), Status: roomModel.StatusActive}

	confirmed := func() model.BookingRequest {
		request := pending(time.Now().Add(-time.Hour))
		request.Status = model.StatusConfirmed

		return request
	}

	t.Run("booking carries the request over", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), "store-1", "room-r", gomock.Any(), gomock.Any(),
			availabilityService.Exclude{RequestID: "request-1"}).Return(nil)
		f.bookingRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, booking bookingModel.Booking) error {
				assert.Equal(t, "RQ240110001", booking.BID)
				assert.Equal(t, bookingModel.StatusReserved, booking.Status)
				assert.Equal(t, "request-1", *booking.BookingRequestID)
				assert.Equal(t, "staff-1", *booking.ConfirmedBy)
				assert.InDelta(t, 200000, booking.Price, 0.001)

				return nil
			})
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.NotEmpty(t, fields[model.FieldConvertedBookingID])
				assert.Equal(t, "room-r", fields[model.FieldRoomID])

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())

		res, err := f.svc.Convert(context.Background(), staff(constant.RoleAdmin), "request-1", dto.ConvertRequest{RoomID: "room-r"})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "BO", res.Status)
		assert.Equal(t, "20:00", res.StartTime)
	})

	t.Run("pending request is not convertible", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending(time.Now().Add(time.Hour)), nil)

		_, err := f.svc.Convert(context.Background(), staff(constant.RoleAdmin), "request-1", dto.ConvertRequest{RoomID: "room-r"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("already converted", func(t *testing.T) {
		f := newFixture(t)

		request := confirmed()
		request.ConvertedBookingID = ptr("booking-9")
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(request, nil)

		_, err := f.svc.Convert(context.Background(), staff(constant.RoleAdmin), "request-1", dto.ConvertRequest{RoomID: "room-r"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("room of another category", func(t *testing.T) {
		f := newFixture(t)

		other := room
		other.CategoryID = ptr("cat-regular")
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(other, nil)

		_, err := f.svc.Convert(context.Background(), staff(constant.RoleAdmin), "request-1", dto.ConvertRequest{RoomID: "room-r"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("overlap caught by the exclusion constraint", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.bookingRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeExclusion})

		_, err := f.svc.Convert(context.Background(), staff(constant.RoleAdmin), "request-1", dto.ConvertRequest{RoomID: "room-r"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("role without convert permission", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Convert(context.Background(), staff(constant.RoleUser), "request-1", dto.ConvertRequest{RoomID: "room-r"})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestBookingRequestService_Sweep(t *testing.T) {
	t.Run("expires overdue requests once", func(t *testing.T) {
		f := newFixture(t)

		first := pending(time.Now().Add(-time.Minute))
		second := pending(time.Now().Add(-time.Hour))
		second.ID = "request-2"

		gomock.InOrder(
			f.repo.EXPECT().SweepExpired(gomock.Any(), gomock.Any()).Return([]model.BookingRequest{first, second}, nil),
			f.repo.EXPECT().SweepExpired(gomock.Any(), gomock.Any()).Return(nil, nil),
		)
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any()).Times(2)

		res, err := f.svc.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, res.Expired)

		res, err = f.svc.Sweep(context.Background())
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 0, res.Expired)
	})

	t.Run("database failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().SweepExpired(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := f.svc.Sweep(context.Background())

		assert.Error(t, err)
	})
}

func TestBookingRequestService_StaffActions(t *testing.T) {
	t.Run("payment timer extends an open window", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(time.Now().Add(10*time.Minute)), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())

		res, err := f.svc.StartPaymentTimer(context.Background(), staff(constant.RoleUser), "request-1")
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		require.NotNil(t, res.ExpiredAt)
	})

	t.Run("payment timer reclaims the slot of an overdue room request", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now().Add(-10 * time.Minute))
		request.RoomID = ptr("room-r")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(request, nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), "store-1", "room-r", request.BookingDate, request.Slot(),
			availabilityService.Exclude{RequestID: "request-1"}).Return(nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				expiredAt, ok := fields[model.FieldExpiredAt].(time.Time)
				require.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiredAt, time.Minute)

				return nil
			})
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())

		res, err := f.svc.StartPaymentTimer(context.Background(), staff(constant.RoleUser), "request-1")
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		require.NotNil(t, res.ExpiredAt)
	})

	t.Run("payment timer refuses an overdue request whose slot was taken", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now().Add(-10 * time.Minute))
		request.RoomID = ptr("room-r")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(request, nil)
		f.availability.EXPECT().ClaimRoomTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.Conflict("slot no longer available, please pick another time or room"))

		_, err := f.svc.StartPaymentTimer(context.Background(), staff(constant.RoleUser), "request-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("payment timer reclaims the category pool for an overdue category request", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now().Add(-10 * time.Minute))

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(request, nil)
		f.availability.EXPECT().ClaimCategoryTx(gomock.Any(), gomock.Any(), "store-1", "cat-vip", request.BookingDate, request.Slot()).
			Return(failure.Conflict("slot no longer available, please pick another time or room"))

		_, err := f.svc.StartPaymentTimer(context.Background(), staff(constant.RoleUser), "request-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("payment timer loses to a sweep of the overdue request", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now().Add(-10 * time.Minute))
		swept := request
		swept.Status = model.StatusExpired

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(swept, nil)

		_, err := f.svc.StartPaymentTimer(context.Background(), staff(constant.RoleUser), "request-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("payment timer needs a pending request", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now())
		request.Status = model.StatusConfirmed
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)

		_, err := f.svc.StartPaymentTimer(context.Background(), staff(constant.RoleUser), "request-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("confirmed request checks in", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now())
		request.Status = model.StatusConfirmed
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.events.EXPECT().Audit(gomock.Any(), gomock.Any())

		res, err := f.svc.UpdateStatus(context.Background(), staff(constant.RoleUser), "request-1", dto.UpdateStatusRequest{Status: "check-in"})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "check-in", res.Status)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(time.Now().Add(time.Hour)), nil)

		_, err := f.svc.UpdateStatus(context.Background(), staff(constant.RoleUser), "request-1", dto.UpdateStatusRequest{Status: "completed"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("payment proof link", func(t *testing.T) {
		f := newFixture(t)

		request := pending(time.Now())
		request.PaymentProof = "proofs/request-1.jpg"
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)
		f.storage.EXPECT().PresignGetURL(gomock.Any(), "proofs", "proofs/request-1.jpg", 15*time.Minute).Return("https://s3/signed", nil)

		res, err := f.svc.PaymentProofURL(context.Background(), "store-1", "request-1")

		require.NoError(t, err)
		assert.Equal(t, "https://s3/signed", res.URL)
	})

	t.Run("no payment proof uploaded", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(time.Now()), nil)

		_, err := f.svc.PaymentProofURL(context.Background(), "store-1", "request-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingRequestService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookingRequest{pending(time.Now())}, nil)

	res, err := f.svc.GetAll(context.Background(), "store-1", gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res.Requests, 1)
	assert.Equal(t, 1, res.TotalPage)
}
