package bookingrequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookit/config"
	otelMocks "bookit/infras/otel/mocks"
	bookingDto "bookit/internal/domains/booking/model/dto"
	requestMocks "bookit/internal/domains/bookingrequest/mocks"
	"bookit/internal/domains/bookingrequest/model/dto"
	"bookit/internal/handlers/bookingrequest"
	"bookit/shared/actor"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
)

func newRouter(t *testing.T, minTriggerSeconds int) (*requestMocks.MockBookingRequestService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := requestMocks.NewMockBookingRequestService(ctrl)

	cfg := &config.Config{}
	cfg.Booking.Sweep.MinTriggerSeconds = minTriggerSeconds

	handler := bookingrequest.New(svc, cfg, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/public", func(public chi.Router) {
		public.Route("/stores/{storeID}", handler.IntakeRouter)
		handler.PublicRouter(public)
	})
	router.Route("/internal", handler.InternalRouter)
	router.Route("/stores/{storeID}", handler.Router)

	return svc, router
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "staff-1"))
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserRole, constant.RoleAdmin))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestIntake(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t, 5)

		svc.EXPECT().Intake(gomock.Any(), "store-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, req dto.IntakeRequest) (dto.IntakeResponse, error) {
				assert.Equal(t, "Family", req.VariantName)
				assert.Equal(t, "23:00", req.StartTime)

				res := dto.IntakeResponse{ConfirmationURL: "https://book.example.com/confirmation/abc"}
				res.BID = "RQ240110001"

				return res, nil
			})

		body := `{
			"category_id":"5b1c2f8a-3a8e-4a43-9d5f-2f1d0a6c7e11",
			"variant_name":"Family",
			"customer_name":"Ana",
			"customer_phone":"+6281234567",
			"date":"2030-01-10",
			"start_time":"23:00"
		}`

		rec := serve(router, http.MethodPost, "/public/stores/store-1/booking-requests", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "RQ240110001")
		assert.Contains(t, rec.Body.String(), "confirmation_url")
	})

	t.Run("invalid body", func(t *testing.T) {
		_, router := newRouter(t, 5)

		rec := serve(router, http.MethodPost, "/public/stores/store-1/booking-requests", `{"variant_name":"Family"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		svc, router := newRouter(t, 5)

		svc.EXPECT().Intake(gomock.Any(), "store-1", gomock.Any()).
			Return(dto.IntakeResponse{}, failure.TooManyRequests(constant.ResponseErrorRequestLimitExceeded, 90*time.Second))

		body := `{
			"room_id":"5b1c2f8a-3a8e-4a43-9d5f-2f1d0a6c7e11",
			"variant_name":"Family",
			"customer_name":"Ana",
			"customer_phone":"081234567",
			"date":"2030-01-10",
			"start_time":"10:00"
		}`

		rec := serve(router, http.MethodPost, "/public/stores/store-1/booking-requests", body)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "90", rec.Header().Get(constant.ResponseHeaderRetryAfter))
	})
}

func TestActByToken(t *testing.T) {
	svc, router := newRouter(t, 5)

	svc.EXPECT().ActByToken(gomock.Any(), "tok", dto.ActionConfirm).
		Return(dto.PublicRequestResponse{BID: "RQ240110001", Status: "confirmed"}, nil)
	svc.EXPECT().ActByToken(gomock.Any(), "late", dto.ActionConfirm).
		Return(dto.PublicRequestResponse{}, failure.Expired("payment window has passed"))

	rec := serve(router, http.MethodPost, "/public/booking-requests/confirmation/tok?action=confirm", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)

	rec = serve(router, http.MethodPost, "/public/booking-requests/confirmation/late?action=confirm", "")
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestActByTokenWithoutAction(t *testing.T) {
	svc, router := newRouter(t, 5)

	svc.EXPECT().GetByToken(gomock.Any(), "tok").
		Return(dto.PublicRequestResponse{BID: "RQ240110001", Status: "pending"}, nil)

	rec := serve(router, http.MethodPost, "/public/booking-requests/confirmation/tok", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestGetRequestsFilters(t *testing.T) {
	svc, router := newRouter(t, 5)

	svc.EXPECT().GetAll(gomock.Any(), "store-1", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRequestsResponse, error) {
			require.Len(t, filter.Filters, 2)

			status, ok := filter.Filters[0].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, "pending", status.Value)

			return dto.GetRequestsResponse{}, nil
		})

	rec := serve(router, http.MethodGet, "/stores/store-1/booking-requests?status=pending&date=2030-01-10", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/stores/store-1/booking-requests?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, http.MethodGet, "/stores/store-1/booking-requests?date=10-01-2030", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvert(t *testing.T) {
	svc, router := newRouter(t, 5)

	req := dto.ConvertRequest{RoomID: "5b1c2f8a-3a8e-4a43-9d5f-2f1d0a6c7e11"}

	svc.EXPECT().Convert(gomock.Any(), gomock.Any(), "request-1", req).DoAndReturn(
		func(_ context.Context, scope actor.Scope, _ string, _ dto.ConvertRequest) (bookingDto.BookingResponse, error) {
			assert.Equal(t, "store-1", scope.StoreID)
			assert.Equal(t, "staff-1", scope.Actor.ID)
			assert.Equal(t, constant.RoleAdmin, scope.Actor.Role)

			return bookingDto.BookingResponse{BID: "BO240110001"}, nil
		})

	rec := serve(router, http.MethodPost, "/stores/store-1/booking-requests/request-1/convert", `{"room_id":"`+req.RoomID+`"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "BO240110001")

	rec = serve(router, http.MethodPost, "/stores/store-1/booking-requests/request-1/convert", `{"room_id":"room-7"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSweepThrottle(t *testing.T) {
	svc, router := newRouter(t, 60)

	svc.EXPECT().Sweep(gomock.Any()).Return(dto.SweepResponse{Expired: 3}, nil).Times(1)

	rec := serve(router, http.MethodPost, "/internal/booking-requests/sweep", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.SweepResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Expired)

	rec = serve(router, http.MethodPost, "/internal/booking-requests/sweep", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get(constant.ResponseHeaderRetryAfter))
}
