package room_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "bookit/infras/otel/mocks"
	availabilityMocks "bookit/internal/domains/availability/mocks"
	availabilityDto "bookit/internal/domains/availability/model/dto"
	roomMocks "bookit/internal/domains/room/mocks"
	"bookit/internal/domains/room/model"
	"bookit/internal/domains/room/model/dto"
	"bookit/internal/handlers/room"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
)

type fixture struct {
	rooms        *roomMocks.MockRoomService
	availability *availabilityMocks.MockAvailabilityService
	router       http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		rooms:        roomMocks.NewMockRoomService(ctrl),
		availability: availabilityMocks.NewMockAvailabilityService(ctrl),
	}

	handler := room.New(f.rooms, f.availability, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/stores/{storeID}", handler.Router)
	f.router = router

	return f
}

func (f fixture) serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "admin-1"))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestCreateRoom(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Create(gomock.Any(), gomock.Any(), dto.CreateRoomRequest{Name: "VIP 1"}).
		Return(dto.RoomResponse{ID: "room-1", Name: "VIP 1", Status: "Active"}, nil)
	f.rooms.EXPECT().Create(gomock.Any(), gomock.Any(), dto.CreateRoomRequest{Name: "VIP 2"}).
		Return(dto.RoomResponse{}, failure.Conflict("room name already used in this store"))

	rec := f.serve(http.MethodPost, "/stores/store-1/rooms", `{"name":"VIP 1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Active"`)

	rec = f.serve(http.MethodPost, "/stores/store-1/rooms", `{"name":"VIP 2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.serve(http.MethodPost, "/stores/store-1/rooms", `{"name":"VIP 3","status":"Sleeping"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.serve(http.MethodPost, "/stores/store-1/rooms", ``)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRooms(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().GetAll(gomock.Any(), "store-1", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
			assert.Equal(t, model.FieldName, params.SortBy)
			assert.Equal(t, 2, params.Page)

			require.Len(t, filter.Filters, 2)

			status, ok := filter.Filters[1].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.FieldStatus, status.Field)
			assert.Equal(t, "Broken", status.Value)

			return dto.GetRoomsResponse{TotalData: 11, TotalPage: 2}, nil
		})

	rec := f.serve(http.MethodGet, "/stores/store-1/rooms?page=2&status=Broken", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_data":11`)
}

func TestGetRoomAvailability(t *testing.T) {
	t.Run("free slot across midnight", func(t *testing.T) {
		f := newFixture(t)

		query := availabilityDto.AvailabilityQuery{Date: "2030-01-10", StartTime: "23:00", EndTime: "01:00"}

		f.availability.EXPECT().RoomPreview(gomock.Any(), "store-1", "room-1", query).
			Return(availabilityDto.RoomAvailabilityResponse{RoomID: "room-1", Bookable: true, Free: true}, nil)

		rec := f.serve(http.MethodGet, "/stores/store-1/rooms/room-1/availability?date=2030-01-10&start_time=23:00&end_time=01:00", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"free":true`)
	})

	t.Run("malformed clock", func(t *testing.T) {
		f := newFixture(t)

		rec := f.serve(http.MethodGet, "/stores/store-1/rooms/room-1/availability?date=2030-01-10&start_time=25:00&end_time=01:00", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.availability.EXPECT().RoomPreview(gomock.Any(), "store-1", "room-9", gomock.Any()).
			Return(availabilityDto.RoomAvailabilityResponse{}, failure.NotFound("room"))

		rec := f.serve(http.MethodGet, "/stores/store-1/rooms/room-9/availability?date=2030-01-10&start_time=10:00&end_time=12:00", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteRoom(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Delete(gomock.Any(), gomock.Any(), "room-1").Return(nil)

	rec := f.serve(http.MethodDelete, "/stores/store-1/rooms/room-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Room deleted successfully")
}
