package roomstatus

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bookit/infras/otel"
	"bookit/internal/domains/roomstatus/model/dto"
	"bookit/internal/domains/roomstatus/service"
	"bookit/shared/actor"
	"bookit/shared/constant"
	"bookit/shared/failure"
	"bookit/shared/validator"
	"bookit/transport/http/response"
)

type Handler struct {
	service service.RoomStatus
	otel    otel.Otel
}

func New(service service.RoomStatus, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Put("/rooms/{roomID}/statuses", handler.SetStatus)
	router.Get("/room-statuses", handler.GetStatuses)
}

// SetStatus records the housekeeping state of a room for one day.
// @Summary Set a room's daily status
// @Tags RoomStatus
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param roomID path string true "Room ID"
// @Param request body dto.SetStatusRequest true "Daily status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/stores/{storeID}/rooms/{roomID}/statuses [put]
// @Security BearerAuth
func (handler *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetStatus")
	defer scope.End()

	req := dto.SetStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	if err := handler.service.SetStatus(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), roomID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to set room status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room status updated successfully")
}

// GetStatuses lists the daily status of every room of a store.
// @Summary Get daily room statuses
// @Description Rooms without a recorded status for the day report Ready.
// @Tags RoomStatus
// @Produce json
// @Param storeID path string true "Store ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetDailyStatusesResponse]
// @Failure 400 {object} response.Error
// @Router /v1/stores/{storeID}/room-statuses [get]
// @Security BearerAuth
func (handler *Handler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatuses")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)
	if err := validator.ValidateVar(date, "required,day"); err != nil {
		response.WithError(w, failure.BadRequestFromString("date is required in the YYYY-MM-DD format"))

		return
	}

	statuses, err := handler.service.GetByDate(ctx, chi.URLParam(r, constant.RequestParamStoreID), date)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, statuses)
}
