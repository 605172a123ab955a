package bookingrequest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"bookit/config"
	"bookit/infras/otel"
	"bookit/internal/domains/bookingrequest/model"
	"bookit/internal/domains/bookingrequest/model/dto"
	"bookit/internal/domains/bookingrequest/service"
	"bookit/shared/actor"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	"bookit/shared/validator"
	"bookit/transport/http/response"
)

const defaultSweepTrigger = 5 * time.Second

type Handler struct {
	service      service.BookingRequest
	otel         otel.Otel
	sweepEvery   time.Duration
	sweepLimiter *rate.Limiter
}

func New(service service.BookingRequest, cfg *config.Config, otel otel.Otel) Handler {
	every := time.Duration(cfg.Booking.Sweep.MinTriggerSeconds) * time.Second
	if every <= 0 {
		every = defaultSweepTrigger
	}

	return Handler{
		service:      service,
		otel:         otel,
		sweepEvery:   every,
		sweepLimiter: rate.NewLimiter(rate.Every(every), 1),
	}
}

// Router mounts the staff routes under a store.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/booking-requests", handler.GetRequests)
	router.Get("/booking-requests/{id}", handler.GetRequestByID)
	router.Post("/booking-requests/{id}/payment-timer", handler.StartPaymentTimer)
	router.Patch("/booking-requests/{id}/status", handler.UpdateStatus)
	router.Post("/booking-requests/{id}/convert", handler.Convert)
	router.Get("/booking-requests/{id}/payment-proof", handler.GetPaymentProof)
}

// IntakeRouter mounts the customer submission route under a public store path.
func (handler *Handler) IntakeRouter(router chi.Router) {
	router.Post("/booking-requests", handler.Intake)
}

// PublicRouter mounts the token-addressed confirmation routes.
func (handler *Handler) PublicRouter(router chi.Router) {
	router.Get("/booking-requests/confirmation/{token}", handler.GetByToken)
	router.Post("/booking-requests/confirmation/{token}", handler.ActByToken)
}

// InternalRouter mounts the routes that schedulers call with the API key.
func (handler *Handler) InternalRouter(router chi.Router) {
	router.Post("/booking-requests/sweep", handler.Sweep)
}

// Intake records a customer's booking request.
// @Summary Submit a booking request
// @Description Holds the slot for the payment window and returns the confirmation link.
// @Tags BookingRequest
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param request body dto.IntakeRequest true "Booking request"
// @Success 201 {object} response.Data[dto.IntakeResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 429 {object} response.Error
// @Router /v1/public/stores/{storeID}/booking-requests [post]
func (handler *Handler) Intake(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Intake")
	defer scope.End()

	req := dto.IntakeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Intake(ctx, chi.URLParam(r, constant.RequestParamStoreID), req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("booking request rejected")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking request " + res.BID + " received")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetByToken shows a customer their request.
// @Summary Get a booking request by confirmation token
// @Tags BookingRequest
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} response.Data[dto.PublicRequestResponse]
// @Failure 404 {object} response.Error
// @Router /v1/public/booking-requests/confirmation/{token} [get]
func (handler *Handler) GetByToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetByToken")
	defer scope.End()

	res, err := handler.service.GetByToken(ctx, chi.URLParam(r, constant.RequestParamToken))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ActByToken confirms or cancels a request from the customer's link.
// @Summary Confirm or cancel a booking request
// @Description Confirming twice is a no-op. Overdue requests answer 410. Without an action the request is only shown.
// @Tags BookingRequest
// @Produce json
// @Param token path string true "Confirmation token"
// @Param action query string false "confirm or cancel"
// @Success 200 {object} response.Data[dto.PublicRequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 410 {object} response.Error
// @Router /v1/public/booking-requests/confirmation/{token} [post]
func (handler *Handler) ActByToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ActByToken")
	defer scope.End()

	var (
		res dto.PublicRequestResponse
		err error
	)

	confirmationToken := chi.URLParam(r, constant.RequestParamToken)

	if action := r.URL.Query().Get(constant.RequestParamAction); action != constant.Empty {
		res, err = handler.service.ActByToken(ctx, confirmationToken, action)
	} else {
		res, err = handler.service.GetByToken(ctx, confirmationToken)
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRequests lists the booking requests of a store.
// @Summary Get booking requests
// @Tags BookingRequest
// @Produce json
// @Param storeID path string true "Store ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Status"
// @Param date query string false "Booking date (YYYY-MM-DD)"
// @Param category_id query string false "Category ID"
// @Param customer_phone query string false "Customer phone"
// @Success 200 {object} response.Data[dto.GetRequestsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/stores/{storeID}/booking-requests [get]
// @Security BearerAuth
func (handler *Handler) GetRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.WithDefaultSort(constant.DefaultValueSortBy, constant.DefaultValueSortDir)

	query := r.URL.Query()
	filterGroup := gDto.And()

	if value := query.Get(model.FieldStatus); value != constant.Empty {
		if !model.Status(value).Valid() {
			response.WithError(w, failure.BadRequestFromString("unknown request status "+value))

			return
		}

		filterGroup.Add(gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	if date := query.Get(constant.RequestParamDate); date != constant.Empty {
		if err := validator.ValidateVar(date, "day"); err != nil {
			response.WithError(w, failure.BadRequestFromString("date must use the YYYY-MM-DD format"))

			return
		}

		filterGroup.Add(gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	if categoryID := query.Get(model.FieldCategoryID); categoryID != constant.Empty {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldCategoryID,
			Operator: gDto.FilterOperatorEq,
			Value:    categoryID,
			Table:    model.TableName,
		})
	}

	if phone := query.Get(model.FieldCustomerPhone); phone != constant.Empty {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldCustomerPhone,
			Operator: gDto.FilterOperatorEq,
			Value:    dto.NormalizePhone(phone),
			Table:    model.TableName,
		})
	}

	requests, err := handler.service.GetAll(ctx, chi.URLParam(r, constant.RequestParamStoreID), queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, requests)
}

// GetRequestByID retrieves a booking request.
// @Summary Get a booking request
// @Tags BookingRequest
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Request ID"
// @Success 200 {object} response.Data[dto.RequestResponse]
// @Failure 404 {object} response.Error
// @Router /v1/stores/{storeID}/booking-requests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRequestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequestByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamStoreID), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// StartPaymentTimer restarts the payment window of a pending request.
// @Summary Start the payment timer
// @Tags BookingRequest
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Request ID"
// @Success 200 {object} response.Data[dto.RequestResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stores/{storeID}/booking-requests/{id}/payment-timer [post]
// @Security BearerAuth
func (handler *Handler) StartPaymentTimer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartPaymentTimer")
	defer scope.End()

	res, err := handler.service.StartPaymentTimer(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start payment timer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStatus moves a request along its lifecycle on behalf of staff.
// @Summary Update a booking request's status
// @Tags BookingRequest
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Request ID"
// @Param request body dto.UpdateStatusRequest true "Target status"
// @Success 200 {object} response.Data[dto.RequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stores/{storeID}/booking-requests/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking request status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Convert turns a confirmed request into a Reserved booking on a room.
// @Summary Convert a booking request
// @Tags BookingRequest
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Request ID"
// @Param request body dto.ConvertRequest true "Room assignment"
// @Success 201 {object} response.Data[bookingDto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stores/{storeID}/booking-requests/{id}/convert [post]
// @Security BearerAuth
func (handler *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Convert")
	defer scope.End()

	req := dto.ConvertRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Convert(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to convert booking request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking request converted into booking " + booking.BID)

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetPaymentProof returns a short-lived link to the uploaded payment proof.
// @Summary Payment proof link
// @Tags BookingRequest
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Request ID"
// @Success 200 {object} response.Data[dto.PaymentProofResponse]
// @Failure 404 {object} response.Error
// @Router /v1/stores/{storeID}/booking-requests/{id}/payment-proof [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentProof(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentProof")
	defer scope.End()

	res, err := handler.service.PaymentProofURL(ctx, chi.URLParam(r, constant.RequestParamStoreID), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Sweep expires overdue pending requests on demand.
// @Summary Expire overdue booking requests
// @Tags BookingRequest
// @Produce json
// @Success 200 {object} response.Data[dto.SweepResponse]
// @Failure 429 {object} response.Error
// @Router /v1/internal/booking-requests/sweep [post]
// @Security ApiKeyAuth
func (handler *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Sweep")
	defer scope.End()

	if !handler.sweepLimiter.Allow() {
		response.WithError(w, failure.TooManyRequests(constant.ResponseErrorRequestLimitExceeded, handler.sweepEvery))

		return
	}

	res, err := handler.service.Sweep(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sweep booking requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
