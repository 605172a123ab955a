package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bookit/infras/otel"
	"bookit/internal/domains/booking/model"
	"bookit/internal/domains/booking/model/dto"
	"bookit/internal/domains/booking/service"
	"bookit/shared/actor"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	"bookit/shared/validator"
	"bookit/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/bookings", handler.CreateBooking)
	router.Get("/bookings", handler.GetBookings)
	router.Get("/bookings/{id}", handler.GetBookingByID)
	router.Delete("/bookings/{id}", handler.DeleteBooking)
	router.Post("/bookings/{id}/transitions", handler.TransitionBooking)
	router.Post("/bookings/{id}/products", handler.AddProduct)
	router.Get("/bookings/{id}/products", handler.GetProducts)
}

// CreateBooking books a room for a walk-in or phone customer.
// @Summary Create a booking
// @Description Reserve a room slot. Fails with 409 when the slot is taken.
// @Tags Booking
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stores/{storeID}/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, actor.ScopeOf(ctx, chi.URLParam(request, constant.RequestParamStoreID)), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + booking.BID + " created")

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists bookings of a store.
// @Summary Get bookings
// @Tags Booking
// @Produce json
// @Param storeID path string true "Store ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param date query string false "Booking date (YYYY-MM-DD)"
// @Param room_id query string false "Room ID"
// @Param status query string false "Status code or name"
// @Param customer_name query string false "Customer name"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stores/{storeID}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.WithDefaultSort(model.FieldBookingDate, gDto.SortDirDesc)

	query := r.URL.Query()
	filterGroup := gDto.And()

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

	if roomID := query.Get(model.FieldRoomID); roomID != constant.Empty {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	if value := query.Get(model.FieldStatus); value != constant.Empty {
		status, ok := model.ParseStatus(value)
		if !ok {
			response.WithError(w, failure.BadRequestFromString("unknown booking status "+value))

			return
		}

		filterGroup.Add(gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status.Code(),
			Table:    model.TableName,
		})
	}

	if name := query.Get(model.FieldCustomerName); name != constant.Empty {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldCustomerName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, chi.URLParam(r, constant.RequestParamStoreID), queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stores/{storeID}/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamStoreID), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// TransitionBooking moves a booking to another status.
// @Summary Change booking status
// @Description Check in, check out, cancel or restore a booking. Illegal moves answer 409.
// @Tags Booking
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Booking ID"
// @Param request body dto.TransitionRequest true "Target status"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stores/{storeID}/bookings/{id}/transitions [post]
// @Security BearerAuth
func (handler *Handler) TransitionBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionBooking")
	defer scope.End()

	req := dto.TransitionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Transition(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to transition booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + booking.BID + " moved to " + booking.StatusName)

	response.WithJSON(w, http.StatusOK, booking)
}

// DeleteBooking removes a booking and its line items.
// @Summary Delete a booking
// @Tags Booking
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stores/{storeID}/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	if err := handler.service.Delete(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// AddProduct attaches a food or beverage line item to a booking.
// @Summary Add a booking line item
// @Tags Booking
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Booking ID"
// @Param request body dto.AddProductRequest true "Line item"
// @Success 201 {object} response.Data[dto.ProductResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stores/{storeID}/bookings/{id}/products [post]
// @Security BearerAuth
func (handler *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddProduct")
	defer scope.End()

	req := dto.AddProductRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	product, err := handler.service.AddProduct(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add booking product")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, product)
}

// GetProducts lists the line items of a booking.
// @Summary Get booking line items
// @Tags Booking
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.GetProductsResponse]
// @Failure 404 {object} response.Error
// @Router /v1/stores/{storeID}/bookings/{id}/products [get]
// @Security BearerAuth
func (handler *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProducts")
	defer scope.End()

	products, err := handler.service.GetProducts(ctx, chi.URLParam(r, constant.RequestParamStoreID), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, products)
}
