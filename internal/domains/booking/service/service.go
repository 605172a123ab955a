package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/metrics"
	"bookit/infras/otel"
	availabilityService "bookit/internal/domains/availability/service"
	"bookit/internal/domains/booking/model"
	"bookit/internal/domains/booking/model/dto"
	"bookit/internal/domains/booking/repository"
	roomModel "bookit/internal/domains/room/model"
	roomRepository "bookit/internal/domains/room/repository"
	roomStatusModel "bookit/internal/domains/roomstatus/model"
	roomStatusRepository "bookit/internal/domains/roomstatus/repository"
	"bookit/internal/domains/sequence"
	"bookit/internal/events"
	"bookit/permissions"
	"bookit/shared"
	"bookit/shared/actor"
	"bookit/shared/cache"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	gRepo "bookit/shared/repository"
	"bookit/shared/slot"
	"bookit/shared/timezone"
)

type Booking interface {
	Create(ctx context.Context, scope actor.Scope, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, storeID string, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, storeID, id string) (dto.BookingResponse, error)
	Transition(ctx context.Context, scope actor.Scope, id string, req dto.TransitionRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, scope actor.Scope, id string) error
	AddProduct(ctx context.Context, scope actor.Scope, bookingID string, req dto.AddProductRequest) (dto.ProductResponse, error)
	GetProducts(ctx context.Context, storeID, bookingID string) (dto.GetProductsResponse, error)
}

type serviceImpl struct {
	repo           repository.Booking
	productRepo    repository.Product
	roomRepo       roomRepository.Room
	roomStatusRepo roomStatusRepository.RoomStatus
	availability   availabilityService.Availability
	sequence       sequence.Sequence
	events         events.Publisher
	policy         permissions.Policy
	transactor     gRepo.Transactor
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Booking,
	productRepo repository.Product,
	roomRepo roomRepository.Room,
	roomStatusRepo roomStatusRepository.RoomStatus,
	availability availabilityService.Availability,
	sequence sequence.Sequence,
	events events.Publisher,
	policy permissions.Policy,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:           repo,
		productRepo:    productRepo,
		roomRepo:       roomRepo,
		roomStatusRepo: roomStatusRepo,
		availability:   availability,
		sequence:       sequence,
		events:         events,
		policy:         policy,
		transactor:     transactor,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

// Create books a room directly. The slot is claimed under the store/date lock
// and the exclusion constraint on bookings rejects anything that slips past it.
func (s *serviceImpl) Create(ctx context.Context, scope actor.Scope, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	defer func() {
		metrics.IncBookingCreated(outcome(err))
	}()

	if !s.policy.Allowed(scope.Actor.Role, permissions.ActionBookingCreate) {
		return res, failure.Forbidden("you don't have permission to create bookings")
	}

	date, err := timezone.ParseDay(req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must use the YYYY-MM-DD format")
	}

	interval, err := slot.Parse(req.StartTime, req.EndTime)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if err = interval.Validate(req.Duration); err != nil {
		return res, failure.BadRequest(err)
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByStoreAndID(scope.StoreID, req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Status.Bookable() {
		return res, failure.Conflict(fmt.Sprintf("room %s is %s and cannot be booked", room.Name, room.Status))
	}

	bid, err := s.sequence.Next(ctx, sequence.KindBooking, scope.StoreID, date)
	if err != nil {
		log.Error().Err(err).Str("store_id", scope.StoreID).Msg("failed to issue booking id")

		return res, fmt.Errorf("failed to issue booking id: %w", err)
	}

	booking := req.ToModel(scope.StoreID, bid, scope.Actor.ID, date, interval, timezone.Now())

	err = s.transactor.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.availability.ClaimRoomTx(ctx, sqltx, scope.StoreID, room.ID, date, interval, availabilityService.Exclude{}); err != nil {
			return err //nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, sqltx, booking) //nolint:wrapcheck
	})
	if err != nil {
		return res, insertError(err)
	}

	s.invalidate(ctx, scope.StoreID, booking.ID)
	s.availability.Invalidate(ctx, scope.StoreID, date)

	s.events.Audit(ctx, events.Audit{
		Type:        events.TypeBookingCreated,
		EntityType:  events.EntityBooking,
		EntityID:    booking.ID,
		StoreID:     scope.StoreID,
		ActorID:     scope.Actor.ID,
		Description: fmt.Sprintf("booking %s created for room %s on %s %s", bid, room.Name, req.Date, interval),
	})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, storeID string, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(constant.CacheKeyBookings, storeID), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	scoped := shared.FilterByStore(storeID, model.TableName, filter)

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, storeID, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheKeyBooking, storeID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByStoreAndID(storeID, id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Transition moves a booking to another status. The row stays locked from the
// read to the commit, so a concurrent caller waits and then re-evaluates its
// request against the status this call left behind.
func (s *serviceImpl) Transition(ctx context.Context, scope actor.Scope, id string, req dto.TransitionRequest) (res dto.BookingResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	target, _ := model.ParseStatus(req.Status)
	allowed := s.allowed(scope.Actor)

	var (
		booking    model.Booking
		transition model.Transition
		from       model.Status
	)

	defer func() {
		metrics.IncBookingTransition(from.String(), target.String(), outcome(err))
	}()

	err = s.transactor.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		var err error

		booking, err = s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByStoreAndID(scope.StoreID, id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found")
		}

		from = booking.Status

		transition, err = model.Authorize(booking.Status, target, allowed)
		if err != nil {
			return transitionError(err, booking.Status, req.Status)
		}

		if transition.Effect == model.EffectRestore && booking.RoomID != nil {
			err = s.availability.ClaimRoomTx(ctx, sqltx, scope.StoreID, *booking.RoomID, booking.BookingDate, booking.Slot(), availabilityService.Exclude{BookingID: booking.ID})
			if err != nil {
				return err //nolint:wrapcheck
			}
		}

		now := timezone.Now()
		fields, change := transition.Apply(&booking, scope.Actor.ID, now)

		if err = s.repo.UpdateTx(ctx, sqltx, fields, shared.FilterByStoreAndID(scope.StoreID, id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if change == nil {
			return nil
		}

		return s.roomStatusRepo.UpsertTx(ctx, sqltx, roomStatusModel.DailyStatus{ //nolint:wrapcheck
			RoomID:     change.RoomID,
			StoreID:    scope.StoreID,
			StatusDate: change.Date,
			Status:     change.Status,
			UpdatedBy:  scope.Actor.ID,
			UpdatedAt:  now,
		})
	})
	if err != nil {
		if gRepo.IsExclusionViolation(err) {
			return res, failure.Conflict("slot no longer available, the booking cannot be restored")
		}

		log.Error().Err(err).Str("booking_id", id).Str("target", req.Status).Msg("booking transition rejected")

		return res, err
	}

	s.invalidate(ctx, scope.StoreID, id)
	s.availability.Invalidate(ctx, scope.StoreID, booking.BookingDate)

	s.events.Audit(ctx, events.Audit{
		Type:        events.TypeBookingTransitioned,
		EntityType:  events.EntityBooking,
		EntityID:    booking.ID,
		StoreID:     scope.StoreID,
		ActorID:     scope.Actor.ID,
		Description: fmt.Sprintf("booking %s moved from %s to %s", booking.BID, transition.From, transition.To),
	})

	res.FromModel(booking)

	return res, nil
}

// Delete removes a booking and its products for good.
func (s *serviceImpl) Delete(ctx context.Context, scope actor.Scope, id string) (err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	allowed := s.allowed(scope.Actor)

	var booking model.Booking

	err = s.transactor.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		var err error

		booking, err = s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByStoreAndID(scope.StoreID, id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found")
		}

		if booking.Status == model.StatusCancelled && !allowed(permissions.ActionBookingManageCancelled) {
			return failure.Forbidden(model.ErrFrozen.Error())
		}

		if !allowed(permissions.ActionBookingDelete) {
			return failure.Forbidden("you don't have permission to delete bookings")
		}

		err = s.productRepo.DeleteTx(ctx, sqltx, shared.FilterByID(id, model.FieldProductBookingID, model.ProductTableName))
		if err != nil {
			return fmt.Errorf("failed to delete booking products: %w", err)
		}

		return s.repo.DeleteTx(ctx, sqltx, shared.FilterByStoreAndID(scope.StoreID, id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return err
	}

	s.invalidate(ctx, scope.StoreID, id)
	s.availability.Invalidate(ctx, scope.StoreID, booking.BookingDate)

	s.events.Audit(ctx, events.Audit{
		Type:        events.TypeBookingDeleted,
		EntityType:  events.EntityBooking,
		EntityID:    id,
		StoreID:     scope.StoreID,
		ActorID:     scope.Actor.ID,
		Description: fmt.Sprintf("booking %s deleted permanently", booking.BID),
	})

	return nil
}

func (s *serviceImpl) AddProduct(ctx context.Context, scope actor.Scope, bookingID string, req dto.AddProductRequest) (res dto.ProductResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddProduct")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	if !s.policy.Allowed(scope.Actor.Role, permissions.ActionBookingEdit) {
		return res, failure.Forbidden("you don't have permission to edit bookings")
	}

	booking, err := s.repo.Get(ctx, shared.FilterByStoreAndID(scope.StoreID, bookingID, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status == model.StatusCancelled {
		return res, failure.Conflict("products cannot be added to a cancelled booking")
	}

	product := req.ToModel(bookingID, scope.Actor.ID)

	if err = s.productRepo.Insert(ctx, product); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to add booking product")

		return res, fmt.Errorf("failed to add booking product: %w", err)
	}

	res.FromModel(product)

	return res, nil
}

func (s *serviceImpl) GetProducts(ctx context.Context, storeID, bookingID string) (res dto.GetProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProducts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.repo.Exist(ctx, shared.FilterByStoreAndID(storeID, bookingID, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to check booking existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	products, err := s.productRepo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc},
		shared.FilterByID(bookingID, model.FieldProductBookingID, model.ProductTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking products")

		return res, fmt.Errorf("failed to get booking products: %w", err)
	}

	res.FromModels(products)

	return res, nil
}

func (s *serviceImpl) allowed(act actor.Actor) func(string) bool {
	return func(action string) bool {
		return s.policy.Allowed(act.Role, action)
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, storeID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyBooking, storeID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyBookings, storeID))
	}()
}

func transitionError(err error, from model.Status, target string) error {
	switch {
	case errors.Is(err, model.ErrFrozen), errors.Is(err, model.ErrNotPermitted):
		return failure.Forbidden(err.Error())
	case errors.Is(err, model.ErrUnknownStatus):
		return failure.BadRequestFromString(fmt.Sprintf("unknown booking status %q", target))
	case errors.Is(err, model.ErrIllegalTransition):
		return failure.Conflict(fmt.Sprintf("booking is %s and cannot move to %s", from, target))
	default:
		return err
	}
}

func insertError(err error) error {
	switch {
	case gRepo.IsExclusionViolation(err):
		return failure.Conflict("slot no longer available, please pick another time or room")
	case gRepo.IsUniqueViolation(err):
		return failure.Conflict("booking id was already issued, please retry")
	default:
		return err
	}
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}

	switch failure.GetCode(err) {
	case http.StatusConflict:
		return metrics.OutcomeConflict
	case http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
