package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=BookingRequest=MockBookingRequestService

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/metrics"
	"bookit/infras/otel"
	"bookit/infras/s3"
	availabilityService "bookit/internal/domains/availability/service"
	bookingModel "bookit/internal/domains/booking/model"
	bookingDto "bookit/internal/domains/booking/model/dto"
	bookingRepository "bookit/internal/domains/booking/repository"
	"bookit/internal/domains/bookingrequest/model"
	"bookit/internal/domains/bookingrequest/model/dto"
	"bookit/internal/domains/bookingrequest/repository"
	categoryModel "bookit/internal/domains/category/model"
	categoryRepository "bookit/internal/domains/category/repository"
	roomModel "bookit/internal/domains/room/model"
	roomRepository "bookit/internal/domains/room/repository"
	"bookit/internal/domains/sequence"
	variantService "bookit/internal/domains/variant/service"
	"bookit/internal/events"
	"bookit/permissions"
	"bookit/shared"
	"bookit/shared/actor"
	"bookit/shared/cache"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	"bookit/shared/ratelimit"
	gRepo "bookit/shared/repository"
	"bookit/shared/slot"
	"bookit/shared/timezone"
	"bookit/shared/token"
)

const confirmationPath = "/v1/public/booking-requests/confirmation/"

var (
	errNotFound = failure.NotFound("booking request not found")
	errChanged  = failure.Conflict("booking request was changed by someone else, please reload")
)

type BookingRequest interface {
	Intake(ctx context.Context, storeID string, req dto.IntakeRequest) (dto.IntakeResponse, error)
	GetByToken(ctx context.Context, confirmationToken string) (dto.PublicRequestResponse, error)
	ActByToken(ctx context.Context, confirmationToken, action string) (dto.PublicRequestResponse, error)
	GetAll(ctx context.Context, storeID string, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRequestsResponse, error)
	Get(ctx context.Context, storeID, id string) (dto.RequestResponse, error)
	StartPaymentTimer(ctx context.Context, scope actor.Scope, id string) (dto.RequestResponse, error)
	UpdateStatus(ctx context.Context, scope actor.Scope, id string, req dto.UpdateStatusRequest) (dto.RequestResponse, error)
	Convert(ctx context.Context, scope actor.Scope, id string, req dto.ConvertRequest) (bookingDto.BookingResponse, error)
	PaymentProofURL(ctx context.Context, storeID, id string) (dto.PaymentProofResponse, error)
	Sweep(ctx context.Context) (dto.SweepResponse, error)
}

type serviceImpl struct {
	repo         repository.BookingRequest
	bookingRepo  bookingRepository.Booking
	roomRepo     roomRepository.Room
	categoryRepo categoryRepository.Category
	variant      variantService.Variant
	availability availabilityService.Availability
	sequence     sequence.Sequence
	limiter      ratelimit.Limiter
	events       events.Publisher
	policy       permissions.Policy
	transactor   gRepo.Transactor
	storage      s3.S3
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.BookingRequest,
	bookingRepo bookingRepository.Booking,
	roomRepo roomRepository.Room,
	categoryRepo categoryRepository.Category,
	variant variantService.Variant,
	availability availabilityService.Availability,
	sequence sequence.Sequence,
	limiter ratelimit.Limiter,
	events events.Publisher,
	policy permissions.Policy,
	transactor gRepo.Transactor,
	storage s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) BookingRequest {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		categoryRepo: categoryRepo,
		variant:      variant,
		availability: availability,
		sequence:     sequence,
		limiter:      limiter,
		events:       events,
		policy:       policy,
		transactor:   transactor,
		storage:      storage,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Intake records a customer's booking request. The slot is held from the
// moment the request is stored until its payment window closes.
func (s *serviceImpl) Intake(ctx context.Context, storeID string, req dto.IntakeRequest) (res dto.IntakeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Intake")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() {
		metrics.IncRequestIntake(classify(err))
	}()

	now := timezone.Now()

	date, err := timezone.ParseDay(req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must use the YYYY-MM-DD format")
	}

	if date.Before(timezone.StartOfDay(now)) {
		return res, failure.BadRequestFromString("date must not be in the past")
	}

	start, err := slot.ParseClock(req.StartTime)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if err = s.checkRate(ctx, req.CustomerPhone); err != nil {
		return res, err
	}

	room, category, err := s.resolvePlace(ctx, storeID, req)
	if err != nil {
		return res, err
	}

	variant, err := s.variant.Resolve(ctx, storeID, category.ID, req.Room(), req.VariantName)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	interval := slot.New(start, (start+variant.DurationMinutes)%slot.MinutesPerDay)

	bid, err := s.sequence.Next(ctx, sequence.KindRequest, storeID, date)
	if err != nil {
		log.Error().Err(err).Str("store_id", storeID).Msg("failed to issue booking request id")

		return res, fmt.Errorf("failed to issue booking request id: %w", err)
	}

	confirmationToken, err := token.New()
	if err != nil {
		return res, fmt.Errorf("failed to create confirmation token: %w", err)
	}

	expiredAt := now.Add(s.paymentWindow())
	request := req.ToModel(storeID, category.ID, bid, confirmationToken, variant, date, interval, expiredAt, now)

	err = s.transactor.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		var err error

		if room.ID != constant.Empty {
			err = s.availability.ClaimRoomTx(ctx, sqltx, storeID, room.ID, date, interval, availabilityService.Exclude{})
		} else {
			err = s.availability.ClaimCategoryTx(ctx, sqltx, storeID, category.ID, date, interval)
		}

		if err != nil {
			return err //nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, sqltx, request) //nolint:wrapcheck
	})
	if err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict("booking request id was already issued, please retry")
		}

		return res, err
	}

	s.recordRate(ctx, req.CustomerPhone)

	s.invalidate(ctx, storeID, request.ID)
	s.availability.Invalidate(ctx, storeID, date)

	confirmationURL := s.cfg.App.PublicBaseURL + confirmationPath + confirmationToken

	s.events.Audit(ctx, events.Audit{
		Type:        events.TypeRequestCreated,
		EntityType:  events.EntityBookingRequest,
		EntityID:    request.ID,
		StoreID:     storeID,
		ActorID:     constant.ContextGuest,
		Description: fmt.Sprintf("booking request %s received for %s %s", bid, req.Date, interval),
	})

	s.events.RequestCreated(ctx, events.RequestCreated{
		RequestID:       request.ID,
		BID:             bid,
		StoreID:         storeID,
		Category:        nameOf(category.Name),
		Room:            nameOf(room.Name),
		CustomerName:    request.CustomerName,
		CustomerPhone:   request.CustomerPhone,
		Date:            req.Date,
		StartTime:       request.StartTime,
		EndTime:         request.EndTime,
		Duration:        request.Duration,
		Price:           request.Price,
		ExpiredAt:       expiredAt,
		ConfirmationURL: confirmationURL,
	})

	res.PublicRequestResponse.FromModel(request)
	res.ConfirmationURL = confirmationURL

	return res, nil
}

// checkRate lets the request through when the limiter itself is unavailable.
// Only stored requests count toward the quota, see recordRate.
func (s *serviceImpl) checkRate(ctx context.Context, phone string) error {
	result, err := s.limiter.Check(ctx, dto.NormalizePhone(phone))
	if err != nil {
		log.Warn().Err(err).Msg("intake rate limiter unavailable, letting request through")

		return nil
	}

	if !result.Allowed {
		return failure.TooManyRequests(
			fmt.Sprintf("too many booking requests from this phone number, please try again in %d seconds", int(result.RetryAfter.Seconds())),
			result.RetryAfter,
		)
	}

	return nil
}

func (s *serviceImpl) recordRate(ctx context.Context, phone string) {
	if err := s.limiter.Record(ctx, dto.NormalizePhone(phone)); err != nil {
		log.Warn().Err(err).Msg("failed to record booking request in the intake rate limiter")
	}
}

// resolvePlace loads the room or the category the customer asked for. A room
// must be bookable and, when a category is given too, belong to it.
func (s *serviceImpl) resolvePlace(ctx context.Context, storeID string, req dto.IntakeRequest) (roomModel.Room, categoryModel.Category, error) {
	var (
		room     roomModel.Room
		category categoryModel.Category
		err      error
	)

	categoryID := req.CategoryID

	if req.RoomID != constant.Empty {
		room, err = s.roomRepo.Get(ctx, shared.FilterByStoreAndID(storeID, req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return room, category, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return room, category, failure.NotFound("room not found")
		}

		if !room.Status.Bookable() {
			return room, category, failure.Conflict(fmt.Sprintf("room %s is %s and cannot be booked", room.Name, room.Status))
		}

		if categoryID != constant.Empty && !room.InCategory(categoryID) {
			return room, category, failure.BadRequestFromString("room does not belong to the requested category")
		}

		if room.CategoryID != nil {
			categoryID = *room.CategoryID
		}
	}

	if categoryID == constant.Empty {
		return room, category, nil
	}

	category, err = s.categoryRepo.Get(ctx, shared.FilterByStoreAndID(storeID, categoryID, categoryModel.FieldID, categoryModel.TableName))
	if err != nil {
		return room, category, fmt.Errorf("failed to get category: %w", err)
	}

	if category.ID == constant.Empty {
		return room, category, failure.NotFound("category not found")
	}

	return room, category, nil
}

func (s *serviceImpl) GetByToken(ctx context.Context, confirmationToken string) (res dto.PublicRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	request, err := s.byToken(ctx, confirmationToken)
	if err != nil {
		return res, err
	}

	res.FromModel(request)

	return res, nil
}

// ActByToken applies the customer's confirm or cancel. The update only lands
// while the request still has the status it was read with, so a repeated click
// finds the target status already in place and changes nothing.
func (s *serviceImpl) ActByToken(ctx context.Context, confirmationToken, action string) (res dto.PublicRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ActByToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	outcome := metrics.OutcomeError
	defer func() {
		metrics.IncRequestAction(action, outcome)
	}()

	var target model.Status

	switch action {
	case dto.ActionConfirm:
		target = model.StatusConfirmed
	case dto.ActionCancel:
		target = model.StatusCancelled
	default:
		outcome = metrics.OutcomeRejected

		return res, failure.BadRequestFromString(fmt.Sprintf("unknown action %q, expected confirm or cancel", action))
	}

	request, err := s.byToken(ctx, confirmationToken)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	if request.Status == target {
		outcome = metrics.OutcomeNoop
		res.FromModel(request)

		return res, nil
	}

	if err = checkCustomerAction(request, target, now); err != nil {
		outcome = metrics.OutcomeRejected

		return res, err
	}

	rows, err := s.repo.UpdateCount(ctx, statusFields(target, constant.ContextGuest, now), conditionalFilter(request, now))
	if err != nil {
		log.Error().Err(err).Str("request_id", request.ID).Msg("failed to update booking request status")

		return res, fmt.Errorf("failed to update booking request status: %w", err)
	}

	if rows == 0 {
		current, err := s.byToken(ctx, confirmationToken)
		if err != nil {
			return res, err
		}

		if current.Status == target {
			outcome = metrics.OutcomeNoop
			res.FromModel(current)

			return res, nil
		}

		if err = checkCustomerAction(current, target, now); err != nil {
			outcome = metrics.OutcomeRejected

			return res, err
		}

		outcome = metrics.OutcomeConflict

		return res, errChanged
	}

	outcome = metrics.OutcomeSuccess

	request.Status = target
	request.Touch(constant.ContextGuest, now)

	s.invalidate(ctx, request.StoreID, request.ID)

	if target == model.StatusCancelled {
		s.availability.Invalidate(ctx, request.StoreID, request.BookingDate)
	}

	eventType := events.TypeRequestConfirmed
	if target == model.StatusCancelled {
		eventType = events.TypeRequestCancelled
	}

	s.events.Audit(ctx, events.Audit{
		Type:        eventType,
		EntityType:  events.EntityBookingRequest,
		EntityID:    request.ID,
		StoreID:     request.StoreID,
		ActorID:     constant.ContextGuest,
		Description: fmt.Sprintf("customer %s booking request %s", target, request.BID),
	})

	res.FromModel(request)

	return res, nil
}

// checkCustomerAction decides whether the customer may still move the request
// to target. A pending request past its payment window is treated as expired
// even before the sweep has run.
func checkCustomerAction(request model.BookingRequest, target model.Status, now time.Time) error {
	if request.PaymentOverdue(now) {
		return failure.Expired("the payment window for this booking request has closed")
	}

	switch request.Status {
	case model.StatusPending:
		return nil
	case model.StatusConfirmed:
		if target == model.StatusCancelled {
			return nil
		}

		return failure.Expired("this booking request can no longer be changed")
	case model.StatusCheckIn:
		return failure.Conflict("the customer has already checked in, please contact the venue")
	case model.StatusCancelled, model.StatusExpired, model.StatusCompleted:
		return failure.Expired(fmt.Sprintf("this booking request is %s and can no longer be changed", request.Status))
	default:
		return failure.Expired("this booking request can no longer be changed")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, storeID string, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(constant.CacheKeyRequests, storeID), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking requests")

		return res, nil
	}

	scoped := shared.FilterByStore(storeID, model.TableName, filter)

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booking requests")

		return res, fmt.Errorf("failed to count booking requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking requests")

		return res, fmt.Errorf("failed to get booking requests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking requests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, storeID, id string) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheKeyRequest, storeID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking request")

		return res, nil
	}

	request, err := s.get(ctx, storeID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(request)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking request to cache")
		}
	}()

	return res, nil
}

// StartPaymentTimer gives a pending request a fresh payment window from now.
func (s *serviceImpl) StartPaymentTimer(ctx context.Context, scope actor.Scope, id string) (res dto.RequestResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartPaymentTimer")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	if !s.policy.Allowed(scope.Actor.Role, permissions.ActionRequestManage) {
		return res, failure.Forbidden("you don't have permission to manage booking requests")
	}

	request, err := s.get(ctx, scope.StoreID, id)
	if err != nil {
		return res, err
	}

	if request.Status != model.StatusPending {
		return res, failure.Conflict(fmt.Sprintf("booking request is %s, only pending requests have a payment timer", request.Status))
	}

	now := timezone.Now()
	expiredAt := now.Add(s.paymentWindow())

	fields := map[string]any{
		model.FieldExpiredAt:     expiredAt,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: scope.Actor.ID,
	}

	if request.PaymentOverdue(now) {
		err = s.restartOverdue(ctx, scope.StoreID, id, fields)
	} else {
		err = s.restartRunning(ctx, scope.StoreID, id, fields)
	}

	if err != nil {
		log.Error().Err(err).Str("request_id", id).Msg("failed to start payment timer")

		return res, err
	}

	request.ExpiredAt = &expiredAt
	request.Touch(scope.Actor.ID, now)

	s.invalidate(ctx, scope.StoreID, id)
	s.availability.Invalidate(ctx, scope.StoreID, request.BookingDate)

	s.events.Audit(ctx, events.Audit{
		Type:        events.TypeRequestTimerStarted,
		EntityType:  events.EntityBookingRequest,
		EntityID:    id,
		StoreID:     scope.StoreID,
		ActorID:     scope.Actor.ID,
		Description: fmt.Sprintf("payment timer of booking request %s runs until %s", request.BID, timezone.Format(expiredAt, constant.DateFormat)),
	})

	res.FromModel(request)

	return res, nil
}

// restartRunning extends a payment window that is still open. The request keeps
// holding its slot, so no claim is needed.
func (s *serviceImpl) restartRunning(ctx context.Context, storeID, id string, fields map[string]any) error {
	rows, err := s.repo.UpdateCount(ctx, fields, statusFilter(storeID, id, model.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to start payment timer: %w", err)
	}

	if rows == 0 {
		return errChanged
	}

	return nil
}

// restartOverdue revives a request whose window has closed. Its slot was
// released when the window closed and may have been taken since, so the slot is
// claimed again under the date lock before the new window is written.
func (s *serviceImpl) restartOverdue(ctx context.Context, storeID, id string, fields map[string]any) error {
	return s.transactor.WithTx(ctx, func(sqltx *sqlx.Tx) error { //nolint:wrapcheck
		request, err := s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByStoreAndID(storeID, id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking request: %w", err)
		}

		if request.ID == constant.Empty {
			return errNotFound
		}

		if request.Status != model.StatusPending {
			return errChanged
		}

		switch {
		case request.RoomID != nil:
			err = s.availability.ClaimRoomTx(ctx, sqltx, storeID, *request.RoomID, request.BookingDate, request.Slot(), availabilityService.Exclude{RequestID: id})
		case request.CategoryID != nil:
			err = s.availability.ClaimCategoryTx(ctx, sqltx, storeID, *request.CategoryID, request.BookingDate, request.Slot())
		default:
			err = s.availability.ClaimCategoryTx(ctx, sqltx, storeID, constant.Empty, request.BookingDate, request.Slot())
		}

		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = s.repo.UpdateTx(ctx, sqltx, fields, statusFilter(storeID, id, model.StatusPending)); err != nil {
			return fmt.Errorf("failed to start payment timer: %w", err)
		}

		return nil
	})
}

// UpdateStatus moves a request along its lifecycle on behalf of staff.
func (s *serviceImpl) UpdateStatus(ctx context.Context, scope actor.Scope, id string, req dto.UpdateStatusRequest) (res dto.RequestResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	if !s.policy.Allowed(scope.Actor.Role, permissions.ActionRequestManage) {
		return res, failure.Forbidden("you don't have permission to manage booking requests")
	}

	target := model.Status(req.Status)
	if !target.Valid() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown booking request status %q", req.Status))
	}

	request, err := s.get(ctx, scope.StoreID, id)
	if err != nil {
		return res, err
	}

	if request.Status == target {
		res.FromModel(request)

		return res, nil
	}

	now := timezone.Now()

	if !request.Status.CanMoveTo(target) {
		return res, failure.Conflict(fmt.Sprintf("booking request is %s and cannot move to %s", request.Status, target))
	}

	if target == model.StatusConfirmed && request.PaymentOverdue(now) {
		return res, failure.Expired("the payment window for this booking request has closed")
	}

	rows, err := s.repo.UpdateCount(ctx, statusFields(target, scope.Actor.ID, now), statusFilter(scope.StoreID, id, request.Status))
	if err != nil {
		log.Error().Err(err).Str("request_id", id).Msg("failed to update booking request status")

		return res, fmt.Errorf("failed to update booking request status: %w", err)
	}

	if rows == 0 {
		return res, errChanged
	}

	from := request.Status
	request.Status = target
	request.Touch(scope.Actor.ID, now)

	s.invalidate(ctx, scope.StoreID, id)

	if !target.Holding() {
		s.availability.Invalidate(ctx, scope.StoreID, request.BookingDate)
	}

	s.events.Audit(ctx, events.Audit{
		Type:        events.TypeRequestStatus,
		EntityType:  events.EntityBookingRequest,
		EntityID:    id,
		StoreID:     scope.StoreID,
		ActorID:     scope.Actor.ID,
		Description: fmt.Sprintf("booking request %s moved from %s to %s", request.BID, from, target),
	})

	res.FromModel(request)

	return res, nil
}

// Convert turns a confirmed request into a Reserved booking on the chosen
// room. The booking insert and the request update commit together or not at all.
func (s *serviceImpl) Convert(ctx context.Context, scope actor.Scope, id string, req dto.ConvertRequest) (res bookingDto.BookingResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convert")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	outcome := metrics.OutcomeError
	defer func() {
		metrics.IncRequestConverted(outcome)
	}()

	if !s.policy.Allowed(scope.Actor.Role, permissions.ActionRequestConvert) {
		outcome = metrics.OutcomeRejected

		return res, failure.Forbidden("you don't have permission to convert booking requests")
	}

	var (
		request model.BookingRequest
		booking bookingModel.Booking
	)

	now := timezone.Now()

	err = s.transactor.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		var err error

		request, err = s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByStoreAndID(scope.StoreID, id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking request: %w", err)
		}

		if request.ID == constant.Empty {
			return errNotFound
		}

		if request.Converted() {
			return failure.Conflict(fmt.Sprintf("booking request %s was already converted", request.BID))
		}

		if !request.Status.Convertible() {
			return failure.Conflict(fmt.Sprintf("booking request is %s, only confirmed or checked in requests can be converted", request.Status))
		}

		room, err := s.roomRepo.GetTx(ctx, sqltx, shared.FilterByStoreAndID(scope.StoreID, req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found")
		}

		if !room.Status.Bookable() {
			return failure.Conflict(fmt.Sprintf("room %s is %s and cannot be booked", room.Name, room.Status))
		}

		if request.CategoryID != nil && !room.InCategory(*request.CategoryID) {
			return failure.BadRequestFromString("room does not belong to the requested category")
		}

		err = s.availability.ClaimRoomTx(ctx, sqltx, scope.StoreID, room.ID, request.BookingDate, request.Slot(), availabilityService.Exclude{RequestID: request.ID})
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking = req.ToBooking(request, scope.Actor.ID, now)

		if err = s.bookingRepo.InsertTx(ctx, sqltx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return s.repo.UpdateTx(ctx, sqltx, map[string]any{ //nolint:wrapcheck
			model.FieldRoomID:             room.ID,
			model.FieldConvertedBookingID: booking.ID,
			model.FieldConvertedAt:        now,
			constant.FieldModifiedAt:      now,
			constant.FieldModifiedBy:      scope.Actor.ID,
		}, shared.FilterByStoreAndID(scope.StoreID, id, model.FieldID, model.TableName))
	})
	if err != nil {
		switch {
		case gRepo.IsExclusionViolation(err):
			err = failure.Conflict("slot no longer available, please pick another room")
		case gRepo.IsUniqueViolation(err):
			err = failure.Conflict("booking request was already converted")
		}

		outcome = classify(err)

		log.Error().Err(err).Str("request_id", id).Msg("failed to convert booking request")

		return res, err
	}

	outcome = metrics.OutcomeSuccess

	s.invalidate(ctx, scope.StoreID, id)
	s.availability.Invalidate(ctx, scope.StoreID, request.BookingDate)

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, shared.BuildCacheKey(constant.CacheKeyBookings, scope.StoreID))
	}()

	s.events.Audit(ctx, events.Audit{
		Type:        events.TypeRequestConverted,
		EntityType:  events.EntityBookingRequest,
		EntityID:    id,
		StoreID:     scope.StoreID,
		ActorID:     scope.Actor.ID,
		Description: fmt.Sprintf("booking request %s converted into booking %s", request.BID, booking.ID),
	})

	res.FromModel(booking)

	return res, nil
}

// PaymentProofURL hands out a short-lived download link for the uploaded proof of payment.
func (s *serviceImpl) PaymentProofURL(ctx context.Context, storeID, id string) (res dto.PaymentProofResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PaymentProofURL")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	request, err := s.get(ctx, storeID, id)
	if err != nil {
		return res, err
	}

	if request.PaymentProof == constant.Empty {
		return res, failure.NotFound("no payment proof was uploaded for this booking request") // nolint:wrapcheck
	}

	expires := time.Duration(s.cfg.External.S3.PresignExpireMinutes) * time.Minute

	url, err := s.storage.PresignGetURL(ctx, s.cfg.External.S3.BucketName, request.PaymentProof, expires)
	if err != nil {
		log.Error().Err(err).Str("request_id", id).Msg("failed to presign payment proof")

		return res, fmt.Errorf("failed to presign payment proof: %w", err)
	}

	res.URL = url
	res.ExpiresAt = timezone.Format(timezone.Now().Add(expires), constant.DateFormat)

	return res, nil
}

// Sweep expires every pending request whose payment window has closed.
// Running it again right away finds nothing to do.
func (s *serviceImpl) Sweep(ctx context.Context) (res dto.SweepResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	expired, err := s.repo.SweepExpired(ctx, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to sweep expired booking requests")

		return res, fmt.Errorf("failed to sweep expired booking requests: %w", err)
	}

	res.Expired = len(expired)
	metrics.AddRequestExpired(res.Expired)

	if res.Expired == 0 {
		return res, nil
	}

	log.Info().Int("expired", res.Expired).Msg("expired booking requests past their payment window")

	touched := make(map[string]struct{})

	for _, request := range expired {
		s.invalidate(ctx, request.StoreID, request.ID)

		key := shared.BuildCacheKey(request.StoreID, request.BookingDate.Format(constant.DayLayout))
		if _, ok := touched[key]; !ok {
			touched[key] = struct{}{}
			s.availability.Invalidate(ctx, request.StoreID, request.BookingDate)
		}

		s.events.Audit(ctx, events.Audit{
			Type:        events.TypeRequestExpired,
			EntityType:  events.EntityBookingRequest,
			EntityID:    request.ID,
			StoreID:     request.StoreID,
			ActorID:     constant.ContextSystem,
			Description: fmt.Sprintf("booking request %s expired unpaid", request.BID),
		})
	}

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, storeID, id string) (model.BookingRequest, error) {
	request, err := s.repo.Get(ctx, shared.FilterByStoreAndID(storeID, id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking request")

		return request, fmt.Errorf("failed to get booking request: %w", err)
	}

	if request.ID == constant.Empty {
		return request, errNotFound
	}

	return request, nil
}

func (s *serviceImpl) byToken(ctx context.Context, confirmationToken string) (model.BookingRequest, error) {
	if !token.Valid(confirmationToken) {
		return model.BookingRequest{}, errNotFound
	}

	request, err := s.repo.Get(ctx, shared.FilterByID(confirmationToken, model.FieldConfirmationToken, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking request by token")

		return request, fmt.Errorf("failed to get booking request: %w", err)
	}

	if request.ID == constant.Empty {
		return request, errNotFound
	}

	return request, nil
}

func (s *serviceImpl) paymentWindow() time.Duration {
	return time.Duration(s.cfg.Booking.PaymentWindowMinutes) * time.Minute
}

func (s *serviceImpl) invalidate(ctx context.Context, storeID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyRequest, storeID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking request from cache")
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyRequests, storeID))
	}()
}

func statusFields(target model.Status, actorID string, now time.Time) map[string]any {
	return map[string]any{
		model.FieldStatus:        string(target),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actorID,
	}
}

// statusFilter matches the request only while it still has the given status.
// The status argument is renamed so it does not collide with the SET clause.
func statusFilter(storeID, id string, current model.Status) gDto.FilterGroup {
	return shared.FilterByStore(storeID, model.TableName,
		gDto.Filter{
			Field:    model.FieldID,
			Value:    id,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "current_status",
			Field:    model.FieldStatus,
			Value:    string(current),
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	)
}

// conditionalFilter adds the payment window to statusFilter for pending
// requests, so a confirm racing the deadline cannot land after it.
func conditionalFilter(request model.BookingRequest, now time.Time) gDto.FilterGroup {
	filter := statusFilter(request.StoreID, request.ID, request.Status)

	if request.Status == model.StatusPending {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "window_open",
			Field:    model.FieldExpiredAt,
			Value:    now,
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		})
	}

	return filter
}

func classify(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}

	switch failure.GetCode(err) {
	case http.StatusConflict:
		return metrics.OutcomeConflict
	case http.StatusTooManyRequests:
		return metrics.OutcomeRateLimited
	case http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusGone:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

func nameOf(name string) *string {
	if name == constant.Empty {
		return nil
	}

	return &name
}
