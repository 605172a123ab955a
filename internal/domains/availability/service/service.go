package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Availability=MockAvailabilityService

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/metrics"
	"bookit/infras/otel"
	"bookit/internal/domains/availability/engine"
	"bookit/internal/domains/availability/model/dto"
	"bookit/internal/domains/availability/repository"
	categoryModel "bookit/internal/domains/category/model"
	categoryRepository "bookit/internal/domains/category/repository"
	roomModel "bookit/internal/domains/room/model"
	roomRepository "bookit/internal/domains/room/repository"
	"bookit/shared"
	"bookit/shared/cache"
	"bookit/shared/constant"
	"bookit/shared/failure"
	"bookit/shared/slot"
	"bookit/shared/timezone"
)

const (
	cacheRoom     = "room"
	cacheCategory = "category"
)

var errSlotTaken = failure.Conflict("slot no longer available, please pick another time or room")

// Exclude names occupants that must not count against a claim, such as the request being converted.
type Exclude struct {
	BookingID string
	RequestID string
}

type Availability interface {
	RoomPreview(ctx context.Context, storeID, roomID string, req dto.AvailabilityQuery) (dto.RoomAvailabilityResponse, error)
	CategoryPreview(ctx context.Context, storeID, categoryID string, req dto.AvailabilityQuery) (dto.CategoryAvailabilityResponse, error)
	ClaimRoomTx(ctx context.Context, sqltx *sqlx.Tx, storeID, roomID string, date time.Time, candidate slot.Interval, exclude Exclude) error
	ClaimCategoryTx(ctx context.Context, sqltx *sqlx.Tx, storeID, categoryID string, date time.Time, candidate slot.Interval) error
	Invalidate(ctx context.Context, storeID string, date time.Time)
}

type serviceImpl struct {
	repo         repository.Availability
	roomRepo     roomRepository.Room
	categoryRepo categoryRepository.Category
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Availability,
	roomRepo roomRepository.Room,
	categoryRepo categoryRepository.Category,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		categoryRepo: categoryRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// RoomPreview answers whether one room is free. The answer is advisory: the
// authoritative check runs again inside the transaction that claims the slot.
func (s *serviceImpl) RoomPreview(ctx context.Context, storeID, roomID string, req dto.AvailabilityQuery) (res dto.RoomAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomPreview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, candidate, err := parseQuery(req)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyAvailability, storeID, req.Date, cacheRoom, roomID, candidate.String())

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		metrics.IncAvailabilityLookup(true)

		return res, nil
	}

	metrics.IncAvailabilityLookup(false)

	room, err := s.roomRepo.Get(ctx, shared.FilterByStoreAndID(storeID, roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	occupancy, err := s.repo.Occupancy(ctx, storeID, date)
	if err != nil {
		log.Error().Err(err).Str("store_id", storeID).Msg("failed to load occupancy")

		return res, fmt.Errorf("failed to load occupancy: %w", err)
	}

	free := engine.IsRoomFree(room.ID, date, candidate, occupancy.Bookings, occupancy.Requests, timezone.Now())
	res.FromResult(room.ID, req.Date, candidate, room.Status.Bookable(), free)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// CategoryPreview counts the free rooms of a category. An empty categoryID
// addresses the rooms without a category.
func (s *serviceImpl) CategoryPreview(ctx context.Context, storeID, categoryID string, req dto.AvailabilityQuery) (res dto.CategoryAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CategoryPreview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, candidate, err := parseQuery(req)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyAvailability, storeID, req.Date, cacheCategory, categoryID, candidate.String())

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		metrics.IncAvailabilityLookup(true)

		return res, nil
	}

	metrics.IncAvailabilityLookup(false)

	if categoryID != constant.Empty {
		exist, err := s.categoryRepo.Exist(ctx, shared.FilterByStoreAndID(storeID, categoryID, categoryModel.FieldID, categoryModel.TableName))
		if err != nil {
			return res, fmt.Errorf("failed to check category: %w", err)
		}

		if !exist {
			return res, failure.NotFound("category not found") // nolint:wrapcheck
		}
	}

	rooms, err := s.repo.CategoryRooms(ctx, storeID, categoryID)
	if err != nil {
		log.Error().Err(err).Str("store_id", storeID).Msg("failed to load category rooms")

		return res, fmt.Errorf("failed to load category rooms: %w", err)
	}

	occupancy, err := s.repo.Occupancy(ctx, storeID, date)
	if err != nil {
		log.Error().Err(err).Str("store_id", storeID).Msg("failed to load occupancy")

		return res, fmt.Errorf("failed to load occupancy: %w", err)
	}

	result := engine.AvailableRoomCount(categoryID, date, candidate, rooms, occupancy.Bookings, occupancy.Requests, timezone.Now())
	res.FromResult(categoryID, req.Date, candidate, result)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// ClaimRoomTx locks the date and fails with a conflict unless the room is free.
// It must run inside the transaction that writes the claim.
func (s *serviceImpl) ClaimRoomTx(
	ctx context.Context,
	sqltx *sqlx.Tx,
	storeID, roomID string,
	date time.Time,
	candidate slot.Interval,
	exclude Exclude,
) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClaimRoomTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.LockDateTx(ctx, sqltx, storeID, date); err != nil {
		return err //nolint:wrapcheck
	}

	occupancy, err := s.repo.OccupancyTx(ctx, sqltx, storeID, date)
	if err != nil {
		return err //nolint:wrapcheck
	}

	bookings, requests := engine.Without(occupancy.Bookings, occupancy.Requests, exclude.BookingID, exclude.RequestID)

	if !engine.IsRoomFree(roomID, date, candidate, bookings, requests, timezone.Now()) {
		return errSlotTaken
	}

	return nil
}

// ClaimCategoryTx locks the date and fails with a conflict unless at least one room of the category is free.
func (s *serviceImpl) ClaimCategoryTx(ctx context.Context, sqltx *sqlx.Tx, storeID, categoryID string, date time.Time, candidate slot.Interval) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClaimCategoryTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.LockDateTx(ctx, sqltx, storeID, date); err != nil {
		return err //nolint:wrapcheck
	}

	rooms, err := s.repo.CategoryRoomsTx(ctx, sqltx, storeID, categoryID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	occupancy, err := s.repo.OccupancyTx(ctx, sqltx, storeID, date)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !engine.AvailableRoomCount(categoryID, date, candidate, rooms, occupancy.Bookings, occupancy.Requests, timezone.Now()).Available {
		return errSlotTaken
	}

	return nil
}

// Invalidate drops the cached previews a change on date can affect. Overnight
// slots reach the neighbouring dates, so those are dropped too.
func (s *serviceImpl) Invalidate(ctx context.Context, storeID string, date time.Time) {
	go func() {
		c := context.WithoutCancel(ctx)

		for offset := -1; offset <= 1; offset++ {
			day := date.AddDate(0, 0, offset).Format(constant.DayLayout)

			shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyAvailability, storeID, day))
		}
	}()
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save availability to cache")
		}
	}()
}

func parseQuery(req dto.AvailabilityQuery) (time.Time, slot.Interval, error) {
	date, err := timezone.ParseDay(req.Date)
	if err != nil {
		return date, slot.Interval{}, failure.BadRequestFromString("date must use the YYYY-MM-DD format")
	}

	candidate, err := slot.Parse(req.StartTime, req.EndTime)
	if err != nil {
		return date, candidate, failure.BadRequest(err)
	}

	if err = candidate.Validate(0); err != nil {
		return date, candidate, failure.BadRequest(err)
	}

	return date, candidate, nil
}
