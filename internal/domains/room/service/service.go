package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/otel"
	categoryModel "bookit/internal/domains/category/model"
	categoryRepository "bookit/internal/domains/category/repository"
	"bookit/internal/domains/room/model"
	"bookit/internal/domains/room/model/dto"
	"bookit/internal/domains/room/repository"
	"bookit/shared"
	"bookit/shared/actor"
	"bookit/shared/cache"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	gRepo "bookit/shared/repository"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
)

type Room interface {
	Create(ctx context.Context, scope actor.Scope, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, storeID string, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, storeID, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, scope actor.Scope, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, scope actor.Scope, id string) error
}

type serviceImpl struct {
	repo         repository.Room
	categoryRepo categoryRepository.Category
	transactor   gRepo.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Room,
	categoryRepo categoryRepository.Category,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:         repo,
		categoryRepo: categoryRepo,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, scope actor.Scope, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	if err = s.ensureCategory(ctx, scope.StoreID, req.CategoryID); err != nil {
		return res, err
	}

	room := req.ToModel(scope.StoreID, scope.Actor.ID)

	if err = s.repo.Insert(ctx, room); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(fmt.Sprintf("room %q already exists", req.Name))
		}

		log.Error().Err(err).Str("store_id", scope.StoreID).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx, scope.StoreID, room.ID)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, storeID string, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllRoom, storeID), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	scoped := shared.FilterByStore(storeID, model.TableName, filter)

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, storeID, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, storeID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByStoreAndID(storeID, id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, scope actor.Scope, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	if req == (dto.UpdateRoomRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByStoreAndID(scope.StoreID, id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.ensureCategory(ctx, scope.StoreID, req.CategoryID); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, scope.Actor.ID), filter); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict(fmt.Sprintf("room %q already exists", req.Name))
		}

		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, scope.StoreID, id)

	return nil
}

// Delete removes a room together with its variants. A room that any booking
// still references is kept and the call fails with a conflict.
func (s *serviceImpl) Delete(ctx context.Context, scope actor.Scope, id string) (err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	filter := shared.FilterByStoreAndID(scope.StoreID, id, model.FieldID, model.TableName)

	err = s.transactor.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		room, err := s.repo.GetTx(ctx, sqltx, filter)
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found")
		}

		referenced, err := s.repo.HasBookingsTx(ctx, sqltx, id)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if referenced {
			return failure.Conflict("room has bookings and cannot be deleted, set its status to Broken or Maintenance instead")
		}

		return s.repo.DeleteWithVariantsTx(ctx, sqltx, scope.StoreID, id) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to delete room")

		return err
	}

	s.invalidate(ctx, scope.StoreID, id)

	return nil
}

func (s *serviceImpl) ensureCategory(ctx context.Context, storeID string, categoryID *string) error {
	if categoryID == nil {
		return nil
	}

	exist, err := s.categoryRepo.Exist(ctx, shared.FilterByStoreAndID(storeID, *categoryID, categoryModel.FieldID, categoryModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("category does not belong to this store")
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, storeID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, storeID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetAllRoom, storeID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyAvailability, storeID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyVariant, storeID))
	}()
}
