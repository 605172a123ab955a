package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Variant=MockVariantService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/otel"
	roomModel "bookit/internal/domains/room/model"
	roomRepository "bookit/internal/domains/room/repository"
	"bookit/internal/domains/variant/model"
	"bookit/internal/domains/variant/model/dto"
	"bookit/internal/domains/variant/repository"
	"bookit/shared"
	"bookit/shared/actor"
	"bookit/shared/cache"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	gRepo "bookit/shared/repository"
)

const (
	cacheCategoryVariants = "category"
)

type Variant interface {
	Create(ctx context.Context, scope actor.Scope, roomID string, req dto.CreateVariantRequest) (dto.VariantResponse, error)
	GetAll(ctx context.Context, storeID, roomID string) (dto.GetVariantsResponse, error)
	Update(ctx context.Context, scope actor.Scope, req dto.UpdateVariantRequest, roomID, id string) error
	Delete(ctx context.Context, scope actor.Scope, roomID, id string) error
	CategoryVariants(ctx context.Context, storeID, categoryID string) (dto.GetCategoryVariantsResponse, error)
	Resolve(ctx context.Context, storeID, categoryID string, roomID *string, name string) (model.Variant, error)
}

type serviceImpl struct {
	repo     repository.Variant
	roomRepo roomRepository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Variant, roomRepo roomRepository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Variant {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, scope actor.Scope, roomID string, req dto.CreateVariantRequest) (res dto.VariantResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	if err = s.ensureRoom(ctx, scope.StoreID, roomID); err != nil {
		return res, err
	}

	variant := req.ToModel(scope.StoreID, roomID, scope.Actor.ID)

	if err = s.repo.Insert(ctx, variant); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(fmt.Sprintf("variant %q already exists for this room", req.Name))
		}

		log.Error().Err(err).Msg("failed to create variant")

		return res, fmt.Errorf("failed to create variant: %w", err)
	}

	s.invalidate(ctx, scope.StoreID)

	res.FromModel(variant)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, storeID, roomID string) (res dto.GetVariantsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByStore(storeID, model.TableName, gDto.Filter{
		Field:    model.FieldRoomID,
		Value:    roomID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldDuration, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get variants")

		return res, fmt.Errorf("failed to get variants: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, scope actor.Scope, req dto.UpdateVariantRequest, roomID, id string) (err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	if req == (dto.UpdateVariantRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := s.variantFilter(scope.StoreID, roomID, id)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check variant existence: %w", err)
	}

	if !exist {
		return failure.NotFound("variant not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, scope.Actor.ID), filter); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict(fmt.Sprintf("variant %q already exists for this room", req.Name))
		}

		log.Error().Err(err).Msg("failed to update variant")

		return fmt.Errorf("failed to update variant: %w", err)
	}

	s.invalidate(ctx, scope.StoreID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, scope actor.Scope, roomID, id string) (err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	filter := s.variantFilter(scope.StoreID, roomID, id)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check variant existence: %w", err)
	}

	if !exist {
		return failure.NotFound("variant not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete variant")

		return fmt.Errorf("failed to delete variant: %w", err)
	}

	s.invalidate(ctx, scope.StoreID)

	return nil
}

// CategoryVariants lists the variants offered for a category, merged by name across its rooms.
func (s *serviceImpl) CategoryVariants(ctx context.Context, storeID, categoryID string) (res dto.GetCategoryVariantsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CategoryVariants")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheKeyVariant, storeID, cacheCategoryVariants, categoryID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	variants, err := s.repo.ByCategory(ctx, storeID, categoryID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get category variants")

		return res, fmt.Errorf("failed to get category variants: %w", err)
	}

	res.FromModels(categoryID, model.Merge(variants))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save category variants to cache")
		}
	}()

	return res, nil
}

// Resolve finds the variant a booking request asks for. With a room the room's
// own variant is used, otherwise the merged category variant.
func (s *serviceImpl) Resolve(ctx context.Context, storeID, categoryID string, roomID *string, name string) (res model.Variant, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		variant model.Variant
		found   bool
	)

	if roomID != nil {
		variant, err = s.repo.Get(ctx, s.variantFilter(storeID, *roomID, constant.Empty, gDto.Filter{
			Field:    model.FieldName,
			Value:    name,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}))
		if err != nil {
			return res, fmt.Errorf("failed to get room variant: %w", err)
		}

		found = variant.ID != constant.Empty && variant.Active
	} else {
		variants, err := s.repo.ByCategory(ctx, storeID, categoryID)
		if err != nil {
			return res, fmt.Errorf("failed to get category variants: %w", err)
		}

		variant, found = model.Find(model.Merge(variants), name)
	}

	if !found {
		return res, failure.BadRequestFromString(fmt.Sprintf("variant %q is not offered", name))
	}

	return variant, nil
}

func (s *serviceImpl) ensureRoom(ctx context.Context, storeID, roomID string) error {
	exist, err := s.roomRepo.Exist(ctx, shared.FilterByStoreAndID(storeID, roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found")
	}

	return nil
}

func (s *serviceImpl) variantFilter(storeID, roomID, id string, extra ...any) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	}

	if id != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    id,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return shared.FilterByStore(storeID, model.TableName, append(filters, extra...)...)
}

func (s *serviceImpl) invalidate(ctx context.Context, storeID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyVariant, storeID))
	}()
}
