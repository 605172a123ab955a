package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"bookit/infras/otel"
	"bookit/infras/postgres"
	roomModel "bookit/internal/domains/room/model"
	"bookit/internal/domains/variant/model"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/logger"
	gRepo "bookit/shared/repository"
)

type Variant interface {
	Insert(ctx context.Context, model model.Variant) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Variant, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Variant, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ByCategory(ctx context.Context, storeID, categoryID string) ([]model.Variant, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Variant]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Variant {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Variant](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ByCategory lists the active variants of every room in the category, ordered
// by room name so that merging keeps the first room's variant for a name.
func (r *repositoryImpl) ByCategory(ctx context.Context, storeID, categoryID string) (variants []model.Variant, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".variant.ByCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query, args, err := gRepo.Psql.
		Select(
			"v.id", "v.store_id", "v.room_id", "v.name", "v.duration_minutes", "v.price", "v.active",
			"v.created_at", "v.created_by", "v.modified_at", "v.modified_by",
		).
		From(model.TableName + " v").
		Join(roomModel.TableName + " r ON r.id = v.room_id").
		Where(squirrel.Eq{
			"r.store_id":    storeID,
			"r.category_id": categoryID,
			"v.active":      true,
		}).
		OrderBy("r.name ASC", "v.duration_minutes ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build category variants query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return gRepo.RetryRead(ctx, r.db.ReadRetries, func() ([]model.Variant, error) {
		ctx, cancel := r.db.WithTimeout(ctx)
		defer cancel()

		var rows []model.Variant
		if err := r.db.Read.SelectContext(ctx, &rows, query, args...); err != nil {
			logger.ErrorWithStack(err)

			return nil, fmt.Errorf("failed to get category variants: %w", err)
		}

		return rows, nil
	})
}
