package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"bookit/infras/otel"
	"bookit/infras/postgres"
	"bookit/internal/domains/room/model"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/logger"
	gRepo "bookit/shared/repository"
)

const (
	tableBookings = "bookings"
	tableVariants = "variants"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	HasBookingsTx(ctx context.Context, sqltx *sqlx.Tx, roomID string) (bool, error)
	DeleteWithVariantsTx(ctx context.Context, sqltx *sqlx.Tx, storeID, roomID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// HasBookingsTx reports whether any booking, in any status, still points at the room.
func (r *repositoryImpl) HasBookingsTx(ctx context.Context, sqltx *sqlx.Tx, roomID string) (exists bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.HasBookingsTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	inner, args, err := gRepo.Psql.Select("1").From(tableBookings).Where(squirrel.Eq{"room_id": roomID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build booking reference query: %w", err)
	}

	query := "SELECT EXISTS(" + inner + ")"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	if err = sqltx.GetContext(ctx, &exists, query, args...); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check room bookings: %w", err)
	}

	return exists, nil
}

// DeleteWithVariantsTx deletes the room's variants and then the room itself.
func (r *repositoryImpl) DeleteWithVariantsTx(ctx context.Context, sqltx *sqlx.Tx, storeID, roomID string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.DeleteWithVariantsTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	statements := []squirrel.DeleteBuilder{
		gRepo.Psql.Delete(tableVariants).Where(squirrel.Eq{"room_id": roomID, constant.FieldStoreID: storeID}),
		gRepo.Psql.Delete(model.TableName).Where(squirrel.Eq{model.FieldID: roomID, model.FieldStoreID: storeID}),
	}

	for _, statement := range statements {
		query, args, err := statement.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build room delete query: %w", err)
		}

		if _, err = sqltx.ExecContext(ctx, query, args...); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to delete room: %w", err)
		}
	}

	return nil
}
