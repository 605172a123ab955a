package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bookit/infras/otel"
	"bookit/infras/postgres"
	"bookit/internal/domains/roomstatus/model"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/logger"
	gRepo "bookit/shared/repository"
)

type RoomStatus interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DailyStatus, error)
	Upsert(ctx context.Context, status model.DailyStatus) error
	UpsertTx(ctx context.Context, sqltx *sqlx.Tx, status model.DailyStatus) error
}

type repositoryImpl struct {
	gRepo.Repository[model.DailyStatus]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) RoomStatus {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.DailyStatus](model.EntityName, model.TableName, model.FieldRoomID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Upsert(ctx context.Context, status model.DailyStatus) error {
	return r.upsert(ctx, r.db.Write, status)
}

func (r *repositoryImpl) UpsertTx(ctx context.Context, sqltx *sqlx.Tx, status model.DailyStatus) error {
	return r.upsert(ctx, sqltx, status)
}

// upsert keeps a single current row per room and date; the latest write wins.
func (r *repositoryImpl) upsert(ctx context.Context, exec sqlx.ExecerContext, status model.DailyStatus) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room_daily_status.upsert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query, args, err := gRepo.Psql.
		Insert(model.TableName).
		Columns(model.FieldRoomID, model.FieldStoreID, model.FieldStatusDate, model.FieldStatus, model.FieldUpdatedBy, model.FieldUpdatedAt).
		Values(status.RoomID, status.StoreID, status.StatusDate.Format(constant.DayLayout), string(status.Status), status.UpdatedBy, status.UpdatedAt).
		Suffix("ON CONFLICT (room_id, status_date) DO UPDATE SET status = EXCLUDED.status, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build daily status upsert: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	if _, err = exec.ExecContext(ctx, query, args...); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to upsert daily status: %w", err)
	}

	return nil
}
