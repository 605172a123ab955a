package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"bookit/infras/otel"
	"bookit/infras/postgres"
	"bookit/internal/domains/bookingrequest/model"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/logger"
	gRepo "bookit/shared/repository"
)

type BookingRequest interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.BookingRequest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRequest, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	SweepExpired(ctx context.Context, now time.Time) ([]model.BookingRequest, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.BookingRequest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) BookingRequest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BookingRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SweepExpired moves every pending request whose payment window closed at or
// before now to expired and returns the rows it changed. A second run finds
// nothing left to change.
func (r *repositoryImpl) SweepExpired(ctx context.Context, now time.Time) (res []model.BookingRequest, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_request.SweepExpired")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query, args, err := gRepo.Psql.
		Update(model.TableName).
		Set(model.FieldStatus, string(model.StatusExpired)).
		Set(constant.FieldModifiedAt, now).
		Set(constant.FieldModifiedBy, constant.ContextSystem).
		Where(squirrel.Eq{model.FieldStatus: string(model.StatusPending)}).
		Where(squirrel.LtOrEq{model.FieldExpiredAt: now}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sweep query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	if err = sqlx.SelectContext(ctx, r.db.Write, &res, query, args...); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to expire booking requests: %w", err)
	}

	return res, nil
}
