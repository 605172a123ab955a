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
	"bookit/internal/domains/availability/engine"
	bookingModel "bookit/internal/domains/booking/model"
	requestModel "bookit/internal/domains/bookingrequest/model"
	roomModel "bookit/internal/domains/room/model"
	"bookit/shared/constant"
	"bookit/shared/logger"
	gRepo "bookit/shared/repository"
	"bookit/shared/slot"
)

type Availability interface {
	LockDateTx(ctx context.Context, sqltx *sqlx.Tx, storeID string, date time.Time) error
	Occupancy(ctx context.Context, storeID string, date time.Time) (engine.Occupancy, error)
	OccupancyTx(ctx context.Context, sqltx *sqlx.Tx, storeID string, date time.Time) (engine.Occupancy, error)
	CategoryRooms(ctx context.Context, storeID, categoryID string) ([]roomModel.Room, error)
	CategoryRoomsTx(ctx context.Context, sqltx *sqlx.Tx, storeID, categoryID string) ([]roomModel.Room, error)
}

type bookingRow struct {
	ID          string              `db:"id"`
	RoomID      *string             `db:"room_id"`
	BookingDate time.Time           `db:"booking_date"`
	StartTime   string              `db:"start_time"`
	EndTime     string              `db:"end_time"`
	Status      bookingModel.Status `db:"status"`
}

type requestRow struct {
	ID                 string              `db:"id"`
	RoomID             *string             `db:"room_id"`
	CategoryID         *string             `db:"category_id"`
	BookingDate        time.Time           `db:"booking_date"`
	StartTime          string              `db:"start_time"`
	EndTime            string              `db:"end_time"`
	Status             requestModel.Status `db:"status"`
	ExpiredAt          *time.Time          `db:"expired_at"`
	ConvertedBookingID *string             `db:"converted_booking_id"`
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// LockDateTx serializes every writer that claims a slot in the store on the
// given date. Overnight slots reach into the neighbouring dates, so those are
// locked too, always in ascending order. The locks are released when the
// transaction ends.
func (r *repositoryImpl) LockDateTx(ctx context.Context, sqltx *sqlx.Tx, storeID string, date time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.LockDateTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	for offset := -1; offset <= 1; offset++ {
		key := lockKey(storeID, date.AddDate(0, 0, offset))

		if _, err = sqltx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock booking date: %w", err)
		}
	}

	return nil
}

func (r *repositoryImpl) Occupancy(ctx context.Context, storeID string, date time.Time) (engine.Occupancy, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.Occupancy")
	defer scope.End()

	return gRepo.RetryRead(ctx, r.db.ReadRetries, func() (engine.Occupancy, error) {
		return r.occupancy(ctx, r.db.Read, storeID, date)
	})
}

func (r *repositoryImpl) OccupancyTx(ctx context.Context, sqltx *sqlx.Tx, storeID string, date time.Time) (engine.Occupancy, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.OccupancyTx")
	defer scope.End()

	return r.occupancy(ctx, sqltx, storeID, date)
}

// occupancy loads the bookings and requests of the date and both neighbouring
// dates that may still hold a room. Pending requests are filtered by the
// engine against the current time.
func (r *repositoryImpl) occupancy(ctx context.Context, q sqlx.QueryerContext, storeID string, date time.Time) (res engine.Occupancy, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.occupancy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from := date.AddDate(0, 0, -1).Format(constant.DayLayout)
	to := date.AddDate(0, 0, 1).Format(constant.DayLayout)

	bookingQuery, bookingArgs, err := gRepo.Psql.
		Select("id", "room_id", "booking_date", "start_time", "end_time", "status").
		From(bookingModel.TableName).
		Where(squirrel.Eq{
			bookingModel.FieldStoreID: storeID,
			bookingModel.FieldStatus:  []string{bookingModel.StatusReserved.Code(), bookingModel.StatusCheckedIn.Code()},
		}).
		Where(squirrel.Expr("booking_date BETWEEN ? AND ?", from, to)).
		ToSql()
	if err != nil {
		return res, fmt.Errorf("failed to build booking occupancy query: %w", err)
	}

	requestQuery, requestArgs, err := gRepo.Psql.
		Select("id", "room_id", "category_id", "booking_date", "start_time", "end_time", "status", "expired_at", "converted_booking_id").
		From(requestModel.TableName).
		Where(squirrel.Eq{
			requestModel.FieldStoreID:            storeID,
			requestModel.FieldStatus:             []string{string(requestModel.StatusPending), string(requestModel.StatusConfirmed), string(requestModel.StatusCheckIn)},
			requestModel.FieldConvertedBookingID: nil,
		}).
		Where(squirrel.Expr("booking_date BETWEEN ? AND ?", from, to)).
		ToSql()
	if err != nil {
		return res, fmt.Errorf("failed to build request occupancy query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, bookingQuery+"; "+requestQuery)

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var bookings []bookingRow
	if err = sqlx.SelectContext(ctx, q, &bookings, bookingQuery, bookingArgs...); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get occupying bookings: %w", err)
	}

	var requests []requestRow
	if err = sqlx.SelectContext(ctx, q, &requests, requestQuery, requestArgs...); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get occupying requests: %w", err)
	}

	res.Bookings = make([]engine.Booking, 0, len(bookings))

	for _, row := range bookings {
		interval, err := slot.Parse(row.StartTime, row.EndTime)
		if err != nil {
			return res, fmt.Errorf("booking %s has a malformed slot: %w", row.ID, err)
		}

		res.Bookings = append(res.Bookings, engine.Booking{
			ID:     row.ID,
			RoomID: row.RoomID,
			Date:   row.BookingDate,
			Slot:   interval,
			Status: row.Status,
		})
	}

	res.Requests = make([]engine.Request, 0, len(requests))

	for _, row := range requests {
		interval, err := slot.Parse(row.StartTime, row.EndTime)
		if err != nil {
			return res, fmt.Errorf("booking request %s has a malformed slot: %w", row.ID, err)
		}

		res.Requests = append(res.Requests, engine.Request{
			ID:                 row.ID,
			RoomID:             row.RoomID,
			CategoryID:         row.CategoryID,
			Date:               row.BookingDate,
			Slot:               interval,
			Status:             row.Status,
			ExpiredAt:          row.ExpiredAt,
			ConvertedBookingID: row.ConvertedBookingID,
		})
	}

	return res, nil
}

func (r *repositoryImpl) CategoryRooms(ctx context.Context, storeID, categoryID string) ([]roomModel.Room, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.CategoryRooms")
	defer scope.End()

	return gRepo.RetryRead(ctx, r.db.ReadRetries, func() ([]roomModel.Room, error) {
		return r.categoryRooms(ctx, r.db.Read, storeID, categoryID)
	})
}

func (r *repositoryImpl) CategoryRoomsTx(ctx context.Context, sqltx *sqlx.Tx, storeID, categoryID string) ([]roomModel.Room, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.CategoryRoomsTx")
	defer scope.End()

	return r.categoryRooms(ctx, sqltx, storeID, categoryID)
}

// categoryRooms lists the rooms of a category. An empty categoryID selects the rooms without one.
func (r *repositoryImpl) categoryRooms(ctx context.Context, q sqlx.QueryerContext, storeID, categoryID string) (rooms []roomModel.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.categoryRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var category any
	if categoryID != constant.Empty {
		category = categoryID
	}

	query, args, err := gRepo.Psql.
		Select("id", "store_id", "category_id", "name", "status", "created_at", "created_by", "modified_at", "modified_by").
		From(roomModel.TableName).
		Where(squirrel.Eq{roomModel.FieldStoreID: storeID, roomModel.FieldCategoryID: category}).
		OrderBy(roomModel.FieldName + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build category rooms query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	if err = sqlx.SelectContext(ctx, q, &rooms, query, args...); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get category rooms: %w", err)
	}

	return rooms, nil
}

func lockKey(storeID string, date time.Time) string {
	return storeID + ":" + date.Format(constant.DayLayout)
}
