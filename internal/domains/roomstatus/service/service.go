package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=RoomStatus=MockRoomStatusService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/otel"
	roomModel "bookit/internal/domains/room/model"
	roomRepository "bookit/internal/domains/room/repository"
	"bookit/internal/domains/roomstatus/model"
	"bookit/internal/domains/roomstatus/model/dto"
	"bookit/internal/domains/roomstatus/repository"
	"bookit/shared"
	"bookit/shared/actor"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
	"bookit/shared/timezone"
)

type RoomStatus interface {
	SetStatus(ctx context.Context, scope actor.Scope, roomID string, req dto.SetStatusRequest) error
	GetByDate(ctx context.Context, storeID, date string) (dto.GetDailyStatusesResponse, error)
}

type serviceImpl struct {
	repo     repository.RoomStatus
	roomRepo roomRepository.Room
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.RoomStatus, roomRepo roomRepository.Room, cfg *config.Config, otel otel.Otel) RoomStatus {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		otel:     otel,
	}
}

// SetStatus records a staff decision for a room on a date, such as taking it
// into Maintenance or marking it Ready after cleaning.
func (s *serviceImpl) SetStatus(ctx context.Context, scope actor.Scope, roomID string, req dto.SetStatusRequest) (err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	date, err := timezone.ParseDay(req.Date)
	if err != nil {
		return failure.BadRequestFromString("date must use the YYYY-MM-DD format")
	}

	status := model.Status(req.Status)
	if !status.Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown room status %q", req.Status))
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByStoreAndID(scope.StoreID, roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	err = s.repo.Upsert(ctx, model.DailyStatus{
		RoomID:     roomID,
		StoreID:    scope.StoreID,
		StatusDate: date,
		Status:     status,
		UpdatedBy:  scope.Actor.ID,
		UpdatedAt:  timezone.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to set daily status")

		return fmt.Errorf("failed to set daily status: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetByDate(ctx context.Context, storeID, date string) (res dto.GetDailyStatusesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = timezone.ParseDay(date); err != nil {
		return res, failure.BadRequestFromString("date must use the YYYY-MM-DD format")
	}

	filter := shared.FilterByStore(storeID, model.TableName, gDto.Filter{
		Field:    model.FieldStatusDate,
		Value:    date,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldRoomID, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get daily statuses")

		return res, fmt.Errorf("failed to get daily statuses: %w", err)
	}

	res.FromModels(date, models)

	return res, nil
}
