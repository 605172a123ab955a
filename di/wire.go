//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"bookit/config"
	"bookit/infras/jwt"
	"bookit/infras/kafka"
	"bookit/infras/otel"
	"bookit/infras/postgres"
	"bookit/infras/redis"
	"bookit/infras/s3"
	availabilityRepository "bookit/internal/domains/availability/repository"
	availabilityService "bookit/internal/domains/availability/service"
	bookingRepository "bookit/internal/domains/booking/repository"
	bookingService "bookit/internal/domains/booking/service"
	requestRepository "bookit/internal/domains/bookingrequest/repository"
	requestService "bookit/internal/domains/bookingrequest/service"
	categoryRepository "bookit/internal/domains/category/repository"
	categoryService "bookit/internal/domains/category/service"
	roomRepository "bookit/internal/domains/room/repository"
	roomService "bookit/internal/domains/room/service"
	roomStatusRepository "bookit/internal/domains/roomstatus/repository"
	roomStatusService "bookit/internal/domains/roomstatus/service"
	"bookit/internal/domains/sequence"
	variantRepository "bookit/internal/domains/variant/repository"
	variantService "bookit/internal/domains/variant/service"
	"bookit/internal/events"
	bookingHandler "bookit/internal/handlers/booking"
	requestHandler "bookit/internal/handlers/bookingrequest"
	categoryHandler "bookit/internal/handlers/category"
	roomHandler "bookit/internal/handlers/room"
	roomStatusHandler "bookit/internal/handlers/roomstatus"
	sequenceHandler "bookit/internal/handlers/sequence"
	variantHandler "bookit/internal/handlers/variant"
	"bookit/internal/worker"
	"bookit/permissions"
	"bookit/shared/cache"
	gRepo "bookit/shared/repository"
	"bookit/transport/http"
	"bookit/transport/http/middleware"
	"bookit/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
	permissions.NewPolicy,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
	events.NewPublisher,
	sequence.New,
	sequence.NewIssuer,
	provideIntakeLimiter,
)

var inventoryDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
	roomRepository.New,
	roomService.New,
	variantRepository.New,
	variantService.New,
	roomStatusRepository.New,
	roomStatusService.New,
)

var bookingDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
	bookingRepository.New,
	bookingRepository.NewProduct,
	bookingService.New,
	requestRepository.New,
	requestService.New,
)

var domains = wire.NewSet(
	inventoryDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	categoryHandler.New,
	roomHandler.New,
	variantHandler.New,
	roomStatusHandler.New,
	bookingHandler.New,
	requestHandler.New,
	sequenceHandler.New,
	router.New,
)

var workers = wire.NewSet(
	wire.Bind(new(worker.Expirer), new(requestService.BookingRequest)),
	worker.NewSweeper,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		workers,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
