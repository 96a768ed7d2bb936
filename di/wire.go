//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"carshare/config"
	"carshare/infras/jwt"
	"carshare/infras/kafka"
	"carshare/infras/otel"
	"carshare/infras/postgres"
	"carshare/infras/redis"
	"carshare/infras/s3"
	"carshare/shared/cache"
	"carshare/transport/http"
	"carshare/transport/http/middleware"
	"carshare/transport/http/router"

	bookingService "carshare/internal/domains/booking/service"
	bookingHandler "carshare/internal/handlers/booking"

	notificationRepository "carshare/internal/domains/notification/repository"
	notificationService "carshare/internal/domains/notification/service"
	notificationHandler "carshare/internal/handlers/notification"

	paymentService "carshare/internal/domains/payment/service"

	reservationRepository "carshare/internal/domains/reservation/repository"
	reservationService "carshare/internal/domains/reservation/service"
	reservationHandler "carshare/internal/handlers/reservation"

	resourceRepository "carshare/internal/domains/resource/repository"
	resourceService "carshare/internal/domains/resource/service"
	resourceHandler "carshare/internal/handlers/resource"

	userRepository "carshare/internal/domains/user/repository"
	userService "carshare/internal/domains/user/service"
)

var configurations = wire.NewSet(
	config.Get,
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
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	wire.Bind(new(notificationService.UserDirectory), new(userService.User)),
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
	wire.Bind(new(resourceService.CommittedRangeSource), new(reservationService.Reservation)),
	wire.Bind(new(notificationService.ReservationReader), new(reservationService.Reservation)),
	wire.Bind(new(bookingService.ReservationStore), new(reservationService.Reservation)),
)

var resourceDomain = wire.NewSet(
	resourceRepository.New,
	resourceService.New,
	wire.Bind(new(notificationService.ResourceDirectory), new(resourceService.Resource)),
	wire.Bind(new(bookingService.RentInfoProvider), new(resourceService.Resource)),
)

var paymentDomain = wire.NewSet(
	paymentService.New,
	wire.Bind(new(bookingService.PaymentGateway), new(paymentService.Payment)),
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.NewEnricher,
	notificationService.NewKafkaTransport,
	notificationService.New,
	wire.Bind(new(bookingService.Notifier), new(notificationService.Notification)),
)

var bookingDomain = wire.NewSet(
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	reservationDomain,
	resourceDomain,
	paymentDomain,
	notificationDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	resourceHandler.New,
	reservationHandler.New,
	notificationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
