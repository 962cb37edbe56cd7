//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"rental/config"
	"rental/infras/flatfile"
	"rental/infras/jwt"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/infras/redis"
	"rental/infras/s3"
	"rental/internal/events"
	"rental/permissions"
	"rental/shared/cache"
	"rental/transport/http"
	"rental/transport/http/middleware"
	"rental/transport/http/router"

	adminRepository "rental/internal/domains/admin/repository"
	adminService "rental/internal/domains/admin/service"
	authService "rental/internal/domains/auth/service"
	bookingRepository "rental/internal/domains/booking/repository"
	bookingService "rental/internal/domains/booking/service"
	paymentRepository "rental/internal/domains/payment/repository"
	paymentService "rental/internal/domains/payment/service"
	reviewRepository "rental/internal/domains/review/repository"
	reviewService "rental/internal/domains/review/service"
	userRepository "rental/internal/domains/user/repository"
	userService "rental/internal/domains/user/service"
	vehicleRepository "rental/internal/domains/vehicle/repository"
	vehicleService "rental/internal/domains/vehicle/service"

	adminHandler "rental/internal/handlers/admin"
	authHandler "rental/internal/handlers/auth"
	bookingHandler "rental/internal/handlers/booking"
	paymentHandler "rental/internal/handlers/payment"
	reviewHandler "rental/internal/handlers/review"
	userHandler "rental/internal/handlers/user"
	vehicleHandler "rental/internal/handlers/vehicle"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	kafka.New,
	flatfile.NewDir,
	s3.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	userDomain,
	vehicleDomain,
	bookingDomain,
	paymentDomain,
	reviewDomain,
	adminDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	vehicleHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	reviewHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
