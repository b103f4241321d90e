//go:build wireinject
// +build wireinject

package di

import (
	"rentdesk/config"
	"rentdesk/infras/ical"
	"rentdesk/infras/jwt"
	"rentdesk/infras/kafka"
	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/infras/redis"
	"rentdesk/infras/s3"
	"rentdesk/internal/events"
	"rentdesk/permissions"
	"rentdesk/shared/cache"
	"rentdesk/transport/http"
	"rentdesk/transport/http/middleware"
	"rentdesk/transport/http/router"

	bookingRepository "rentdesk/internal/domains/booking/repository"
	bookingService "rentdesk/internal/domains/booking/service"
	calendarService "rentdesk/internal/domains/calendar/service"
	campaignRepository "rentdesk/internal/domains/campaign/repository"
	campaignService "rentdesk/internal/domains/campaign/service"
	contactRepository "rentdesk/internal/domains/contact/repository"
	contactService "rentdesk/internal/domains/contact/service"
	dashboardService "rentdesk/internal/domains/dashboard/service"
	externalCalendarRepository "rentdesk/internal/domains/externalcalendar/repository"
	externalCalendarService "rentdesk/internal/domains/externalcalendar/service"
	groupRepository "rentdesk/internal/domains/group/repository"
	groupService "rentdesk/internal/domains/group/service"
	groupConfigRepository "rentdesk/internal/domains/groupconfig/repository"
	groupConfigService "rentdesk/internal/domains/groupconfig/service"
	overrideRepository "rentdesk/internal/domains/override/repository"
	overrideService "rentdesk/internal/domains/override/service"
	reviewRepository "rentdesk/internal/domains/review/repository"
	reviewService "rentdesk/internal/domains/review/service"
	unitRepository "rentdesk/internal/domains/unit/repository"
	unitService "rentdesk/internal/domains/unit/service"

	bookingHandler "rentdesk/internal/handlers/booking"
	calendarHandler "rentdesk/internal/handlers/calendar"
	campaignHandler "rentdesk/internal/handlers/campaign"
	contactHandler "rentdesk/internal/handlers/contact"
	dashboardHandler "rentdesk/internal/handlers/dashboard"
	externalCalendarHandler "rentdesk/internal/handlers/externalcalendar"
	groupHandler "rentdesk/internal/handlers/group"
	groupConfigHandler "rentdesk/internal/handlers/groupconfig"
	overrideHandler "rentdesk/internal/handlers/override"
	reviewHandler "rentdesk/internal/handlers/review"
	unitHandler "rentdesk/internal/handlers/unit"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	ical.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	groupRepository.New,
	unitRepository.New,
	overrideRepository.New,
	contactRepository.New,
	bookingRepository.New,
	campaignRepository.New,
	externalCalendarRepository.New,
	reviewRepository.New,
	groupConfigRepository.NewAIConfig,
	groupConfigRepository.NewWebsiteConfig,
)

var domains = wire.NewSet(
	repositories,
	groupService.New,
	unitService.New,
	overrideService.New,
	contactService.New,
	bookingService.New,
	calendarService.New,
	dashboardService.New,
	campaignService.New,
	externalCalendarService.New,
	reviewService.New,
	groupConfigService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	groupHandler.New,
	unitHandler.New,
	overrideHandler.New,
	bookingHandler.New,
	contactHandler.New,
	calendarHandler.New,
	dashboardHandler.New,
	campaignHandler.New,
	externalCalendarHandler.New,
	reviewHandler.New,
	groupConfigHandler.New,
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

func InitializeApp() App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		events.NewListener,
		wire.Struct(new(App), "*"),
	)

	return App{}
}
