package router

import (
	"rentdesk/internal/handlers/booking"
	"rentdesk/internal/handlers/calendar"
	"rentdesk/internal/handlers/campaign"
	"rentdesk/internal/handlers/contact"
	"rentdesk/internal/handlers/dashboard"
	"rentdesk/internal/handlers/externalcalendar"
	"rentdesk/internal/handlers/group"
	"rentdesk/internal/handlers/groupconfig"
	"rentdesk/internal/handlers/override"
	"rentdesk/internal/handlers/review"
	"rentdesk/internal/handlers/unit"
	"rentdesk/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Group     group.Handler
	Unit      unit.Handler
	Override  override.Handler
	Booking   booking.Handler
	Contact   contact.Handler
	Calendar  calendar.Handler
	Dashboard dashboard.Handler
	Campaign  campaign.Handler

	ExternalCalendar externalcalendar.Handler
	Review           review.Handler
	GroupConfig      groupconfig.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.Auth)

		r.DomainHandlers.Group.Router(routerGroup)
		r.DomainHandlers.Unit.Router(routerGroup)
		r.DomainHandlers.Override.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
		r.DomainHandlers.Campaign.Router(routerGroup)
		r.DomainHandlers.ExternalCalendar.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.GroupConfig.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
