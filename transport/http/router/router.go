package router

import (
	"github.com/go-chi/chi/v5"

	"rental/internal/handlers/admin"
	"rental/internal/handlers/auth"
	"rental/internal/handlers/booking"
	"rental/internal/handlers/payment"
	"rental/internal/handlers/review"
	"rental/internal/handlers/user"
	"rental/internal/handlers/vehicle"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Vehicle vehicle.Handler
	Booking booking.Handler
	Payment payment.Handler
	Review  review.Handler
	Admin   admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Vehicle.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
