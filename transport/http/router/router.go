package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"carshare/internal/handlers/booking"
	"carshare/internal/handlers/notification"
	"carshare/internal/handlers/reservation"
	"carshare/internal/handlers/resource"
	"carshare/transport/http/middleware"
	"carshare/transport/http/response"
)

type DomainHandlers struct {
	Booking      booking.Handler
	Resource     resource.Handler
	Reservation  reservation.Handler
	Notification notification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.Auth
}

// SetupRoutes mounts /health unauthenticated and every domain route under /v1 behind Auth.
// The probe fails once ready reports false.
func (r *Router) SetupRoutes(router chi.Router, ready func() bool) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.App.CORS())
	router.Use(r.App.Tracing)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if !ready() {
			response.WithPreparingShutdown(w)

			return
		}

		response.WithHealthy(w)
	})

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.Auth.Auth)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Resource.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
	}
}
