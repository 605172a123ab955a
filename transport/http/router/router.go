package router

import (
	"github.com/go-chi/chi/v5"

	"bookit/internal/handlers/booking"
	"bookit/internal/handlers/bookingrequest"
	"bookit/internal/handlers/category"
	"bookit/internal/handlers/room"
	"bookit/internal/handlers/roomstatus"
	"bookit/internal/handlers/sequence"
	"bookit/internal/handlers/variant"
	"bookit/transport/http/middleware"
)

type DomainHandlers struct {
	Category       category.Handler
	Room           room.Handler
	Variant        variant.Handler
	RoomStatus     roomstatus.Handler
	Booking        booking.Handler
	BookingRequest bookingrequest.Handler
	Sequence       sequence.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.AuthRole
}

// SetupRoutes mounts three trees: /v1/public for customers, /v1/internal for
// API key callers and /v1/stores/{storeID} for staff of that store.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(v1 chi.Router) {
		v1.Route("/public", func(public chi.Router) {
			public.Route("/stores/{storeID}", func(store chi.Router) {
				r.DomainHandlers.Category.PublicRouter(store)
				r.DomainHandlers.BookingRequest.IntakeRouter(store)
			})
			r.DomainHandlers.BookingRequest.PublicRouter(public)
		})

		v1.Route("/internal", func(internal chi.Router) {
			r.DomainHandlers.BookingRequest.InternalRouter(internal)
		})

		v1.Route("/stores/{storeID}", func(store chi.Router) {
			store.Use(r.Auth.Store)

			r.DomainHandlers.Category.Router(store)
			r.DomainHandlers.Room.Router(store)
			r.DomainHandlers.Variant.Router(store)
			r.DomainHandlers.RoomStatus.Router(store)
			r.DomainHandlers.Booking.Router(store)
			r.DomainHandlers.BookingRequest.Router(store)
			r.DomainHandlers.Sequence.Router(store)
		})
	})
}

func New(domainHandlers DomainHandlers, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
