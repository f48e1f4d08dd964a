package handler

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter builds the chi router with the full middleware stack and all
// portal routes.
func NewRouter(h *Handler, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(AccessLog(logger))
	r.Use(CORS)

	r.Get("/health", h.Health)

	r.Post("/users", h.CreateUser)

	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.CreateEvent)
		r.Get("/", h.ListEvents)

		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", h.GetEvent)

			r.Post("/registrations", h.Register)
			r.Get("/registrations", h.ListRegistrations)

			r.Post("/divisions", h.CreateDivision)
			r.Get("/divisions", h.ListDivisions)

			r.Route("/divisions/{divisionID}", func(r chi.Router) {
				r.Delete("/", h.DeleteDivision)

				r.Get("/assignments", h.ListAssignments)
				r.Post("/assignments", h.CreateAssignment)
				r.Delete("/assignments", h.DeleteAssignment)
				r.Post("/assignments/promote", h.PromoteAssignment)
			})

			r.Post("/bag-designs", h.SubmitBagDesign)
			r.Get("/bag-designs", h.ListBagDesigns)
		})
	})

	r.Post("/bag-designs/{designID}/approve", h.ApproveBagDesign)

	return r
}
