// internal/app/features/resources/routes.go
package resources

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter serving the learning resource endpoints.
// It is mounted under /api/resources.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/featured", h.ListFeatured)
	r.Get("/category/{category}", h.ListByCategory)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/review", h.AddReview)

	return r
}
