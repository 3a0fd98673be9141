// internal/app/features/collab/routes.go
package collab

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter serving the collaboration posting endpoints.
// It is mounted under /api/collaborations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/open", h.ListOpen)
	r.Get("/category/{category}", h.ListByCategory)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/apply", h.Apply)
	r.Put("/{id}/applications/{applicationID}", h.SetApplicationStatus)

	return r
}
