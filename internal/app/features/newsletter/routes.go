// internal/app/features/newsletter/routes.go
package newsletter

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter serving the newsletter endpoints.
// It is mounted under /api/newsletter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/subscribe", h.Subscribe)
	r.Post("/unsubscribe", h.Unsubscribe)
	r.Get("/emails", h.ListEmails)
	r.Get("/stats", h.Stats)
	r.Post("/send", h.Send)
	r.Put("/preferences/{email}", h.UpdatePreferences)
	r.Delete("/subscriber/{email}", h.DeleteSubscriber)

	return r
}
