// internal/app/features/vision/handler.go
package vision

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/perceptai/perceptai/internal/app/system/httpjson"
	"github.com/perceptai/perceptai/internal/app/system/runner"
	"go.uber.org/zap"
)

// Handler exposes the vision demo runner over HTTP.
type Handler struct {
	Registry *runner.Registry
	Log      *zap.Logger
}

// NewHandler constructs a vision Handler around the process registry.
func NewHandler(registry *runner.Registry, logger *zap.Logger) *Handler {
	return &Handler{Registry: registry, Log: logger}
}

// Routes returns a subrouter serving the vision demo endpoints. It is
// mounted at the API root: /run/{projectName}, /stop/{projectName},
// /running.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/run/{projectName}", h.Run)
	r.Post("/stop/{projectName}", h.Stop)
	r.Get("/running", h.Running)

	return r
}

// Run handles POST /run/{projectName}: launches the project's demo script,
// replacing any instance already running under the same name.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "projectName")

	pid, err := h.Registry.Start(name)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("vision demo started", zap.String("project", name), zap.Int("pid", pid))
	httpjson.OK(w, map[string]any{
		"message": "project started",
		"project": name,
		"pid":     pid,
	})
}

// Stop handles POST /stop/{projectName}.
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "projectName")

	if err := h.Registry.Stop(name); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("vision demo stopped", zap.String("project", name))
	httpjson.Message(w, "project stopped")
}

// Running handles GET /running: the names of tracked demo processes.
func (h *Handler) Running(w http.ResponseWriter, r *http.Request) {
	httpjson.OK(w, map[string]any{"running": h.Registry.Running()})
}
