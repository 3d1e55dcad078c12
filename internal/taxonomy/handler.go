package taxonomy

import (
	"log/slog"
	"net/http"

	"github.com/skyhook-labs/talon/pkg/handlers"
	"github.com/skyhook-labs/talon/pkg/routes"
)

// Handler provides read-only HTTP endpoints for the category registry.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

// NewHandler creates a Handler for the given registry.
func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.With("handler", "taxonomy"),
	}
}

// Routes returns the route group definition for taxonomy endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/taxonomy",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/levels", Handler: h.Levels},
			{Method: "GET", Pattern: "/{code}", Handler: h.Find},
		},
	}
}

// List returns every registered category in registry order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"categories": h.registry.All(),
		"exclusions": h.registry.Exclusions(),
	})
}

// Find returns a single category by its code path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	c, err := h.registry.Get(r.PathValue("code"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

type levelInfo struct {
	Level      Level      `json:"level"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// Levels returns the four hierarchy tiers with their categories.
func (h *Handler) Levels(w http.ResponseWriter, r *http.Request) {
	out := make([]levelInfo, 0, 4)
	for _, l := range Levels() {
		out = append(out, levelInfo{
			Level:      l,
			Name:       l.String(),
			Categories: h.registry.ByLevel(l),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, out)
}
