package api

import (
	"net/http"

	"github.com/skyhook-labs/talon/internal/config"
	"github.com/skyhook-labs/talon/internal/taxonomy"
	"github.com/skyhook-labs/talon/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	batches := newBatchHandler(runtime.Storage, runtime.Logger)

	routes.Register(
		mux,
		domain.Narratives.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Cases.Handler().Routes(),
		taxonomy.NewHandler(domain.Registry, runtime.Logger).Routes(),
		batches.routes(),
	)
}
