package api

import (
	"github.com/skyhook-labs/talon/internal/config"
	"github.com/skyhook-labs/talon/internal/infrastructure"
	"github.com/skyhook-labs/talon/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Classifier config.ClassifierConfig
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Agent:     cfg.Classifier.Agent,
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Classifier: cfg.Classifier,
		Pagination: cfg.API.Pagination,
	}
}
