package workflow

import (
	"log/slog"

	"github.com/skyhook-labs/talon/internal/classifier"
	"github.com/skyhook-labs/talon/internal/reasoning"
	"github.com/skyhook-labs/talon/internal/taxonomy"
)

// Runtime bundles the dependencies workflow nodes require. It is
// constructed by higher-level composition code from the domain systems.
type Runtime struct {
	Classifier *classifier.Classifier
	Provider   reasoning.Provider
	Registry   *taxonomy.Registry
	Threshold  float64
	Logger     *slog.Logger
}
