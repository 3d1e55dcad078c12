package config_test

import (
	"testing"
	"time"

	"github.com/skyhook-labs/talon/internal/config"
)

func TestClassifierFinalizeDefaults(t *testing.T) {
	var cfg config.ClassifierConfig

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.MinNarrativeLength != 20 {
		t.Errorf("min_narrative_length = %d, want 20", cfg.MinNarrativeLength)
	}
	if cfg.ConfidenceThreshold != 0.5 {
		t.Errorf("confidence_threshold = %.2f, want 0.5", cfg.ConfidenceThreshold)
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("max_retries = %d, want 2", cfg.MaxRetries)
	}
	if cfg.MaxConcurrent != 4 {
		t.Errorf("max_concurrent = %d, want 4", cfg.MaxConcurrent)
	}
	if cfg.RetryBackoffDuration() != 2*time.Second {
		t.Errorf("retry_backoff = %v, want 2s", cfg.RetryBackoffDuration())
	}
	if cfg.RequestTimeoutDuration() != 30*time.Second {
		t.Errorf("request_timeout = %v, want 30s", cfg.RequestTimeoutDuration())
	}
	if cfg.Agent.Provider == nil || cfg.Agent.Provider.Name == "" {
		t.Error("agent provider should pick up go-agents defaults")
	}
}

func TestClassifierFinalizeEnv(t *testing.T) {
	t.Setenv(config.EnvClassifierMinNarrativeLength, "40")
	t.Setenv(config.EnvClassifierConfidenceThreshold, "0.7")
	t.Setenv(config.EnvClassifierRetryBackoff, "500ms")
	t.Setenv(config.EnvClassifierTaxonomyPath, "/etc/talon/taxonomy.toml")
	t.Setenv(config.EnvAgentModelName, "llama3.2")

	var cfg config.ClassifierConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.MinNarrativeLength != 40 {
		t.Errorf("min_narrative_length = %d, want 40", cfg.MinNarrativeLength)
	}
	if cfg.ConfidenceThreshold != 0.7 {
		t.Errorf("confidence_threshold = %.2f, want 0.7", cfg.ConfidenceThreshold)
	}
	if cfg.RetryBackoffDuration() != 500*time.Millisecond {
		t.Errorf("retry_backoff = %v, want 500ms", cfg.RetryBackoffDuration())
	}
	if cfg.TaxonomyPath != "/etc/talon/taxonomy.toml" {
		t.Errorf("taxonomy_path = %s", cfg.TaxonomyPath)
	}
	if cfg.Agent.Model == nil || cfg.Agent.Model.Name != "llama3.2" {
		t.Error("agent model name should come from environment")
	}
}

func TestClassifierFinalizeValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ClassifierConfig
	}{
		{"negative min length", config.ClassifierConfig{MinNarrativeLength: -5}},
		{"threshold above one", config.ClassifierConfig{ConfidenceThreshold: 1.5}},
		{"negative retries", config.ClassifierConfig{MaxRetries: -1}},
		{"negative concurrency", config.ClassifierConfig{MaxConcurrent: -2}},
		{"bad backoff", config.ClassifierConfig{RetryBackoff: "whenever"}},
		{"bad timeout", config.ClassifierConfig{RequestTimeout: "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize should fail validation")
			}
		})
	}
}

func TestClassifierMerge(t *testing.T) {
	cfg := config.ClassifierConfig{
		MinNarrativeLength:  20,
		ConfidenceThreshold: 0.5,
		RetryBackoff:        "2s",
	}

	cfg.Merge(&config.ClassifierConfig{
		ConfidenceThreshold: 0.8,
		TaxonomyPath:        "custom.toml",
	})

	if cfg.ConfidenceThreshold != 0.8 {
		t.Errorf("confidence_threshold = %.2f, want 0.8", cfg.ConfidenceThreshold)
	}
	if cfg.TaxonomyPath != "custom.toml" {
		t.Errorf("taxonomy_path = %s, want custom.toml", cfg.TaxonomyPath)
	}
	if cfg.MinNarrativeLength != 20 || cfg.RetryBackoff != "2s" {
		t.Errorf("cfg = %+v, zero overlay fields should not overwrite", cfg)
	}
}
