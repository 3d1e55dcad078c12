package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvClassifierMinNarrativeLength  = "TALON_CLASSIFIER_MIN_NARRATIVE_LENGTH"
	EnvClassifierConfidenceThreshold = "TALON_CLASSIFIER_CONFIDENCE_THRESHOLD"
	EnvClassifierMaxRetries          = "TALON_CLASSIFIER_MAX_RETRIES"
	EnvClassifierRetryBackoff        = "TALON_CLASSIFIER_RETRY_BACKOFF"
	EnvClassifierRequestTimeout      = "TALON_CLASSIFIER_REQUEST_TIMEOUT"
	EnvClassifierMaxConcurrent       = "TALON_CLASSIFIER_MAX_CONCURRENT"
	EnvClassifierTaxonomyPath        = "TALON_CLASSIFIER_TAXONOMY_PATH"
)

// ClassifierConfig holds narrative classification settings: input bounds,
// retry policy, provider concurrency, the review confidence threshold, and
// the optional taxonomy file plus the model agent definition.
type ClassifierConfig struct {
	MinNarrativeLength  int                  `toml:"min_narrative_length"`
	ConfidenceThreshold float64              `toml:"confidence_threshold"`
	MaxRetries          int                  `toml:"max_retries"`
	RetryBackoff        string               `toml:"retry_backoff"`
	RequestTimeout      string               `toml:"request_timeout"`
	MaxConcurrent       int                  `toml:"max_concurrent"`
	TaxonomyPath        string               `toml:"taxonomy_path"`
	Agent               gaconfig.AgentConfig `toml:"agent"`
}

// RetryBackoffDuration returns RetryBackoff as a time.Duration.
func (c *ClassifierConfig) RetryBackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryBackoff)
	return d
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *ClassifierConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation
// for the classifier config and its nested agent config.
func (c *ClassifierConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifierConfig) Merge(overlay *ClassifierConfig) {
	if overlay.MinNarrativeLength != 0 {
		c.MinNarrativeLength = overlay.MinNarrativeLength
	}
	if overlay.ConfidenceThreshold != 0 {
		c.ConfidenceThreshold = overlay.ConfidenceThreshold
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.RetryBackoff != "" {
		c.RetryBackoff = overlay.RetryBackoff
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.MaxConcurrent != 0 {
		c.MaxConcurrent = overlay.MaxConcurrent
	}
	if overlay.TaxonomyPath != "" {
		c.TaxonomyPath = overlay.TaxonomyPath
	}
	c.Agent.Merge(&overlay.Agent)
}

func (c *ClassifierConfig) loadDefaults() {
	if c.MinNarrativeLength == 0 {
		c.MinNarrativeLength = 20
	}
	if c.ConfidenceThreshold == 0 {
		c.ConfidenceThreshold = 0.5
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 2
	}
	if c.RetryBackoff == "" {
		c.RetryBackoff = "2s"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 4
	}
}

func (c *ClassifierConfig) loadEnv() {
	if v := os.Getenv(EnvClassifierMinNarrativeLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinNarrativeLength = n
		}
	}
	if v := os.Getenv(EnvClassifierConfidenceThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv(EnvClassifierMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvClassifierRetryBackoff); v != "" {
		c.RetryBackoff = v
	}
	if v := os.Getenv(EnvClassifierRequestTimeout); v != "" {
		c.RequestTimeout = v
	}
	if v := os.Getenv(EnvClassifierMaxConcurrent); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv(EnvClassifierTaxonomyPath); v != "" {
		c.TaxonomyPath = v
	}
}

func (c *ClassifierConfig) validate() error {
	if c.MinNarrativeLength < 1 {
		return fmt.Errorf("invalid min_narrative_length: %d", c.MinNarrativeLength)
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("invalid confidence_threshold: %.2f", c.ConfidenceThreshold)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid max_retries: %d", c.MaxRetries)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("invalid max_concurrent: %d", c.MaxConcurrent)
	}
	if _, err := time.ParseDuration(c.RetryBackoff); err != nil {
		return fmt.Errorf("invalid retry_backoff: %w", err)
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	return nil
}
