package config_test

import (
	"testing"

	"github.com/skyhook-labs/talon/internal/config"
)

func TestAPIFinalizeDefaults(t *testing.T) {
	var cfg config.APIConfig

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.BasePath != "/api" {
		t.Errorf("base_path = %s, want /api", cfg.BasePath)
	}
	if cfg.MaxUploadSize != "50MB" {
		t.Errorf("max_upload_size = %s, want 50MB", cfg.MaxUploadSize)
	}
	if cfg.Pagination.DefaultPageSize != 20 || cfg.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination = %+v, want defaults", cfg.Pagination)
	}
}

func TestAPIFinalizeEnv(t *testing.T) {
	t.Setenv("TALON_API_BASE_PATH", "/v1")
	t.Setenv("TALON_API_MAX_UPLOAD_SIZE", "10MB")
	t.Setenv("TALON_PAGINATION_MAX_PAGE_SIZE", "50")

	var cfg config.APIConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.BasePath != "/v1" {
		t.Errorf("base_path = %s, want /v1", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 10*1024*1024 {
		t.Errorf("max upload = %d, want 10MB", cfg.MaxUploadSizeBytes())
	}
	if cfg.Pagination.MaxPageSize != 50 {
		t.Errorf("max_page_size = %d, want 50", cfg.Pagination.MaxPageSize)
	}
}

func TestAPIMaxUploadSizeBytesFallback(t *testing.T) {
	cfg := config.APIConfig{MaxUploadSize: "a lot"}

	if got := cfg.MaxUploadSizeBytes(); got != 50*1024*1024 {
		t.Errorf("MaxUploadSizeBytes = %d, want 50MB fallback", got)
	}
}

func TestAPIMerge(t *testing.T) {
	cfg := config.APIConfig{BasePath: "/api", MaxUploadSize: "50MB"}
	cfg.Merge(&config.APIConfig{MaxUploadSize: "25MB"})

	if cfg.BasePath != "/api" {
		t.Errorf("base_path = %s, zero overlay should not overwrite", cfg.BasePath)
	}
	if cfg.MaxUploadSize != "25MB" {
		t.Errorf("max_upload_size = %s, want 25MB", cfg.MaxUploadSize)
	}
}
