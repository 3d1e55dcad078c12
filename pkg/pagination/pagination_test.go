package pagination_test

import (
	"net/url"
	"testing"

	"github.com/skyhook-labs/talon/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid request", pagination.PageRequest{Page: 3, PageSize: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(testConfig())
			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset = %d, want 50", got)
	}
}

func TestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "lost link")

	req := pagination.FromQuery(values, testConfig())

	if req.Page != 2 || req.PageSize != 10 {
		t.Errorf("req = %+v", req)
	}
	if req.Search == nil || *req.Search != "lost link" {
		t.Errorf("Search = %v, want lost link", req.Search)
	}
}

func TestFromQueryDefaults(t *testing.T) {
	req := pagination.FromQuery(url.Values{}, testConfig())

	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("req = %+v, want normalized defaults", req)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact pages", 100, 20, 5},
		{"partial last page", 101, 20, 6},
		{"empty", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]int{1, 2, 3}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestNewPageResultNilData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("Data should be an empty slice, not nil")
	}
}

func TestConfigFinalize(t *testing.T) {
	var cfg pagination.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_PAGINATION_DEFAULT", "30")
	t.Setenv("TEST_PAGINATION_MAX", "60")

	var cfg pagination.Config
	err := cfg.Finalize(&pagination.ConfigEnv{
		DefaultPageSize: "TEST_PAGINATION_DEFAULT",
		MaxPageSize:     "TEST_PAGINATION_MAX",
	})
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.DefaultPageSize != 30 || cfg.MaxPageSize != 60 {
		t.Errorf("cfg = %+v, want env overrides", cfg)
	}
}

func TestConfigFinalizeInvalid(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize should reject default above max")
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	cfg.Merge(&pagination.Config{MaxPageSize: 50})

	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, zero overlay should not overwrite", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 50 {
		t.Errorf("MaxPageSize = %d, want 50", cfg.MaxPageSize)
	}
}
