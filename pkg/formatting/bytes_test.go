package formatting_test

import (
	"testing"

	"github.com/skyhook-labs/talon/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"512", 512},
		{"1KB", 1024},
		{"50MB", 50 * 1024 * 1024},
		{"1.5GB", int64(1.5 * 1024 * 1024 * 1024)},
		{"2 TB", 2 * 1024 * 1024 * 1024 * 1024},
		{"10mb", 10 * 1024 * 1024},
		{" 4 KB ", 4 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if err != nil {
				t.Fatalf("ParseBytes(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBytesInvalid(t *testing.T) {
	tests := []string{"", "MB", "ten MB", "5XB", "--3KB"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := formatting.ParseBytes(input); err == nil {
				t.Errorf("ParseBytes(%q) should fail", input)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0 B"},
		{-10, "0 B"},
		{512, "512.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{50 * 1024 * 1024, "50.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.input); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
