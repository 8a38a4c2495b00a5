package utils

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name unchanged", "My Highlights", "My Highlights"},
		{"strips invalid characters", `What? A "Title": Part 1/2`, "What A Title Part 12"},
		{"replaces tabs and newlines", "line one\nline\ttwo", "line one line two"},
		{"collapses runs of spaces", "too    many   spaces", "too many spaces"},
		{"trims surrounding whitespace", "  padded  ", "padded"},
		{"empty becomes Untitled", "", "Untitled"},
		{"only invalid chars becomes Untitled", `<>:"/\|?*`, "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_LimitsLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := SanitizeFilename(long)
	assert.LessOrEqual(t, len(got), 200)
	assert.NotEmpty(t, got)
}

func TestOutputName(t *testing.T) {
	t.Run("swaps extension and directory", func(t *testing.T) {
		got := OutputName("/data/exports/highlights.csv", "/out", ".md")
		assert.Equal(t, filepath.Join("/out", "highlights.md"), got)
	})

	t.Run("bare name gets the extension", func(t *testing.T) {
		got := OutputName("combined", "/out", ".html")
		assert.Equal(t, filepath.Join("/out", "combined.html"), got)
	})

	t.Run("sanitizes the base name", func(t *testing.T) {
		got := OutputName("/data/my: export?.csv", "/out", ".md")
		assert.Equal(t, filepath.Join("/out", "my export.md"), got)
	})
}
