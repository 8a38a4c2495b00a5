package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("missing file yields defaults, not an error", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "style.yaml")
		content := "heading_font: Palatino\nheading_size: 20\nquote_indent_width: 0.75\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "Palatino", cfg.HeadingFont)
		assert.Equal(t, 20, cfg.HeadingSize)
		assert.Equal(t, 0.75, cfg.QuoteIndentWidth)
		// Untouched options keep their defaults
		assert.Equal(t, Defaults().BodyFont, cfg.BodyFont)
		assert.Equal(t, Defaults().SpacingAfterParagraph, cfg.SpacingAfterParagraph)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "style.yaml")
		require.NoError(t, os.WriteFile(path, []byte("heading_font: [unclosed"), 0644))

		_, err := Load(path)

		assert.Error(t, err)
	})
}
