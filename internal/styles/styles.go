// Package styles loads the visual formatting options applied during
// rendering. Options come from an optional YAML file with STYLE_-prefixed
// environment overrides; a missing file means all defaults.
package styles

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// StyleConfig holds the recognized formatting options. All fields have
// documented defaults; omitting any of them is not an error.
type StyleConfig struct {
	HeadingFont           string
	HeadingSize           int // Points
	BodyFont              string
	BodySize              int     // Points
	QuoteIndentWidth      float64 // Inches
	SpacingAfterParagraph int     // Points

	// DateStamp embeds the generation date into the document header.
	// Off by default so identical input produces identical output.
	DateStamp bool
}

// Defaults returns the documented default style.
func Defaults() StyleConfig {
	return StyleConfig{
		HeadingFont:           "Georgia",
		HeadingSize:           16,
		BodyFont:              "Garamond",
		BodySize:              11,
		QuoteIndentWidth:      0.5,
		SpacingAfterParagraph: 6,
	}
}

// Load reads a style configuration file. An empty path or a missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (StyleConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("STYLE")
	v.AutomaticEnv()

	defaults := Defaults()
	v.SetDefault("heading_font", defaults.HeadingFont)
	v.SetDefault("heading_size", defaults.HeadingSize)
	v.SetDefault("body_font", defaults.BodyFont)
	v.SetDefault("body_size", defaults.BodySize)
	v.SetDefault("quote_indent_width", defaults.QuoteIndentWidth)
	v.SetDefault("spacing_after_paragraph", defaults.SpacingAfterParagraph)
	v.SetDefault("date_stamp", false)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return StyleConfig{}, fmt.Errorf("failed to read style config %s: %w", path, err)
			}
		}
	}

	return StyleConfig{
		HeadingFont:           v.GetString("heading_font"),
		HeadingSize:           v.GetInt("heading_size"),
		BodyFont:              v.GetString("body_font"),
		BodySize:              v.GetInt("body_size"),
		QuoteIndentWidth:      v.GetFloat64("quote_indent_width"),
		SpacingAfterParagraph: v.GetInt("spacing_after_paragraph"),
		DateStamp:             v.GetBool("date_stamp"),
	}, nil
}
