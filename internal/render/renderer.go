// Package render turns ordered groups of highlights into a formatted
// document body, applying a StyleConfig.
package render

import (
	"fmt"
	"strings"

	"github.com/rohit196/Text-Analytics/internal/entities"
	"github.com/rohit196/Text-Analytics/internal/styles"
)

// Format selects the output document format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf" // HTML printed to PDF by the caller
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", name)
	}
}

// StyleError indicates the style configuration references an unavailable
// font or holds an unusable value. Fatal for the file's render step.
type StyleError struct {
	Field  string
	Reason string
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("style option %s: %s", e.Field, e.Reason)
}

// Renderer maps ordered books to a document body. Output is deterministic
// for identical (books, style) input unless the style requests a date stamp.
type Renderer interface {
	Render(books []entities.Book) (string, error)
	Extension() string
}

// Fonts the HTML/PDF templates can resolve without fetching anything.
var knownFonts = map[string]bool{
	"arial":           true,
	"book antiqua":    true,
	"calibri":         true,
	"cambria":         true,
	"courier new":     true,
	"garamond":        true,
	"georgia":         true,
	"helvetica":       true,
	"palatino":        true,
	"times new roman": true,
	"verdana":         true,
}

// New returns the renderer for a format, validating the style first.
// FormatPDF renders HTML; printing is the caller's concern.
func New(format Format, style styles.StyleConfig) (Renderer, error) {
	if err := validateStyle(style); err != nil {
		return nil, err
	}

	switch format {
	case FormatMarkdown:
		return &MarkdownRenderer{Style: style}, nil
	case FormatHTML, FormatPDF:
		return &HTMLRenderer{Style: style}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

func validateStyle(style styles.StyleConfig) error {
	if !knownFonts[strings.ToLower(style.HeadingFont)] {
		return &StyleError{Field: "heading_font", Reason: fmt.Sprintf("unavailable font %q", style.HeadingFont)}
	}
	if !knownFonts[strings.ToLower(style.BodyFont)] {
		return &StyleError{Field: "body_font", Reason: fmt.Sprintf("unavailable font %q", style.BodyFont)}
	}
	if style.HeadingSize <= 0 {
		return &StyleError{Field: "heading_size", Reason: "must be a positive point size"}
	}
	if style.BodySize <= 0 {
		return &StyleError{Field: "body_size", Reason: "must be a positive point size"}
	}
	if style.QuoteIndentWidth < 0 {
		return &StyleError{Field: "quote_indent_width", Reason: "must not be negative"}
	}
	if style.SpacingAfterParagraph < 0 {
		return &StyleError{Field: "spacing_after_paragraph", Reason: "must not be negative"}
	}
	return nil
}

func locationLabel(h entities.Highlight) string {
	switch h.LocationType {
	case entities.LocationTypePage:
		return fmt.Sprintf("page %s", h.Location)
	case entities.LocationTypeLocation:
		return fmt.Sprintf("location %s", h.Location)
	default:
		return ""
	}
}
