// Package normalize canonicalizes the text fields of imported highlight
// rows: whitespace collapsing, smart-quote and dash folding, and field
// length capping.
package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rohit196/Text-Analytics/internal/importers"
)

// Mode selects the canonical form for quotation marks and dashes.
type Mode string

const (
	// ModeASCII folds all quote and dash variants to plain ASCII.
	ModeASCII Mode = "ascii"
	// ModeUnicode keeps curly quotes and en/em dashes, folding only
	// the exotic variants onto them.
	ModeUnicode Mode = "unicode"
)

// DefaultMaxFieldLength caps a single field after normalization.
const DefaultMaxFieldLength = 10_000

// EncodingError indicates a field contains invalid UTF-8.
// It is fatal for the file it occurred in.
type EncodingError struct {
	Field string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("field %q is not valid UTF-8", e.Field)
}

// TruncationWarning records a field that exceeded the configured maximum
// length and was cut. Non-fatal; collected and reported in the summary.
type TruncationWarning struct {
	Field string
	Limit int
}

func (w TruncationWarning) String() string {
	return fmt.Sprintf("field %q exceeded %d characters and was truncated", w.Field, w.Limit)
}

var asciiFold = map[rune]string{
	'‘': "'", '’': "'", '‚': "'", '‛': "'",
	'“': `"`, '”': `"`, '„': `"`, '‟': `"`,
	'«': `"`, '»': `"`,
	'–': "-", '—': "-", '―': "-", '‒': "-",
	'…': "...",
}

var unicodeFold = map[rune]string{
	'‚': "‘", '‛': "‘",
	'„': "“", '‟': "”",
	'―': "—", '‒': "–",
}

// Normalizer is a pure transform over highlight rows. The zero value is
// not usable; construct with New.
type Normalizer struct {
	mode   Mode
	maxLen int
}

func New(mode Mode, maxFieldLength int) *Normalizer {
	if mode != ModeASCII {
		mode = ModeUnicode
	}
	if maxFieldLength <= 0 {
		maxFieldLength = DefaultMaxFieldLength
	}
	return &Normalizer{mode: mode, maxLen: maxFieldLength}
}

// Row returns the canonical form of a single row. Idempotent: normalizing
// an already-normalized row yields an identical row.
func (n *Normalizer) Row(row importers.HighlightRow) (importers.HighlightRow, []TruncationWarning, error) {
	var warnings []TruncationWarning

	fields := []struct {
		name  string
		value *string
	}{
		{"title", &row.Title},
		{"author", &row.Author},
		{"highlight", &row.Text},
		{"note", &row.Note},
		{"location", &row.Location},
	}

	for _, f := range fields {
		if !utf8.ValidString(*f.value) {
			return importers.HighlightRow{}, nil, &EncodingError{Field: f.name}
		}
		cleaned, truncated := n.field(*f.value)
		if truncated {
			warnings = append(warnings, TruncationWarning{Field: f.name, Limit: n.maxLen})
		}
		*f.value = cleaned
	}

	return row, warnings, nil
}

// Rows normalizes a sequence of rows, preserving order.
func (n *Normalizer) Rows(rows []importers.HighlightRow) ([]importers.HighlightRow, []TruncationWarning, error) {
	out := make([]importers.HighlightRow, 0, len(rows))
	var warnings []TruncationWarning

	for i, row := range rows {
		normalized, rowWarnings, err := n.Row(row)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		warnings = append(warnings, rowWarnings...)
		out = append(out, normalized)
	}

	return out, warnings, nil
}

// field trims, collapses whitespace runs, folds quote/dash variants and
// truncates at the configured rune limit.
func (n *Normalizer) field(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	fold := unicodeFold
	if n.mode == ModeASCII {
		fold = asciiFold
	}

	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		// unicode.IsSpace covers non-breaking spaces too
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		if repl, ok := fold[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimSpace(b.String())

	truncated := false
	if utf8.RuneCountInString(out) > n.maxLen {
		runes := []rune(out)
		out = strings.TrimSpace(string(runes[:n.maxLen]))
		truncated = true
	}

	return out, truncated
}
