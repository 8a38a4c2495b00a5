package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rohit196/Text-Analytics/internal/entities"
)

// HighlightRow represents a single data row from a highlight CSV export.
type HighlightRow struct {
	Title        string
	Author       string
	Text         string
	Note         string
	Location     string
	LocationType entities.LocationType
}

// SchemaError indicates the CSV header is missing a required column.
// It is fatal for the file it occurred in.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// Column aliases accepted in the header, matched case-insensitively.
// Different exporters name the same fields differently.
var (
	titleAliases     = []string{"title", "book", "book title"}
	authorAliases    = []string{"author", "book author"}
	highlightAliases = []string{"highlight", "text", "highlighted text"}
	noteAliases      = []string{"note"}
	locationAliases  = []string{"location"}
	pageAliases      = []string{"page"}
)

// ParseHighlightCSV parses a delimited highlight export with a header row.
// Returns the parsed rows, per-line skip messages, and a fatal error if the
// header is unreadable or a required column is absent.
func ParseHighlightCSV(r io.Reader) ([]HighlightRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Read header row
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Build header index map
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	titleIdx, ok := resolveColumn(headerIndex, titleAliases)
	if !ok {
		return nil, nil, &SchemaError{Column: "title"}
	}
	textIdx, ok := resolveColumn(headerIndex, highlightAliases)
	if !ok {
		return nil, nil, &SchemaError{Column: "highlight"}
	}

	// Optional columns
	authorIdx, _ := resolveColumn(headerIndex, authorAliases)
	noteIdx, _ := resolveColumn(headerIndex, noteAliases)
	locationIdx, hasLocation := resolveColumn(headerIndex, locationAliases)
	pageIdx, hasPage := resolveColumn(headerIndex, pageAliases)

	var rows []HighlightRow
	var skipped []string
	lineNum := 1 // Start at 1 because we already read the header

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}

		row := HighlightRow{
			Title:        getColumn(record, titleIdx),
			Author:       getColumn(record, authorIdx),
			Text:         getColumn(record, textIdx),
			Note:         getColumn(record, noteIdx),
			LocationType: entities.LocationTypeNone,
		}

		if hasLocation {
			if loc := getColumn(record, locationIdx); loc != "" {
				row.Location = loc
				row.LocationType = entities.LocationTypeLocation
			}
		}
		if row.Location == "" && hasPage {
			if page := getColumn(record, pageIdx); page != "" {
				row.Location = page
				row.LocationType = entities.LocationTypePage
			}
		}

		// Rows with all required fields empty are silently skipped
		if row.Title == "" && row.Text == "" {
			continue
		}

		// Skip rows without highlight text or book title
		if row.Text == "" || row.Title == "" {
			skipped = append(skipped, fmt.Sprintf("Line %d: skipped - missing highlight or book title", lineNum))
			continue
		}

		rows = append(rows, row)
	}

	return rows, skipped, nil
}

func resolveColumn(headerIndex map[string]int, aliases []string) (int, bool) {
	for _, alias := range aliases {
		if idx, ok := headerIndex[alias]; ok {
			return idx, true
		}
	}
	return -1, false
}

func getColumn(record []string, idx int) string {
	if idx >= 0 && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
