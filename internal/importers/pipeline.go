package importers

import (
	"strings"

	"github.com/rohit196/Text-Analytics/internal/entities"
)

// GroupKey returns the canonical grouping key for a row's book.
// Titles differing only in case or internal whitespace merge under
// the same key; the first occurrence decides the displayed title.
func (r HighlightRow) GroupKey() string {
	return strings.Join(strings.Fields(strings.ToLower(r.Title)), " ")
}

// GroupHighlights partitions rows by source book, preserving first-seen
// order of books and of highlights within each book.
func GroupHighlights(rows []HighlightRow, sourceFile string) []entities.Book {
	bookMap := make(map[string]*entities.Book)
	var order []string

	for _, row := range rows {
		key := row.GroupKey()

		book, exists := bookMap[key]
		if !exists {
			book = &entities.Book{
				Title:      row.Title,
				Author:     row.Author,
				SourceFile: sourceFile,
			}
			bookMap[key] = book
			order = append(order, key)
		}
		// First row with an author wins for books whose early rows omit it
		if book.Author == "" && row.Author != "" {
			book.Author = row.Author
		}

		book.Highlights = append(book.Highlights, entities.Highlight{
			Text:         row.Text,
			Note:         row.Note,
			LocationType: row.LocationType,
			Location:     row.Location,
		})
	}

	books := make([]entities.Book, 0, len(order))
	for _, key := range order {
		books = append(books, *bookMap[key])
	}

	return books
}
