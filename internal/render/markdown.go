package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/rohit196/Text-Analytics/internal/entities"
	"github.com/rohit196/Text-Analytics/internal/styles"
)

// MarkdownRenderer emits one heading section per book, with every
// highlight as a quote block. Font options do not apply to markdown;
// they are validated anyway so a bad style file fails the same way
// regardless of format.
type MarkdownRenderer struct {
	Style styles.StyleConfig
}

func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func (r *MarkdownRenderer) Render(books []entities.Book) (string, error) {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: book_highlights\n")
	if r.Style.DateStamp {
		fmt.Fprintf(&builder, "created_at: %s\n", time.Now().Format("2006-01-02"))
	}
	fmt.Fprintf(&builder, "books: %d\n", len(books))
	fmt.Fprintf(&builder, "highlights: %d\n", entities.HighlightCount(books))
	fmt.Fprintf(&builder, "---\n\n")

	for _, book := range books {
		r.renderBook(&builder, book)
	}

	return builder.String(), nil
}

func (r *MarkdownRenderer) renderBook(builder *strings.Builder, book entities.Book) {
	fmt.Fprintf(builder, "# %s\n\n", book.Title)
	if book.Author != "" {
		fmt.Fprintf(builder, "*%s*\n\n", book.Author)
	}

	for _, highlight := range book.Highlights {
		fmt.Fprintf(builder, "> %s\n\n", strings.ReplaceAll(highlight.Text, "\n", "\n> "))
		if highlight.Note != "" {
			fmt.Fprintf(builder, "**Note:** %s\n\n", highlight.Note)
		}
		if label := locationLabel(highlight); label != "" {
			fmt.Fprintf(builder, "— %s\n\n", label)
		}
	}
}

// Compile-time interface check
var _ Renderer = (*MarkdownRenderer)(nil)
