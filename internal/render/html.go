package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rohit196/Text-Analytics/internal/entities"
	"github.com/rohit196/Text-Analytics/internal/styles"
)

// HTMLRenderer emits a self-contained HTML document with inline CSS built
// from the StyleConfig. The same output feeds the PDF printer.
type HTMLRenderer struct {
	Style styles.StyleConfig
}

func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func (r *HTMLRenderer) Render(books []entities.Book) (string, error) {
	var builder strings.Builder

	builder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	builder.WriteString("<title>Book Highlights</title>\n")
	r.writeCSS(&builder)
	builder.WriteString("</head>\n<body>\n")

	if r.Style.DateStamp {
		fmt.Fprintf(&builder, "<p class=\"generated\">Generated %s</p>\n", time.Now().Format("2006-01-02"))
	}

	for _, book := range books {
		r.renderBook(&builder, book)
	}

	builder.WriteString("</body>\n</html>\n")
	return builder.String(), nil
}

func (r *HTMLRenderer) writeCSS(builder *strings.Builder) {
	s := r.Style
	fmt.Fprintf(builder, "<style>\n")
	fmt.Fprintf(builder, "h1 { font-family: %q, serif; font-size: %dpt; }\n", s.HeadingFont, s.HeadingSize)
	fmt.Fprintf(builder, "body { font-family: %q, serif; font-size: %dpt; }\n", s.BodyFont, s.BodySize)
	fmt.Fprintf(builder, "p { margin-bottom: %dpt; }\n", s.SpacingAfterParagraph)
	fmt.Fprintf(builder, "blockquote { margin-left: %.2fin; border-left: 2px solid #888; padding-left: 0.15in; }\n", s.QuoteIndentWidth)
	fmt.Fprintf(builder, ".author { font-style: italic; }\n")
	fmt.Fprintf(builder, ".note { font-size: %dpt; }\n", s.BodySize-1)
	fmt.Fprintf(builder, ".location { color: #666; font-size: %dpt; }\n", s.BodySize-2)
	fmt.Fprintf(builder, "</style>\n")
}

func (r *HTMLRenderer) renderBook(builder *strings.Builder, book entities.Book) {
	fmt.Fprintf(builder, "<h1>%s</h1>\n", html.EscapeString(book.Title))
	if book.Author != "" {
		fmt.Fprintf(builder, "<p class=\"author\">%s</p>\n", html.EscapeString(book.Author))
	}

	for _, highlight := range book.Highlights {
		fmt.Fprintf(builder, "<blockquote><p>%s</p></blockquote>\n", html.EscapeString(highlight.Text))
		if highlight.Note != "" {
			fmt.Fprintf(builder, "<p class=\"note\"><strong>Note:</strong> %s</p>\n", html.EscapeString(highlight.Note))
		}
		if label := locationLabel(highlight); label != "" {
			fmt.Fprintf(builder, "<p class=\"location\">— %s</p>\n", html.EscapeString(label))
		}
	}
}

// Compile-time interface check
var _ Renderer = (*HTMLRenderer)(nil)
