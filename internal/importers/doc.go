// Package importers reads delimited highlight exports into the common
// domain model.
//
// # Architecture
//
// The conversion pipeline follows a simple flow:
//
//	CSV rows → HighlightRow → normalize → GroupHighlights → entities.Book → render → write
//
// ParseHighlightCSV handles the header aliasing that different highlight
// exporters use (title/book, highlight/text, location/page) and produces
// rows in file order. GroupHighlights partitions the normalized rows by
// book, keeping first-seen order of both books and highlights so the
// rendered document is deterministic for a given input.
//
// Rows whose required fields are all empty are skipped silently; rows
// missing only the highlight text or only the title are skipped with a
// per-line message so the batch summary can report them.
package importers
