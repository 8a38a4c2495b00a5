package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohit196/Text-Analytics/internal/entities"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func sampleBooks() []entities.Book {
	return []entities.Book{
		{
			Title:      "Thinking in Systems",
			Author:     "Donella Meadows",
			SourceFile: "systems.csv",
			Highlights: []entities.Highlight{
				{Text: "A system is more than the sum of its parts", LocationType: entities.LocationTypePage, Location: "12"},
				{Text: "Purposes are deduced from behavior", LocationType: entities.LocationTypePage, Location: "14"},
			},
		},
		{
			Title:      "The Pragmatic Programmer",
			Author:     "Hunt and Thomas",
			SourceFile: "pragmatic.csv",
			Highlights: []entities.Highlight{
				{Text: "Don't live with broken windows"},
			},
		},
	}
}

func TestSaveBooks(t *testing.T) {
	lib := openTestLibrary(t)

	created, skipped, err := lib.SaveBooks(sampleBooks())
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, 0, skipped)
}

func TestSaveBooks_ReimportIsNoOp(t *testing.T) {
	lib := openTestLibrary(t)

	_, _, err := lib.SaveBooks(sampleBooks())
	require.NoError(t, err)

	created, skipped, err := lib.SaveBooks(sampleBooks())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 3, skipped)

	books, err := lib.Books()
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestSaveBooks_NewHighlightForExistingBook(t *testing.T) {
	lib := openTestLibrary(t)

	_, _, err := lib.SaveBooks(sampleBooks())
	require.NoError(t, err)

	update := []entities.Book{{
		Title:  "Thinking in Systems",
		Author: "Donella Meadows",
		Highlights: []entities.Highlight{
			{Text: "A system is more than the sum of its parts", LocationType: entities.LocationTypePage, Location: "12"},
			{Text: "Stocks change slowly", LocationType: entities.LocationTypePage, Location: "23"},
		},
	}}

	created, skipped, err := lib.SaveBooks(update)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, skipped)

	books, err := lib.Books()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Len(t, books[0].Highlights, 3)
}

func TestBooks_InsertionOrder(t *testing.T) {
	lib := openTestLibrary(t)

	_, _, err := lib.SaveBooks(sampleBooks())
	require.NoError(t, err)

	books, err := lib.Books()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Thinking in Systems", books[0].Title)
	assert.Equal(t, "The Pragmatic Programmer", books[1].Title)

	require.Len(t, books[0].Highlights, 2)
	assert.Equal(t, "A system is more than the sum of its parts", books[0].Highlights[0].Text)
	assert.Equal(t, "12", books[0].Highlights[0].Location)
}

func TestBooks_Empty(t *testing.T) {
	lib := openTestLibrary(t)

	books, err := lib.Books()
	require.NoError(t, err)
	assert.Empty(t, books)
}
