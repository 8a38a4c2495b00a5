package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohit196/Text-Analytics/internal/importers"
	"github.com/rohit196/Text-Analytics/internal/render"
	"github.com/rohit196/Text-Analytics/internal/styles"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func defaultOptions(outputDir string) Options {
	return Options{
		OutputDir: outputDir,
		Style:     styles.Defaults(),
		Format:    render.FormatMarkdown,
	}
}

const validCSV = "Title,Author,Highlight\n" +
	"Book A,Author 1,First\n" +
	"Book B,Author 2,Second\n" +
	"Book A,Author 1,Third\n"

func TestRun_SingleFile(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, "highlights.csv", validCSV)
	outputDir := filepath.Join(dir, "out")

	summary := Run(context.Background(), []string{input}, defaultOptions(outputDir))

	require.True(t, summary.OK())
	require.Len(t, summary.Results, 1)
	result := summary.Results[0]
	assert.Equal(t, 2, result.Books)
	assert.Equal(t, 3, result.Highlights)
	assert.Equal(t, filepath.Join(outputDir, "highlights.md"), result.Output)
	assert.FileExists(t, result.Output)
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, "highlights.csv", validCSV)

	first := Run(context.Background(), []string{input}, defaultOptions(filepath.Join(dir, "a")))
	second := Run(context.Background(), []string{input}, defaultOptions(filepath.Join(dir, "b")))

	require.True(t, first.OK())
	require.True(t, second.OK())

	a, err := os.ReadFile(first.Results[0].Output)
	require.NoError(t, err)
	b, err := os.ReadFile(second.Results[0].Output)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_OneBadFileDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	good1 := writeCSV(t, dir, "one.csv", validCSV)
	bad := writeCSV(t, dir, "two.csv", "Author,Note\nSomeone,no highlights here\n")
	good2 := writeCSV(t, dir, "three.csv", validCSV)
	outputDir := filepath.Join(dir, "out")

	summary := Run(context.Background(), []string{good1, bad, good2}, defaultOptions(outputDir))

	assert.False(t, summary.OK())
	require.Len(t, summary.Results, 3)

	assert.NoError(t, summary.Results[0].Err)
	assert.FileExists(t, summary.Results[0].Output)
	assert.NoError(t, summary.Results[2].Err)
	assert.FileExists(t, summary.Results[2].Output)

	require.Error(t, summary.Results[1].Err)
	var schemaErr *importers.SchemaError
	assert.ErrorAs(t, summary.Results[1].Err, &schemaErr)
	assert.Equal(t, "SchemaError", ErrorClass(summary.Results[1].Err))

	failed := summary.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, bad, failed[0].Input)
}

func TestRun_ResultsKeepInputOrderWithWorkers(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, name := range []string{"a.csv", "b.csv", "c.csv", "d.csv", "e.csv"} {
		inputs = append(inputs, writeCSV(t, dir, name, validCSV))
	}

	opts := defaultOptions(filepath.Join(dir, "out"))
	opts.Workers = 4

	summary := Run(context.Background(), inputs, opts)

	require.True(t, summary.OK())
	require.Len(t, summary.Results, len(inputs))
	for i, input := range inputs {
		assert.Equal(t, input, summary.Results[i].Input)
	}
}

func TestRun_BrokenStyleFailsEveryFile(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, "highlights.csv", validCSV)

	opts := defaultOptions(filepath.Join(dir, "out"))
	opts.Style.HeadingFont = "No Such Font"

	summary := Run(context.Background(), []string{input}, opts)

	assert.False(t, summary.OK())
	assert.Equal(t, "StyleError", ErrorClass(summary.Results[0].Err))
	assert.NoFileExists(t, filepath.Join(dir, "out", "highlights.md"))
}

func TestRun_Combine(t *testing.T) {
	dir := t.TempDir()
	one := writeCSV(t, dir, "one.csv", "Title,Highlight\nBook A,First\n")
	two := writeCSV(t, dir, "two.csv", "Title,Highlight\nBook B,Second\n")
	outputDir := filepath.Join(dir, "out")

	opts := defaultOptions(outputDir)
	opts.Combine = true

	summary := Run(context.Background(), []string{one, two}, opts)

	require.True(t, summary.OK())
	combined := filepath.Join(outputDir, "combined.md")
	assert.Equal(t, combined, summary.Results[0].Output)
	assert.Equal(t, combined, summary.Results[1].Output)

	data, err := os.ReadFile(combined)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Book A")
	assert.Contains(t, string(data), "# Book B")
}

func TestRun_CombineWithOneBadFile(t *testing.T) {
	dir := t.TempDir()
	good := writeCSV(t, dir, "one.csv", "Title,Highlight\nBook A,First\n")
	bad := writeCSV(t, dir, "two.csv", "Nope\nx\n")
	outputDir := filepath.Join(dir, "out")

	opts := defaultOptions(outputDir)
	opts.Combine = true

	summary := Run(context.Background(), []string{good, bad}, opts)

	assert.False(t, summary.OK())
	assert.NoError(t, summary.Results[0].Err)
	assert.Error(t, summary.Results[1].Err)
	// The good file still contributed to the combined document
	data, err := os.ReadFile(filepath.Join(outputDir, "combined.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Book A")
}

func TestRun_PDFUsesInjectedPrinter(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, "highlights.csv", validCSV)
	outputDir := filepath.Join(dir, "out")

	opts := defaultOptions(outputDir)
	opts.Format = render.FormatPDF
	opts.PrintPDF = func(ctx context.Context, html string) ([]byte, error) {
		assert.Contains(t, html, "<h1>Book A</h1>")
		return []byte("%PDF-fake"), nil
	}

	summary := Run(context.Background(), []string{input}, opts)

	require.True(t, summary.OK())
	output := summary.Results[0].Output
	assert.Equal(t, ".pdf", filepath.Ext(output))
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
}

func TestRun_EmptyInputs(t *testing.T) {
	summary := Run(context.Background(), nil, defaultOptions(t.TempDir()))
	assert.True(t, summary.OK())
	assert.Empty(t, summary.Results)
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "b.csv", validCSV)
	writeCSV(t, dir, "a.csv", validCSV)

	t.Run("expands patterns sorted", func(t *testing.T) {
		inputs, err := ExpandGlobs([]string{filepath.Join(dir, "*.csv")})
		require.NoError(t, err)
		require.Len(t, inputs, 2)
		assert.Equal(t, filepath.Join(dir, "a.csv"), inputs[0])
	})

	t.Run("keeps plain paths as given", func(t *testing.T) {
		inputs, err := ExpandGlobs([]string{"plain.csv"})
		require.NoError(t, err)
		assert.Equal(t, []string{"plain.csv"}, inputs)
	})
}

func TestErrorClass_Unknown(t *testing.T) {
	assert.Equal(t, "Error", ErrorClass(assert.AnError))
}
