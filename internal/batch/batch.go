// Package batch runs the conversion pipeline over a list of input files:
// load, normalize, group, render, write. One file's failure never aborts
// the batch; outcomes are collected in input-list order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rohit196/Text-Analytics/internal/entities"
	"github.com/rohit196/Text-Analytics/internal/importers"
	"github.com/rohit196/Text-Analytics/internal/library"
	"github.com/rohit196/Text-Analytics/internal/normalize"
	"github.com/rohit196/Text-Analytics/internal/render"
	"github.com/rohit196/Text-Analytics/internal/styles"
	"github.com/rohit196/Text-Analytics/internal/utils"
	"github.com/rohit196/Text-Analytics/internal/writer"
)

// Options holds everything a conversion run needs. The style config is
// read-only and safely shared across workers.
type Options struct {
	OutputDir      string
	Style          styles.StyleConfig
	Format         render.Format
	Combine        bool
	CombineName    string
	Workers        int
	QuoteMode      normalize.Mode
	MaxFieldLength int
	Library        *library.Library
	Verbose        bool

	// PrintPDF converts rendered HTML to PDF bytes. Required when Format
	// is FormatPDF; injected so tests run without a browser.
	PrintPDF func(ctx context.Context, html string) ([]byte, error)
}

// FileResult is the outcome for a single input file.
type FileResult struct {
	Input      string
	Output     string
	Books      int
	Highlights int
	Skipped    []string
	Warnings   []normalize.TruncationWarning
	Err        error
}

// Summary aggregates per-file outcomes in input-list order.
type Summary struct {
	Results []FileResult
}

// OK reports whether every file succeeded.
func (s Summary) OK() bool {
	for _, r := range s.Results {
		if r.Err != nil {
			return false
		}
	}
	return true
}

// Failed returns the results that ended in an error.
func (s Summary) Failed() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Report writes the human-readable batch summary.
func (s Summary) Report(w io.Writer) {
	for _, r := range s.Results {
		if r.Err != nil {
			fmt.Fprintf(w, "❌ %s: %s: %v\n", r.Input, ErrorClass(r.Err), r.Err)
			continue
		}
		fmt.Fprintf(w, "✅ %s → %s (%d books, %d highlights)\n", r.Input, r.Output, r.Books, r.Highlights)
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "   ⚠️  %s\n", warning)
		}
	}

	if failed := s.Failed(); len(failed) > 0 {
		fmt.Fprintf(w, "\n%d of %d files failed\n", len(failed), len(s.Results))
	}
}

// ErrorClass names the error category for the summary.
func ErrorClass(err error) string {
	var schemaErr *importers.SchemaError
	var encodingErr *normalize.EncodingError
	var styleErr *render.StyleError
	var ioFault *writer.IOFault

	switch {
	case errors.As(err, &schemaErr):
		return "SchemaError"
	case errors.As(err, &encodingErr):
		return "EncodingError"
	case errors.As(err, &styleErr):
		return "StyleError"
	case errors.As(err, &ioFault):
		return "IOFault"
	default:
		return "Error"
	}
}

// ExpandGlobs resolves glob patterns among the input arguments, keeping
// plain paths as-is. Matches within one pattern come out sorted; the
// argument order is preserved otherwise.
func ExpandGlobs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if !hasGlobMeta(arg) {
			inputs = append(inputs, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		sort.Strings(matches)
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}

func hasGlobMeta(path string) bool {
	for _, c := range path {
		if c == '*' || c == '?' || c == '[' {
			return true
		}
	}
	return false
}

// Run converts every input file and returns the aggregated summary.
func Run(ctx context.Context, inputs []string, opts Options) Summary {
	summary := Summary{Results: make([]FileResult, len(inputs))}
	if len(inputs) == 0 {
		return summary
	}

	renderer, err := render.New(opts.Format, opts.Style)
	if err != nil {
		// A broken shared style fails every file the same way
		for i, input := range inputs {
			summary.Results[i] = FileResult{Input: input, Err: err}
		}
		return summary
	}

	if opts.Combine {
		runCombined(ctx, inputs, renderer, opts, &summary)
		return summary
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				summary.Results[i] = convertFile(ctx, inputs[i], renderer, opts)
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return summary
}

// convertFile runs the full pipeline for one input file.
func convertFile(ctx context.Context, input string, renderer render.Renderer, opts Options) FileResult {
	result := FileResult{Input: input}

	books, skipped, warnings, err := loadFile(input, opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.Skipped = skipped
	result.Warnings = warnings
	result.Books = len(books)
	result.Highlights = entities.HighlightCount(books)

	if opts.Library != nil {
		if _, _, err := opts.Library.SaveBooks(books); err != nil {
			result.Err = fmt.Errorf("failed to save to library: %w", err)
			return result
		}
	}

	data, err := renderDocument(ctx, renderer, books, opts)
	if err != nil {
		result.Err = err
		return result
	}

	outputPath := utils.OutputName(input, opts.OutputDir, outputExtension(renderer, opts.Format))
	if err := writer.Atomic(outputPath, data); err != nil {
		result.Err = err
		return result
	}
	result.Output = outputPath

	return result
}

// runCombined renders a single document for the whole batch. Files are
// loaded in input order; a file that fails to load is reported but the
// remaining files still contribute to the combined document.
func runCombined(ctx context.Context, inputs []string, renderer render.Renderer, opts Options, summary *Summary) {
	var combined []entities.Book

	for i, input := range inputs {
		result := FileResult{Input: input}

		books, skipped, warnings, err := loadFile(input, opts)
		if err != nil {
			result.Err = err
			summary.Results[i] = result
			continue
		}
		result.Skipped = skipped
		result.Warnings = warnings
		result.Books = len(books)
		result.Highlights = entities.HighlightCount(books)

		if opts.Library != nil {
			if _, _, err := opts.Library.SaveBooks(books); err != nil {
				result.Err = fmt.Errorf("failed to save to library: %w", err)
				summary.Results[i] = result
				continue
			}
		}

		combined = append(combined, books...)
		summary.Results[i] = result
	}

	data, err := renderDocument(ctx, renderer, combined, opts)
	if err != nil {
		markSucceeded(summary, err)
		return
	}

	name := opts.CombineName
	if name == "" {
		name = "combined"
	}
	outputPath := utils.OutputName(name, opts.OutputDir, outputExtension(renderer, opts.Format))
	if err := writer.Atomic(outputPath, data); err != nil {
		markSucceeded(summary, err)
		return
	}

	for i := range summary.Results {
		if summary.Results[i].Err == nil {
			summary.Results[i].Output = outputPath
		}
	}
}

// markSucceeded attaches a batch-wide error to every file that had not
// already failed on its own.
func markSucceeded(summary *Summary, err error) {
	for i := range summary.Results {
		if summary.Results[i].Err == nil {
			summary.Results[i].Err = err
		}
	}
}

func loadFile(input string, opts Options) ([]entities.Book, []string, []normalize.TruncationWarning, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	return LoadBooks(f, filepath.Base(input), opts)
}

// LoadBooks runs the loader, normalizer and grouper stages over a CSV
// stream. Shared with the HTTP upload handler.
func LoadBooks(r io.Reader, sourceName string, opts Options) ([]entities.Book, []string, []normalize.TruncationWarning, error) {
	rows, skipped, err := importers.ParseHighlightCSV(r)
	if err != nil {
		return nil, nil, nil, err
	}

	normalizer := normalize.New(opts.QuoteMode, opts.MaxFieldLength)
	rows, warnings, err := normalizer.Rows(rows)
	if err != nil {
		return nil, nil, nil, err
	}

	return importers.GroupHighlights(rows, sourceName), skipped, warnings, nil
}

func renderDocument(ctx context.Context, renderer render.Renderer, books []entities.Book, opts Options) ([]byte, error) {
	body, err := renderer.Render(books)
	if err != nil {
		return nil, err
	}

	if opts.Format == render.FormatPDF {
		if opts.PrintPDF == nil {
			return nil, &render.StyleError{Field: "format", Reason: "pdf output requires a browser printer"}
		}
		return opts.PrintPDF(ctx, body)
	}

	return []byte(body), nil
}

func outputExtension(renderer render.Renderer, format render.Format) string {
	if format == render.FormatPDF {
		return ".pdf"
	}
	return renderer.Extension()
}
