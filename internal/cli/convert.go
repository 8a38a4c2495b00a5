package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohit196/Text-Analytics/internal/batch"
	"github.com/rohit196/Text-Analytics/internal/config"
	"github.com/rohit196/Text-Analytics/internal/library"
	"github.com/rohit196/Text-Analytics/internal/normalize"
	"github.com/rohit196/Text-Analytics/internal/pdf"
	"github.com/rohit196/Text-Analytics/internal/render"
	"github.com/rohit196/Text-Analytics/internal/styles"
)

// ConvertCommand converts highlight CSV exports to styled documents
type ConvertCommand struct {
	OutputDir      string
	StylePath      string
	Format         string
	Combine        bool
	CombineName    string
	LibraryPath    string
	Workers        int
	QuoteMode      string
	MaxFieldLength int
	ChromePath     string
	NoSandbox      bool
	Verbose        bool

	Inputs []string
}

// NewConvertCommand creates a new ConvertCommand with config defaults
func NewConvertCommand(cfg *config.Config) *ConvertCommand {
	return &ConvertCommand{
		OutputDir:      cfg.Convert.OutputDir,
		StylePath:      cfg.Convert.StylePath,
		Format:         cfg.Convert.Format,
		LibraryPath:    cfg.Library.Path,
		Workers:        cfg.Convert.Workers,
		QuoteMode:      cfg.Convert.QuoteMode,
		MaxFieldLength: cfg.Convert.MaxFieldLength,
		ChromePath:     cfg.Convert.ChromePath,
	}
}

// ParseFlags parses command line flags
func (cmd *ConvertCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	fs.StringVar(&cmd.OutputDir, "output", cmd.OutputDir, "Output directory for converted documents")
	fs.StringVar(&cmd.StylePath, "style", cmd.StylePath, "Path to the style config file (missing file = defaults)")
	fs.StringVar(&cmd.Format, "format", cmd.Format, "Output format: markdown, html or pdf")
	fs.BoolVar(&cmd.Combine, "combine", false, "Produce one combined document for the whole batch")
	fs.StringVar(&cmd.CombineName, "combine-name", "combined", "Base name for the combined document")
	fs.StringVar(&cmd.LibraryPath, "library", cmd.LibraryPath, "SQLite library to record imported highlights (optional)")
	fs.IntVar(&cmd.Workers, "workers", cmd.Workers, "Parallel file workers")
	fs.StringVar(&cmd.QuoteMode, "quotes", cmd.QuoteMode, "Quote canonicalization: ascii or unicode")
	fs.StringVar(&cmd.ChromePath, "chrome", cmd.ChromePath, "Chrome executable for pdf output")
	fs.BoolVar(&cmd.NoSandbox, "no-sandbox", false, "Disable the Chrome sandbox (pdf output as root)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s convert [options] <input.csv ...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert highlight CSV exports into styled documents.\n\n")
		fmt.Fprintf(os.Stderr, "Each input file becomes one document named after it; glob patterns\n")
		fmt.Fprintf(os.Stderr, "are expanded. One file's failure never aborts the batch.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s convert highlights.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s convert -output ~/Documents/highlights 'exports/*.csv'\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s convert -format pdf -style style.yaml highlights.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s convert -combine -format html exports/*.csv\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no input files given")
	}

	inputs, err := batch.ExpandGlobs(fs.Args())
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files matched")
	}
	cmd.Inputs = inputs

	return nil
}

// Run executes the convert command
func (cmd *ConvertCommand) Run() error {
	fmt.Println("📚 Highlights Converter")
	fmt.Println("=======================")

	opts, cleanup, err := cmd.buildOptions()
	if err != nil {
		return err
	}
	defer cleanup()

	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	opts.OutputDir = absOutputDir

	fmt.Printf("📁 Output: %s\n", absOutputDir)
	if cmd.Verbose {
		fmt.Printf("🎨 Style: %s\n", cmd.StylePath)
		fmt.Printf("📄 Format: %s\n", opts.Format)
	}
	fmt.Printf("🔄 Converting %d file(s)...\n\n", len(cmd.Inputs))

	summary := batch.Run(context.Background(), cmd.Inputs, opts)
	summary.Report(os.Stderr)

	if !summary.OK() {
		return fmt.Errorf("%d file(s) failed", len(summary.Failed()))
	}

	fmt.Println("\n✅ Conversion complete!")
	return nil
}

// buildOptions assembles batch options shared by convert and watch.
// The returned cleanup closes the library and browser if opened.
func (cmd *ConvertCommand) buildOptions() (batch.Options, func(), error) {
	cleanup := func() {}

	style, err := styles.Load(cmd.StylePath)
	if err != nil {
		return batch.Options{}, cleanup, err
	}

	format, err := render.ParseFormat(cmd.Format)
	if err != nil {
		return batch.Options{}, cleanup, err
	}

	opts := batch.Options{
		OutputDir:      cmd.OutputDir,
		Style:          style,
		Format:         format,
		Combine:        cmd.Combine,
		CombineName:    cmd.CombineName,
		Workers:        cmd.Workers,
		QuoteMode:      normalize.Mode(cmd.QuoteMode),
		MaxFieldLength: cmd.MaxFieldLength,
		Verbose:        cmd.Verbose,
	}

	var closers []func()

	if cmd.LibraryPath != "" {
		lib, err := library.Open(cmd.LibraryPath)
		if err != nil {
			return batch.Options{}, cleanup, fmt.Errorf("failed to open library: %w", err)
		}
		opts.Library = lib
		closers = append(closers, func() { lib.Close() })
		fmt.Printf("💾 Library: %s\n", cmd.LibraryPath)
	}

	if format == render.FormatPDF {
		pdfOpts := []pdf.Option{}
		if cmd.ChromePath != "" {
			pdfOpts = append(pdfOpts, pdf.WithChromePath(cmd.ChromePath))
		}
		if cmd.NoSandbox {
			pdfOpts = append(pdfOpts, pdf.WithNoSandbox())
		}
		printer, err := pdf.NewPrinter(pdfOpts...)
		if err != nil {
			runAll(closers)
			return batch.Options{}, cleanup, fmt.Errorf("failed to start pdf printer: %w", err)
		}
		opts.PrintPDF = printer.Print
		closers = append(closers, printer.Close)
	}

	cleanup = func() { runAll(closers) }
	return opts, cleanup, nil
}

func runAll(closers []func()) {
	for _, c := range closers {
		c()
	}
}
