package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohit196/Text-Analytics/internal/config"
	"github.com/rohit196/Text-Analytics/internal/library"
	"github.com/rohit196/Text-Analytics/internal/pdf"
	"github.com/rohit196/Text-Analytics/internal/render"
	"github.com/rohit196/Text-Analytics/internal/styles"
	"github.com/rohit196/Text-Analytics/internal/utils"
	"github.com/rohit196/Text-Analytics/internal/writer"
)

// ExportCommand re-renders documents from the highlight library
type ExportCommand struct {
	LibraryPath string
	OutputDir   string
	StylePath   string
	Format      string
	ChromePath  string
	NoSandbox   bool
	Verbose     bool
}

// NewExportCommand creates a new ExportCommand with config defaults
func NewExportCommand(cfg *config.Config) *ExportCommand {
	return &ExportCommand{
		LibraryPath: cfg.Library.Path,
		OutputDir:   cfg.Convert.OutputDir,
		StylePath:   cfg.Convert.StylePath,
		Format:      cfg.Convert.Format,
		ChromePath:  cfg.Convert.ChromePath,
	}
}

// ParseFlags parses command line flags
func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.LibraryPath, "library", cmd.LibraryPath, "SQLite library to export from")
	fs.StringVar(&cmd.OutputDir, "output", cmd.OutputDir, "Output directory for the exported document")
	fs.StringVar(&cmd.StylePath, "style", cmd.StylePath, "Path to the style config file")
	fs.StringVar(&cmd.Format, "format", cmd.Format, "Output format: markdown, html or pdf")
	fs.StringVar(&cmd.ChromePath, "chrome", cmd.ChromePath, "Chrome executable for pdf output")
	fs.BoolVar(&cmd.NoSandbox, "no-sandbox", false, "Disable the Chrome sandbox (pdf output as root)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export -library <db> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Render a document from highlights stored in the library, without\n")
		fmt.Fprintf(os.Stderr, "re-reading the original CSV files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -library highlights.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -library highlights.db -format html -output ~/Documents\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.LibraryPath == "" {
		fs.Usage()
		return fmt.Errorf("-library is required")
	}

	return nil
}

// Run executes the export command
func (cmd *ExportCommand) Run() error {
	fmt.Println("📤 Library Export")
	fmt.Println("=================")

	lib, err := library.Open(cmd.LibraryPath)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	books, err := lib.Books()
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Println("ℹ️  Library is empty, nothing to export")
		return nil
	}

	style, err := styles.Load(cmd.StylePath)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	renderer, err := render.New(format, style)
	if err != nil {
		return err
	}

	body, err := renderer.Render(books)
	if err != nil {
		return err
	}

	data := []byte(body)
	extension := renderer.Extension()

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
			return fmt.Errorf("failed to start pdf printer: %w", err)
		}
		defer printer.Close()

		data, err = printer.Print(context.Background(), body)
		if err != nil {
			return err
		}
		extension = ".pdf"
	}

	base := filepath.Base(cmd.LibraryPath)
	outputPath := utils.OutputName(base, cmd.OutputDir, extension)
	if err := writer.Atomic(outputPath, data); err != nil {
		return err
	}

	highlights := 0
	for _, book := range books {
		highlights += len(book.Highlights)
	}

	fmt.Printf("✅ Exported %d books with %d highlights to %s\n", len(books), highlights, outputPath)
	return nil
}
