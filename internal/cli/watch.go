package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rohit196/Text-Analytics/internal/config"
	"github.com/rohit196/Text-Analytics/internal/scheduler"
)

// WatchCommand converts CSVs appearing in a directory on a schedule
type WatchCommand struct {
	InputDir string
	Schedule string

	convert *ConvertCommand
}

// NewWatchCommand creates a new WatchCommand with config defaults
func NewWatchCommand(cfg *config.Config) *WatchCommand {
	return &WatchCommand{
		InputDir: cfg.Watch.InputDir,
		Schedule: cfg.Watch.Schedule,
		convert:  NewConvertCommand(cfg),
	}
}

// ParseFlags parses command line flags
func (cmd *WatchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	fs.StringVar(&cmd.InputDir, "input", cmd.InputDir, "Directory to watch for CSV exports")
	fs.StringVar(&cmd.Schedule, "schedule", cmd.Schedule, "Cron schedule for sweeps")
	fs.StringVar(&cmd.convert.OutputDir, "output", cmd.convert.OutputDir, "Output directory for converted documents")
	fs.StringVar(&cmd.convert.StylePath, "style", cmd.convert.StylePath, "Path to the style config file")
	fs.StringVar(&cmd.convert.Format, "format", cmd.convert.Format, "Output format: markdown, html or pdf")
	fs.StringVar(&cmd.convert.LibraryPath, "library", cmd.convert.LibraryPath, "SQLite library to record imported highlights (optional)")
	fs.IntVar(&cmd.convert.Workers, "workers", cmd.convert.Workers, "Parallel file workers")
	fs.StringVar(&cmd.convert.QuoteMode, "quotes", cmd.convert.QuoteMode, "Quote canonicalization: ascii or unicode")
	fs.StringVar(&cmd.convert.ChromePath, "chrome", cmd.convert.ChromePath, "Chrome executable for pdf output")
	fs.BoolVar(&cmd.convert.NoSandbox, "no-sandbox", false, "Disable the Chrome sandbox (pdf output as root)")
	fs.BoolVar(&cmd.convert.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s watch -input <dir> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Periodically convert every CSV export found in a directory.\n")
		fmt.Fprintf(os.Stderr, "Files whose output is up to date are skipped. Runs until interrupted.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s watch -input ~/Dropbox/exports\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s watch -input ./exports -schedule '0 * * * *' -format html\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.InputDir == "" {
		fs.Usage()
		return fmt.Errorf("-input is required")
	}

	return nil
}

// Run executes the watch command until interrupted
func (cmd *WatchCommand) Run() error {
	fmt.Println("👀 Directory Watch")
	fmt.Println("==================")

	opts, cleanup, err := cmd.convert.buildOptions()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := scheduler.NewDirectorySweeper(cmd.InputDir, cmd.Schedule, opts)
	if err := sweeper.Start(ctx); err != nil {
		return err
	}
	defer sweeper.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n👋 Stopping watch")
	return nil
}
