// Package pdf prints rendered HTML documents to PDF through a headless
// Chrome instance.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Printer drives a headless browser that is reused across conversions.
// Call Close when finished.
type Printer struct {
	timeout       time.Duration
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Option configures a Printer.
type Option func(*printerConfig)

type printerConfig struct {
	chromePath string
	timeout    time.Duration
	noSandbox  bool
}

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default standard locations are searched automatically.
func WithChromePath(path string) Option {
	return func(c *printerConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single print.
// Defaults to 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *printerConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. Required when running as
// root, for example inside containers.
func WithNoSandbox() Option {
	return func(c *printerConfig) {
		c.noSandbox = true
	}
}

// NewPrinter starts a headless browser eagerly so errors surface at
// creation time.
func NewPrinter(opts ...Option) (*Printer, error) {
	cfg := printerConfig{timeout: 30 * time.Second}
	for _, o := range opts {
		o(&cfg)
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", "new"),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Printer{
		timeout:       cfg.timeout,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases the browser process.
func (p *Printer) Close() {
	p.browserCancel()
	p.allocCancel()
}

// Print renders the HTML string and returns the PDF bytes. A4 portrait
// with 1cm margins.
func (p *Printer) Print(ctx context.Context, html string) ([]byte, error) {
	f, err := os.CreateTemp("", "highlights-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp html file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write temp html file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp html file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve temp html path: %w", err)
	}

	tabCtx, tabCancel := chromedp.NewContext(p.browserCtx)
	defer tabCancel()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, p.timeout)
		defer cancel()
	}

	// Propagate caller cancellation into the tab context
	go func() {
		select {
		case <-ctx.Done():
			tabCancel()
		case <-tabCtx.Done():
		}
	}()

	const cmToInch = 1 / 2.54

	var buf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(21.0 * cmToInch).
				WithPaperHeight(29.7 * cmToInch).
				WithMarginTop(1 * cmToInch).
				WithMarginRight(1 * cmToInch).
				WithMarginBottom(1 * cmToInch).
				WithMarginLeft(1 * cmToInch).
				WithPrintBackground(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf conversion failed: %w", err)
	}

	return buf, nil
}
