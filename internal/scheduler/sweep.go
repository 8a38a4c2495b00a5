// Package scheduler periodically converts every CSV export found in a
// watched directory.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/rohit196/Text-Analytics/internal/batch"
	"github.com/rohit196/Text-Analytics/internal/render"
	"github.com/rohit196/Text-Analytics/internal/utils"
)

// DirectorySweeper runs the batch converter over a directory on a cron
// schedule. Files whose output is already newer than the input are
// skipped.
type DirectorySweeper struct {
	inputDir string
	schedule string
	opts     batch.Options

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

func NewDirectorySweeper(inputDir, schedule string, opts batch.Options) *DirectorySweeper {
	return &DirectorySweeper{
		inputDir: inputDir,
		schedule: schedule,
		opts:     opts,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start registers the cron entry and begins sweeping. The first sweep
// runs immediately.
func (s *DirectorySweeper) Start(ctx context.Context) error {
	if s.inputDir == "" {
		return fmt.Errorf("watch input directory not configured")
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	log.Printf("Directory sweeper: watching %s on schedule %q", s.inputDir, s.schedule)

	s.runSweep(ctx)
	return nil
}

// Stop halts the cron scheduler. A sweep already in flight finishes.
func (s *DirectorySweeper) Stop() {
	s.cron.Remove(s.entryID)
	s.cron.Stop()
}

// runSweep skips overlapping runs rather than queueing them.
func (s *DirectorySweeper) runSweep(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		log.Printf("Directory sweeper: previous sweep still running, skipping")
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	}()

	summary, err := s.Sweep(ctx)
	if err != nil {
		log.Printf("Directory sweeper: %v", err)
		return
	}

	if len(summary.Results) > 0 {
		summary.Report(os.Stderr)
	}
}

// Sweep converts every stale CSV in the watched directory once.
func (s *DirectorySweeper) Sweep(ctx context.Context) (batch.Summary, error) {
	pattern := filepath.Join(s.inputDir, "*.csv")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return batch.Summary{}, fmt.Errorf("failed to scan %s: %w", s.inputDir, err)
	}

	inputs := s.staleInputs(matches)
	if len(inputs) == 0 {
		log.Printf("Directory sweeper: nothing to convert in %s", s.inputDir)
		return batch.Summary{}, nil
	}

	log.Printf("Directory sweeper: converting %d file(s)", len(inputs))
	return batch.Run(ctx, inputs, s.opts), nil
}

// staleInputs keeps the files whose output is missing or older than the
// input.
func (s *DirectorySweeper) staleInputs(candidates []string) []string {
	extension := ".md"
	switch s.opts.Format {
	case render.FormatHTML:
		extension = ".html"
	case render.FormatPDF:
		extension = ".pdf"
	}

	var stale []string
	for _, input := range candidates {
		inputInfo, err := os.Stat(input)
		if err != nil {
			continue
		}

		outputPath := utils.OutputName(input, s.opts.OutputDir, extension)
		outputInfo, err := os.Stat(outputPath)
		if err != nil || outputInfo.ModTime().Before(inputInfo.ModTime()) {
			stale = append(stale, input)
		}
	}
	return stale
}
