// Package app orchestrates one batch run: it discovers input PDFs, fans them
// out across a bounded worker pool, writes one outline artifact per input,
// and reports aggregate results. Per-document processing is delegated to the
// resilience runner so one document's failure never halts its siblings.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ironsupr/DocuDots/internal/pdf"
	"github.com/ironsupr/DocuDots/internal/resilience"
)

// ErrNoInputFiles is returned when the input directory holds nothing to
// process. Per the exit code policy this maps to exit code 2.
var ErrNoInputFiles = fmt.Errorf("no PDF files found in input directory")

// ErrDocumentsFailed is returned when at least one document failed; the
// batch still completes and every result is written or reported.
var ErrDocumentsFailed = fmt.Errorf("one or more documents failed")

// App runs batches against a fixed configuration.
type App struct {
	cfg    Config
	runner *resilience.Runner
}

// Summary aggregates one batch run.
type Summary struct {
	Total     int
	Processed int
	Failed    int
	Skipped   int
	Elapsed   time.Duration
	Results   []resilience.Result
}

// New validates the configuration and assembles the pipeline.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	runner := &resilience.Runner{
		Parser:        pdf.NewParser(),
		Engine:        cfg.engineConfig(),
		Timeout:       cfg.Timeout,
		MaxAttempts:   cfg.RetryAttempts,
		Backoff:       cfg.RetryBackoff,
		MaxFileSizeMB: cfg.MaxFileSizeMB,
		MaxPages:      cfg.MaxPages,
		Breaker:       resilience.NewBreaker(cfg.BreakerThreshold),
	}
	return &App{cfg: cfg, runner: runner}, nil
}

// Run processes every PDF in the input directory and writes one JSON
// artifact per input into the output directory.
func (a *App) Run(ctx context.Context) (Summary, error) {
	start := time.Now()

	files, err := a.discover()
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, ErrNoInputFiles
	}
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}

	log.Info().Int("files", len(files)).Str("input", a.cfg.InputDir).
		Str("output", a.cfg.OutputDir).Int("workers", a.cfg.Workers).
		Msg("starting batch")

	results := a.processAll(ctx, files)

	summary := Summary{Total: len(files), Results: results}
	for _, res := range results {
		switch res.Status {
		case resilience.StatusOK:
			summary.Processed++
		case resilience.StatusFailed:
			summary.Failed++
		case resilience.StatusSkipped:
			summary.Skipped++
		}
	}
	summary.Elapsed = time.Since(start)

	log.Info().
		Int("total", summary.Total).
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Dur("elapsed", summary.Elapsed).
		Msg("batch complete")

	if summary.Failed > 0 {
		return summary, ErrDocumentsFailed
	}
	return summary, nil
}

// discover lists the PDFs of the input directory in a stable order.
func (a *App) discover() ([]string, error) {
	entries, err := os.ReadDir(a.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(a.cfg.InputDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// processAll fans documents out across the worker pool. Workers share only
// the runner, whose state is the breaker; results come back in input order.
func (a *App) processAll(ctx context.Context, files []string) []resilience.Result {
	results := make([]resilience.Result, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < a.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = a.processOne(ctx, files[i])
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (a *App) processOne(ctx context.Context, path string) resilience.Result {
	log.Debug().Str("file", path).Msg("processing document")
	res := a.runner.Process(ctx, path)

	switch res.Status {
	case resilience.StatusOK:
		if err := a.writeOutline(path, res); err != nil {
			log.Error().Str("file", path).Err(err).Msg("write output failed")
			res.Status = resilience.StatusFailed
			res.Reason = err.Error()
			return res
		}
		log.Info().Str("file", path).Str("title", res.Outline.Title).
			Int("headings", len(res.Outline.Headings)).Msg("document processed")
	case resilience.StatusFailed:
		log.Error().Str("file", path).Str("reason", res.Reason).Msg("document failed")
	case resilience.StatusSkipped:
		log.Warn().Str("file", path).Str("reason", res.Reason).Msg("document skipped")
	}
	return res
}

// writeOutline writes <stem>.json next to the other artifacts.
func (a *App) writeOutline(inputPath string, res resilience.Result) error {
	b, err := res.Outline.JSON()
	if err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := filepath.Join(a.cfg.OutputDir, stem+".json")
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}
