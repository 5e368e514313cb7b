package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ironsupr/DocuDots/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := app.DefaultConfig()

	var configPath string
	flag.StringVar(&configPath, "config", "docudots.yaml", "Path to optional YAML config file")

	var (
		inputDir         = flag.String("input", "", "Directory containing input PDF files")
		outputDir        = flag.String("output", "", "Directory for output JSON outlines")
		maxFileSizeMB    = flag.Int("max.fileSizeMB", 0, "Skip input files larger than this many megabytes")
		maxPages         = flag.Int("max.pages", 0, "Skip documents with more pages than this")
		maxFragments     = flag.Int("max.fragments", 0, "Truncate documents with more text fragments than this")
		maxHeadings      = flag.Int("max.headings", 0, "Maximum headings emitted per document")
		timeout          = flag.Duration("timeout", 0, "Per-document processing timeout (e.g. 5m)")
		retryAttempts    = flag.Int("retry.attempts", 0, "Parse retry attempts per document, including the first")
		retryBackoff     = flag.Duration("retry.backoff", 0, "Base delay between parse retries")
		breakerThreshold = flag.Int("breaker.threshold", 0, "Consecutive failures before remaining documents are skipped")
		workers          = flag.Int("workers", 0, "Number of parallel document workers")
		scorePercentile  = flag.Float64("score.thresholdPercentile", -1, "Candidate score threshold percentile in [0,1]")
		verbose          = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	// Precedence: defaults < config file < environment < flags.
	if err := app.LoadConfigFile(configPath, &cfg, true); err != nil {
		log.Error().Err(err).Msg("config file rejected")
		os.Exit(2)
	}
	app.ApplyEnv(&cfg)
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *maxFileSizeMB > 0 {
		cfg.MaxFileSizeMB = *maxFileSizeMB
	}
	if *maxPages > 0 {
		cfg.MaxPages = *maxPages
	}
	if *maxFragments > 0 {
		cfg.MaxFragments = *maxFragments
	}
	if *maxHeadings > 0 {
		cfg.MaxHeadings = *maxHeadings
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *retryAttempts > 0 {
		cfg.RetryAttempts = *retryAttempts
	}
	if *retryBackoff > 0 {
		cfg.RetryBackoff = *retryBackoff
	}
	if *breakerThreshold > 0 {
		cfg.BreakerThreshold = *breakerThreshold
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *scorePercentile >= 0 {
		cfg.ThresholdPercentile = *scorePercentile
	}
	if *verbose {
		cfg.Verbose = true
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		// Exit code policy: 1 when documents failed, 2 when there was
		// nothing processable or the configuration was unusable.
		if errors.Is(err, app.ErrDocumentsFailed) {
			os.Exit(1)
		}
		log.Error().Err(err).Msg("run failed")
		os.Exit(2)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	_, err = a.Run(context.Background())
	return err
}
