package app

import (
	"fmt"
	"time"

	"github.com/ironsupr/DocuDots/internal/classify"
	"github.com/ironsupr/DocuDots/internal/engine"
)

// Config holds runtime configuration for one batch run. It is assembled from
// defaults, an optional YAML config file, environment variables, and flags,
// in that order of precedence, and never mutated once the run starts.
type Config struct {
	InputDir  string
	OutputDir string

	// Resource ceilings
	MaxFileSizeMB int
	MaxPages      int
	MaxFragments  int
	MaxHeadings   int

	// Resilience
	Timeout          time.Duration
	RetryAttempts    int
	RetryBackoff     time.Duration
	BreakerThreshold int

	// Scheduling
	Workers int

	// Scoring
	ThresholdPercentile float64
	Weights             classify.Weights

	Verbose bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		InputDir:            "input",
		OutputDir:           "output",
		MaxFileSizeMB:       100,
		MaxPages:            1000,
		MaxFragments:        10000,
		MaxHeadings:         50,
		Timeout:             5 * time.Minute,
		RetryAttempts:       3,
		RetryBackoff:        500 * time.Millisecond,
		BreakerThreshold:    5,
		Workers:             4,
		ThresholdPercentile: 0.25,
		Weights:             classify.DefaultWeights(),
	}
}

// Validate rejects configurations the run cannot honor. Weight violations
// are caught here, at load time, rather than mid-batch.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory must be set")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must be set")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.RetryAttempts <= 0 {
		return fmt.Errorf("retry attempts must be positive, got %d", c.RetryAttempts)
	}
	return c.engineConfig().Validate()
}

func (c Config) engineConfig() engine.Config {
	return engine.Config{
		Weights:             c.Weights,
		ThresholdPercentile: c.ThresholdPercentile,
		MaxFragments:        c.MaxFragments,
		MaxHeadings:         c.MaxHeadings,
	}
}
