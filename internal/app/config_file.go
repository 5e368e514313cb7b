package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/ironsupr/DocuDots/internal/classify"
)

// FileConfig is the single-file YAML configuration schema. Nested sections
// map naturally onto flags and environment variables. Absent fields leave
// the corresponding Config value untouched.
type FileConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	Max struct {
		FileSizeMB int `yaml:"fileSizeMB"`
		Pages      int `yaml:"pages"`
		Fragments  int `yaml:"fragments"`
		Headings   int `yaml:"headings"`
	} `yaml:"max"`

	Timeout time.Duration `yaml:"timeout"`

	Retry struct {
		Attempts int           `yaml:"attempts"`
		Backoff  time.Duration `yaml:"backoff"`
	} `yaml:"retry"`

	Breaker struct {
		Threshold int `yaml:"threshold"`
	} `yaml:"breaker"`

	Workers int `yaml:"workers"`

	Score struct {
		ThresholdPercentile *float64          `yaml:"thresholdPercentile"`
		Weights             *classify.Weights `yaml:"weights"`
	} `yaml:"score"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file and overlays it onto cfg. A
// missing file is not an error when optional is true.
func LoadConfigFile(path string, cfg *Config, optional bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	applyFileConfig(fc, cfg)
	return nil
}

func applyFileConfig(fc FileConfig, cfg *Config) {
	if fc.Input != "" {
		cfg.InputDir = fc.Input
	}
	if fc.Output != "" {
		cfg.OutputDir = fc.Output
	}
	if fc.Max.FileSizeMB > 0 {
		cfg.MaxFileSizeMB = fc.Max.FileSizeMB
	}
	if fc.Max.Pages > 0 {
		cfg.MaxPages = fc.Max.Pages
	}
	if fc.Max.Fragments > 0 {
		cfg.MaxFragments = fc.Max.Fragments
	}
	if fc.Max.Headings > 0 {
		cfg.MaxHeadings = fc.Max.Headings
	}
	if fc.Timeout > 0 {
		cfg.Timeout = fc.Timeout
	}
	if fc.Retry.Attempts > 0 {
		cfg.RetryAttempts = fc.Retry.Attempts
	}
	if fc.Retry.Backoff > 0 {
		cfg.RetryBackoff = fc.Retry.Backoff
	}
	if fc.Breaker.Threshold > 0 {
		cfg.BreakerThreshold = fc.Breaker.Threshold
	}
	if fc.Workers > 0 {
		cfg.Workers = fc.Workers
	}
	if fc.Score.ThresholdPercentile != nil {
		cfg.ThresholdPercentile = *fc.Score.ThresholdPercentile
	}
	if fc.Score.Weights != nil {
		cfg.Weights = *fc.Score.Weights
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
