package app

import (
	"os"
	"strconv"
	"time"
)

// ApplyEnv overlays DOCUDOTS_* environment variables onto the config.
// Environment sits between the config file and flags in precedence.
// Malformed values are ignored rather than failing startup.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("DOCUDOTS_INPUT"); v != "" {
		cfg.InputDir = v
	}
	if v := os.Getenv("DOCUDOTS_OUTPUT"); v != "" {
		cfg.OutputDir = v
	}
	if n, ok := envInt("DOCUDOTS_MAX_FILE_SIZE_MB"); ok {
		cfg.MaxFileSizeMB = n
	}
	if n, ok := envInt("DOCUDOTS_MAX_PAGES"); ok {
		cfg.MaxPages = n
	}
	if n, ok := envInt("DOCUDOTS_MAX_HEADINGS"); ok {
		cfg.MaxHeadings = n
	}
	if d, ok := envDuration("DOCUDOTS_TIMEOUT"); ok {
		cfg.Timeout = d
	}
	if n, ok := envInt("DOCUDOTS_RETRY_ATTEMPTS"); ok {
		cfg.RetryAttempts = n
	}
	if n, ok := envInt("DOCUDOTS_BREAKER_THRESHOLD"); ok {
		cfg.BreakerThreshold = n
	}
	if n, ok := envInt("DOCUDOTS_WORKERS"); ok {
		cfg.Workers = n
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	// Accept plain seconds for compatibility with DOCUDOTS_TIMEOUT=300.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, true
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
