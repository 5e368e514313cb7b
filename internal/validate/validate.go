// Package validate performs pre-flight checks on input files before any
// parsing is attempted: existence, extension, and the size ceiling. Rejecting
// oversized or obviously wrong inputs up front is cheaper than timing out on
// them later.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOversizeInput marks a file exceeding the configured size ceiling. The
// document is skipped without attempting to process it.
var ErrOversizeInput = errors.New("input exceeds size ceiling")

// ErrNotPDF marks a file that is not a PDF by extension.
var ErrNotPDF = errors.New("input is not a PDF file")

// ErrEmptyFile marks a zero-byte input file.
var ErrEmptyFile = errors.New("input file is empty")

// File checks a single input path against the size ceiling in megabytes.
// A maxSizeMB of zero disables the ceiling.
func File(path string, maxSizeMB int) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotPDF)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%s: %w", path, ErrNotPDF)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if maxSizeMB > 0 && info.Size() > int64(maxSizeMB)*1024*1024 {
		return fmt.Errorf("%s: %d bytes: %w", path, info.Size(), ErrOversizeInput)
	}
	return nil
}
