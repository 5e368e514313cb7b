// Package resilience wraps the pure per-document pipeline with the policies
// the outside world requires: pre-flight validation, bounded retry of the
// external parser, a per-document wall-clock timeout, resource ceilings, and
// a batch-level circuit breaker. Failures are isolated per document; every
// document yields a result record so batch reporting is complete.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ironsupr/DocuDots/internal/engine"
	"github.com/ironsupr/DocuDots/internal/fragment"
	"github.com/ironsupr/DocuDots/internal/outline"
	"github.com/ironsupr/DocuDots/internal/validate"
)

// Parser abstracts the external document parser collaborator. Parse failures
// are the only transient condition worth retrying; classification itself is
// deterministic and pure.
type Parser interface {
	Parse(ctx context.Context, path string) (fragment.Document, error)
}

// Status classifies a per-document outcome.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the per-document record: even failed documents produce one, so
// no document is silently dropped.
type Result struct {
	Path     string
	Status   Status
	Reason   string
	Outline  outline.Outline
	Warnings []string
}

// Runner executes the parse+classify pipeline for single documents under
// the configured policies. One Runner is shared by all workers of a batch;
// it holds no per-document state beyond the breaker.
type Runner struct {
	Parser Parser
	Engine engine.Config

	// Timeout bounds one document's total processing wall-clock time.
	// Zero disables it.
	Timeout time.Duration

	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int

	// Backoff is the base delay between parse attempts; attempt n waits
	// n times this long.
	Backoff time.Duration

	// MaxFileSizeMB skips oversized inputs before parsing. Zero disables.
	MaxFileSizeMB int

	// MaxPages skips documents with more pages than this. Zero disables.
	MaxPages int

	Breaker *Breaker
}

// Process runs one document end to end and always returns a result record.
func (r *Runner) Process(ctx context.Context, path string) Result {
	if !r.Breaker.Allow() {
		return Result{Path: path, Status: StatusSkipped, Reason: ErrCircuitOpen.Error()}
	}

	if err := validate.File(path, r.MaxFileSizeMB); err != nil {
		log.Warn().Str("file", path).Err(err).Msg("input rejected before parsing")
		return Result{Path: path, Status: StatusSkipped, Reason: err.Error()}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	type outcome struct {
		res Result
	}
	done := make(chan outcome, 1)
	go func() {
		done <- outcome{r.process(ctx, path)}
	}()

	select {
	case o := <-done:
		if o.res.Status == StatusFailed {
			r.Breaker.Failure()
		} else if o.res.Status == StatusOK {
			r.Breaker.Success()
		}
		return o.res
	case <-ctx.Done():
		// The document is abandoned; the goroutine's result is discarded.
		r.Breaker.Failure()
		reason := "per-document timeout exceeded"
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = ctx.Err().Error()
		}
		log.Error().Str("file", path).Msg(reason)
		return Result{Path: path, Status: StatusFailed, Reason: reason}
	}
}

func (r *Runner) process(ctx context.Context, path string) Result {
	doc, err := r.parseWithRetry(ctx, path)
	if err != nil {
		return Result{Path: path, Status: StatusFailed, Reason: fmt.Sprintf("parse: %v", err)}
	}

	if r.MaxPages > 0 && doc.PageCount > r.MaxPages {
		return Result{
			Path:   path,
			Status: StatusSkipped,
			Reason: fmt.Sprintf("page count %d exceeds ceiling %d", doc.PageCount, r.MaxPages),
		}
	}

	out, warnings := engine.Analyze(doc, r.Engine)
	for _, w := range warnings {
		log.Warn().Str("file", path).Msg(w)
	}
	return Result{Path: path, Status: StatusOK, Outline: out, Warnings: warnings}
}

// parseWithRetry retries the external parser with linear backoff. The
// classification stages are never retried on their own account.
func (r *Runner) parseWithRetry(ctx context.Context, path string) (fragment.Document, error) {
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(i) * r.Backoff):
			case <-ctx.Done():
				return fragment.Document{}, ctx.Err()
			}
		}
		doc, err := r.Parser.Parse(ctx, path)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if i < attempts-1 {
			log.Warn().Str("file", path).Err(err).Int("attempt", i+1).Int("maxAttempts", attempts).
				Msg("parse failed, retrying")
		}
	}
	return fragment.Document{}, lastErr
}
