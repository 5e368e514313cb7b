package resilience

import (
	"errors"
	"sync"
)

// ErrCircuitOpen marks documents skipped because the batch already hit the
// consecutive-failure threshold.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Breaker trips after a run of consecutive document failures so a
// systemically broken batch stops burning time. Any success closes it again.
// Safe for use from multiple workers.
type Breaker struct {
	mu          sync.Mutex
	threshold   int
	consecutive int
}

// NewBreaker returns a breaker that opens at the given threshold. A
// threshold of zero or less never opens.
func NewBreaker(threshold int) *Breaker {
	return &Breaker{threshold: threshold}
}

// Allow reports whether the next document may be attempted.
func (b *Breaker) Allow() bool {
	if b == nil || b.threshold <= 0 {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consecutive < b.threshold
}

// Success resets the consecutive failure count.
func (b *Breaker) Success() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.consecutive = 0
	b.mu.Unlock()
}

// Failure records one document failure.
func (b *Breaker) Failure() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.consecutive++
	b.mu.Unlock()
}
