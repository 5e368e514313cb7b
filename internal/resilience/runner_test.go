package resilience

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ironsupr/DocuDots/internal/engine"
	"github.com/ironsupr/DocuDots/internal/fragment"
)

// fakeParser fails a fixed number of times before succeeding. A failUntil of
// -1 fails forever.
type fakeParser struct {
	mu        sync.Mutex
	calls     int
	failUntil int
	doc       fragment.Document
}

func (p *fakeParser) Parse(ctx context.Context, path string) (fragment.Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failUntil < 0 || p.calls <= p.failUntil {
		return fragment.Document{}, errors.New("synthetic parse failure")
	}
	return p.doc, nil
}

// blockingParser waits for context cancellation.
type blockingParser struct{}

func (blockingParser) Parse(ctx context.Context, path string) (fragment.Document, error) {
	<-ctx.Done()
	return fragment.Document{}, ctx.Err()
}

func writePDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func sampleDocument() fragment.Document {
	return fragment.Document{
		PageCount:  1,
		PageWidth:  612,
		PageHeight: 792,
		Fragments: []fragment.TextFragment{
			{Text: "Title Page", Size: 24, Bold: true, X: 72, Y: 90, Index: 0},
			{Text: "1. Scope", Size: 16, Bold: true, X: 72, Y: 200, Index: 1},
			{Text: "ordinary body text filling out the remainder of the page", Size: 11, X: 72, Y: 230, Index: 2},
		},
	}
}

func TestProcess_RetriesTransientParseFailures(t *testing.T) {
	parser := &fakeParser{failUntil: 2, doc: sampleDocument()}
	r := &Runner{
		Parser:      parser,
		Engine:      engine.Default(),
		MaxAttempts: 3,
		Backoff:     time.Millisecond,
	}
	res := r.Process(context.Background(), writePDF(t, "doc.pdf"))
	if res.Status != StatusOK {
		t.Fatalf("status = %s (%s), want ok", res.Status, res.Reason)
	}
	if parser.calls != 3 {
		t.Fatalf("parser called %d times, want 3", parser.calls)
	}
	if res.Outline.Title != "Title Page" {
		t.Fatalf("outline title = %q", res.Outline.Title)
	}
}

func TestProcess_FailsAfterExhaustedRetries(t *testing.T) {
	parser := &fakeParser{failUntil: -1}
	r := &Runner{
		Parser:      parser,
		Engine:      engine.Default(),
		MaxAttempts: 2,
		Backoff:     time.Millisecond,
	}
	res := r.Process(context.Background(), writePDF(t, "doc.pdf"))
	if res.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", res.Status)
	}
	if !strings.Contains(res.Reason, "parse") {
		t.Fatalf("reason = %q, want a parse failure", res.Reason)
	}
	if parser.calls != 2 {
		t.Fatalf("parser called %d times, want 2", parser.calls)
	}
}

func TestProcess_SkipsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	parser := &fakeParser{doc: sampleDocument()}
	r := &Runner{Parser: parser, Engine: engine.Default()}
	res := r.Process(context.Background(), path)
	if res.Status != StatusSkipped {
		t.Fatalf("status = %s, want skipped", res.Status)
	}
	if parser.calls != 0 {
		t.Fatal("parser must not run for rejected inputs")
	}
}

func TestProcess_SkipsOverLongDocuments(t *testing.T) {
	doc := sampleDocument()
	doc.PageCount = 1200
	r := &Runner{
		Parser:   &fakeParser{doc: doc},
		Engine:   engine.Default(),
		MaxPages: 1000,
	}
	res := r.Process(context.Background(), writePDF(t, "doc.pdf"))
	if res.Status != StatusSkipped {
		t.Fatalf("status = %s, want skipped", res.Status)
	}
	if !strings.Contains(res.Reason, "page count") {
		t.Fatalf("reason = %q", res.Reason)
	}
}

func TestProcess_TimeoutFailsDocument(t *testing.T) {
	r := &Runner{
		Parser:      blockingParser{},
		Engine:      engine.Default(),
		Timeout:     20 * time.Millisecond,
		MaxAttempts: 1,
	}
	res := r.Process(context.Background(), writePDF(t, "doc.pdf"))
	if res.Status != StatusFailed {
		t.Fatalf("status = %s (%s), want failed", res.Status, res.Reason)
	}
}

func TestProcess_BreakerSkipsAfterConsecutiveFailures(t *testing.T) {
	r := &Runner{
		Parser:      &fakeParser{failUntil: -1},
		Engine:      engine.Default(),
		MaxAttempts: 1,
		Breaker:     NewBreaker(2),
	}
	first := r.Process(context.Background(), writePDF(t, "a.pdf"))
	second := r.Process(context.Background(), writePDF(t, "b.pdf"))
	third := r.Process(context.Background(), writePDF(t, "c.pdf"))
	if first.Status != StatusFailed || second.Status != StatusFailed {
		t.Fatalf("first two must fail, got %s/%s", first.Status, second.Status)
	}
	if third.Status != StatusSkipped || !strings.Contains(third.Reason, "circuit") {
		t.Fatalf("third = %s (%s), want a circuit-open skip", third.Status, third.Reason)
	}
}

func TestBreaker(t *testing.T) {
	b := NewBreaker(2)
	if !b.Allow() {
		t.Fatal("fresh breaker must allow")
	}
	b.Failure()
	if !b.Allow() {
		t.Fatal("one failure below threshold must still allow")
	}
	b.Failure()
	if b.Allow() {
		t.Fatal("breaker must open at the threshold")
	}
	b.Success()
	if !b.Allow() {
		t.Fatal("a success must close the breaker")
	}

	var nilBreaker *Breaker
	if !nilBreaker.Allow() {
		t.Fatal("nil breaker must always allow")
	}
	nilBreaker.Failure()
	nilBreaker.Success()

	if !NewBreaker(0).Allow() {
		t.Fatal("zero threshold must never open")
	}
}
