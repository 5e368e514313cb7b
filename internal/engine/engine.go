// Package engine composes the classification pipeline for one document:
// normalize, profile, filter, score, band, refine, and title selection. The
// pipeline is pure and total: given any well-formed fragment sequence it
// produces an outline and never fails, so it can run unchanged and untimed
// under test while the resilience wrapper handles the messy outside world.
package engine

import (
	"errors"
	"fmt"

	"github.com/ironsupr/DocuDots/internal/classify"
	"github.com/ironsupr/DocuDots/internal/fontstats"
	"github.com/ironsupr/DocuDots/internal/fragment"
	"github.com/ironsupr/DocuDots/internal/level"
	"github.com/ironsupr/DocuDots/internal/outline"
	"github.com/ironsupr/DocuDots/internal/refine"
	"github.com/ironsupr/DocuDots/internal/title"
)

// Config holds the tunable knobs of the classification engine. The zero
// value is not usable; start from Default.
type Config struct {
	// Weights combine the factor sub-scores; they must sum to 1.0.
	Weights classify.Weights

	// ThresholdPercentile drops candidates scoring below this percentile of
	// the document's own candidate distribution.
	ThresholdPercentile float64

	// Filter bounds structural candidate eligibility.
	Filter classify.FilterConfig

	// MaxFragments truncates oversized fragment sequences instead of
	// failing the document. Zero disables the ceiling.
	MaxFragments int

	// MaxHeadings caps the emitted outline, preferring the highest
	// composite scores. Zero disables the ceiling.
	MaxHeadings int
}

// Default returns the standard engine configuration.
func Default() Config {
	return Config{
		Weights:             classify.DefaultWeights(),
		ThresholdPercentile: 0.25,
		MaxFragments:        10000,
		MaxHeadings:         50,
	}
}

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.ThresholdPercentile < 0 || c.ThresholdPercentile > 1 {
		return fmt.Errorf("score threshold percentile must be in [0,1], got %v", c.ThresholdPercentile)
	}
	return nil
}

// Analyze classifies one document's fragments into an outline. Resource
// ceilings truncate rather than fail; the returned warnings surface any
// truncation. A document with no extractable text yields an empty outline.
func Analyze(doc fragment.Document, cfg Config) (outline.Outline, []string) {
	var warnings []string

	frags := fragment.Normalize(doc.Fragments)
	if cfg.MaxFragments > 0 && len(frags) > cfg.MaxFragments {
		warnings = append(warnings,
			fmt.Sprintf("fragment count %d exceeds ceiling %d, truncating", len(frags), cfg.MaxFragments))
		frags = frags[:cfg.MaxFragments]
	}

	prof, err := fontstats.Build(frags)
	if err != nil {
		if errors.Is(err, fontstats.ErrEmptyDocument) {
			return outline.Outline{Headings: []outline.Heading{}}, warnings
		}
		// Build has no other failure mode; treat anything unexpected as empty.
		return outline.Outline{Headings: []outline.Heading{}}, warnings
	}

	survivors := classify.Filter(doc, frags, prof, cfg.Filter)
	scorer := classify.NewScorer(doc, frags, prof, cfg.Weights)
	cands := scorer.Score(survivors)
	cands = classify.ApplyThreshold(cands, cfg.ThresholdPercentile)

	docTitle, titleIndex := title.Select(cands, frags)
	if titleIndex >= 0 {
		cands = withoutFragment(cands, titleIndex)
	}

	cands = level.Assign(cands)
	if cfg.MaxHeadings > 0 && len(cands) > cfg.MaxHeadings {
		warnings = append(warnings,
			fmt.Sprintf("candidate count %d exceeds heading ceiling %d, truncating", len(cands), cfg.MaxHeadings))
		cands = classify.TopByScore(cands, cfg.MaxHeadings)
	}

	headings := refine.Refine(cands)
	if headings == nil {
		headings = []outline.Heading{}
	}
	return outline.Outline{Title: docTitle, Headings: headings}, warnings
}

// withoutFragment removes the candidate originating from the given
// document-order index; the title never reappears in the outline.
func withoutFragment(cands []classify.Candidate, index int) []classify.Candidate {
	out := cands[:0]
	for _, c := range cands {
		if c.Fragment.Index != index {
			out = append(out, c)
		}
	}
	return out
}
