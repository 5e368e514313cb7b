// Package classify turns normalized fragments into scored heading
// candidates: a structural eligibility filter followed by a weighted
// multi-factor scorer. Scoring is relative to the document's own typographic
// baseline, never to absolute constants.
package classify

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsupr/DocuDots/internal/fragment"
	"github.com/ironsupr/DocuDots/internal/outline"
)

// FactorScores holds the five normalized sub-scores plus the length factor,
// each in [0,1].
type FactorScores struct {
	Size       float64
	Typography float64
	Position   float64
	Pattern    float64
	Context    float64
	Length     float64
}

// Candidate is a fragment that survived filtering, with its raw factor
// sub-scores and composite. Level stays empty until the level assigner runs.
type Candidate struct {
	Fragment  fragment.TextFragment
	Scores    FactorScores
	Composite float64
	Level     outline.Level
}

// Weights are the fixed factor weights combined into the composite score.
// They must sum to 1.0.
type Weights struct {
	Size       float64 `yaml:"size"`
	Typography float64 `yaml:"typography"`
	Position   float64 `yaml:"position"`
	Pattern    float64 `yaml:"pattern"`
	Context    float64 `yaml:"context"`
	Length     float64 `yaml:"length"`
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{
		Size:       0.25,
		Typography: 0.25,
		Position:   0.20,
		Pattern:    0.15,
		Context:    0.10,
		Length:     0.05,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Size + w.Typography + w.Position + w.Pattern + w.Context + w.Length
}

// Validate rejects weight sets that are negative or do not sum to 1.0.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Size, w.Typography, w.Position, w.Pattern, w.Context, w.Length} {
		if v < 0 {
			return fmt.Errorf("factor weights must be non-negative, got %v", w)
		}
	}
	if s := w.Sum(); math.Abs(s-1.0) > 1e-9 {
		return fmt.Errorf("factor weights must sum to 1.0, got %.6f", s)
	}
	return nil
}

// Combine applies the weights to a set of sub-scores.
func (w Weights) Combine(s FactorScores) float64 {
	return w.Size*s.Size +
		w.Typography*s.Typography +
		w.Position*s.Position +
		w.Pattern*s.Pattern +
		w.Context*s.Context +
		w.Length*s.Length
}

// SortByDocumentOrder orders candidates by (page, document-order index).
func SortByDocumentOrder(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].Fragment, cands[j].Fragment
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		return a.Index < b.Index
	})
}
