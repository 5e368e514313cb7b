// Package fontstats derives per-document typographic statistics used as the
// scoring baseline: the body-text size, a size percentile table, and the
// dominant font family. Statistics are scoped to one document and read-only
// after Build, so parallel per-document workers stay independent.
package fontstats

import (
	"errors"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/ironsupr/DocuDots/internal/fragment"
)

// ErrEmptyDocument signals a document with zero extractable text. Callers
// emit an empty outline rather than aborting the batch.
var ErrEmptyDocument = errors.New("document has no extractable text")

// sizeBucket groups near-identical font sizes into half-point classes so
// floating point jitter from the extractor does not split the body class.
const sizeBucket = 0.5

// Profile holds the document-wide typographic baseline.
type Profile struct {
	// BodySize is the character-weighted modal font size: the size class
	// covering the largest total character count, ties broken toward the
	// smaller size since body text is rarely the largest class.
	BodySize float64

	// DominantFont is the font family carrying the most characters.
	DominantFont string

	sizes   []float64 // distinct bucketed sizes, ascending
	weights []float64 // character weight per size, same order
	total   float64
}

// Build computes the profile from normalized fragments.
func Build(frags []fragment.TextFragment) (*Profile, error) {
	if len(frags) == 0 {
		return nil, ErrEmptyDocument
	}

	sizeWeight := make(map[float64]float64)
	fontWeight := make(map[string]float64)
	for _, f := range frags {
		w := float64(utf8.RuneCountInString(f.Text))
		if w == 0 {
			continue
		}
		sizeWeight[bucket(f.Size)] += w
		fontWeight[f.Font] += w
	}
	if len(sizeWeight) == 0 {
		return nil, ErrEmptyDocument
	}

	p := &Profile{}
	for s, w := range sizeWeight {
		p.sizes = append(p.sizes, s)
		p.total += w
	}
	sort.Float64s(p.sizes)
	p.weights = make([]float64, len(p.sizes))
	for i, s := range p.sizes {
		p.weights[i] = sizeWeight[s]
	}

	// Modal class; scanning ascending makes ties resolve to the smaller size.
	best := -1.0
	for i, s := range p.sizes {
		if p.weights[i] > best {
			best = p.weights[i]
			p.BodySize = s
		}
	}

	bestW := -1.0
	for name, w := range fontWeight {
		if w > bestW || (w == bestW && name < p.DominantFont) {
			bestW = w
			p.DominantFont = name
		}
	}
	return p, nil
}

// Percentile reports the character-weighted percentile rank of a font size
// within this document, in [0,1]. Characters at exactly the given size count
// half, the usual mid-rank convention.
func (p *Profile) Percentile(size float64) float64 {
	if p.total == 0 {
		return 0
	}
	s := bucket(size)
	below := 0.0
	equal := 0.0
	for i, v := range p.sizes {
		switch {
		case v < s:
			below += p.weights[i]
		case v == s:
			equal += p.weights[i]
		}
	}
	return (below + equal/2) / p.total
}

// IsBodySized reports whether a size falls into the body class or below,
// using the same bucketing as Build so the filter and scorer agree on the
// baseline.
func (p *Profile) IsBodySized(size float64) bool {
	return bucket(size) <= p.BodySize
}

// MaxSize returns the largest size class observed.
func (p *Profile) MaxSize() float64 {
	if len(p.sizes) == 0 {
		return 0
	}
	return p.sizes[len(p.sizes)-1]
}

func bucket(size float64) float64 {
	return math.Round(size/sizeBucket) * sizeBucket
}
