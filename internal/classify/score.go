package classify

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ironsupr/DocuDots/internal/fontstats"
	"github.com/ironsupr/DocuDots/internal/fragment"
	"github.com/ironsupr/DocuDots/internal/lingua"
)

// numberedPrefix matches section numbering like "1.", "2.1", "3)" at the
// start of a heading.
var numberedPrefix = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s+`)

// romanPrefix matches roman-numeral numbering like "IV." or "ii)".
var romanPrefix = regexp.MustCompile(`^(?i)[ivxlcdm]+[.)]\s+`)

// bulletPrefix matches common bullet markers.
var bulletPrefix = regexp.MustCompile(`^[•‣▪◦–-]\s+`)

// Scorer computes the five-factor composite score for filtered fragments.
// It is built once per document from the full normalized fragment sequence
// so positional factors can see each fragment's neighborhood.
type Scorer struct {
	weights Weights
	prof    *fontstats.Profile

	pageWidth  float64
	pageHeight float64

	// byPage holds every normalized fragment's Y, sorted ascending per page,
	// for gap lookups.
	byPage map[int][]float64

	// medianGap is the document's typical inter-line distance.
	medianGap float64
}

// NewScorer prepares a scorer over one document. The fragment slice must be
// the full normalized sequence, not just the filter survivors.
func NewScorer(doc fragment.Document, frags []fragment.TextFragment, prof *fontstats.Profile, w Weights) *Scorer {
	s := &Scorer{
		weights:    w,
		prof:       prof,
		pageWidth:  doc.PageWidth,
		pageHeight: doc.PageHeight,
		byPage:     make(map[int][]float64),
	}
	for _, f := range frags {
		s.byPage[f.Page] = append(s.byPage[f.Page], f.Y)
		if f.Y > s.pageHeight {
			s.pageHeight = f.Y
		}
		if f.X > s.pageWidth {
			s.pageWidth = f.X
		}
	}
	var gaps []float64
	for _, ys := range s.byPage {
		sort.Float64s(ys)
		for i := 1; i < len(ys); i++ {
			if g := ys[i] - ys[i-1]; g > 0 {
				gaps = append(gaps, g)
			}
		}
	}
	sort.Float64s(gaps)
	if len(gaps) > 0 {
		s.medianGap = gaps[len(gaps)/2]
	}
	return s
}

// Score produces a candidate per surviving fragment with all sub-scores and
// the weighted composite filled in.
func (s *Scorer) Score(survivors []fragment.TextFragment) []Candidate {
	cands := make([]Candidate, 0, len(survivors))
	for _, f := range survivors {
		fs := FactorScores{
			Size:       s.sizeScore(f),
			Typography: s.typographyScore(f),
			Position:   s.positionScore(f),
			Pattern:    patternScore(f.Text),
			Context:    s.contextScore(f),
			Length:     lengthScore(f.Text),
		}
		cands = append(cands, Candidate{
			Fragment:  f,
			Scores:    fs,
			Composite: s.weights.Combine(fs),
		})
	}
	return cands
}

// sizeScore maps the fragment's character-weighted size percentile onto
// [0,1] relative to the body-text percentile. Body-sized and smaller text
// scores zero.
func (s *Scorer) sizeScore(f fragment.TextFragment) float64 {
	if s.prof.IsBodySized(f.Size) {
		return 0
	}
	base := s.prof.Percentile(s.prof.BodySize)
	if base >= 1 {
		return 1
	}
	return clamp01((s.prof.Percentile(f.Size) - base) / (1 - base))
}

// typographyScore rewards bold and italic flags and a font family distinct
// from the document's dominant one.
func (s *Scorer) typographyScore(f fragment.TextFragment) float64 {
	score := 0.0
	if f.Bold {
		score += 0.6
	}
	if f.Italic {
		score += 0.2
	}
	if f.Font != "" && f.Font != s.prof.DominantFont {
		score += 0.2
	}
	return clamp01(score)
}

// positionScore favors fragments near the top of the page, aligned to the
// left margin, and separated from the text above by extra whitespace.
func (s *Scorer) positionScore(f fragment.TextFragment) float64 {
	top := 0.0
	if s.pageHeight > 0 {
		top = 1 - clamp01(f.Y/s.pageHeight)
	}
	left := 0.0
	if s.pageWidth > 0 {
		// Full credit within the left 15% of the page, fading to zero at 50%.
		left = 1 - clamp01((f.X/s.pageWidth-0.15)/0.35)
	}
	gap := s.gapAboveScore(f)
	return clamp01(0.5*top + 0.2*left + 0.3*gap)
}

// gapAboveScore compares the whitespace above the fragment with the
// document's typical inter-line gap. Fragments with nothing above them (top
// of page) get full credit.
func (s *Scorer) gapAboveScore(f fragment.TextFragment) float64 {
	above, ok := s.neighborAbove(f)
	if !ok {
		return 1
	}
	if s.medianGap <= 0 {
		return 0.5
	}
	return clamp01((f.Y - above) / (1.5 * s.medianGap))
}

func (s *Scorer) neighborAbove(f fragment.TextFragment) (float64, bool) {
	ys := s.byPage[f.Page]
	// Largest Y strictly below f.Y (minus jitter).
	i := sort.SearchFloat64s(ys, f.Y-0.5)
	if i == 0 {
		return 0, false
	}
	return ys[i-1], true
}

func (s *Scorer) neighborBelow(f fragment.TextFragment) (float64, bool) {
	ys := s.byPage[f.Page]
	i := sort.SearchFloat64s(ys, f.Y+0.5)
	if i >= len(ys) {
		return 0, false
	}
	return ys[i], true
}

// contextScore measures isolation: larger inter-line gaps on both sides than
// the surrounding body text, and a line short relative to the page width.
func (s *Scorer) contextScore(f fragment.TextFragment) float64 {
	iso := 0.0
	if above, ok := s.neighborAbove(f); !ok || (s.medianGap > 0 && f.Y-above > 1.3*s.medianGap) {
		iso += 0.5
	}
	if below, ok := s.neighborBelow(f); !ok || (s.medianGap > 0 && below-f.Y > 1.3*s.medianGap) {
		iso += 0.5
	}
	short := 1 - clamp01(float64(utf8.RuneCountInString(f.Text))/80)
	return clamp01(0.6*iso + 0.4*short)
}

// patternScore collects lexical heading cues: numbered-section prefixes,
// title casing, absence of terminal punctuation, bullet or all-caps styling,
// and language-aware section keywords.
func patternScore(text string) float64 {
	score := 0.0
	switch {
	case numberedPrefix.MatchString(text), romanPrefix.MatchString(text):
		score += 0.35
	case bulletPrefix.MatchString(text):
		score += 0.1
	}
	score += 0.25 * titleCaseRatio(text)
	if !hasTerminalPunctuation(text) {
		score += 0.2
	}
	if isAllCaps(text) {
		score += 0.1
	}
	if lingua.IsSectionKeyword(text) {
		score += 0.2
	}
	return clamp01(score)
}

// lengthScore is the inverse of word count: short fragments score high, and
// anything past twenty words is effectively prose.
func lengthScore(text string) float64 {
	words := len(strings.Fields(text))
	switch {
	case words == 0:
		return 0
	case words <= 4:
		return 1
	case words >= 20:
		return 0
	}
	return float64(20-words) / 16
}

func titleCaseRatio(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	cased := 0
	total := 0
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		if unicode.IsUpper(r) {
			cased++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(cased) / float64(total)
}

func hasTerminalPunctuation(text string) bool {
	r, size := utf8.DecodeLastRuneInString(text)
	if size == 0 {
		return false
	}
	switch r {
	case '.', '!', '?', ';', ',', '。', '؟':
		return true
	}
	return false
}

func isAllCaps(text string) bool {
	upper := 0
	lower := 0
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	return upper >= 3 && lower == 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
