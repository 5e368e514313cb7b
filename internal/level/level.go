// Package level buckets scored candidates into H1/H2/H3 using the score
// distribution of the document itself. The banding is a largest-gap search
// over the distinct composite scores rather than fixed absolute cutoffs, so
// it adapts to each document's own separation between heading tiers.
package level

import (
	"sort"

	"github.com/ironsupr/DocuDots/internal/classify"
	"github.com/ironsupr/DocuDots/internal/outline"
)

// Assign tags every candidate with a provisional level. Distinct composite
// scores are sorted descending and the two largest gaps between consecutive
// scores become the H1/H2 and H2/H3 cut points. With fewer than three
// distinct clusters the lower levels are simply not used; a document may
// legitimately have only H1s. When two gaps tie, the higher-score gap wins,
// which promotes ambiguous candidates rather than demoting them.
func Assign(cands []classify.Candidate) []classify.Candidate {
	if len(cands) == 0 {
		return cands
	}

	distinct := distinctScoresDescending(cands)
	h1Cut, h2Cut := cutPoints(distinct)

	for i := range cands {
		switch score := cands[i].Composite; {
		case score >= h1Cut:
			cands[i].Level = outline.LevelH1
		case score >= h2Cut:
			cands[i].Level = outline.LevelH2
		default:
			cands[i].Level = outline.LevelH3
		}
	}
	return cands
}

func distinctScoresDescending(cands []classify.Candidate) []float64 {
	seen := make(map[float64]bool, len(cands))
	var scores []float64
	for _, c := range cands {
		if !seen[c.Composite] {
			seen[c.Composite] = true
			scores = append(scores, c.Composite)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	return scores
}

// cutPoints returns the minimum score for H1 and for H2. Scores below the H2
// cut are H3. The cuts sit at the lower edge of the score immediately above
// each of the two largest gaps.
func cutPoints(desc []float64) (h1Cut, h2Cut float64) {
	switch len(desc) {
	case 0:
		return 0, 0
	case 1:
		// Single cluster: everything is H1.
		return desc[0], desc[0]
	}

	// Gap i sits between desc[i] and desc[i+1].
	first, second := -1, -1
	for i := 0; i+1 < len(desc); i++ {
		g := desc[i] - desc[i+1]
		switch {
		case first == -1 || g > gapAt(desc, first):
			second = first
			first = i
		case second == -1 || g > gapAt(desc, second):
			second = i
		}
	}

	if second == -1 {
		// Two clusters: single gap splits H1 from H2.
		return desc[first], desc[len(desc)-1]
	}
	lo, hi := first, second
	if lo > hi {
		lo, hi = hi, lo
	}
	return desc[lo], desc[hi]
}

func gapAt(desc []float64, i int) float64 {
	return desc[i] - desc[i+1]
}
