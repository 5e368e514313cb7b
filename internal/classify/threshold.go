package classify

import "sort"

// ApplyThreshold drops candidates whose composite falls below the given
// percentile of the document's own candidate score distribution; they are
// treated as body text after all. The cut is relative because typographic
// conventions vary too much across documents for an absolute constant.
// Candidates at exactly the percentile value survive.
func ApplyThreshold(cands []Candidate, percentile float64) []Candidate {
	if len(cands) == 0 || percentile <= 0 {
		return cands
	}
	if percentile > 1 {
		percentile = 1
	}
	scores := make([]float64, len(cands))
	for i, c := range cands {
		scores[i] = c.Composite
	}
	sort.Float64s(scores)
	cut := scores[int(percentile*float64(len(scores)-1))]

	out := cands[:0]
	for _, c := range cands {
		if c.Composite >= cut {
			out = append(out, c)
		}
	}
	return out
}

// TopByScore keeps the n highest-composite candidates, breaking score ties
// toward earlier document order, and returns them re-sorted into document
// order. Used to enforce the per-document heading ceiling.
func TopByScore(cands []Candidate, n int) []Candidate {
	if n <= 0 || len(cands) <= n {
		return cands
	}
	byScore := make([]Candidate, len(cands))
	copy(byScore, cands)
	sort.SliceStable(byScore, func(i, j int) bool {
		if byScore[i].Composite != byScore[j].Composite {
			return byScore[i].Composite > byScore[j].Composite
		}
		return byScore[i].Fragment.Index < byScore[j].Fragment.Index
	})
	kept := byScore[:n]
	SortByDocumentOrder(kept)
	return kept
}
