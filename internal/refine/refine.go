// Package refine repairs the provisional outline into a logically consistent
// one: illegal level jumps are demoted, fragmented duplicate headings are
// merged, and the final sequence follows document order. Refinement never
// fails; it only demotes and merges, so an outline is always emitted even
// from a degenerate candidate set.
package refine

import (
	"github.com/ironsupr/DocuDots/internal/classify"
	"github.com/ironsupr/DocuDots/internal/outline"
)

// Refine runs the document-order-preserving passes over leveled candidates
// and produces the final heading sequence with 1-indexed pages.
func Refine(cands []classify.Candidate) []outline.Heading {
	if len(cands) == 0 {
		return nil
	}
	classify.SortByDocumentOrder(cands)

	headings := make([]outline.Heading, 0, len(cands))
	// A heading may sit at most one level deeper than the most recent
	// higher-level heading: an H3 before any H1/H2 is demoted to the nearest
	// legal level.
	maxDepth := 1
	for _, c := range cands {
		depth := c.Level.Depth()
		if depth == 0 {
			depth = 3
		}
		if depth > maxDepth {
			depth = maxDepth
		}
		if depth+1 <= 3 {
			maxDepth = depth + 1
		} else {
			maxDepth = 3
		}

		h := outline.Heading{
			Level: outline.LevelForDepth(depth),
			Text:  c.Fragment.Text,
			Page:  c.Fragment.Page + 1,
		}
		// Adjacent entries with identical level, text, and page are one
		// heading the extractor split into multiple runs.
		if n := len(headings); n > 0 && headings[n-1] == h {
			continue
		}
		headings = append(headings, h)
	}
	return headings
}
