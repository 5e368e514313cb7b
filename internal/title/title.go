// Package title isolates the document title from the first-page candidate
// pool. The rule set is stricter than, and independent of, the level bands:
// the title must carry the page's maximum font size.
package title

import (
	"github.com/ironsupr/DocuDots/internal/classify"
	"github.com/ironsupr/DocuDots/internal/fragment"
)

// sparsePageFragments is the fragment count below which the first page is
// considered sparse and the candidate window widens to the second page.
const sparsePageFragments = 3

// Select returns the document title and the document-order index of the
// fragment it came from, so the caller can keep the title out of the heading
// list. The index is -1 when no fragment qualified and the title is empty.
func Select(cands []classify.Candidate, frags []fragment.TextFragment) (string, int) {
	if len(frags) == 0 {
		return "", -1
	}

	maxPage := 0
	if countOnPage(frags, 0) < sparsePageFragments {
		maxPage = 1
	}

	// Page maximum across all fragments in the window, not just candidates.
	maxSize := 0.0
	for _, f := range frags {
		if f.Page <= maxPage && f.Size > maxSize {
			maxSize = f.Size
		}
	}

	// Highest composite-scored candidate carrying the maximum size, ties
	// broken by earliest document order.
	best := -1
	for i, c := range cands {
		f := c.Fragment
		if f.Page > maxPage || f.Size < maxSize {
			continue
		}
		if best == -1 ||
			c.Composite > cands[best].Composite ||
			(c.Composite == cands[best].Composite && f.Index < cands[best].Fragment.Index) {
			best = i
		}
	}
	if best >= 0 {
		return cands[best].Fragment.Text, cands[best].Fragment.Index
	}

	// Fallback: the single largest-font fragment in the window.
	var fb *fragment.TextFragment
	for i := range frags {
		f := &frags[i]
		if f.Page > maxPage {
			continue
		}
		if fb == nil || f.Size > fb.Size {
			fb = f
		}
	}
	if fb == nil {
		return "", -1
	}
	return fb.Text, fb.Index
}

func countOnPage(frags []fragment.TextFragment, page int) int {
	n := 0
	for _, f := range frags {
		if f.Page == page {
			n++
		}
	}
	return n
}
