package classify

import (
	"math"
	"unicode/utf8"

	"github.com/ironsupr/DocuDots/internal/fontstats"
	"github.com/ironsupr/DocuDots/internal/fragment"
)

// FilterConfig bounds the structural eligibility checks. Zero values fall
// back to the defaults.
type FilterConfig struct {
	// MaxHeadingRunes rejects fragments longer than this many characters;
	// long paragraphs are never headings. Default 200.
	MaxHeadingRunes int

	// FurnitureRatio is the fraction of pages a verbatim fragment may recur
	// on, at the same relative vertical position, before it is treated as a
	// running header or footer. Default 0.5.
	FurnitureRatio float64

	// FurnitureYTolerance is the relative vertical distance (fraction of
	// page height) within which two occurrences count as the same position.
	// Default 0.02.
	FurnitureYTolerance float64

	// MinFurniturePages is the minimum page count for furniture detection;
	// a single page has no cross-page repetition to judge. Default 2.
	MinFurniturePages int
}

func (c FilterConfig) withDefaults() FilterConfig {
	if c.MaxHeadingRunes <= 0 {
		c.MaxHeadingRunes = 200
	}
	if c.FurnitureRatio <= 0 {
		c.FurnitureRatio = 0.5
	}
	if c.FurnitureYTolerance <= 0 {
		c.FurnitureYTolerance = 0.02
	}
	if c.MinFurniturePages <= 0 {
		c.MinFurniturePages = 2
	}
	return c
}

// Filter rejects fragments structurally ineligible to be headings: body-sized
// text, page furniture repeated across pages, and over-long fragments. It is
// deliberately conservative; a false negative here is cheaper than flooding
// the scorer with body text.
func Filter(doc fragment.Document, frags []fragment.TextFragment, prof *fontstats.Profile, cfg FilterConfig) []fragment.TextFragment {
	cfg = cfg.withDefaults()
	furniture := detectFurniture(doc, frags, cfg)

	out := make([]fragment.TextFragment, 0, len(frags))
	for _, f := range frags {
		if f.Text == "" {
			continue
		}
		if prof.IsBodySized(f.Size) {
			continue
		}
		if utf8.RuneCountInString(f.Text) > cfg.MaxHeadingRunes {
			continue
		}
		if furniture[f.Text] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// detectFurniture finds normalized texts recurring on more than
// FurnitureRatio of the document's pages at the same relative vertical
// position: running headers, footers, and page numbers.
func detectFurniture(doc fragment.Document, frags []fragment.TextFragment, cfg FilterConfig) map[string]bool {
	pageCount := doc.PageCount
	if pageCount == 0 {
		for _, f := range frags {
			if f.Page+1 > pageCount {
				pageCount = f.Page + 1
			}
		}
	}
	if pageCount < cfg.MinFurniturePages {
		return nil
	}
	pageHeight := doc.PageHeight
	if pageHeight <= 0 {
		for _, f := range frags {
			if f.Y > pageHeight {
				pageHeight = f.Y
			}
		}
	}
	if pageHeight <= 0 {
		return nil
	}

	type occurrence struct {
		page int
		relY float64
	}
	seen := make(map[string][]occurrence)
	for _, f := range frags {
		seen[f.Text] = append(seen[f.Text], occurrence{f.Page, f.Y / pageHeight})
	}

	furniture := make(map[string]bool)
	for text, occs := range seen {
		if len(occs) < 2 {
			continue
		}
		// Count distinct pages where the text sits near the anchor position
		// of its first occurrence.
		anchor := occs[0].relY
		pages := make(map[int]bool)
		for _, o := range occs {
			if math.Abs(o.relY-anchor) <= cfg.FurnitureYTolerance {
				pages[o.page] = true
			}
		}
		if float64(len(pages))/float64(pageCount) > cfg.FurnitureRatio {
			furniture[text] = true
		}
	}
	return furniture
}
