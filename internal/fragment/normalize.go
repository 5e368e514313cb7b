package fragment

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ironsupr/DocuDots/internal/lingua"
)

// mergeYTolerance is the maximum vertical distance, in points, for two
// fragments to be considered part of the same text run.
const mergeYTolerance = 2.0

// sizeTolerance bounds the font size difference for run merging.
const sizeTolerance = 0.1

// NormalizeText canonicalizes fragment text: NFC form, collapsed whitespace,
// Arabic diacritics stripped. The same function is used for furniture and
// duplicate matching so comparisons stay stable.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	s = lingua.StripDiacritics(s)
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize cleans and deduplicates a raw fragment sequence: zero-content
// fragments are dropped, text is canonicalized, and consecutive fragments
// split mid-run by the extractor are merged back into one span. The input
// slice is not modified; fragments keep the Index of the first run member.
func Normalize(frags []TextFragment) []TextFragment {
	out := make([]TextFragment, 0, len(frags))
	for _, f := range frags {
		f.Text = NormalizeText(f.Text)
		if f.Text == "" {
			continue
		}
		if n := len(out); n > 0 && sameRun(out[n-1], f) {
			out[n-1].Text = joinRun(out[n-1].Text, f.Text)
			continue
		}
		out = append(out, f)
	}
	return out
}

// sameRun reports whether b continues the text run started by a: same page,
// same style, same baseline, and adjacent in extraction order.
func sameRun(a, b TextFragment) bool {
	if a.Page != b.Page || a.Bold != b.Bold || a.Italic != b.Italic {
		return false
	}
	if a.Font != b.Font {
		return false
	}
	if diff := a.Size - b.Size; diff > sizeTolerance || diff < -sizeTolerance {
		return false
	}
	if diff := a.Y - b.Y; diff > mergeYTolerance || diff < -mergeYTolerance {
		return false
	}
	// Runs continue rightward on the same baseline.
	return b.X > a.X
}

// joinRun concatenates two run pieces. A trailing hyphen marks a soft break
// and is removed instead of inserting a space.
func joinRun(a, b string) string {
	if strings.HasSuffix(a, "-") && len(a) > 1 {
		return a[:len(a)-1] + b
	}
	return a + " " + b
}
