// Package fragment defines the positioned, styled text fragments produced by
// the document parser and the normalization applied before classification.
package fragment

// TextFragment is a span of text with page, position, and style metadata.
// X and Y are in points with the origin at the top-left of the page. Index is
// the document-order index assigned at extraction and is strictly increasing
// across the whole document regardless of page.
type TextFragment struct {
	Text   string
	Page   int // 0-based page index
	X      float64
	Y      float64
	Size   float64
	Font   string
	Bold   bool
	Italic bool
	Index  int
}

// Document is one parsed document: the fragment sequence plus page geometry
// used for position scoring and furniture detection.
type Document struct {
	Fragments  []TextFragment
	PageCount  int
	PageWidth  float64
	PageHeight float64
}
