package pdf

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/ironsupr/DocuDots/internal/engine"
	"github.com/ironsupr/DocuDots/internal/fragment"
)

// writeFixture renders a small report-shaped PDF with gofpdf and returns its
// path. Coordinates are in points with a top-left origin, matching the
// fragment convention, so positions can be asserted directly.
func writeFixture(t *testing.T) string {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 28)
	pdf.Text(72, 120, "Annual Report 2024")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(72, 220, "1. Introduction")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(72, 250, "Lorem ipsum dolor sit amet, consectetur adipiscing elit.")
	pdf.SetFont("Helvetica", "I", 14)
	pdf.Text(72, 340, "1.1 Background")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(72, 100, "2. Results")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(72, 130, "Further running text continues on the second page.")

	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("write fixture pdf: %v", err)
	}
	return path
}

func findFragment(frags []fragment.TextFragment, text string) (fragment.TextFragment, bool) {
	for _, f := range frags {
		if f.Text == text {
			return f, true
		}
	}
	return fragment.TextFragment{}, false
}

func TestParse_Fixture(t *testing.T) {
	doc, err := NewParser().Parse(context.Background(), writeFixture(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.PageCount != 2 {
		t.Fatalf("page count = %d, want 2", doc.PageCount)
	}
	if doc.PageWidth <= 0 || doc.PageHeight <= 0 {
		t.Fatalf("page geometry missing: %vx%v", doc.PageWidth, doc.PageHeight)
	}

	title, ok := findFragment(doc.Fragments, "Annual Report 2024")
	if !ok {
		t.Fatalf("title fragment missing from %d fragments", len(doc.Fragments))
	}
	if math.Abs(title.Size-28) > 0.5 {
		t.Fatalf("title size = %v, want 28", title.Size)
	}
	if !title.Bold {
		t.Fatal("title must be detected as bold")
	}
	if title.Page != 0 {
		t.Fatalf("title page = %d, want 0", title.Page)
	}

	intro, ok := findFragment(doc.Fragments, "1. Introduction")
	if !ok {
		t.Fatal("introduction fragment missing")
	}
	if intro.Y <= title.Y {
		t.Fatalf("introduction (%v) must sit below the title (%v)", intro.Y, title.Y)
	}

	background, ok := findFragment(doc.Fragments, "1.1 Background")
	if !ok {
		t.Fatal("background fragment missing")
	}
	if !background.Italic {
		t.Fatal("background must be detected as italic")
	}

	results, ok := findFragment(doc.Fragments, "2. Results")
	if !ok {
		t.Fatal("second-page fragment missing")
	}
	if results.Page != 1 {
		t.Fatalf("results page = %d, want 1", results.Page)
	}

	// Document-order indexes are strictly increasing across pages.
	for i := 1; i < len(doc.Fragments); i++ {
		if doc.Fragments[i].Index <= doc.Fragments[i-1].Index {
			t.Fatalf("fragment indexes not strictly increasing at %d", i)
		}
	}
}

func TestParse_FixtureThroughEngine(t *testing.T) {
	doc, err := NewParser().Parse(context.Background(), writeFixture(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, warnings := engine.Analyze(doc, engine.Default())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if out.Title != "Annual Report 2024" {
		t.Fatalf("title = %q", out.Title)
	}
	texts := make(map[string]bool)
	for _, h := range out.Headings {
		texts[h.Text] = true
		if h.Text == "Annual Report 2024" {
			t.Fatal("title leaked into the outline")
		}
	}
	if !texts["1. Introduction"] || !texts["2. Results"] {
		t.Fatalf("expected section headings missing: %+v", out.Headings)
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want ParseError", err)
	}
}
