package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ironsupr/DocuDots/internal/fragment"
	"github.com/ironsupr/DocuDots/internal/outline"
)

func reportDocument() fragment.Document {
	return fragment.Document{
		PageCount:  1,
		PageWidth:  612,
		PageHeight: 792,
		Fragments: []fragment.TextFragment{
			{Text: "Annual Report 2024", Size: 28, Page: 0, X: 72, Y: 100, Bold: true, Index: 0},
			{Text: "1. Introduction", Size: 18, Page: 0, X: 72, Y: 220, Bold: true, Index: 1},
			{Text: "Lorem ipsum dolor sit amet, consectetur adipiscing elit", Size: 11, Page: 0, X: 72, Y: 250, Index: 2},
			{Text: "1.1 Background", Size: 14, Page: 0, X: 72, Y: 340, Italic: true, Index: 3},
		},
	}
}

func TestAnalyze_Report(t *testing.T) {
	got, warnings := Analyze(reportDocument(), Default())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if got.Title != "Annual Report 2024" {
		t.Fatalf("title = %q", got.Title)
	}
	want := []outline.Heading{
		{Level: outline.LevelH1, Text: "1. Introduction", Page: 1},
		{Level: outline.LevelH2, Text: "1.1 Background", Page: 1},
	}
	if !reflect.DeepEqual(got.Headings, want) {
		t.Fatalf("headings = %+v, want %+v", got.Headings, want)
	}
}

func TestAnalyze_TitleNeverInOutline(t *testing.T) {
	got, _ := Analyze(reportDocument(), Default())
	for _, h := range got.Headings {
		if h.Text == got.Title {
			t.Fatalf("title %q leaked into the outline", got.Title)
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	first, _ := Analyze(reportDocument(), Default())
	second, _ := Analyze(reportDocument(), Default())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated analysis diverged:\n%+v\n%+v", first, second)
	}
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	got, warnings := Analyze(fragment.Document{}, Default())
	if got.Title != "" {
		t.Fatalf("empty document title = %q", got.Title)
	}
	if got.Headings == nil || len(got.Headings) != 0 {
		t.Fatalf("empty document must yield an empty, non-nil heading list: %#v", got.Headings)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestAnalyze_TwoPageRunningHeaderExcluded(t *testing.T) {
	// A header repeated at the same position on every page of a two-page
	// document must never surface in the outline.
	doc := fragment.Document{
		PageCount:  2,
		PageWidth:  612,
		PageHeight: 792,
		Fragments: []fragment.TextFragment{
			{Text: "Company Confidential", Size: 13, Page: 0, X: 72, Y: 30, Index: 0},
			{Text: "Product Roadmap", Size: 24, Page: 0, X: 72, Y: 100, Bold: true, Index: 1},
			{Text: "1. Vision", Size: 16, Page: 0, X: 72, Y: 220, Bold: true, Index: 2},
			{Text: "prose describing the long term direction of the product", Size: 11, Page: 0, X: 72, Y: 250, Index: 3},
			{Text: "Company Confidential", Size: 13, Page: 1, X: 72, Y: 30, Index: 4},
			{Text: "2. Milestones", Size: 16, Page: 1, X: 72, Y: 120, Bold: true, Index: 5},
			{Text: "further prose laying out delivery milestones by quarter", Size: 11, Page: 1, X: 72, Y: 150, Index: 6},
		},
	}
	got, _ := Analyze(doc, Default())
	for _, h := range got.Headings {
		if h.Text == "Company Confidential" {
			t.Fatalf("running header promoted to a heading: %+v", got.Headings)
		}
	}
	texts := make(map[string]bool)
	for _, h := range got.Headings {
		texts[h.Text] = true
	}
	if !texts["1. Vision"] || !texts["2. Milestones"] {
		t.Fatalf("genuine headings missing: %+v", got.Headings)
	}
}

func TestAnalyze_FragmentCeiling(t *testing.T) {
	cfg := Default()
	cfg.MaxFragments = 2
	_, warnings := Analyze(reportDocument(), cfg)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "truncating") {
		t.Fatalf("expected a truncation warning, got %v", warnings)
	}
}

func TestAnalyze_HeadingCeiling(t *testing.T) {
	doc := fragment.Document{
		PageCount:  2,
		PageWidth:  612,
		PageHeight: 792,
		Fragments: []fragment.TextFragment{
			{Text: "Field Manual", Size: 30, Page: 0, X: 72, Y: 80, Bold: true, Index: 0},
			{Text: "1. Safety", Size: 22, Page: 0, X: 72, Y: 200, Bold: true, Index: 1},
			{Text: "general guidance text filling the page with prose", Size: 11, Page: 0, X: 72, Y: 230, Index: 2},
			{Text: "2. Operation", Size: 22, Page: 0, X: 72, Y: 400, Bold: true, Index: 3},
			{Text: "more running prose about day to day operation", Size: 11, Page: 0, X: 72, Y: 430, Index: 4},
			{Text: "3. Maintenance", Size: 22, Page: 1, X: 72, Y: 100, Bold: true, Index: 5},
			{Text: "closing prose on upkeep and scheduled inspections", Size: 11, Page: 1, X: 72, Y: 130, Index: 6},
		},
	}
	cfg := Default()
	cfg.MaxHeadings = 2
	got, warnings := Analyze(doc, cfg)
	if len(got.Headings) != 2 {
		t.Fatalf("heading ceiling ignored: %+v", got.Headings)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a truncation warning")
	}
	// Survivors stay in document order.
	if got.Headings[0].Page > got.Headings[1].Page {
		t.Fatalf("headings out of document order: %+v", got.Headings)
	}
}
