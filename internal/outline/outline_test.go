package outline

import (
	"strings"
	"testing"
)

func TestJSON_EmptyOutline(t *testing.T) {
	b, err := Outline{}.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	got := strings.TrimSpace(string(b))
	want := "{\n  \"title\": \"\",\n  \"outline\": []\n}"
	if got != want {
		t.Fatalf("empty outline JSON mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestJSON_ExactShape(t *testing.T) {
	o := Outline{
		Title: "Annual Report 2024",
		Headings: []Heading{
			{Level: LevelH1, Text: "1. Introduction", Page: 1},
			{Level: LevelH2, Text: "1.1 Background", Page: 1},
		},
	}
	b, err := o.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	s := string(b)
	for _, want := range []string{
		`"title": "Annual Report 2024"`,
		`"level": "H1"`,
		`"text": "1. Introduction"`,
		`"page": 1`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
	// No fields beyond the contract.
	for _, reject := range []string{"score", "font", "position", "index"} {
		if strings.Contains(s, reject) {
			t.Fatalf("output leaked internal field %q:\n%s", reject, s)
		}
	}
}

func TestJSON_NonASCIIUnescaped(t *testing.T) {
	o := Outline{Title: "第1章 序論", Headings: []Heading{{Level: LevelH1, Text: "背景", Page: 2}}}
	b, err := o.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(string(b), "第1章 序論") || !strings.Contains(string(b), "背景") {
		t.Fatalf("non-ASCII text was escaped: %s", b)
	}
}

func TestLevelDepthRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelH1, LevelH2, LevelH3} {
		if LevelForDepth(l.Depth()) != l {
			t.Fatalf("depth round trip failed for %s", l)
		}
	}
	if LevelForDepth(0) != LevelH1 || LevelForDepth(9) != LevelH3 {
		t.Fatalf("out-of-range depths must clamp")
	}
}
