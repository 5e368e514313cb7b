// Package lingua provides lightweight script detection and language-aware
// heading cues so the classifier works on documents that are not in English.
// Detection is purely statistical over Unicode ranges; no external language
// model is involved.
package lingua

import (
	"regexp"
	"strings"
	"unicode"
)

// Script identifiers returned by DetectScript.
const (
	ScriptUnknown    = "unknown"
	ScriptLatin      = "latin"
	ScriptCyrillic   = "cyrillic"
	ScriptArabic     = "arabic"
	ScriptHan        = "han"
	ScriptHiragana   = "hiragana"
	ScriptKatakana   = "katakana"
	ScriptHangul     = "hangul"
	ScriptThai       = "thai"
	ScriptDevanagari = "devanagari"
)

var scriptRanges = []struct {
	name  string
	table *unicode.RangeTable
}{
	{ScriptLatin, unicode.Latin},
	{ScriptCyrillic, unicode.Cyrillic},
	{ScriptArabic, unicode.Arabic},
	{ScriptHan, unicode.Han},
	{ScriptHiragana, unicode.Hiragana},
	{ScriptKatakana, unicode.Katakana},
	{ScriptHangul, unicode.Hangul},
	{ScriptThai, unicode.Thai},
	{ScriptDevanagari, unicode.Devanagari},
}

// DetectScript returns the dominant script of the text, i.e. the script
// covering the most letters. Digits and punctuation are ignored.
func DetectScript(text string) string {
	counts := make(map[string]int, 4)
	for _, r := range text {
		for _, s := range scriptRanges {
			if unicode.Is(s.table, r) {
				counts[s.name]++
				break
			}
		}
	}
	best := ScriptUnknown
	bestN := 0
	for _, s := range scriptRanges {
		if n := counts[s.name]; n > bestN {
			best, bestN = s.name, n
		}
	}
	return best
}

// arabicDiacritics matches Arabic combining marks removed during
// normalization so furniture matching and keyword lookup are stable.
var arabicDiacritics = regexp.MustCompile("[ً-ٰٟۖ-ۭ]")

// StripDiacritics removes Arabic combining marks. Other scripts pass through
// untouched.
func StripDiacritics(text string) string {
	if DetectScript(text) != ScriptArabic {
		return text
	}
	return arabicDiacritics.ReplaceAllString(text, "")
}

// sectionKeywords are section-opener words that strongly suggest a heading,
// grouped per language. Matching is whole-word and case-insensitive for
// Latin-script languages.
var sectionKeywords = map[string][]string{
	"english": {
		"chapter", "section", "part", "abstract", "introduction", "background",
		"methodology", "results", "discussion", "conclusion", "summary",
		"overview", "references", "bibliography", "appendix", "contents",
		"acknowledgments", "glossary", "index",
	},
	"spanish": {"capítulo", "sección", "parte", "introducción", "conclusión", "resumen", "índice", "referencias", "apéndice"},
	"french":  {"chapitre", "section", "partie", "introduction", "conclusion", "résumé", "références", "annexe", "sommaire"},
	"german":  {"kapitel", "abschnitt", "teil", "einführung", "fazit", "zusammenfassung", "inhalt", "literatur", "anhang"},
}

// cjkChapter matches chapter markers of the form 第N章 with either CJK or
// Arabic numerals.
var cjkChapter = regexp.MustCompile(`第[一二三四五六七八九十百0-9]+[章節节部]`)

// arabicChapter matches الفصل followed by a number in either digit system.
var arabicChapter = regexp.MustCompile(`الفصل\s+[0-9\x{0660}-\x{0669}]+`)

// devanagariChapter matches अध्याय followed by a number.
var devanagariChapter = regexp.MustCompile(`अध्याय\s+[0-9\x{0966}-\x{096F}]+`)

// IsSectionKeyword reports whether the text begins with, or consists of, a
// known section-opener for any supported language. It is a bounded lexical
// cue for the pattern factor, not a classifier on its own.
func IsSectionKeyword(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	switch DetectScript(t) {
	case ScriptHan, ScriptHiragana, ScriptKatakana:
		return cjkChapter.MatchString(t)
	case ScriptArabic:
		return arabicChapter.MatchString(t)
	case ScriptDevanagari:
		return devanagariChapter.MatchString(t)
	}
	lower := strings.ToLower(t)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(fields) == 0 {
		return false
	}
	first := fields[0]
	// Numbered headings put the keyword second: "1. Introduction".
	second := ""
	if len(fields) > 1 {
		second = fields[1]
	}
	for _, words := range sectionKeywords {
		for _, w := range words {
			if first == w || second == w {
				return true
			}
		}
	}
	return false
}
