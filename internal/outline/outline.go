// Package outline defines the final artifact produced for one document:
// a title plus an ordered list of leveled headings, and its JSON shape.
package outline

import (
	"bytes"
	"encoding/json"
)

// Level is the hierarchy level of a heading.
type Level string

const (
	LevelH1 Level = "H1"
	LevelH2 Level = "H2"
	LevelH3 Level = "H3"
)

// Depth returns the numeric depth of a level: H1=1 .. H3=3. Unknown levels
// report 0.
func (l Level) Depth() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	}
	return 0
}

// LevelForDepth is the inverse of Depth. Depths outside [1,3] clamp to the
// nearest valid level.
func LevelForDepth(d int) Level {
	switch {
	case d <= 1:
		return LevelH1
	case d == 2:
		return LevelH2
	default:
		return LevelH3
	}
}

// Heading is one entry of the outline. Page is 1-indexed.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the sole externally visible artifact per document. Headings are
// ordered by document reading order, never by score.
type Outline struct {
	Title    string    `json:"title"`
	Headings []Heading `json:"outline"`
}

// MarshalJSON guarantees the outline array is emitted as [] rather than null
// when no headings were found.
func (o Outline) MarshalJSON() ([]byte, error) {
	type alias Outline
	a := alias(o)
	if a.Headings == nil {
		a.Headings = []Heading{}
	}
	return json.Marshal(a)
}

// JSON renders the outline in the exact output shape: two-space indent,
// UTF-8 text left unescaped so non-Latin headings survive intact.
func (o Outline) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
