package pdf

import (
	"strconv"
	"strings"

	"github.com/ironsupr/DocuDots/internal/fragment"
)

// textState tracks the subset of the PDF text state machine needed to place
// fragments: the current font, size, leading, and a naive text position.
// Rotation and scaling components of the text matrix are ignored; headings
// are judged on vertical order and rough horizontal placement only.
type textState struct {
	font    string
	size    float64
	leading float64
	x, y    float64
}

// parseContent walks one page's content stream and emits a fragment per
// text-showing operator. The y coordinate is flipped so fragments use a
// top-left origin.
func parseContent(data []byte, page int, pageHeight float64, fonts map[string]string, index *int) []fragment.TextFragment {
	var (
		frags []fragment.TextFragment
		st    textState
		nums  []float64
		strs  []string
		names []string
		parts []token // strings and numbers in operand order, for TJ
	)

	emit := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		base := fonts[st.font]
		if base == "" {
			base = st.font
		}
		bold, italic := styleFromFontName(base)
		y := st.y
		if pageHeight > 0 {
			y = pageHeight - st.y
		}
		frags = append(frags, fragment.TextFragment{
			Text:   text,
			Page:   page,
			X:      st.x,
			Y:      y,
			Size:   st.size,
			Font:   fontFamily(base),
			Bold:   bold,
			Italic: italic,
			Index:  *index,
		})
		*index++
	}

	reset := func() {
		nums = nums[:0]
		strs = strs[:0]
		names = names[:0]
		parts = parts[:0]
	}

	lastNum := func(n int) float64 {
		if len(nums) < n {
			return 0
		}
		return nums[len(nums)-n]
	}

	tok := newTokenizer(data)
	for {
		t, ok := tok.next()
		if !ok {
			break
		}
		switch t.kind {
		case tokNumber:
			nums = append(nums, t.num)
			parts = append(parts, t)
		case tokString:
			strs = append(strs, t.str)
			parts = append(parts, t)
		case tokName:
			names = append(names, t.str)
		case tokOperator:
			switch t.str {
			case "BT":
				st.x, st.y = 0, 0
			case "Tf":
				if len(names) > 0 {
					st.font = names[len(names)-1]
				}
				st.size = lastNum(1)
			case "TL":
				st.leading = lastNum(1)
			case "Td":
				st.x += lastNum(2)
				st.y += lastNum(1)
			case "TD":
				st.leading = -lastNum(1)
				st.x += lastNum(2)
				st.y += lastNum(1)
			case "Tm":
				if len(nums) >= 6 {
					st.x = nums[len(nums)-2]
					st.y = nums[len(nums)-1]
				}
			case "T*":
				st.y -= st.leading
			case "Tj":
				if len(strs) > 0 {
					emit(strs[len(strs)-1])
				}
			case "'":
				st.y -= st.leading
				if len(strs) > 0 {
					emit(strs[len(strs)-1])
				}
			case "\"":
				st.y -= st.leading
				if len(strs) > 0 {
					emit(strs[len(strs)-1])
				}
			case "TJ":
				if len(strs) > 0 {
					emit(joinKerned(parts))
				}
			}
			reset()
		}
	}
	return frags
}

// tjWordGap is the kerning adjustment, in thousandths of a text-space unit,
// past which a TJ array element represents an inter-word gap rather than a
// glyph tweak.
const tjWordGap = 100.0

// joinKerned concatenates the strings of a TJ array, turning large negative
// kerning adjustments back into the spaces they encode.
func joinKerned(parts []token) string {
	var b strings.Builder
	for _, p := range parts {
		switch p.kind {
		case tokString:
			b.WriteString(p.str)
		case tokNumber:
			if p.num <= -tjWordGap {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokOperator
)

type token struct {
	kind tokenKind
	num  float64
	str  string
}

type tokenizer struct {
	data []byte
	pos  int
}

func newTokenizer(data []byte) *tokenizer {
	return &tokenizer{data: data}
}

func (t *tokenizer) next() (token, bool) {
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch {
		case isPDFSpace(c), c == '[', c == ']':
			t.pos++
		case c == '%':
			t.skipComment()
		case c == '(':
			return token{kind: tokString, str: t.readLiteralString()}, true
		case c == '<':
			if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
				t.skipDict()
				continue
			}
			return token{kind: tokString, str: t.readHexString()}, true
		case c == '/':
			return token{kind: tokName, str: t.readName()}, true
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			return t.readNumber()
		default:
			return token{kind: tokOperator, str: t.readOperator()}, true
		}
	}
	return token{}, false
}

func isPDFSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return isPDFSpace(c)
}

func (t *tokenizer) skipComment() {
	for t.pos < len(t.data) && t.data[t.pos] != '\n' && t.data[t.pos] != '\r' {
		t.pos++
	}
}

// skipDict consumes an inline dictionary, including any following inline
// image data up to EI when the dict opens a BI..EI block. Inline dicts show
// up rarely in content streams and carry no text.
func (t *tokenizer) skipDict() {
	depth := 0
	for t.pos < len(t.data) {
		if t.data[t.pos] == '<' && t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
			depth++
			t.pos += 2
			continue
		}
		if t.data[t.pos] == '>' && t.pos+1 < len(t.data) && t.data[t.pos+1] == '>' {
			depth--
			t.pos += 2
			if depth == 0 {
				return
			}
			continue
		}
		t.pos++
	}
}

// readLiteralString decodes a (...) literal, handling balanced parentheses,
// escape sequences, and octal escapes. Bytes are interpreted as Latin-1,
// which covers the standard simple-font encodings well enough for outline
// text.
func (t *tokenizer) readLiteralString() string {
	t.pos++ // consume '('
	var b strings.Builder
	depth := 1
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch c {
		case '\\':
			t.pos++
			if t.pos >= len(t.data) {
				return b.String()
			}
			e := t.data[t.pos]
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b', 'f':
				// ignored control characters
			case '\n':
				// line continuation
			case '\r':
				if t.pos+1 < len(t.data) && t.data[t.pos+1] == '\n' {
					t.pos++
				}
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && t.pos+1 < len(t.data); k++ {
						nx := t.data[t.pos+1]
						if nx < '0' || nx > '7' {
							break
						}
						val = val*8 + int(nx-'0')
						t.pos++
					}
					b.WriteRune(rune(val))
				} else {
					b.WriteRune(rune(e))
				}
			}
			t.pos++
		case '(':
			depth++
			b.WriteByte('(')
			t.pos++
		case ')':
			depth--
			t.pos++
			if depth == 0 {
				return b.String()
			}
			b.WriteByte(')')
		default:
			b.WriteRune(rune(c))
			t.pos++
		}
	}
	return b.String()
}

// readHexString decodes a <...> hex string, again as Latin-1 bytes.
func (t *tokenizer) readHexString() string {
	t.pos++ // consume '<'
	var hex []byte
	for t.pos < len(t.data) && t.data[t.pos] != '>' {
		c := t.data[t.pos]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			hex = append(hex, c)
		}
		t.pos++
	}
	if t.pos < len(t.data) {
		t.pos++ // consume '>'
	}
	if len(hex)%2 == 1 {
		hex = append(hex, '0')
	}
	var b strings.Builder
	for i := 0; i+1 < len(hex); i += 2 {
		v, err := strconv.ParseUint(string(hex[i:i+2]), 16, 8)
		if err == nil {
			b.WriteRune(rune(v))
		}
	}
	return b.String()
}

func (t *tokenizer) readName() string {
	t.pos++ // consume '/'
	start := t.pos
	for t.pos < len(t.data) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	return string(t.data[start:t.pos])
}

func (t *tokenizer) readNumber() (token, bool) {
	start := t.pos
	t.pos++
	for t.pos < len(t.data) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	s := string(t.data[start:t.pos])
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Malformed number: surface it as an operator so state stays sane.
		return token{kind: tokOperator, str: s}, true
	}
	return token{kind: tokNumber, num: v}, true
}

func (t *tokenizer) readOperator() string {
	start := t.pos
	t.pos++
	for t.pos < len(t.data) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	return string(t.data[start:t.pos])
}
