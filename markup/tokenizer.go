package markup

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// TokenType discriminates the lexical tokens produced by the Tokenizer.
type TokenType int

const (
	TagOpen TokenType = iota
	TagClose
	Text
	EntityRef
)

// Attr is a single tag attribute. An attribute written without a value
// keeps an empty Value.
type Attr struct {
	Name  string
	Value string
}

// Token is one lexical unit of the markup stream. Tokens are ephemeral:
// the builder consumes each one as it is produced.
type Token struct {
	Type        TokenType
	Name        string // tag name, lowercased; TagOpen and TagClose only
	Attrs       []Attr // TagOpen only
	Text        string // Text and EntityRef; entities arrive already decoded
	SelfClosing bool   // TagOpen written as <name/>
}

// Attr returns the value of the named attribute and whether it was present.
func (t Token) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Tokenizer scans raw markup into a lazy sequence of Tokens. It never fails:
// malformed constructs degrade to literal text, and a tag left unterminated
// at end-of-input is treated as closed there. The source is uncontrolled
// third-party markup, so display stays best-effort.
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer returns a Tokenizer positioned at the start of input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Reset rewinds the Tokenizer so the sequence can be replayed.
func (t *Tokenizer) Reset() {
	t.pos = 0
}

// Next returns the next token. ok is false once the input is exhausted.
func (t *Tokenizer) Next() (tok Token, ok bool) {
	for t.pos < len(t.input) {
		switch t.input[t.pos] {
		case '<':
			if tok, ok := t.readTag(); ok {
				return tok, true
			}
			// Comment, doctype or processing instruction: skipped, keep scanning.
		case '&':
			return t.readEntity(), true
		default:
			return t.readText(), true
		}
	}
	return Token{}, false
}

// readTag scans a construct starting at '<'. ok is false when the construct
// produces no token (comments, doctype, processing instructions).
func (t *Tokenizer) readTag() (Token, bool) {
	rest := t.input[t.pos+1:]

	switch {
	case strings.HasPrefix(rest, "!--"):
		if end := strings.Index(rest[3:], "-->"); end >= 0 {
			t.pos += 1 + 3 + end + 3
		} else {
			t.pos = len(t.input)
		}
		return Token{}, false
	case strings.HasPrefix(rest, "?"):
		if end := strings.Index(rest, "?>"); end >= 0 {
			t.pos += 1 + end + 2
		} else {
			t.pos = len(t.input)
		}
		return Token{}, false
	case strings.HasPrefix(rest, "!"):
		if end := strings.IndexByte(rest, '>'); end >= 0 {
			t.pos += 1 + end + 1
		} else {
			t.pos = len(t.input)
		}
		return Token{}, false
	case strings.HasPrefix(rest, "/"):
		return t.readCloseTag()
	}

	if t.pos+1 >= len(t.input) || !isNameStart(t.input[t.pos+1]) {
		// Not markup at all (e.g. "a < b"): the '<' is literal text.
		return t.readText(), true
	}
	return t.readOpenTag(), true
}

func (t *Tokenizer) readCloseTag() (Token, bool) {
	t.pos += 2 // consume "</"
	name := t.readName()
	// Tolerate junk between the name and '>'; an unterminated close tag
	// ends at end-of-input.
	if end := strings.IndexByte(t.input[t.pos:], '>'); end >= 0 {
		t.pos += end + 1
	} else {
		t.pos = len(t.input)
	}
	if name == "" {
		return Token{}, false
	}
	return Token{Type: TagClose, Name: name}, true
}

func (t *Tokenizer) readOpenTag() Token {
	t.pos++ // consume '<'
	tok := Token{Type: TagOpen, Name: t.readName()}

	for t.pos < len(t.input) {
		t.skipSpace()
		if t.pos >= len(t.input) {
			break
		}
		switch t.input[t.pos] {
		case '>':
			t.pos++
			return tok
		case '/':
			t.pos++
			t.skipSpace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				tok.SelfClosing = true
				return tok
			}
			// Stray slash inside the tag; ignore it.
			continue
		}
		name, value, found := t.readAttr()
		if !found {
			// Unparseable byte inside the tag; skip it rather than fail.
			t.pos++
			continue
		}
		tok.Attrs = append(tok.Attrs, Attr{Name: name, Value: value})
	}
	// Unterminated tag: treated as closed at end-of-input.
	return tok
}

func (t *Tokenizer) readAttr() (name, value string, found bool) {
	name = t.readName()
	if name == "" {
		return "", "", false
	}
	t.skipSpace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		// Attribute without a value defaults to the empty string.
		return name, "", true
	}
	t.pos++
	t.skipSpace()
	return name, t.readAttrValue(), true
}

func (t *Tokenizer) readAttrValue() string {
	if t.pos >= len(t.input) {
		return ""
	}
	if q := t.input[t.pos]; q == '"' || q == '\'' {
		t.pos++
		start := t.pos
		for t.pos < len(t.input) && t.input[t.pos] != q {
			t.pos++
		}
		value := t.input[start:t.pos]
		if t.pos < len(t.input) {
			t.pos++ // closing quote; an unterminated value runs to end-of-input
		}
		return html.UnescapeString(value)
	}
	start := t.pos
	for t.pos < len(t.input) && !isSpace(t.input[t.pos]) && t.input[t.pos] != '>' {
		t.pos++
	}
	return html.UnescapeString(t.input[start:t.pos])
}

// readEntity scans a character reference at '&'. A reference that does not
// decode stays literal text.
func (t *Tokenizer) readEntity() Token {
	end := t.pos + 1
	for end < len(t.input) && end-t.pos < 32 && isEntityChar(t.input[end]) {
		end++
	}
	if end < len(t.input) && t.input[end] == ';' {
		raw := t.input[t.pos : end+1]
		if decoded := html.UnescapeString(raw); decoded != raw {
			t.pos = end + 1
			return Token{Type: EntityRef, Text: decoded}
		}
	}
	// Unknown or bare '&': literal text through the following run.
	return t.readText()
}

// readText scans a run of plain text, collapsing interior whitespace while
// preserving a single boundary space so inline flow keeps word breaks
// (the space in "</b> there" is significant).
func (t *Tokenizer) readText() Token {
	start := t.pos
	t.pos++ // first byte is consumed unconditionally, even '<' or '&'
	for t.pos < len(t.input) && t.input[t.pos] != '<' && t.input[t.pos] != '&' {
		t.pos++
	}
	return Token{Type: Text, Text: collapseSpace(t.input[start:t.pos])}
}

func (t *Tokenizer) readName() string {
	start := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *Tokenizer) skipSpace() {
	for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
		t.pos++
	}
}

// collapseSpace folds each whitespace run to a single space. A run at either
// boundary survives as one space; an all-whitespace segment becomes " ".
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '_' || c == ':'
}

func isEntityChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '#'
}
