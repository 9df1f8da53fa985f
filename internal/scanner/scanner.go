// Package scanner implements the cursor primitives used to pick declarations
// apart line by line. Types and expressions are not parsed against a grammar;
// the scanner only balances [], () and <> and stops at top-level separators.
package scanner

import (
	"strings"

	"github.com/toyz/reflector/internal/errors"
)

// Cursor walks a single line of source text.
type Cursor struct {
	src string
	pos int
}

// New returns a cursor positioned at the start of line.
func New(line string) *Cursor {
	return &Cursor{src: line}
}

// Rest returns the text not consumed yet.
func (c *Cursor) Rest() string {
	return c.src[c.pos:]
}

// Column returns the 1-based column of the cursor.
func (c *Cursor) Column() int {
	return c.pos + 1
}

// Done reports whether the whole line has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.src)
}

// Peek returns the next byte, or 0 at end of line.
func (c *Cursor) Peek() byte {
	if c.Done() {
		return 0
	}
	return c.src[c.pos]
}

// HasPrefix reports whether the remaining text starts with lit.
func (c *Cursor) HasPrefix(lit string) bool {
	return strings.HasPrefix(c.Rest(), lit)
}

// SkipSpace advances past blanks.
func (c *Cursor) SkipSpace() {
	for !c.Done() && IsSpace(c.src[c.pos]) {
		c.pos++
	}
}

// Advance moves the cursor n bytes forward, clamped to the end of the line.
func (c *Cursor) Advance(n int) {
	c.pos += n
	if c.pos > len(c.src) {
		c.pos = len(c.src)
	}
}

// Expect consumes lit and any blanks after it, or fails with a syntax error
// pointing at the current column.
func (c *Cursor) Expect(lit string) error {
	if !c.HasPrefix(lit) {
		return errors.ExpectedToken(lit, c.Column())
	}
	c.pos += len(lit)
	c.SkipSpace()
	return nil
}

// SwallowOptional consumes lit and trailing blanks if present.
func (c *Cursor) SwallowOptional(lit string) bool {
	if !c.HasPrefix(lit) {
		return false
	}
	c.pos += len(lit)
	c.SkipSpace()
	return true
}

// SwallowKeyword behaves like SwallowOptional but only matches whole words,
// so "const" does not match the start of "constexpr".
func (c *Cursor) SwallowKeyword(word string) bool {
	if !c.HasPrefix(word) {
		return false
	}
	end := c.pos + len(word)
	if end < len(c.src) && IsIdent(c.src[end]) {
		return false
	}
	c.pos = end
	c.SkipSpace()
	return true
}

// ScanIdentifier consumes the longest run of identifier characters.
func (c *Cursor) ScanIdentifier() string {
	start := c.pos
	for !c.Done() && IsIdent(c.src[c.pos]) {
		c.pos++
	}
	return c.src[start:c.pos]
}

var (
	compoundKeywords = []string{"struct", "class", "enum", "union"}
	typeQualifiers   = []string{"const", "volatile"}
)

// ScanType consumes a type: any leading cv-qualifiers and compound-type
// keywords, then text up to the first blank outside of brackets. The span is
// returned as written, keywords included.
func (c *Cursor) ScanType() string {
	c.SkipSpace()
	start := c.pos
	for c.swallowAnyKeyword(typeQualifiers) || c.swallowAnyKeyword(compoundKeywords) {
	}

	var depth delimiterDepth
	for ; !c.Done(); c.pos++ {
		ch := c.src[c.pos]
		if depth.track(ch) {
			continue
		}
		if IsSpace(ch) && depth.zero() {
			break
		}
	}
	return c.src[start:c.pos]
}

// ScanExpression consumes an expression up to a top-level ',' or an
// unmatched ')'. Neither terminator is consumed.
func (c *Cursor) ScanExpression() string {
	start := c.pos
	var brackets, parens, angles int

scan:
	for ; !c.Done(); c.pos++ {
		switch c.src[c.pos] {
		case '[':
			brackets++
			continue
		case ']':
			if brackets > 0 {
				brackets--
			}
			continue
		case '(':
			parens++
			continue
		case ')':
			if parens > 0 {
				parens--
				continue
			}
			if brackets == 0 && angles == 0 {
				break scan
			}
			continue
		case '<':
			angles++
			continue
		case '>':
			angles--
			continue
		case ',':
			if parens == 0 && angles == 0 && brackets == 0 {
				break scan
			}
		}
	}
	return c.src[start:c.pos]
}

// ScanInheritance consumes a base-class list after the ':' of a class
// header, swallowing the access and virtual specifiers of the first base.
// It stops before '{' or a top-level ','. A closing delimiter without its
// opener fails with MismatchedDelimiters.
func (c *Cursor) ScanInheritance() (string, error) {
	c.SkipSpace()
	c.SwallowKeyword("public")
	c.SwallowKeyword("protected")
	c.SwallowKeyword("private")
	c.SwallowKeyword("virtual")

	start := c.pos
	var parens, angles, brackets int
	for ; !c.Done() && c.src[c.pos] != '{'; c.pos++ {
		switch c.src[c.pos] {
		case '(':
			parens++
		case ')':
			parens--
		case '<':
			angles++
		case '>':
			angles--
		case '[':
			brackets++
		case ']':
			brackets--
		case ',':
			if parens == 0 && angles == 0 && brackets == 0 {
				return strings.TrimSpace(c.src[start:c.pos]), nil
			}
		}
		if parens < 0 || angles < 0 || brackets < 0 {
			return "", errors.MismatchedDelimiters("class parents", c.Column())
		}
	}
	return strings.TrimSpace(c.src[start:c.pos]), nil
}

func (c *Cursor) swallowAnyKeyword(words []string) bool {
	for _, w := range words {
		if c.SwallowKeyword(w) {
			return true
		}
	}
	return false
}

// SplitArgs splits an argument list on commas that are outside of any
// brackets. Spans are returned untrimmed; empty input yields one empty span.
func SplitArgs(args string) []string {
	var (
		out   []string
		depth delimiterDepth
		start int
	)
	for i := 0; i < len(args); i++ {
		ch := args[i]
		if depth.track(ch) {
			continue
		}
		if ch == ',' && depth.zero() {
			out = append(out, args[start:i])
			start = i + 1
		}
	}
	return append(out, args[start:])
}

// delimiterDepth counts open brackets without asserting non-negative depth.
type delimiterDepth struct {
	brackets, parens, angles int
}

// track updates the counters for ch and reports whether ch was a delimiter.
func (d *delimiterDepth) track(ch byte) bool {
	switch ch {
	case '[':
		d.brackets++
	case ']':
		d.brackets--
	case '(':
		d.parens++
	case ')':
		d.parens--
	case '<':
		d.angles++
	case '>':
		d.angles--
	default:
		return false
	}
	return true
}

func (d *delimiterDepth) zero() bool {
	return d.brackets == 0 && d.parens == 0 && d.angles == 0
}

// IsIdent reports whether ch can appear in an identifier.
func IsIdent(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

// IsSpace reports whether ch is a blank.
func IsSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\v' || ch == '\f'
}

// TrailingIdentifier splits s into the text before its trailing identifier
// and the identifier itself. Both parts are trimmed.
func TrailingIdentifier(s string) (head, ident string) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && IsIdent(s[i-1]) {
		i--
	}
	return strings.TrimSpace(s[:i]), s[i:]
}
