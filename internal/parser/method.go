package parser

import (
	"strings"

	"github.com/toyz/reflector/internal/annotations"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/models"
	"github.com/toyz/reflector/internal/scanner"
)

type flagWord struct {
	word string
	flag models.MethodFlags
}

var methodSpecifiers = []flagWord{
	{"virtual", models.MethodVirtual},
	{"static", models.MethodStatic},
	{"inline", models.MethodInline},
	{"explicit", models.MethodExplicit},
}

var methodQualifiers = []flagWord{
	{"const", models.MethodConst},
	{"final", models.MethodFinal},
	{"noexcept", models.MethodNoexcept},
}

func (s *fileScanner) parseMethod(class *models.Class, rest, next string, lineNum int, comments []string) (*models.Method, error) {
	attrs, err := annotations.DecodeAttributes(rest)
	if err != nil {
		return nil, s.fail(err, lineNum-1)
	}

	method := &models.Method{Declaration: models.Declaration{
		DeclarationLine: lineNum,
		Access:          s.access,
		Attributes:      attrs,
		Comments:        comments,
	}}

	c := scanner.New(next)
	for swallowFlag(c, methodSpecifiers, &method.Flags) {
	}

	returnType := strings.TrimSpace(c.ScanType())
	c.SkipSpace()

	name := c.ScanIdentifier()
	if name == "" {
		return nil, errors.SyntaxError("expected method name").WithLocation(errors.SourceLocation{Column: c.Column()})
	}
	method.Name = strings.Clone(name)

	c.SkipSpace()
	params, err := scanParameterList(c)
	if err != nil {
		return nil, err
	}
	method.SetParameters(strings.Clone(params))

	for swallowFlag(c, methodQualifiers, &method.Flags) {
	}

	tail := c.Rest()
	if returnType == "auto" {
		if err := c.Expect("->"); err != nil {
			return nil, err
		}
		tail = c.Rest()
	}
	if end := strings.IndexAny(tail, "{;="); end >= 0 {
		if tail[end] == '=' && isPureSpecifier(tail[end+1:]) {
			method.Flags.Set(models.MethodAbstract)
		}
		tail = tail[:end]
	}
	if returnType == "auto" {
		tail = strings.TrimSpace(tail)
		tail = strings.TrimSpace(strings.TrimSuffix(tail, "override"))
		returnType = tail
	}
	method.Type = strings.Clone(returnType)

	if v, ok := attrs.Lookup("UniqueName"); ok {
		unique, isString := v.AsString()
		if !isString {
			return nil, errors.SyntaxError("`UniqueName` must be a string")
		}
		method.UniqueName = unique
	}

	if err := resolveProperty(class, method, lineNum); err != nil {
		return nil, err
	}
	return method, nil
}

// scanParameterList consumes a balanced `( ... )` and returns the text
// inside it.
func scanParameterList(c *scanner.Cursor) (string, error) {
	if c.Peek() != '(' {
		return "", errors.ExpectedToken("(", c.Column())
	}
	rest := c.Rest()
	depth := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				c.Advance(i + 1)
				c.SkipSpace()
				return rest[1:i], nil
			}
		}
	}
	return "", errors.ExpectedToken(")", c.Column()+len(rest))
}

func swallowFlag(c *scanner.Cursor, words []flagWord, flags *models.MethodFlags) bool {
	for _, w := range words {
		if c.SwallowKeyword(w.word) {
			flags.Set(w.flag)
			return true
		}
	}
	return false
}

// isPureSpecifier reports whether the text after `=` is `0`, as in
// `virtual void Tick() = 0;`.
func isPureSpecifier(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0") {
		return false
	}
	s = strings.TrimSpace(s[1:])
	return s == "" || s[0] == ';'
}
