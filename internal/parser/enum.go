package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/reflector/internal/annotations"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/models"
	"github.com/toyz/reflector/internal/scanner"
)

// enumeratorLine is one line of an enum body, e.g. `A, B = 5, C,`
type enumeratorLine struct {
	Entries []*enumeratorEntry `parser:"@@ ( ',' @@? )*"`
}

// enumeratorEntry is a name with an optional integer value. Anything else
// up to the next comma, such as `1 << 3` or a constant, lands in Rest and is
// ignored.
type enumeratorEntry struct {
	Name  string   `parser:"@Ident"`
	Value *string  `parser:"( '=' @Int? )?"`
	Rest  []string `parser:"( @!',' )*"`
}

var enumeratorParser = participle.MustBuild[enumeratorLine](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//.*|/\*.*?\*/`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[-+]?[0-9]+`},
		{Name: "Punct", Pattern: `[=,]`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Other", Pattern: `.`},
	})),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// parseEnum reads the enum whose marker is on line index i and returns it
// with the index of its closing `};` line.
func (s *fileScanner) parseEnum(rest string, i int) (*models.Enum, int, error) {
	lineNum := i + 1
	attrs, err := annotations.DecodeAttributes(rest)
	if err != nil {
		return nil, i, s.fail(err, i)
	}

	enum := &models.Enum{Declaration: models.Declaration{
		DeclarationLine: lineNum,
		Attributes:      attrs,
	}}

	header := scanner.New(s.line(i + 1))
	if !header.SwallowKeyword("enum") || !(header.SwallowKeyword("class") || header.SwallowKeyword("struct")) {
		return nil, i, s.fail(errors.ExpectedToken("enum class", 1), i+1)
	}
	enum.Name = strings.Clone(header.ScanIdentifier())
	if enum.Name == "" {
		return nil, i, s.fail(errors.SyntaxError("expected enum name"), i+1)
	}

	var value int64

	// The opening brace may close the header line or stand on its own, or
	// the whole body may follow it: `enum class E { A, B = 5 };`
	tail := strings.TrimSpace(header.Rest())
	if open := strings.Index(tail, "{"); open >= 0 && strings.HasSuffix(tail, "};") {
		entries := strings.TrimSpace(tail[open+1 : len(tail)-2])
		if entries != "" {
			if err := s.addEnumerators(enum, entries, i+1, &value, nil, nil); err != nil {
				return nil, i, err
			}
		}
		return enum, i + 1, nil
	}

	body := i + 2
	if !strings.HasSuffix(tail, "{") {
		open := scanner.New(s.line(body))
		if err := open.Expect("{"); err != nil {
			return nil, i, s.fail(err, body)
		}
		body++
	}

	var (
		pendingAttrs    annotations.Attributes
		pendingComments []string
	)
	for j := body; j < len(s.lines); j++ {
		line := s.line(j)
		switch {
		case line == "};":
			return enum, j, nil
		case line == "":
			continue
		case strings.HasPrefix(line, "///"):
			pendingComments = append(pendingComments, strings.TrimSpace(line[3:]))
			continue
		case strings.HasPrefix(line, "//"), strings.HasPrefix(line, "/*"):
			continue
		}

		if markerRest, ok := annotations.Match(line, s.parser.markers.Enumerator); ok {
			pendingAttrs, err = annotations.DecodeAttributes(markerRest)
			if err != nil {
				return nil, i, s.fail(err, j)
			}
			continue
		}

		if !isIdentStart(line[0]) {
			pendingAttrs, pendingComments = nil, nil
			continue
		}

		if err := s.addEnumerators(enum, line, j, &value, pendingAttrs, pendingComments); err != nil {
			return nil, i, err
		}
		pendingAttrs, pendingComments = nil, nil
	}

	return nil, i, s.fail(errors.SyntaxErrorf("enum `%s` is missing its closing `};`", enum.Name), i)
}

// addEnumerators decodes the enumerators listed in text, found on line
// index j. value is the running value; attrs and comments go to the first
// enumerator only.
func (s *fileScanner) addEnumerators(enum *models.Enum, text string, j int, value *int64, attrs annotations.Attributes, comments []string) error {
	parsed, err := enumeratorParser.ParseString("", text)
	if err != nil {
		return s.fail(errors.Wrapf(errors.SyntaxErrorCode, err, "invalid enumerator: %v", err), j)
	}

	for _, entry := range parsed.Entries {
		if entry.Value != nil {
			if v, err := strconv.ParseInt(*entry.Value, 10, 64); err == nil {
				*value = v
			}
		}
		enum.Enumerators = append(enum.Enumerators, models.Enumerator{
			Declaration: models.Declaration{
				Name:            strings.Clone(entry.Name),
				DeclarationLine: j + 1,
				Attributes:      attrs,
				Comments:        comments,
			},
			Value: *value,
		})
		*value++
		attrs, comments = nil, nil
	}
	return nil
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
