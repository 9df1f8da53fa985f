package parser

import (
	"strings"

	"github.com/toyz/reflector/internal/annotations"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/models"
	"github.com/toyz/reflector/internal/scanner"
)

// parseField reads `[mutable] Type Name [= init];` or `Type Name{init};`.
// The declaration must be the only thing on its line.
func (s *fileScanner) parseField(rest, next string, lineNum int, comments []string) (*models.Field, error) {
	attrs, err := annotations.DecodeAttributes(rest)
	if err != nil {
		return nil, s.fail(err, lineNum-1)
	}

	typ, name, init, err := parseFieldDecl(next, s.parser.markers.Field)
	if err != nil {
		return nil, err
	}

	field := &models.Field{
		Declaration: models.Declaration{
			Name:            name,
			DeclarationLine: lineNum,
			Access:          s.access,
			Attributes:      attrs,
			Comments:        comments,
		},
		Type:                   typ,
		DisplayName:            models.DisplayNameFor(name),
		InitializingExpression: init,
	}
	field.Flags = deriveFieldFlags(field.Type, attrs)
	return field, nil
}

func parseFieldDecl(line, marker string) (typ, name, init string, err error) {
	c := scanner.New(line)
	c.SwallowKeyword("mutable")
	decl := c.Rest()

	semi := strings.IndexByte(decl, ';')
	if semi < 0 {
		return "", "", "", errors.ExpectedToken(";", len(line)+1)
	}
	if strings.TrimSpace(decl[semi+1:]) != "" {
		return "", "", "", errors.SyntaxErrorf("%s() declaration must be the only thing on its line", marker)
	}
	decl = decl[:semi]

	typeAndName := decl
	eq := strings.IndexByte(decl, '=')
	brace := strings.IndexByte(decl, '{')
	switch {
	case brace >= 0 && (eq < 0 || brace < eq):
		end := strings.LastIndexByte(decl, '}')
		if end < brace || strings.TrimSpace(decl[end+1:]) != "" {
			return "", "", "", errors.ExpectedToken("}", len(line)-len(decl)+brace+1)
		}
		typeAndName = decl[:brace]
		init = strings.TrimSpace(decl[brace+1 : end])
	case eq >= 0:
		typeAndName = decl[:eq]
		init = strings.TrimSpace(decl[eq+1:])
	}

	typ, name = scanner.TrailingIdentifier(typeAndName)
	if typ == "" || name == "" {
		return "", "", "", errors.SyntaxErrorf("%s() must be followed by a proper class field declaration", marker)
	}
	return strings.Clone(typ), strings.Clone(name), strings.Clone(init), nil
}
