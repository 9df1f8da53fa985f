package parser

import (
	"strings"

	"github.com/toyz/reflector/internal/annotations"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/models"
	"github.com/toyz/reflector/internal/scanner"
)

// parseClass reads `class|struct Name [final] [: [access] [virtual] Parent...]`.
func (s *fileScanner) parseClass(rest, next string, lineNum int, comments []string) (*models.Class, error) {
	attrs, err := annotations.DecodeAttributes(rest)
	if err != nil {
		return nil, s.fail(err, lineNum-1)
	}

	c := scanner.New(next)
	declaredStruct := c.SwallowKeyword("struct")
	if !declaredStruct && !c.SwallowKeyword("class") {
		return nil, errors.ExpectedToken("class", c.Column())
	}

	name := c.ScanIdentifier()
	if name == "" {
		return nil, errors.SyntaxError("expected class name").WithLocation(errors.SourceLocation{Column: c.Column()})
	}
	c.SkipSpace()
	c.SwallowKeyword("final")

	var parent string
	if c.SwallowOptional(":") {
		if parent, err = c.ScanInheritance(); err != nil {
			return nil, err
		}
	}

	class := &models.Class{
		Declaration: models.Declaration{
			Name:            strings.Clone(name),
			DeclarationLine: lineNum,
			Attributes:      attrs,
			Comments:        comments,
		},
		ParentClass: strings.Clone(parent),
	}
	if parent == "" {
		class.Flags.Set(models.ClassStruct)
	}
	if declaredStruct {
		class.Flags.Set(models.ClassDeclaredStruct)
	}
	if class.Flags.Has(models.ClassStruct) || attrs.IsTrue("Abstract") || attrs.IsTrue("Singleton") {
		class.Flags.Set(models.ClassNoConstructors)
	}
	return class, nil
}
