package models

import (
	"strings"

	"github.com/toyz/reflector/internal/annotations"
	"github.com/toyz/reflector/internal/scanner"
)

// Declaration holds what every annotated entity shares
type Declaration struct {
	Name            string
	DeclarationLine int // 1-based; 0 for synthesized declarations
	Access          AccessMode
	Attributes      annotations.Attributes
	Comments        []string
}

// Field is an annotated data member
type Field struct {
	Declaration

	Type                   string
	DisplayName            string
	InitializingExpression string
	Flags                  FieldFlags
}

// DisplayNameFor drops a leading `m` when it is followed by an uppercase
// letter, so mHealth is displayed as Health.
func DisplayNameFor(name string) string {
	if len(name) > 1 && name[0] == 'm' && name[1] >= 'A' && name[1] <= 'Z' {
		return name[1:]
	}
	return name
}

// Parameter is one entry of a method's parameter list
type Parameter struct {
	Type        string
	Name        string
	Initializer string
}

// Method is an annotated or synthesized member function
type Method struct {
	Declaration

	Type           string
	ParametersText string
	Parameters     []Parameter
	Body           string
	Flags          MethodFlags
	UniqueName     string

	// SourceField is the field a synthesized accessor was generated for.
	SourceField *Field
}

// SourceFieldDeclarationLine returns the line of the field this method was
// generated for, or 0.
func (m *Method) SourceFieldDeclarationLine() int {
	if m.SourceField == nil {
		return 0
	}
	return m.SourceField.DeclarationLine
}

// SetParameters stores the raw parameter text and splits it into entries.
func (m *Method) SetParameters(text string) {
	m.ParametersText = text
	m.Parameters = ParseParameters(text)
}

// ParseParameters splits a parameter list into (type, name, initializer)
// entries. Unnamed parameters keep their whole text as the type; a lone
// `void` means no parameters.
func ParseParameters(text string) []Parameter {
	if t := strings.TrimSpace(text); t == "" || t == "void" {
		return nil
	}

	var params []Parameter
	for _, arg := range scanner.SplitArgs(text) {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}

		var p Parameter
		decl := arg
		if eq := topLevelAssign(arg); eq >= 0 {
			decl = arg[:eq]
			p.Initializer = strings.TrimSpace(arg[eq+1:])
		}
		head, ident := scanner.TrailingIdentifier(decl)
		if head == "" || ident == "" {
			p.Type = strings.TrimSpace(decl)
		} else {
			p.Type, p.Name = head, ident
		}
		params = append(params, p)
	}
	return params
}

func topLevelAssign(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		case '=':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Enumerator is one named value of an enum
type Enumerator struct {
	Declaration

	Value int64
}

// Enum is an annotated `enum class`
type Enum struct {
	Declaration

	Enumerators []Enumerator
}

// Property pairs a getter and a setter declared for the same name
type Property struct {
	Name       string
	Type       string
	GetterName string
	GetterLine int
	SetterName string
	SetterLine int
}
