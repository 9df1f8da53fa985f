package generator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/models"
)

// EnumResolver finds enums published before the current file
type EnumResolver interface {
	FindEnum(name string) *models.Enum
}

// Synthesizer appends the artificial accessors of every reflected field
type Synthesizer struct {
	enums EnumResolver
}

// NewSynthesizer creates a synthesizer resolving flag enums through enums
func NewSynthesizer(enums EnumResolver) *Synthesizer {
	return &Synthesizer{enums: enums}
}

// Synthesize generates the artificial methods of every class in mirror.
// The first error stops synthesis; the caller discards the mirror.
func (s *Synthesizer) Synthesize(mirror *models.FileMirror) error {
	for _, class := range mirror.Classes {
		for i := range class.Fields {
			if err := s.synthesizeField(mirror, class, &class.Fields[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Synthesizer) synthesizeField(mirror *models.FileMirror, class *models.Class, field *models.Field) error {
	about := describeField(field)

	add := func(result, name, params, body, comment string, flags models.MethodFlags) {
		m := class.AddArtificialMethod(result, name, params, body, []string{comment}, flags)
		m.SourceField = field
	}

	if !field.Flags.Has(models.FieldNoGetter) {
		add(field.Type+"&", "Get"+field.DisplayName, "", "return "+field.Name+";", "Gets "+about, 0)
	}

	if !field.Flags.Has(models.FieldNoSetter) {
		body := field.Name + " = value; "
		if onChange := field.Attributes.String("OnChange", ""); onChange != "" {
			body += onChange + "(); "
		}
		add("void", "Set"+field.DisplayName, field.Type+" const & value", body, "Sets "+about, 0)
	}

	getters := field.Attributes.String("FlagGetters", "")
	setters := field.Attributes.String("Flags", "")
	if getters != "" && setters != "" {
		return errors.ConflictingAttributes("FlagGetters", "Flags").WithLine(field.DeclarationLine)
	}
	enumName := getters
	if setters != "" {
		enumName = setters
	}
	if enumName == "" {
		return nil
	}

	enum := s.findEnum(mirror, enumName)
	if enum == nil {
		return errors.UnknownEnum(enumName).WithLine(field.DeclarationLine)
	}

	bits := make([]uint64, len(enum.Enumerators))
	for i, e := range enum.Enumerators {
		if e.Value < 0 || e.Value > 63 {
			return errors.SyntaxErrorf("enumerator `%s` of `%s` has value %d, which is not a valid flag bit", e.Name, enum.Name, e.Value).
				WithLine(field.DeclarationLine)
		}
		bits[i] = uint64(1) << uint64(e.Value)
	}

	for i, e := range enum.Enumerators {
		add("bool", "Is"+e.Name, "",
			fmt.Sprintf("return (%s & %s{%d}) != 0;", field.Name, field.Type, bits[i]),
			fmt.Sprintf("Checks whether the `%s` flag is set in %s", e.Name, about),
			models.MethodConst)
	}
	if setters == "" {
		return nil
	}

	groups := []struct {
		prefix, op, verb string
	}{
		{"Set", "|= ", "Sets the `%s` flag in %s"},
		{"Unset", "&= ~", "Clears the `%s` flag in %s"},
		{"Toggle", "^= ", "Toggles the `%s` flag in %s"},
	}
	for _, g := range groups {
		for i, e := range enum.Enumerators {
			add("void", g.prefix+e.Name, "",
				fmt.Sprintf("%s %s%s{%d};", field.Name, g.op, field.Type, bits[i]),
				fmt.Sprintf(g.verb, e.Name, about),
				0)
		}
	}
	return nil
}

// findEnum looks through published files first, then the file being built.
func (s *Synthesizer) findEnum(mirror *models.FileMirror, name string) *models.Enum {
	if s.enums != nil {
		if e := s.enums.FindEnum(name); e != nil {
			return e
		}
	}
	return mirror.FindEnum(name)
}

// describeField turns the field's doc comment into the tail of a sentence,
// e.g. "Gets " + "the health of the actor".
func describeField(field *models.Field) string {
	joined := strings.Join(field.Comments, " ")
	if joined == "" {
		return "the `" + field.DisplayName + "` field of this object"
	}
	r, size := utf8.DecodeRuneInString(joined)
	return string(unicode.ToLower(r)) + joined[size:]
}
