package annotations

import (
	"strings"

	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/scanner"
)

// MarkerKind identifies which construct a marker annotates.
type MarkerKind int

const (
	NoMarker MarkerKind = iota
	EnumMarker
	EnumeratorMarker
	ClassMarker
	FieldMarker
	MethodMarker
	BodyMarker
)

// String returns the string representation of the marker kind
func (k MarkerKind) String() string {
	switch k {
	case EnumMarker:
		return "enum"
	case EnumeratorMarker:
		return "enumerator"
	case ClassMarker:
		return "class"
	case FieldMarker:
		return "field"
	case MethodMarker:
		return "method"
	case BodyMarker:
		return "body"
	default:
		return "none"
	}
}

// Match reports whether line starts with marker as a whole word and returns
// the text after it.
func Match(line, marker string) (string, bool) {
	if marker == "" || !strings.HasPrefix(line, marker) {
		return "", false
	}
	rest := line[len(marker):]
	if rest != "" && scanner.IsIdent(rest[0]) {
		return "", false
	}
	return rest, true
}

// Classify finds the marker line starts with. Markers are tried in the
// order enum, enumerator, class, field, method, body.
func Classify(line string, m config.Markers) (MarkerKind, string) {
	candidates := []struct {
		kind   MarkerKind
		marker string
	}{
		{EnumMarker, m.Enum},
		{EnumeratorMarker, m.Enumerator},
		{ClassMarker, m.Class},
		{FieldMarker, m.Field},
		{MethodMarker, m.Method},
		{BodyMarker, m.Body},
	}
	for _, c := range candidates {
		if rest, ok := Match(line, c.marker); ok {
			return c.kind, rest
		}
	}
	return NoMarker, ""
}

// MarkerName returns the literal token for kind.
func MarkerName(kind MarkerKind, m config.Markers) string {
	switch kind {
	case EnumMarker:
		return m.Enum
	case EnumeratorMarker:
		return m.Enumerator
	case ClassMarker:
		return m.Class
	case FieldMarker:
		return m.Field
	case MethodMarker:
		return m.Method
	case BodyMarker:
		return m.Body
	default:
		return ""
	}
}
