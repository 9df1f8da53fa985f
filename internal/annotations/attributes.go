package annotations

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/toyz/reflector/internal/errors"
)

// Attribute is one key/value pair of an attribute list.
type Attribute struct {
	Key   string
	Value Value
}

// Attributes is an attribute list ordered by key. Lookups never fail: a
// missing key or a value of the wrong kind yields the caller's default.
type Attributes []Attribute

// FromMap builds an ordered attribute list from decoded JSON.
func FromMap(m map[string]interface{}) (Attributes, error) {
	attrs := make(Attributes, 0, len(m))
	for k, raw := range m {
		v, err := FromInterface(raw)
		if err != nil {
			return nil, err
		}
		attrs = attrs.With(k, v)
	}
	return attrs, nil
}

// With returns a copy of a with key set to v, keeping key order.
func (a Attributes) With(key string, v Value) Attributes {
	i := a.index(key)
	out := make(Attributes, 0, len(a)+1)
	out = append(out, a[:i]...)
	out = append(out, Attribute{Key: key, Value: v})
	if i < len(a) && a[i].Key == key {
		i++
	}
	return append(out, a[i:]...)
}

func (a Attributes) index(key string) int {
	return sort.Search(len(a), func(i int) bool { return a[i].Key >= key })
}

func (a Attributes) Len() int { return len(a) }

// Lookup returns the value stored under key.
func (a Attributes) Lookup(key string) (Value, bool) {
	i := a.index(key)
	if i < len(a) && a[i].Key == key {
		return a[i].Value, true
	}
	return Value{}, false
}

func (a Attributes) Has(key string) bool {
	_, ok := a.Lookup(key)
	return ok
}

// Bool returns the boolean under key, or def.
func (a Attributes) Bool(key string, def bool) bool {
	if v, ok := a.Lookup(key); ok {
		if b, ok := v.AsBool(); ok {
			return b
		}
	}
	return def
}

// String returns the string under key, or def.
func (a Attributes) String(key string, def string) string {
	if v, ok := a.Lookup(key); ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return def
}

// Int returns the integer under key, or def.
func (a Attributes) Int(key string, def int64) int64 {
	if v, ok := a.Lookup(key); ok {
		if i, ok := v.AsInt(); ok {
			return i
		}
	}
	return def
}

// IsTrue reports whether key holds the boolean true.
func (a Attributes) IsTrue(key string) bool {
	v, ok := a.Lookup(key)
	if !ok {
		return false
	}
	b, isBool := v.AsBool()
	return isBool && b
}

// IsFalse reports whether key holds the boolean false.
func (a Attributes) IsFalse(key string) bool {
	v, ok := a.Lookup(key)
	if !ok {
		return false
	}
	b, isBool := v.AsBool()
	return isBool && !b
}

func (a Attributes) Keys() []string {
	keys := make([]string, len(a))
	for i, attr := range a {
		keys[i] = attr.Key
	}
	return keys
}

// Map converts the list to plain Go values.
func (a Attributes) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(a))
	for _, attr := range a {
		m[attr.Key] = attr.Value.Interface()
	}
	return m
}

// MarshalJSON implements json.Marshaler
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := attr.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeAttributes decodes the parenthesised payload that follows a marker,
// e.g. `("Getter": false, "OnChange": "Refresh")`. The braces of the JSON
// object are implied by the parentheses. An empty payload yields an empty list.
func DecodeAttributes(text string) (Attributes, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "(") {
		return nil, errors.ExpectedToken("(", 1)
	}
	if !strings.HasSuffix(trimmed, ")") || len(trimmed) < 2 {
		return nil, errors.ExpectedToken(")", len(trimmed)+1)
	}

	payload := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if payload == "" {
		return Attributes{}, nil
	}
	if !strings.HasPrefix(payload, "{") {
		payload = "{" + payload + "}"
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.AttributeDecodeError(payload, err)
	}
	var extra interface{}
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.SyntaxError("unexpected data after attribute object")
		}
		return nil, errors.AttributeDecodeError(payload, err)
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.AttributeDecodeError(payload, errors.SyntaxError("attribute list is not an object"))
	}
	attrs, err := FromMap(obj)
	if err != nil {
		return nil, errors.AttributeDecodeError(payload, err)
	}
	return attrs, nil
}
