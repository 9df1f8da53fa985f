package annotations

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind identifies which member of a Value is populated.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON value decoded from an attribute list. Numbers keep their
// literal text so large integers survive a round trip unchanged.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  Attributes
}

func Null() Value                   { return Value{} }
func Bool(b bool) Value             { return Value{kind: BoolKind, b: b} }
func String(s string) Value         { return Value{kind: StringKind, str: s} }
func Number(n json.Number) Value    { return Value{kind: NumberKind, num: n} }
func Int(i int64) Value             { return Number(json.Number(strconv.FormatInt(i, 10))) }
func Array(items ...Value) Value    { return Value{kind: ArrayKind, arr: items} }
func Object(attrs Attributes) Value { return Value{kind: ObjectKind, obj: attrs} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == NullKind }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == StringKind
}

// AsInt returns the value as an integer. Numbers with a fraction or outside
// the int64 range do not convert.
func (v Value) AsInt() (int64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	i, err := v.num.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

func (v Value) AsNumber() (json.Number, bool) {
	return v.num, v.kind == NumberKind
}

func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == ArrayKind
}

func (v Value) AsObject() (Attributes, bool) {
	return v.obj, v.kind == ObjectKind
}

// Interface converts the value back to plain Go values (bool, json.Number,
// string, []interface{}, map[string]interface{} or nil).
func (v Value) Interface() interface{} {
	switch v.kind {
	case BoolKind:
		return v.b
	case NumberKind:
		return v.num
	case StringKind:
		return v.str
	case ArrayKind:
		out := make([]interface{}, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case ObjectKind:
		return v.obj.Map()
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullKind:
		return []byte("null"), nil
	case BoolKind:
		return strconv.AppendBool(nil, v.b), nil
	case NumberKind:
		return []byte(v.num.String()), nil
	case StringKind:
		return json.Marshal(v.str)
	case ArrayKind:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case ObjectKind:
		return v.obj.MarshalJSON()
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %d", v.kind)
	}
}

// FromInterface converts a decoded JSON tree into a Value.
func FromInterface(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		return Number(x), nil
	case float64:
		return Number(json.Number(strconv.FormatFloat(x, 'g', -1, 64))), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case string:
		return String(x), nil
	case []interface{}:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]interface{}:
		attrs, err := FromMap(x)
		if err != nil {
			return Value{}, err
		}
		return Object(attrs), nil
	default:
		return Value{}, fmt.Errorf("unsupported attribute value of type %T", raw)
	}
}
