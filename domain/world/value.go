// Package world defines the symbolic state model the planner searches over:
// typed values and immutable world state snapshots.
package world

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindBool is a boolean value.
	KindBool Kind = iota
	// KindInt is a signed 64-bit integer value.
	KindInt
	// KindFloat is a 64-bit floating point value.
	KindFloat
	// KindText is a string value.
	KindText
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable typed scalar stored in a world state. The zero
// value is the boolean false.
//
// Values never coerce across kinds: an int never equals a float of the
// same magnitude, ordering is defined only between two ints or two
// floats, and arithmetic requires both operands to share a numeric kind.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text returns a string Value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload. ok is false when the value is not a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns the integer payload. ok is false when the value is not an int.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the float payload. ok is false when the value is not a float.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsText returns the string payload. ok is false when the value is not text.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// Equal reports whether two values hold the same kind and payload.
// Values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindText:
		return v.s == other.s
	default:
		return false
	}
}

// Compare orders two values of the same numeric kind. It returns -1, 0
// or 1 when both values are ints or both are floats; for any other
// pairing ok is false and the values are unordered.
func (v Value) Compare(other Value) (int, bool) {
	if v.kind != other.kind {
		return 0, false
	}
	switch v.kind {
	case KindInt:
		switch {
		case v.i < other.i:
			return -1, true
		case v.i > other.i:
			return 1, true
		default:
			return 0, true
		}
	case KindFloat:
		switch {
		case v.f < other.f:
			return -1, true
		case v.f > other.f:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// Add returns the sum of two values of the same numeric kind. ok is
// false when either value is non-numeric or the kinds differ.
func (v Value) Add(amount Value) (Value, bool) {
	if v.kind != amount.kind {
		return Value{}, false
	}
	switch v.kind {
	case KindInt:
		return Int(v.i + amount.i), true
	case KindFloat:
		return Float(v.f + amount.f), true
	default:
		return Value{}, false
	}
}

// Sub returns the difference of two values of the same numeric kind. ok
// is false when either value is non-numeric or the kinds differ.
func (v Value) Sub(amount Value) (Value, bool) {
	if v.kind != amount.kind {
		return Value{}, false
	}
	switch v.kind {
	case KindInt:
		return Int(v.i - amount.i), true
	case KindFloat:
		return Float(v.f - amount.f), true
	default:
		return Value{}, false
	}
}

// String renders the payload for human-readable output. Text values are
// quoted so they remain unambiguous next to bools and numbers.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	default:
		return "<invalid>"
	}
}

// canonical renders a kind-tagged form used for state fingerprints.
// Distinct values always produce distinct canonical strings.
func (v Value) canonical() string {
	switch v.kind {
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return "t:" + strconv.Quote(v.s)
	default:
		return "?"
	}
}

type valueJSON struct {
	Kind  string   `json:"kind"`
	Bool  *bool    `json:"bool,omitempty"`
	Int   *int64   `json:"int,omitempty"`
	Float *float64 `json:"float,omitempty"`
	Text  *string  `json:"text,omitempty"`
}

// MarshalJSON encodes the value with an explicit kind tag so numeric
// kinds survive a round trip.
func (v Value) MarshalJSON() ([]byte, error) {
	out := valueJSON{Kind: v.kind.String()}
	switch v.kind {
	case KindBool:
		out.Bool = &v.b
	case KindInt:
		out.Int = &v.i
	case KindFloat:
		out.Float = &v.f
	case KindText:
		out.Text = &v.s
	default:
		return nil, fmt.Errorf("marshal value: %w: %d", ErrUnknownKind, v.kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a kind-tagged value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var in valueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	switch in.Kind {
	case "bool":
		if in.Bool == nil {
			return fmt.Errorf("unmarshal value: %w: missing bool payload", ErrMissingPayload)
		}
		*v = Bool(*in.Bool)
	case "int":
		if in.Int == nil {
			return fmt.Errorf("unmarshal value: %w: missing int payload", ErrMissingPayload)
		}
		*v = Int(*in.Int)
	case "float":
		if in.Float == nil {
			return fmt.Errorf("unmarshal value: %w: missing float payload", ErrMissingPayload)
		}
		*v = Float(*in.Float)
	case "text":
		if in.Text == nil {
			return fmt.Errorf("unmarshal value: %w: missing text payload", ErrMissingPayload)
		}
		*v = Text(*in.Text)
	default:
		return fmt.Errorf("unmarshal value: %w: %q", ErrUnknownKind, in.Kind)
	}
	return nil
}
