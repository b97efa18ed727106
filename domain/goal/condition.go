// Package goal expresses what the planner is asked to achieve: per-key
// conditions and conjunctions of them.
package goal

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Relation is the comparison a condition applies to a world value.
type Relation uint8

const (
	// RelationEqual matches values equal to the operand.
	RelationEqual Relation = iota
	// RelationNotEqual matches values not equal to the operand.
	RelationNotEqual
	// RelationGreater matches values strictly greater than the operand.
	RelationGreater
	// RelationGreaterOrEqual matches values greater than or equal to the operand.
	RelationGreaterOrEqual
	// RelationLess matches values strictly less than the operand.
	RelationLess
	// RelationLessOrEqual matches values less than or equal to the operand.
	RelationLessOrEqual
)

// String returns the token used for the relation in scenario files.
func (r Relation) String() string {
	switch r {
	case RelationEqual:
		return "eq"
	case RelationNotEqual:
		return "neq"
	case RelationGreater:
		return "gt"
	case RelationGreaterOrEqual:
		return "gte"
	case RelationLess:
		return "lt"
	case RelationLessOrEqual:
		return "lte"
	default:
		return fmt.Sprintf("relation(%d)", uint8(r))
	}
}

// symbol returns the operator form used in human-readable rendering.
func (r Relation) symbol() string {
	switch r {
	case RelationEqual:
		return "=="
	case RelationNotEqual:
		return "!="
	case RelationGreater:
		return ">"
	case RelationGreaterOrEqual:
		return ">="
	case RelationLess:
		return "<"
	case RelationLessOrEqual:
		return "<="
	default:
		return "?"
	}
}

// ParseRelation maps a scenario-file token to a Relation.
func ParseRelation(token string) (Relation, error) {
	switch token {
	case "eq":
		return RelationEqual, nil
	case "neq":
		return RelationNotEqual, nil
	case "gt":
		return RelationGreater, nil
	case "gte":
		return RelationGreaterOrEqual, nil
	case "lt":
		return RelationLess, nil
	case "lte":
		return RelationLessOrEqual, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRelation, token)
	}
}

// Condition pairs a relation with an operand value. A condition is
// checked against the value bound to some key in a world state; the key
// itself is supplied by the Goal or Action holding the condition.
type Condition struct {
	relation Relation
	value    world.Value
}

// Eq matches values equal to v.
func Eq(v world.Value) Condition { return Condition{relation: RelationEqual, value: v} }

// NotEq matches values not equal to v.
func NotEq(v world.Value) Condition { return Condition{relation: RelationNotEqual, value: v} }

// Gt matches values strictly greater than v.
func Gt(v world.Value) Condition { return Condition{relation: RelationGreater, value: v} }

// Gte matches values greater than or equal to v.
func Gte(v world.Value) Condition { return Condition{relation: RelationGreaterOrEqual, value: v} }

// Lt matches values strictly less than v.
func Lt(v world.Value) Condition { return Condition{relation: RelationLess, value: v} }

// Lte matches values less than or equal to v.
func Lte(v world.Value) Condition { return Condition{relation: RelationLessOrEqual, value: v} }

// NewCondition builds a condition from an explicit relation.
func NewCondition(r Relation, v world.Value) Condition {
	return Condition{relation: r, value: v}
}

// Relation returns the comparison the condition applies.
func (c Condition) Relation() Relation { return c.relation }

// Value returns the operand the condition compares against.
func (c Condition) Value() world.Value { return c.value }

// Matches reports whether v satisfies the condition. Equality across
// kinds is false (so NotEq across kinds is true); ordering relations
// are false unless both values share a numeric kind.
func (c Condition) Matches(v world.Value) bool {
	switch c.relation {
	case RelationEqual:
		return v.Equal(c.value)
	case RelationNotEqual:
		return !v.Equal(c.value)
	case RelationGreater:
		cmp, ok := v.Compare(c.value)
		return ok && cmp > 0
	case RelationGreaterOrEqual:
		cmp, ok := v.Compare(c.value)
		return ok && cmp >= 0
	case RelationLess:
		cmp, ok := v.Compare(c.value)
		return ok && cmp < 0
	case RelationLessOrEqual:
		cmp, ok := v.Compare(c.value)
		return ok && cmp <= 0
	default:
		return false
	}
}

// Holds reports whether the value bound to key in st satisfies the
// condition. An absent key fails every relation, including NotEq.
func (c Condition) Holds(st world.State, key string) bool {
	v, ok := st.Get(key)
	if !ok {
		return false
	}
	return c.Matches(v)
}

// String renders the condition as an operator and operand, e.g. "< 3".
func (c Condition) String() string {
	return c.relation.symbol() + " " + c.value.String()
}

type conditionJSON struct {
	Relation string      `json:"relation"`
	Value    world.Value `json:"value"`
}

// MarshalJSON encodes the condition with its relation token.
func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{Relation: c.relation.String(), Value: c.value})
}

// UnmarshalJSON decodes a relation token and operand.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var in conditionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal condition: %w", err)
	}
	r, err := ParseRelation(in.Relation)
	if err != nil {
		return fmt.Errorf("unmarshal condition: %w", err)
	}
	*c = Condition{relation: r, value: in.Value}
	return nil
}
