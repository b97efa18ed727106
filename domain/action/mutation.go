// Package action defines the planner's transition model: mutations that
// rewrite single facts, effects that bundle mutations with a cost, and
// named actions gating effects behind preconditions.
package action

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Op identifies the rewrite a mutation performs.
type Op uint8

const (
	// OpSet binds a key to a value, creating the key if absent.
	OpSet Op = iota
	// OpIncrement adds an amount to a numeric value of the same kind.
	OpIncrement
	// OpDecrement subtracts an amount from a numeric value of the same kind.
	OpDecrement
	// OpDelete removes a key.
	OpDelete
)

// String returns the token used for the op in scenario files.
func (o Op) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpIncrement:
		return "increment"
	case OpDecrement:
		return "decrement"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// ParseOp maps a scenario-file token to an Op.
func ParseOp(token string) (Op, error) {
	switch token {
	case "set":
		return OpSet, nil
	case "increment":
		return OpIncrement, nil
	case "decrement":
		return OpDecrement, nil
	case "delete":
		return OpDelete, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOp, token)
	}
}

// Mutation is a single-key rewrite of a world state. Applying a
// mutation never fails: rewrites that cannot take effect (incrementing
// a missing or non-numeric key, deleting an absent key) leave the state
// unchanged.
type Mutation struct {
	op    Op
	key   string
	value world.Value
}

// Set binds key to v, creating the key if it is absent.
func Set(key string, v world.Value) Mutation {
	return Mutation{op: OpSet, key: key, value: v}
}

// Increment adds amount to the value bound to key. The mutation is a
// no-op unless the key holds a value of the same numeric kind as amount.
func Increment(key string, amount world.Value) Mutation {
	return Mutation{op: OpIncrement, key: key, value: amount}
}

// Decrement subtracts amount from the value bound to key. The mutation
// is a no-op unless the key holds a value of the same numeric kind as
// amount.
func Decrement(key string, amount world.Value) Mutation {
	return Mutation{op: OpDecrement, key: key, value: amount}
}

// Delete removes key. Deleting an absent key is a no-op.
func Delete(key string) Mutation {
	return Mutation{op: OpDelete, key: key}
}

// Op returns the rewrite the mutation performs.
func (m Mutation) Op() Op { return m.op }

// Key returns the state key the mutation targets.
func (m Mutation) Key() string { return m.key }

// Value returns the operand of a set, increment or decrement. ok is
// false for delete, which carries no operand.
func (m Mutation) Value() (world.Value, bool) {
	if m.op == OpDelete {
		return world.Value{}, false
	}
	return m.value, true
}

// Apply returns the state produced by the mutation. It is total: every
// mutation yields a state, possibly the input unchanged.
func (m Mutation) Apply(st world.State) world.State {
	switch m.op {
	case OpSet:
		return st.Set(m.key, m.value)
	case OpIncrement:
		cur, ok := st.Get(m.key)
		if !ok {
			return st
		}
		next, ok := cur.Add(m.value)
		if !ok {
			return st
		}
		return st.Set(m.key, next)
	case OpDecrement:
		cur, ok := st.Get(m.key)
		if !ok {
			return st
		}
		next, ok := cur.Sub(m.value)
		if !ok {
			return st
		}
		return st.Set(m.key, next)
	case OpDelete:
		return st.Delete(m.key)
	default:
		return st
	}
}

// String renders the mutation for plan output, e.g. "set has_food = true".
func (m Mutation) String() string {
	switch m.op {
	case OpSet:
		return fmt.Sprintf("set %s = %s", m.key, m.value)
	case OpIncrement:
		return fmt.Sprintf("increment %s by %s", m.key, m.value)
	case OpDecrement:
		return fmt.Sprintf("decrement %s by %s", m.key, m.value)
	case OpDelete:
		return fmt.Sprintf("delete %s", m.key)
	default:
		return fmt.Sprintf("unknown op on %s", m.key)
	}
}

type mutationJSON struct {
	Op    string       `json:"op"`
	Key   string       `json:"key"`
	Value *world.Value `json:"value,omitempty"`
}

// MarshalJSON encodes the mutation with its op token. Delete carries no
// value field.
func (m Mutation) MarshalJSON() ([]byte, error) {
	out := mutationJSON{Op: m.op.String(), Key: m.key}
	if m.op != OpDelete {
		v := m.value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an op token, key and optional value.
func (m *Mutation) UnmarshalJSON(data []byte) error {
	var in mutationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal mutation: %w", err)
	}
	op, err := ParseOp(in.Op)
	if err != nil {
		return fmt.Errorf("unmarshal mutation: %w", err)
	}
	if op != OpDelete && in.Value == nil {
		return fmt.Errorf("unmarshal mutation: %w: %s needs a value", ErrMissingValue, op)
	}
	m.op = op
	m.key = in.Key
	if in.Value != nil {
		m.value = *in.Value
	} else {
		m.value = world.Value{}
	}
	return nil
}
