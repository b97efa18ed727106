package goal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Goal is a conjunction of conditions keyed by world state key. A state
// satisfies the goal when every condition holds; the empty goal is
// satisfied by any state.
//
// Goals are immutable: With returns a new goal, leaving the receiver
// untouched.
type Goal struct {
	conditions map[string]Condition
}

// New returns an empty goal.
func New() Goal { return Goal{} }

// From builds a goal from a map of conditions. The map is copied.
func From(conditions map[string]Condition) Goal {
	if len(conditions) == 0 {
		return Goal{}
	}
	m := make(map[string]Condition, len(conditions))
	for k, c := range conditions {
		m[k] = c
	}
	return Goal{conditions: m}
}

// With returns a copy of the goal with a condition bound to key,
// replacing any previous condition on the same key.
func (g Goal) With(key string, c Condition) Goal {
	m := make(map[string]Condition, len(g.conditions)+1)
	for k, ec := range g.conditions {
		m[k] = ec
	}
	m[key] = c
	return Goal{conditions: m}
}

// Condition returns the condition bound to key. ok is false when the
// goal places no condition on the key.
func (g Goal) Condition(key string) (Condition, bool) {
	c, ok := g.conditions[key]
	return c, ok
}

// Len returns the number of conditions.
func (g Goal) Len() int { return len(g.conditions) }

// Keys returns the conditioned keys in sorted order.
func (g Goal) Keys() []string {
	keys := make([]string, 0, len(g.conditions))
	for k := range g.conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SatisfiedBy reports whether every condition holds in st. Keys absent
// from st fail their condition regardless of relation.
func (g Goal) SatisfiedBy(st world.State) bool {
	for key, c := range g.conditions {
		if !c.Holds(st, key) {
			return false
		}
	}
	return true
}

// UnsatisfiedCount returns how many conditions do not hold in st. The
// planner uses this as its heuristic: it never overestimates the
// remaining distance as long as any effect able to satisfy a goal
// condition costs at least one.
func (g Goal) UnsatisfiedCount(st world.State) int {
	n := 0
	for key, c := range g.conditions {
		if !c.Holds(st, key) {
			n++
		}
	}
	return n
}

// String renders the goal as sorted "key relation operand" clauses.
func (g Goal) String() string {
	if len(g.conditions) == 0 {
		return "{}"
	}
	keys := g.Keys()
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", k, g.conditions[k])
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the goal as an object of conditions.
func (g Goal) MarshalJSON() ([]byte, error) {
	m := make(map[string]Condition, len(g.conditions))
	for k, c := range g.conditions {
		m[k] = c
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object of conditions.
func (g *Goal) UnmarshalJSON(data []byte) error {
	var m map[string]Condition
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unmarshal goal: %w", err)
	}
	*g = From(m)
	return nil
}
