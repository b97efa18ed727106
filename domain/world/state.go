package world

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// State is an immutable snapshot of the world: a set of named facts,
// each a string key bound to a typed Value. The zero value is the empty
// state.
//
// Mutating operations return a new State and leave the receiver
// untouched, so snapshots can be shared freely between search nodes and
// between goroutines.
type State struct {
	entries map[string]Value
}

// NewState returns an empty state.
func NewState() State { return State{} }

// StateFrom builds a state from a map. The map is copied; later changes
// to it do not affect the state.
func StateFrom(entries map[string]Value) State {
	if len(entries) == 0 {
		return State{}
	}
	m := make(map[string]Value, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return State{entries: m}
}

// Get returns the value bound to key. ok is false when the key is absent.
func (s State) Get(key string) (Value, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (s State) Has(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Len returns the number of facts in the state.
func (s State) Len() int { return len(s.entries) }

// Set returns a copy of the state with key bound to v, creating the key
// if it is absent.
func (s State) Set(key string, v Value) State {
	m := make(map[string]Value, len(s.entries)+1)
	for k, ev := range s.entries {
		m[k] = ev
	}
	m[key] = v
	return State{entries: m}
}

// Delete returns a copy of the state without key. Deleting an absent
// key returns the state unchanged.
func (s State) Delete(key string) State {
	if _, ok := s.entries[key]; !ok {
		return s
	}
	m := make(map[string]Value, len(s.entries)-1)
	for k, ev := range s.entries {
		if k != key {
			m[k] = ev
		}
	}
	return State{entries: m}
}

// Keys returns the keys in sorted order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether two states bind the same keys to equal values.
func (s State) Equal(other State) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for k, v := range s.entries {
		ov, ok := other.entries[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Fingerprint returns a canonical string identifying the state's
// contents. Two states have the same fingerprint exactly when Equal
// reports true, which makes it usable as a visited-set key during
// search.
func (s State) Fingerprint() string {
	if len(s.entries) == 0 {
		return ""
	}
	keys := s.Keys()
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(s.entries[k].canonical())
		b.WriteByte(';')
	}
	return b.String()
}

// String renders the state as a sorted, brace-delimited fact list.
func (s State) String() string {
	keys := s.Keys()
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = %s", k, s.entries[k])
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the state as an object of kind-tagged values.
func (s State) MarshalJSON() ([]byte, error) {
	m := make(map[string]Value, len(s.entries))
	for k, v := range s.entries {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object of kind-tagged values.
func (s *State) UnmarshalJSON(data []byte) error {
	var m map[string]Value
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unmarshal state: %w", err)
	}
	*s = StateFrom(m)
	return nil
}
