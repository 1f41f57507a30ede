package gandalf

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zephyrtronium/contains"
)

// A Value is any value a program can compute: int64, float64, string, bool,
// nil, *List, or *Map. Lists and maps are shared-reference containers;
// mutating one alias mutates all aliases.
type Value interface{}

// A List is an ordered, mutable sequence of values.
type List struct {
	Items []Value
}

// A Map associates scalar keys with values. Iteration order is not part of
// the data model; operations that must be deterministic order entries by
// their rendered key.
type Map struct {
	entries map[Value]Value
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{entries: map[Value]Value{}}
}

// mapKey normalizes v for use as a map key. Integral floats collapse onto
// the matching integer so that 1 and 1.0 address the same entry. Container
// values cannot be keys.
func mapKey(v Value) (Value, error) {
	switch k := v.(type) {
	case nil, bool, string, int64:
		return v, nil
	case float64:
		if k == float64(int64(k)) {
			return int64(k), nil
		}
		return v, nil
	}
	return nil, runtimeErrorf("Map key must be a number, string, boolean, or nil, not %s", typeName(v))
}

// Get returns the value stored for key, or nil with ok=false if absent.
func (m *Map) Get(key Value) (Value, bool, error) {
	k, err := mapKey(key)
	if err != nil {
		return nil, false, err
	}
	v, ok := m.entries[k]
	return v, ok, nil
}

// Put stores value under key.
func (m *Map) Put(key, value Value) error {
	k, err := mapKey(key)
	if err != nil {
		return err
	}
	m.entries[k] = value
	return nil
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// SortedKeys returns the keys ordered by their rendered form.
func (m *Map) SortedKeys() []Value {
	keys := make([]Value, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return FormatValue(keys[i]) < FormatValue(keys[j])
	})
	return keys
}

func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case int64, float64:
		return "number"
	case string:
		return "string"
	case *List:
		return "list"
	case *Map:
		return "map"
	}
	return "value"
}

func isNumber(v Value) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

func toFloat(v Value) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	panic("gandalf: toFloat on non-number")
}

// truthy reports the language's truthiness: nil, false, zero, the empty
// string, and empty collections are falsy; everything else is truthy.
func truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case *List:
		return len(t.Items) > 0
	case *Map:
		return t.Len() > 0
	}
	return true
}

// valueEqual implements structural equality across all value kinds. Numbers
// compare numerically regardless of int/float representation. Containers
// compare element-wise; aliases introduced through shared references are
// treated as equal without re-descending, which also keeps cyclic values
// from recursing forever.
func valueEqual(a, b Value) bool {
	return eqRecurse(a, b, map[[2]uintptr]bool{})
}

func eqRecurse(a, b Value, seen map[[2]uintptr]bool) bool {
	if isNumber(a) && isNumber(b) {
		return toFloat(a) == toFloat(b)
	}
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if len(x.Items) != len(y.Items) {
			return false
		}
		pair := [2]uintptr{uniqueID(x), uniqueID(y)}
		if seen[pair] {
			return true
		}
		seen[pair] = true
		for i := range x.Items {
			if !eqRecurse(x.Items[i], y.Items[i], seen) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x.Len() != y.Len() {
			return false
		}
		pair := [2]uintptr{uniqueID(x), uniqueID(y)}
		if seen[pair] {
			return true
		}
		seen[pair] = true
		for k, v := range x.entries {
			w, ok := y.entries[k]
			if !ok || !eqRecurse(v, w, seen) {
				return false
			}
		}
		return true
	}
	return false
}

// FormatValue renders a value in the language's own notation: booleans as
// true/false, nil as nil, floats with integral values without the fraction,
// lists as [a, b], and maps as {k: v} ordered by rendered key. Containers
// reached again through their own references render as [...] or {...}.
func FormatValue(v Value) string {
	var b strings.Builder
	seen := contains.Set{}
	formatRecurse(&b, v, &seen)
	return b.String()
}

func formatRecurse(b *strings.Builder, v Value, seen *contains.Set) {
	switch t := v.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case float64:
		if t == float64(int64(t)) {
			b.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
		}
	case string:
		b.WriteString(t)
	case *List:
		if !seen.Add(uniqueID(t)) {
			b.WriteString("[...]")
			return
		}
		b.WriteByte('[')
		for i, it := range t.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			formatRecurse(b, it, seen)
		}
		b.WriteByte(']')
	case *Map:
		if !seen.Add(uniqueID(t)) {
			b.WriteString("{...}")
			return
		}
		b.WriteByte('{')
		for i, k := range t.SortedKeys() {
			if i > 0 {
				b.WriteString(", ")
			}
			formatRecurse(b, k, seen)
			b.WriteString(": ")
			formatRecurse(b, t.entries[k], seen)
		}
		b.WriteByte('}')
	default:
		b.WriteString(typeName(v))
	}
}
