package formdata

import (
	"fmt"
	"strconv"
)

// Value is a node of an encodable tree. The set of implementations is closed:
// [Null], [*File], [String], [Int], [Float], [Bool], [Number], [Sequence],
// [Mapping] and [Opaque]. A nil Value is treated as [Null], and a pointer to
// any of these other than *File is encoded as the value it points at.
type Value interface {
	formValue()
}

// Null is an absent value. It contributes no fields.
type Null struct{}

// String is a text primitive. The empty string is treated as absent.
type String string

// Int is an integer primitive.
type Int int64

// Float is a floating point primitive.
type Float float64

// Bool is a boolean primitive.
type Bool bool

// Number is a decimal literal kept exactly as written, as produced by
// [ParseJSON].
type Number string

// Sequence is an ordered list of values. Its elements are indexed by position
// unless the path it sits at is excluded.
type Sequence []Value

// Entry is a single key of a [Mapping].
type Entry struct {
	Key   string
	Value Value
}

// Mapping is a string keyed collection that keeps insertion order.
type Mapping []Entry

// Opaque wraps a host value that has no better representation. It is
// stringified with [fmt.Sprint].
type Opaque struct {
	V interface{}
}

func (Null) formValue() {}
func (*File) formValue() {}
func (String) formValue() {}
func (Int) formValue() {}
func (Float) formValue() {}
func (Bool) formValue() {}
func (Number) formValue() {}
func (Sequence) formValue() {}
func (Mapping) formValue() {}
func (Opaque) formValue() {}

// KV returns an [Entry] for key and v.
func KV(key string, v Value) Entry {
	return Entry{Key: key, Value: v}
}

// Map returns a [Mapping] of the given entries in order.
func Map(entries ...Entry) Mapping {
	return Mapping(entries)
}

// List returns a [Sequence] of the given values in order.
func List(values ...Value) Sequence {
	return Sequence(values)
}

// Get returns the value of the first entry with the given key.
func (m Mapping) Get(key string) (Value, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of the first entry with the given key, or appends a
// new entry when none exists.
func (m Mapping) Set(key string, v Value) Mapping {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = v
			return m
		}
	}
	return append(m, Entry{Key: key, Value: v})
}

// Keys returns the keys of m in insertion order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// primitive returns the string form of a leaf value and whether v is a leaf.
func primitive(v Value) (string, bool) {
	switch v := v.(type) {
	case String:
		return string(v), true
	case Int:
		return strconv.FormatInt(int64(v), 10), true
	case Float:
		return strconv.FormatFloat(float64(v), 'f', -1, 64), true
	case Bool:
		return strconv.FormatBool(bool(v)), true
	case Number:
		return string(v), true
	case Opaque:
		return fmt.Sprint(v.V), true
	default:
		return "", false
	}
}

// deref returns the variant a pointer to a union type points at. Only *File is
// a variant in its own right; a nil pointer of any other type is [Null].
func deref(v Value) Value {
	switch p := v.(type) {
	case *Null:
		return Null{}
	case *String:
		if p == nil {
			return Null{}
		}
		return *p
	case *Int:
		if p == nil {
			return Null{}
		}
		return *p
	case *Float:
		if p == nil {
			return Null{}
		}
		return *p
	case *Bool:
		if p == nil {
			return Null{}
		}
		return *p
	case *Number:
		if p == nil {
			return Null{}
		}
		return *p
	case *Sequence:
		if p == nil {
			return Null{}
		}
		return *p
	case *Mapping:
		if p == nil {
			return Null{}
		}
		return *p
	case *Opaque:
		if p == nil {
			return Null{}
		}
		return *p
	default:
		return v
	}
}
