package formdata

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Marshaler is the interface implemented by types that can marshal themselves
// into a form description.
type Marshaler interface {
	MarshalForm() (string, error)
}

var (
	valueType = reflect.TypeOf((*Value)(nil)).Elem()
	fileType  = reflect.TypeOf(File{})
)

// ValueOf converts an ordinary Go value into a [Value] tree.
//
// Values already implementing [Value] are returned as is, and a [File] or
// *File becomes an attachment. Types implementing [Marshaler], or else
// [encoding.TextMarshaler], become strings.
// Slices and arrays become sequences, except []byte which becomes a string.
// Maps become mappings with their keys sorted, and structs become mappings in
// field order using the same form tags as [Marshal]. Nil pointers, interfaces,
// maps and slices are null. Any other value is wrapped in [Opaque].
func ValueOf(v interface{}) (Value, error) {
	if v == nil {
		return Null{}, nil
	}
	c := converter{exclusions: ExclusionSet{}}
	return c.valueOf(reflect.ValueOf(v), "")
}

// converter walks a Go value while tracking the field path it is at, so that
// struct fields tagged noindex can add their own path to the exclusion set.
type converter struct {
	exclusions ExclusionSet
}

func (c *converter) valueOf(v reflect.Value, path string) (Value, error) {
	// Handle nil pointers early to avoid dereferencing them.
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return Null{}, nil
		}
	}

	// Values and files take priority over any structural traversal.
	if v.CanInterface() {
		if v.Type().Implements(valueType) {
			return deref(v.Interface().(Value)), nil
		}
		if v.Type() == fileType {
			f := v.Interface().(File)
			return &f, nil
		}
	}

	// Handle custom Marshaler before dereferencing.
	if m, ok := asMarshaler(v); ok {
		s, err := m.MarshalForm()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	}
	if m, ok := asTextMarshaler(v); ok {
		b, err := m.MarshalText()
		if err != nil {
			return nil, err
		}
		return String(b), nil
	}

	// Dispatch based on the kind of the value.
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return c.valueOf(v.Elem(), path)
	case reflect.Struct:
		return c.structValue(v, path)
	case reflect.Map:
		return c.mapValue(v, path)
	case reflect.Slice, reflect.Array:
		return c.sliceValue(v, path)
	case reflect.String:
		return String(v.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(strconv.FormatUint(v.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return Number(strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())), nil
	case reflect.Bool:
		return Bool(v.Bool()), nil
	default:
		if !v.CanInterface() {
			return Null{}, nil
		}
		return Opaque{V: v.Interface()}, nil
	}
}

func (c *converter) structValue(v reflect.Value, path string) (Value, error) {
	tags := tags(v)
	m := make(Mapping, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		tag := tags[i]
		if tag.Ignore || tag.Name == "" {
			continue
		}
		fv := v.Field(i)
		if tag.Omit && isEmptyValue(fv) {
			continue
		}
		child := childKey(path, tag.Name)
		if tag.NoIndex {
			c.exclusions[child] = struct{}{}
		}
		val, err := c.valueOf(fv, child)
		if err != nil {
			return nil, fmt.Errorf("form: field %s: %w", tag.Name, err)
		}
		m = append(m, Entry{Key: tag.Name, Value: val})
	}
	return m, nil
}

func (c *converter) mapValue(v reflect.Value, path string) (Value, error) {
	type kv struct {
		key string
		val reflect.Value
	}
	entries := make([]kv, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, kv{key: mapKey(iter.Key()), val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	m := make(Mapping, 0, len(entries))
	for _, e := range entries {
		val, err := c.valueOf(e.val, childKey(path, e.key))
		if err != nil {
			return nil, fmt.Errorf("form: key %s: %w", e.key, err)
		}
		m = append(m, Entry{Key: e.key, Value: val})
	}
	return m, nil
}

func (c *converter) sliceValue(v reflect.Value, path string) (Value, error) {
	if v.Type().Elem().Kind() == reflect.Uint8 && v.Kind() == reflect.Slice {
		return String(v.Bytes()), nil
	}
	collapse := c.exclusions.Has(path)
	s := make(Sequence, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		child := path
		if !collapse {
			child = childIndex(path, i)
		}
		val, err := c.valueOf(v.Index(i), child)
		if err != nil {
			return nil, fmt.Errorf("form: index %d: %w", i, err)
		}
		s = append(s, val)
	}
	return s, nil
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

func asMarshaler(v reflect.Value) (Marshaler, bool) {
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(Marshaler); ok {
			return m, true
		}
	}
	if !v.CanInterface() {
		return nil, false
	}
	if m, ok := v.Interface().(Marshaler); ok {
		return m, true
	}
	return nil, false
}

func asTextMarshaler(v reflect.Value) (encoding.TextMarshaler, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	m, ok := v.Interface().(encoding.TextMarshaler)
	return m, ok
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
