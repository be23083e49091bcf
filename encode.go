package formdata

import (
	"fmt"
	"reflect"
)

// ExclusionSet holds the field paths whose sequences are not indexed. Every
// element of a sequence sitting at an excluded path shares that path as its
// field name.
type ExclusionSet map[string]struct{}

// NewExclusionSet returns an [ExclusionSet] of names.
func NewExclusionSet(names ...string) ExclusionSet {
	s := make(ExclusionSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether path is excluded from indexing. A nil set excludes
// nothing.
func (s ExclusionSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Encode flattens root into an ordered [Form].
//
// Mapping keys are appended to the path in brackets (user[id]) and sequence
// elements by position (tags[0]). A sequence whose path is exactly one of the
// excluded names gives all its elements that path unchanged, so
// {files: [a, b]} excluding "files" encodes as files=a, files=b. Null values
// and empty strings produce no field; 0 and false do.
//
// Encode never fails and never modifies root.
func Encode(root Mapping, exclusions ExclusionSet) Form {
	out := Form{}
	for _, e := range root {
		out = encodeValue(out, e.Key, e.Value, exclusions)
	}
	return out
}

func encodeValue(out Form, path string, v Value, exclusions ExclusionSet) Form {
	switch v := deref(v).(type) {
	case nil, Null:
		return out
	case *File:
		if v == nil {
			return out
		}
		return append(out, Field{Name: path, File: v})
	case Sequence:
		collapse := exclusions.Has(path)
		for i, elem := range v {
			child := path
			if !collapse {
				child = childIndex(path, i)
			}
			out = encodeValue(out, child, elem, exclusions)
		}
		return out
	case Mapping:
		for _, e := range v {
			out = encodeValue(out, childKey(path, e.Key), e.Value, exclusions)
		}
		return out
	default:
		s, _ := primitive(v)
		if s == "" {
			return out
		}
		return append(out, Field{Name: path, Value: s})
	}
}

// Marshal converts v with [ValueOf] and encodes it. The top-level value must
// be a struct or a map, or a pointer to one. A nil v encodes as an empty form.
//
// Struct fields tagged with the noindex option add their own path to the
// exclusion set: a root field excludes name, a nested one parent[name].
func Marshal(v interface{}, opts ...Option) (Form, error) {
	o := newOptions(opts)

	if v == nil {
		return Form{}, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Form{}, nil
		}
		rv = rv.Elem()
	}

	c := converter{exclusions: o.exclusions()}
	root, err := c.rootMapping(rv)
	if err != nil {
		return nil, err
	}

	return Encode(root, c.exclusions), nil
}

func (c *converter) rootMapping(rv reflect.Value) (Mapping, error) {
	if rv.CanInterface() {
		if m, ok := rv.Interface().(Mapping); ok {
			return m, nil
		}
	}

	// Ensure the top-level value is a struct or map.
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("form: top-level value must be struct or map")
	}

	val, err := c.valueOf(rv, "")
	if err != nil {
		return nil, err
	}

	switch val := val.(type) {
	case Mapping:
		return val, nil
	case nil, Null:
		return Mapping{}, nil
	default:
		// A root type with its own MarshalForm or Value implementation.
		return nil, fmt.Errorf("form: top-level value must encode as a mapping, got %T", val)
	}
}
