package formdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseJSON decodes a JSON object into a [Mapping], keeping the order in which
// keys appear. Numbers are kept verbatim as [Number] and null becomes [Null].
func ParseJSON(data []byte) (Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("form: invalid json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("form: top-level json value must be an object")
	}

	m, err := parseObject(dec)
	if err != nil {
		return nil, fmt.Errorf("form: invalid json: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("form: invalid json: trailing data after object")
	}
	return m, nil
}

// parseObject reads the members of an object whose opening brace has already
// been consumed.
func parseObject(dec *json.Decoder) (Mapping, error) {
	m := Mapping{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		m = append(m, Entry{Key: key, Value: v})
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseArray(dec *json.Decoder) (Sequence, error) {
	s := Sequence{}
	for dec.More() {
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		s = append(s, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
