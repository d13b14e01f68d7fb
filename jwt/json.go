package jwt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// The claim and header documents are dynamically typed JSON objects held as
// map[string]any. Numbers are kept as json.Number so that integer claims
// survive the round trip through serialization without loss.

// parseObject parses src as a single JSON object. Inputs that are not an
// object, carry trailing data or (with rejectDups set) repeat a member name
// at any nesting level are rejected.
func parseObject(src string, rejectDups bool) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("not a JSON object")
	}

	obj, err := parseMembers(dec, rejectDups)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON object")
	}

	return obj, nil
}

// parseMembers consumes the members of an object up to and including the
// closing brace. The opening brace must already be consumed.
func parseMembers(dec *json.Decoder, rejectDups bool) (map[string]any, error) {
	obj := make(map[string]any)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid object key: %v", tok)
		}

		if rejectDups {
			if _, exists := obj[key]; exists {
				return nil, fmt.Errorf("duplicate object key: %q", key)
			}
		}

		val, err := parseValue(dec, rejectDups)
		if err != nil {
			return nil, err
		}

		obj[key] = val
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func parseValue(dec *json.Decoder, rejectDups bool) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		return parseMembers(dec, rejectDups)
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := parseValue(dec, rejectDups)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter: %v", delim)
	}
}

// dumpJSON serializes v compactly with object keys in lexicographic order
// and without HTML escaping. With pretty set the output is indented by four
// spaces instead of compact.
func dumpJSON(v any, pretty bool) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "    ")
	}

	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// jsonEqual reports deep equality of two JSON values by comparing their
// canonical serializations. Sorted keys and json.Number passthrough make
// the serialization canonical, so differently typed representations of the
// same number compare equal.
func jsonEqual(a, b any) bool {
	aJSON, err := json.Marshal(a)
	if err != nil {
		return false
	}

	bJSON, err := json.Marshal(b)
	if err != nil {
		return false
	}

	return bytes.Equal(aJSON, bJSON)
}

// deepCopyValue copies a JSON value. Maps and slices are copied
// recursively; scalars are immutable and returned as is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		obj := make(map[string]any, len(val))
		for k, member := range val {
			obj[k] = deepCopyValue(member)
		}
		return obj
	case []any:
		arr := make([]any, len(val))
		for i, member := range val {
			arr[i] = deepCopyValue(member)
		}
		return arr
	default:
		return v
	}
}

// --

func getString(obj map[string]any, name string) (string, error) {
	v, ok := obj[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrWrongType, name)
	}

	return s, nil
}

// getInt reads a member as a 64 bit signed integer. Fractional values and
// values exceeding the int64 range are reported as ErrWrongType rather
// than silently truncated.
func getInt(obj map[string]any, name string) (int64, error) {
	v, ok := obj[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	switch val := v.(type) {
	case int64:
		return val, nil
	case float64:
		if val != math.Trunc(val) || val < math.MinInt64 || val >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrWrongType, name)
		}
		return int64(val), nil
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrWrongType, name)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a number", ErrWrongType, name)
	}
}

func getBool(obj map[string]any, name string) (bool, error) {
	v, ok := obj[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q is not a boolean", ErrWrongType, name)
	}

	return b, nil
}

// --

// addMember sets a member unless one with that name is already present.
func addMember(obj map[string]any, name string, val any) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalid)
	}

	if _, exists := obj[name]; exists {
		return fmt.Errorf("%w: %q", ErrExists, name)
	}

	obj[name] = val

	return nil
}

// mergeJSON parses src as a JSON object rejecting duplicate keys and
// merges its top-level members into obj, overwriting existing members.
func mergeJSON(obj map[string]any, src string) error {
	parsed, err := parseObject(src, true)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	for k, v := range parsed {
		obj[k] = v
	}

	return nil
}

// dumpMember serializes the whole object, or the single member named by
// name when non-empty.
func dumpMember(obj map[string]any, name string) (string, error) {
	if name == "" {
		return dumpJSON(obj, false)
	}

	v, ok := obj[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return dumpJSON(v, false)
}

// delMembers removes the named member, or every member when name is empty.
func delMembers(obj map[string]any, name string) {
	if name == "" {
		clear(obj)
		return
	}

	delete(obj, name)
}
