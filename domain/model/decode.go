package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var jsonNull = []byte("null")

// Decode unmarshals data into dst after checking that every required key is
// present and not null. dst must point at a method-free alias of the model so
// that decoding does not recurse into the model's own UnmarshalJSON. Keys not
// declared by the model are ignored.
func Decode(data []byte, dst any, name string, required ...string) error {
	keys, err := Keys(data, name)
	if err != nil {
		return err
	}

	c := NewChecker(name)
	for _, key := range required {
		if raw, ok := keys[key]; !ok || isNull(raw) {
			c.Missing(key)
		}
	}
	if err := c.Err(); err != nil {
		return err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return decodeError(name, data, err)
	}
	return nil
}

// Keys returns the top-level members of a JSON object without decoding them.
// Unions use it to pick a variant.
func Keys(data []byte, name string) (map[string]json.RawMessage, error) {
	if isNull(data) {
		return nil, nullPayload(name)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ValidationError{Model: name, Fields: []FieldError{invalid("", "expected JSON object, got "+typeErr.Value)}}
		}
		return nil, decodeError(name, data, err)
	}
	return keys, nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), jsonNull)
}

func nullPayload(name string) error {
	return &ValidationError{
		Model:  name,
		Fields: []FieldError{{Reason: "payload is null", Err: ErrNullPayload}},
	}
}

// decodeError converts encoding/json failures into a *ValidationError.
// Errors already produced by a nested model pass through unchanged.
func decodeError(name string, data []byte, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		reason := fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value)
		return &ValidationError{Model: name, Fields: []FieldError{invalid(fieldPath(data, typeErr.Field), reason)}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		reason := fmt.Sprintf("malformed JSON at offset %d: %s", syntaxErr.Offset, syntaxErr.Error())
		return &ValidationError{Model: name, Fields: []FieldError{invalid("", reason)}}
	}

	return &ValidationError{Model: name, Fields: []FieldError{invalid("", err.Error())}}
}

// fieldPath rebuilds the path of a dotted encoding/json field name against
// the payload so that map keys containing dots stay one segment. The longest
// member name matching the remaining path wins at each level.
func fieldPath(data []byte, dotted string) string {
	var path string
	for dotted != "" {
		var obj map[string]json.RawMessage
		if json.Unmarshal(data, &obj) != nil {
			return joinPath(path, dotted)
		}
		key, ok := longestMember(obj, dotted)
		if !ok {
			return joinPath(path, dotted)
		}
		path = KeyPath(path, key)
		data = obj[key]
		dotted = strings.TrimPrefix(dotted[len(key):], ".")
	}
	return path
}

func longestMember(obj map[string]json.RawMessage, dotted string) (string, bool) {
	best, found := "", false
	for key := range obj {
		if dotted != key && !strings.HasPrefix(dotted, key+".") {
			continue
		}
		if !found || len(key) > len(best) {
			best, found = key, true
		}
	}
	return best, found
}
