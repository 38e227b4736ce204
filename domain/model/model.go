// Package model holds the contract shared by every Trieve API object.
//
// Optional fields are nullable.Nullable[T] values tagged omitempty, which
// keeps the three states the API distinguishes apart on the wire:
//
//	var f search.HighlightOptions            // highlight_window absent, key omitted
//	f.HighlightWindow.SetNull()              // "highlight_window": null
//	f.HighlightWindow.Set(4)                 // "highlight_window": 4
//
// Required fields are plain Go fields. Decoding rejects payloads that omit a
// required key or set it to null, and ignores keys the model does not declare.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Model is implemented by every API object.
type Model interface {
	Validator
	// ModelName returns the schema name in the OpenAPI document.
	ModelName() string
}

// modelPtr constrains generic helpers to pointers of value-receiver models.
type modelPtr[T any] interface {
	*T
	Model
}

// FromJSON decodes and validates a model from its JSON representation.
func FromJSON[T any, PT modelPtr[T]](data []byte) (*T, error) {
	v := new(T)
	if err := Unmarshal(data, PT(v)); err != nil {
		return nil, err
	}
	return v, nil
}

// Unmarshal decodes data into m, which must be a pointer, and validates the
// result.
func Unmarshal(data []byte, m Model) error {
	name := m.ModelName()
	if isNull(data) {
		return nullPayload(name)
	}
	if err := json.Unmarshal(data, m); err != nil {
		return decodeError(name, data, err)
	}
	return m.Validate()
}

// ToJSON validates m and returns its JSON representation.
func ToJSON(m Model) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// FromMap builds a model from a decoded JSON object.
func FromMap[T any, PT modelPtr[T]](m map[string]any) (*T, error) {
	if m == nil {
		return nil, nullPayload(PT(new(T)).ModelName())
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode map: %w", err)
	}
	return FromJSON[T, PT](data)
}

// ToMap returns m as a JSON object. Numbers are kept as json.Number so
// integers survive without float rounding.
func ToMap(m Model) (map[string]any, error) {
	data, err := ToJSON(m)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.ModelName(), err)
	}
	return out, nil
}

// Pretty renders m as indented JSON without validating it.
func Pretty(m Model) string {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Sprintf("%s<%v>", m.ModelName(), err)
	}
	return string(data)
}

// Equal reports whether two models hold the same fields in the same states.
func Equal(a, b Model) bool {
	return reflect.DeepEqual(a, b)
}
