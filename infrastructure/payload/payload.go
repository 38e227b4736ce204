// Package payload converts request payloads between JSON and YAML.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a payload encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported payload format")

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ToJSON converts data encoded in f to JSON.
func ToJSON(data []byte, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		if !json.Valid(data) {
			return nil, errors.New("payload is not valid JSON")
		}
		return data, nil
	case FormatYAML:
		return yamlToJSON(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// FromJSON renders JSON data in f. JSON output is indented. YAML output keeps
// the key order of the input.
func FromJSON(data []byte, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, fmt.Errorf("indent json: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case FormatYAML:
		return jsonToYAML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Convert re-encodes data from one format to another.
func Convert(data []byte, from, to Format) ([]byte, error) {
	j, err := ToJSON(data, from)
	if err != nil {
		return nil, err
	}
	return FromJSON(j, to)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	v, err := jsonValue(v)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return out, nil
}

// jsonValue rewrites YAML-only shapes into values encoding/json accepts.
func jsonValue(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			converted, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			t[k] = converted
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("yaml key %v is not a string", k)
			}
			converted, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		for i, item := range t {
			converted, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			t[i] = converted
		}
		return t, nil
	}
	return v, nil
}

func jsonToYAML(data []byte) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(compact.Bytes(), &node); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// blockStyle drops the flow and quoting styles inherited from JSON so the
// encoder picks plain block YAML, quoting only where a scalar needs it.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
