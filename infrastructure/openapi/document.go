// Package openapi loads the Trieve OpenAPI document and checks payloads and
// Go models against its schemas.
package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed trieve.yaml
var embedded []byte

const schemaPrefix = "#/components/schemas/"

// ErrUnknownSchema is returned when a schema name is not in the document.
var ErrUnknownSchema = errors.New("unknown schema")

// Document is a loaded and validated OpenAPI document.
type Document struct {
	doc *openapi3.T
	raw []byte
}

// Issue is one schema violation found in a payload.
type Issue struct {
	Pointer string `json:"pointer"`
	Reason  string `json:"reason"`
}

// Endpoint is an operation whose request body is a given schema.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id"`
}

// Embedded returns the document compiled into the binary.
func Embedded(ctx context.Context) (*Document, error) {
	return Parse(ctx, embedded)
}

// Load reads the document at path, or the embedded one when path is empty.
func Load(ctx context.Context, path string) (*Document, error) {
	if path == "" {
		return Embedded(ctx)
	}
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read openapi document: %w", err)
	}
	return Parse(ctx, data)
}

// Parse loads a JSON or YAML document and validates it.
func Parse(ctx context.Context, data []byte) (*Document, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx,
		openapi3.DisableExamplesValidation(),
		openapi3.DisableSchemaFormatValidation(),
	); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi document declares no schemas")
	}
	return &Document{doc: doc, raw: data}, nil
}

// Title returns the document title.
func (d *Document) Title() string {
	if d.doc.Info == nil {
		return ""
	}
	return d.doc.Info.Title
}

// Version returns the API version the document describes.
func (d *Document) Version() string {
	if d.doc.Info == nil {
		return ""
	}
	return d.doc.Info.Version
}

// Raw returns the document source as it was loaded.
func (d *Document) Raw() []byte {
	return d.raw
}

// JSON returns the document encoded as JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.Marshal(d.doc)
}

// Schemas returns the component schema names in sorted order.
func (d *Document) Schemas() []string {
	names := make([]string, 0, len(d.doc.Components.Schemas))
	for name := range d.doc.Components.Schemas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Schema returns the named component schema.
func (d *Document) Schema(name string) (*openapi3.Schema, bool) {
	ref, ok := d.doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return nil, false
	}
	return ref.Value, true
}

// Endpoints lists the operations whose JSON request body is the named schema.
func (d *Document) Endpoints(name string) []Endpoint {
	if d.doc.Paths == nil {
		return nil
	}
	var out []Endpoint
	for path, item := range d.doc.Paths.Map() {
		for method, op := range item.Operations() {
			if op.RequestBody == nil || op.RequestBody.Value == nil {
				continue
			}
			media := op.RequestBody.Value.Content.Get("application/json")
			if media == nil || media.Schema == nil || refName(media.Schema.Ref) != name {
				continue
			}
			out = append(out, Endpoint{Method: method, Path: path, OperationID: op.OperationID})
		}
	}
	slices.SortFunc(out, func(a, b Endpoint) int {
		return strings.Compare(a.Path+a.Method, b.Path+b.Method)
	})
	return out
}

// ValidatePayload checks a JSON payload against the named schema and returns
// every violation. An empty result means the payload conforms.
func (d *Document) ValidatePayload(name string, data []byte) ([]Issue, error) {
	schema, ok := d.Schema(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return []Issue{{Reason: "malformed JSON: " + err.Error()}}, nil
	}
	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil, nil
	}
	return issues(err), nil
}

func issues(err error) []Issue {
	switch e := err.(type) {
	case openapi3.MultiError:
		var out []Issue
		for _, inner := range e {
			out = append(out, issues(inner)...)
		}
		return out
	case *openapi3.SchemaError:
		return []Issue{{Pointer: pointer(e.JSONPointer()), Reason: e.Reason}}
	}
	return []Issue{{Reason: err.Error()}}
}

// pointer renders path segments as an RFC 6901 JSON pointer.
func pointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range segments {
		s = strings.ReplaceAll(s, "~", "~0")
		s = strings.ReplaceAll(s, "/", "~1")
		b.WriteString("/")
		b.WriteString(s)
	}
	return b.String()
}

func refName(ref string) string {
	if !strings.HasPrefix(ref, schemaPrefix) {
		return ""
	}
	return strings.TrimPrefix(ref, schemaPrefix)
}
