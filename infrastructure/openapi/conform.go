package openapi

import (
	"fmt"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/helixml/trieve-go/domain/model"
)

// Finding is one disagreement between a Go model and its schema.
type Finding struct {
	Model   string `json:"model"`
	Field   string `json:"field,omitempty"`
	Problem string `json:"problem"`
}

// String implements fmt.Stringer.
func (f Finding) String() string {
	if f.Field == "" {
		return f.Model + ": " + f.Problem
	}
	return f.Model + "." + f.Field + ": " + f.Problem
}

// Conform compares a described Go model with the schema of the same name.
// Properties, required keys, nullability, JSON types, enum values and nested
// references must all agree.
func (d *Document) Conform(desc model.Description) []Finding {
	c := conformer{model: desc.Model}
	s, ok := d.Schema(desc.Model)
	if !ok {
		c.add("", "no schema with this name")
		return c.findings
	}

	if desc.Union {
		if len(s.AnyOf) == 0 && len(s.OneOf) == 0 {
			c.add("", "union is not declared with anyOf or oneOf")
		}
		return c.findings
	}

	if t := schemaType(s); t != model.TypeObject {
		c.add("", fmt.Sprintf("schema type is %q, want object", t))
		return c.findings
	}

	for _, f := range desc.Fields {
		prop, ok := s.Properties[f.Name]
		if !ok || prop.Value == nil {
			c.add(f.Name, "not declared by schema")
			continue
		}
		required := slices.Contains(s.Required, f.Name)
		switch {
		case f.Required && !required:
			c.add(f.Name, "required by Go model but optional in schema")
		case !f.Required && required:
			c.add(f.Name, "required by schema but optional in Go model")
		}

		resolved, ref := unwrap(prop)
		switch {
		case f.Nullable && !prop.Value.Nullable:
			c.add(f.Name, "optional field is not nullable in schema")
		case !f.Nullable && prop.Value.Nullable:
			c.add(f.Name, "required field is nullable in schema")
		}
		c.compare(f.Name, f, resolved, ref)
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, ok := desc.Field(name); !ok {
			c.add(name, "declared by schema but missing from Go model")
		}
	}
	return c.findings
}

type conformer struct {
	model    string
	findings []Finding
}

func (c *conformer) add(field, problem string) {
	c.findings = append(c.findings, Finding{Model: c.model, Field: field, Problem: problem})
}

func (c *conformer) compare(path string, f model.Field, s *openapi3.Schema, ref string) {
	if f.Ref != "" && f.Ref != ref {
		got := ref
		if got == "" {
			got = "an inline schema"
		}
		c.add(path, fmt.Sprintf("references %s, schema uses %s", f.Ref, got))
		return
	}
	if f.Type == "" || s == nil {
		return
	}

	t := schemaType(s)
	if t == "" {
		// An untyped schema accepts any value.
		return
	}
	if t != f.Type {
		c.add(path, fmt.Sprintf("Go type is %s, schema type is %s", f.Type, t))
		return
	}
	if f.Format == "uuid" && s.Format != "uuid" {
		c.add(path, "Go type is a UUID, schema format is "+quoteOrNone(s.Format))
	}
	if len(f.Enum) > 0 && !sameValues(f.Enum, s.Enum) {
		c.add(path, fmt.Sprintf("enum values %v, schema declares %v", f.Enum, s.Enum))
	}

	if f.Items == nil || f.Ref != "" {
		return
	}
	switch f.Type {
	case model.TypeArray:
		if s.Items == nil {
			c.add(path, "array schema declares no items")
			return
		}
		items, itemsRef := unwrap(s.Items)
		c.compare(path+"[]", *f.Items, items, itemsRef)
	case model.TypeObject:
		if s.AdditionalProperties.Schema == nil {
			return
		}
		values, valuesRef := unwrap(s.AdditionalProperties.Schema)
		c.compare(path+"{}", *f.Items, values, valuesRef)
	}
}

// unwrap follows a $ref, or a nullable allOf wrapping a single $ref, and
// returns the target schema with its component name.
func unwrap(ref *openapi3.SchemaRef) (*openapi3.Schema, string) {
	if ref == nil {
		return nil, ""
	}
	if name := refName(ref.Ref); name != "" {
		return ref.Value, name
	}
	if ref.Value != nil && len(ref.Value.AllOf) == 1 {
		inner := ref.Value.AllOf[0]
		if name := refName(inner.Ref); name != "" {
			return inner.Value, name
		}
	}
	return ref.Value, ""
}

func schemaType(s *openapi3.Schema) string {
	if s == nil || s.Type == nil || len(s.Type.Slice()) == 0 {
		return ""
	}
	return s.Type.Slice()[0]
}

func sameValues(want []string, got []any) bool {
	if len(want) != len(got) {
		return false
	}
	have := make([]string, 0, len(got))
	for _, v := range got {
		s, ok := v.(string)
		if !ok {
			return false
		}
		have = append(have, s)
	}
	w := slices.Clone(want)
	slices.Sort(w)
	slices.Sort(have)
	return slices.Equal(w, have)
}

func quoteOrNone(s string) string {
	if s == "" {
		return "unset"
	}
	return fmt.Sprintf("%q", s)
}
