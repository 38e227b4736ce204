package model

import (
	"encoding"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// JSON types reported by Describe, named as in OpenAPI.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeArray   = "array"
	TypeObject  = "object"
)

const nullablePkg = "github.com/oapi-codegen/nullable"

var (
	modelType         = reflect.TypeOf((*Model)(nil)).Elem()
	enumType          = reflect.TypeOf((*Enum)(nil)).Elem()
	uuidType          = reflect.TypeOf(uuid.UUID{})
	rawMessageType    = reflect.TypeOf(json.RawMessage(nil))
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Field describes one JSON key of a model.
type Field struct {
	Name     string   `json:"name"`
	GoName   string   `json:"go_name,omitempty"`
	Type     string   `json:"type,omitempty"`
	Format   string   `json:"format,omitempty"`
	Ref      string   `json:"ref,omitempty"`
	Enum     []string `json:"enum,omitempty"`
	Items    *Field   `json:"items,omitempty"`
	Required bool     `json:"required"`
	Nullable bool     `json:"nullable"`
}

// Description lists the JSON shape of a model. Unions report no fields.
type Description struct {
	Model  string  `json:"model"`
	Union  bool    `json:"union,omitempty"`
	Fields []Field `json:"fields"`
}

// Field returns the field with the given JSON key.
func (d Description) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required returns the JSON keys of the required fields in declaration order.
func (d Description) Required() []string {
	var keys []string
	for _, f := range d.Fields {
		if f.Required {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// Describe reflects over m and reports its JSON fields in declaration order.
func Describe(m Model) Description {
	d := Description{Model: m.ModelName()}
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return d
	}
	if isUnion(t) {
		d.Union = true
		return d
	}

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}

		ft := sf.Type
		nullable := isNullable(ft)
		if nullable {
			ft = ft.Elem()
		}
		f := describeType(ft)
		f.Name = name
		f.GoName = sf.Name
		f.Nullable = nullable
		f.Required = !nullable
		d.Fields = append(d.Fields, f)
	}
	return d
}

func isNullable(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.PkgPath() == nullablePkg && strings.HasPrefix(t.Name(), "Nullable[")
}

// isUnion reports whether t is a oneOf wrapper: every exported field is an
// untagged pointer named Of*.
func isUnion(t reflect.Type) bool {
	if t.NumField() == 0 {
		return false
	}
	for i := range t.NumField() {
		sf := t.Field(i)
		if !strings.HasPrefix(sf.Name, "Of") || sf.Type.Kind() != reflect.Pointer || sf.Tag.Get("json") != "" {
			return false
		}
	}
	return true
}

func describeType(t reflect.Type) Field {
	if t == uuidType {
		return Field{Type: TypeString, Format: "uuid"}
	}
	// Raw JSON is any value.
	if t == rawMessageType {
		return Field{}
	}
	if t.Implements(modelType) {
		name := reflect.Zero(t).Interface().(Model).ModelName()
		if t.Kind() == reflect.Struct && isUnion(t) {
			return Field{Ref: name}
		}
		return Field{Type: TypeObject, Ref: name}
	}
	if t.Implements(enumType) && t.Kind() == reflect.String {
		values := reflect.Zero(t).Interface().(Enum).Values()
		return Field{Type: TypeString, Ref: t.Name(), Enum: values}
	}

	switch t.Kind() {
	case reflect.String:
		return Field{Type: TypeString}
	case reflect.Bool:
		return Field{Type: TypeBoolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Field{Type: TypeInteger}
	case reflect.Float32, reflect.Float64:
		return Field{Type: TypeNumber}
	case reflect.Slice, reflect.Array:
		items := describeType(t.Elem())
		return Field{Type: TypeArray, Items: &items}
	case reflect.Map:
		values := describeType(t.Elem())
		return Field{Type: TypeObject, Items: &values}
	}

	if t.Implements(textMarshalerType) {
		return Field{Type: TypeString}
	}
	return Field{Type: TypeObject}
}
