package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/nullable"
)

// Validator is implemented by values that check their own constraints.
type Validator interface {
	Validate() error
}

// Enum is implemented by string enumerations declared in the API schema.
type Enum interface {
	Valid() bool
	Values() []string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON keys rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(Enum)
		return ok && e.Valid()
	})

	registerNullable[string](v)
	registerNullable[bool](v)
	registerNullable[int](v)
	registerNullable[int64](v)
	registerNullable[float64](v)

	return v
}

// RegisterNullable makes validation tags on nullable.Nullable[T] fields apply
// to the wrapped value. Absent and null values validate as nil, so tags on
// such fields must start with "omitnil". Call it from package init only.
func RegisterNullable[T any]() {
	registerNullable[T](validate)
}

func registerNullable[T any](v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		n, ok := field.Interface().(nullable.Nullable[T])
		if !ok || !n.IsSpecified() || n.IsNull() {
			return (*T)(nil)
		}
		value := n.MustGet()
		return &value
	}, nullable.Nullable[T]{})
}

// Checker accumulates field errors for one model.
type Checker struct {
	model  string
	fields []FieldError
}

// NewChecker returns an empty Checker for the named model.
func NewChecker(model string) *Checker {
	return &Checker{model: model}
}

// Struct runs the struct tag rules of s.
func (c *Checker) Struct(s any) *Checker {
	err := validate.Struct(s)
	if err == nil {
		return c
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.fields = append(c.fields, invalid("", err.Error()))
		return c
	}
	for _, fe := range verrs {
		c.fields = append(c.fields, tagError(fe))
	}
	return c
}

// Nested merges the errors of a nested value under path.
func (c *Checker) Nested(path string, err error) *Checker {
	if err == nil {
		return c
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			f.Field = joinPath(path, f.Field)
			c.fields = append(c.fields, f)
		}
		return c
	}
	c.fields = append(c.fields, invalid(path, err.Error()))
	return c
}

// Missing records an absent required field.
func (c *Checker) Missing(path string) *Checker {
	c.fields = append(c.fields, missing(path))
	return c
}

// Invalid records a constraint violation.
func (c *Checker) Invalid(path, reason string) *Checker {
	c.fields = append(c.fields, invalid(path, reason))
	return c
}

// Err returns a *ValidationError when anything was recorded, nil otherwise.
func (c *Checker) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	fields := make([]FieldError, len(c.fields))
	copy(fields, c.fields)
	return &ValidationError{Model: c.model, Fields: fields}
}

// CheckNullable validates a present, non-null nested value.
func CheckNullable[T Validator](c *Checker, path string, n nullable.Nullable[T]) {
	if !n.IsSpecified() || n.IsNull() {
		return
	}
	c.Nested(path, n.MustGet().Validate())
}

// CheckEach validates every element of items, indexing the path.
func CheckEach[T Validator](c *Checker, path string, items []T) {
	for i, item := range items {
		c.Nested(fmt.Sprintf("%s[%d]", path, i), item.Validate())
	}
}

// CheckNullableEach validates the elements of a present, non-null list.
func CheckNullableEach[T Validator](c *Checker, path string, n nullable.Nullable[[]T]) {
	if !n.IsSpecified() || n.IsNull() {
		return
	}
	CheckEach(c, path, n.MustGet())
}

func tagError(fe validator.FieldError) FieldError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return missing(field)
	case "min", "gte":
		return invalid(field, "must be at least "+fe.Param())
	case "max", "lte":
		return invalid(field, "must be at most "+fe.Param())
	case "oneof":
		return invalid(field, "must be one of: "+fe.Param())
	case "enum":
		reason := fmt.Sprintf("unsupported value %q", fmt.Sprint(fe.Value()))
		if e, ok := fe.Value().(Enum); ok {
			reason += ", expected one of: " + strings.Join(e.Values(), ", ")
		}
		return invalid(field, reason)
	default:
		return invalid(field, "failed "+fe.Tag()+" check")
	}
}
