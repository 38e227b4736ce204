package chunk

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/model"
)

// Range bounds a numeric field.
type Range struct {
	Gt  nullable.Nullable[float64] `json:"gt,omitempty"`
	Gte nullable.Nullable[float64] `json:"gte,omitempty"`
	Lt  nullable.Nullable[float64] `json:"lt,omitempty"`
	Lte nullable.Nullable[float64] `json:"lte,omitempty"`
}

// ModelName implements model.Model.
func (Range) ModelName() string { return "Range" }

// Validate implements model.Validator.
func (Range) Validate() error { return nil }

// UnmarshalJSON implements json.Unmarshaler.
func (r *Range) UnmarshalJSON(data []byte) error {
	type plain Range
	return model.Decode(data, (*plain)(r), r.ModelName())
}

// DateRange bounds a timestamp field. Bounds are passed through to the
// server verbatim, e.g. "2021-08-10T00:00:00Z".
type DateRange struct {
	Gt  nullable.Nullable[string] `json:"gt,omitempty"`
	Gte nullable.Nullable[string] `json:"gte,omitempty"`
	Lt  nullable.Nullable[string] `json:"lt,omitempty"`
	Lte nullable.Nullable[string] `json:"lte,omitempty"`
}

// ModelName implements model.Model.
func (DateRange) ModelName() string { return "DateRange" }

// Validate implements model.Validator.
func (DateRange) Validate() error { return nil }

// UnmarshalJSON implements json.Unmarshaler.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	type plain DateRange
	return model.Decode(data, (*plain)(r), r.ModelName())
}
