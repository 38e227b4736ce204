package chunk

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/helixml/trieve-go/domain/model"
)

var errEmptyUnion = errors.New("chunk: no variant set")

// ConditionType is one filter condition: either a FieldCondition or a
// HasChunkIDCondition. Exactly one member is set.
type ConditionType struct {
	OfField      *FieldCondition
	OfHasChunkID *HasChunkIDCondition
}

// FieldConditionType wraps a FieldCondition.
func FieldConditionType(fc FieldCondition) ConditionType {
	return ConditionType{OfField: &fc}
}

// HasChunkIDConditionType wraps a HasChunkIDCondition.
func HasChunkIDConditionType(hc HasChunkIDCondition) ConditionType {
	return ConditionType{OfHasChunkID: &hc}
}

// ModelName implements model.Model.
func (ConditionType) ModelName() string { return "ConditionType" }

// Validate checks that exactly one variant is set and validates it.
func (c ConditionType) Validate() error {
	ch := model.NewChecker(c.ModelName())
	switch {
	case c.OfField != nil && c.OfHasChunkID != nil:
		ch.Invalid("", "exactly one of field condition or chunk id condition must be set")
	case c.OfField != nil:
		ch.Nested("", c.OfField.Validate())
	case c.OfHasChunkID != nil:
		ch.Nested("", c.OfHasChunkID.Validate())
	default:
		ch.Invalid("", "no condition set")
	}
	return ch.Err()
}

// MarshalJSON implements json.Marshaler.
func (c ConditionType) MarshalJSON() ([]byte, error) {
	switch {
	case c.OfField != nil:
		return json.Marshal(c.OfField)
	case c.OfHasChunkID != nil:
		return json.Marshal(c.OfHasChunkID)
	}
	return nil, errEmptyUnion
}

// UnmarshalJSON picks the variant from the keys present: objects carrying
// "field" are field conditions, everything else is a chunk id condition.
func (c *ConditionType) UnmarshalJSON(data []byte) error {
	keys, err := model.Keys(data, c.ModelName())
	if err != nil {
		return err
	}
	*c = ConditionType{}
	if _, ok := keys["field"]; ok {
		var fc FieldCondition
		if err := json.Unmarshal(data, &fc); err != nil {
			return err
		}
		c.OfField = &fc
		return nil
	}
	var hc HasChunkIDCondition
	if err := json.Unmarshal(data, &hc); err != nil {
		return err
	}
	c.OfHasChunkID = &hc
	return nil
}

// FieldCondition matches chunks on one field: metadata keys are addressed as
// "metadata.key", plus the built-in tag_set, link, num_value and time_stamp.
type FieldCondition struct {
	Boolean   nullable.Nullable[bool]             `json:"boolean,omitempty"`
	DateRange nullable.Nullable[DateRange]        `json:"date_range,omitempty"`
	Field     string                              `json:"field"`
	GeoRadius nullable.Nullable[LocationRadius]   `json:"geo_radius,omitempty"`
	MatchAll  nullable.Nullable[[]MatchCondition] `json:"match_all,omitempty"`
	MatchAny  nullable.Nullable[[]MatchCondition] `json:"match_any,omitempty"`
	Range     nullable.Nullable[Range]            `json:"range,omitempty"`
}

// NewFieldCondition returns a condition on field with no criteria set.
func NewFieldCondition(field string) FieldCondition {
	return FieldCondition{Field: field}
}

// ModelName implements model.Model.
func (FieldCondition) ModelName() string { return "FieldCondition" }

// Validate implements model.Validator.
func (f FieldCondition) Validate() error {
	c := model.NewChecker(f.ModelName()).Struct(f)
	model.CheckNullable(c, "date_range", f.DateRange)
	model.CheckNullable(c, "geo_radius", f.GeoRadius)
	model.CheckNullableEach(c, "match_all", f.MatchAll)
	model.CheckNullableEach(c, "match_any", f.MatchAny)
	model.CheckNullable(c, "range", f.Range)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FieldCondition) UnmarshalJSON(data []byte) error {
	type plain FieldCondition
	return model.Decode(data, (*plain)(f), f.ModelName(), "field")
}

// HasChunkIDCondition matches chunks by id or tracking id.
type HasChunkIDCondition struct {
	IDs         nullable.Nullable[[]openapi_types.UUID] `json:"ids,omitempty"`
	TrackingIDs nullable.Nullable[[]string]             `json:"tracking_ids,omitempty"`
}

// ModelName implements model.Model.
func (HasChunkIDCondition) ModelName() string { return "HasChunkIDCondition" }

// Validate implements model.Validator. The schema places no constraints on
// the lists.
func (HasChunkIDCondition) Validate() error { return nil }

// UnmarshalJSON implements json.Unmarshaler.
func (h *HasChunkIDCondition) UnmarshalJSON(data []byte) error {
	type plain HasChunkIDCondition
	return model.Decode(data, (*plain)(h), h.ModelName())
}

// MatchCondition is a string or an integer to match a field against.
type MatchCondition struct {
	OfString *string
	OfInt    *int64
}

// MatchString returns a string match.
func MatchString(s string) MatchCondition {
	return MatchCondition{OfString: &s}
}

// MatchInt returns an integer match.
func MatchInt(i int64) MatchCondition {
	return MatchCondition{OfInt: &i}
}

// ModelName implements model.Model.
func (MatchCondition) ModelName() string { return "MatchCondition" }

// Validate checks that exactly one variant is set.
func (m MatchCondition) Validate() error {
	c := model.NewChecker(m.ModelName())
	if (m.OfString == nil) == (m.OfInt == nil) {
		c.Invalid("", "exactly one of string or integer must be set")
	}
	return c.Err()
}

// MarshalJSON implements json.Marshaler.
func (m MatchCondition) MarshalJSON() ([]byte, error) {
	switch {
	case m.OfString != nil:
		return json.Marshal(*m.OfString)
	case m.OfInt != nil:
		return json.Marshal(*m.OfInt)
	}
	return nil, errEmptyUnion
}

// UnmarshalJSON accepts a JSON string or a JSON integer. Fractional numbers
// are rejected.
func (m *MatchCondition) UnmarshalJSON(data []byte) error {
	*m = MatchCondition{}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		m.OfString = &s
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err == nil {
		if i, err := n.Int64(); err == nil {
			m.OfInt = &i
			return nil
		}
	}
	return model.NewChecker(m.ModelName()).Invalid("", "must be a string or an integer, got "+string(data)).Err()
}
