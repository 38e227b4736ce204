// Package chunk provides the filter objects Trieve applies to chunk searches.
package chunk

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/model"
)

// ChunkFilter narrows a search. Conditions in Must are ANDed, conditions in
// Should are ORed, and any match in MustNot excludes the chunk.
type ChunkFilter struct {
	JSONBPrefilter nullable.Nullable[bool]            `json:"jsonb_prefilter,omitempty"`
	Must           nullable.Nullable[[]ConditionType] `json:"must,omitempty"`
	MustNot        nullable.Nullable[[]ConditionType] `json:"must_not,omitempty"`
	Should         nullable.Nullable[[]ConditionType] `json:"should,omitempty"`
}

// ModelName implements model.Model.
func (ChunkFilter) ModelName() string { return "ChunkFilter" }

// Validate checks every condition.
func (f ChunkFilter) Validate() error {
	c := model.NewChecker(f.ModelName())
	model.CheckNullableEach(c, "must", f.Must)
	model.CheckNullableEach(c, "must_not", f.MustNot)
	model.CheckNullableEach(c, "should", f.Should)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *ChunkFilter) UnmarshalJSON(data []byte) error {
	type plain ChunkFilter
	return model.Decode(data, (*plain)(f), f.ModelName())
}
