package search

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/model"
)

// HighlightOptions controls how matching spans are highlighted in results.
type HighlightOptions struct {
	HighlightDelimiters nullable.Nullable[[]string]          `json:"highlight_delimiters,omitempty"`
	HighlightMaxLength  nullable.Nullable[int]               `json:"highlight_max_length,omitempty" validate:"omitnil,min=0"`
	HighlightMaxNum     nullable.Nullable[int]               `json:"highlight_max_num,omitempty" validate:"omitnil,min=0"`
	HighlightResults    nullable.Nullable[bool]              `json:"highlight_results,omitempty"`
	HighlightStrategy   nullable.Nullable[HighlightStrategy] `json:"highlight_strategy,omitempty" validate:"omitnil,enum"`
	HighlightThreshold  nullable.Nullable[float64]           `json:"highlight_threshold,omitempty"`
	HighlightWindow     nullable.Nullable[int]               `json:"highlight_window,omitempty" validate:"omitnil,min=0"`
	PostTag             nullable.Nullable[string]            `json:"post_tag,omitempty"`
	PreTag              nullable.Nullable[string]            `json:"pre_tag,omitempty"`
}

// ModelName implements model.Model.
func (HighlightOptions) ModelName() string { return "HighlightOptions" }

// Validate implements model.Validator.
func (h HighlightOptions) Validate() error {
	return model.NewChecker(h.ModelName()).Struct(h).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HighlightOptions) UnmarshalJSON(data []byte) error {
	type plain HighlightOptions
	return model.Decode(data, (*plain)(h), h.ModelName())
}
