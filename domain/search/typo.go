package search

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/model"
)

// TypoOptions controls typo tolerance.
type TypoOptions struct {
	CorrectTypos     nullable.Nullable[bool]      `json:"correct_typos,omitempty"`
	DisableOnWord    nullable.Nullable[[]string]  `json:"disable_on_word,omitempty"`
	OneTypoWordRange nullable.Nullable[TypoRange] `json:"one_typo_word_range,omitempty"`
	// The wire key keeps the API's spelling.
	PrioritizeDomainSpecificWords nullable.Nullable[bool]      `json:"prioritize_domain_specifc_words,omitempty"`
	TwoTypoWordRange              nullable.Nullable[TypoRange] `json:"two_typo_word_range,omitempty"`
}

// ModelName implements model.Model.
func (TypoOptions) ModelName() string { return "TypoOptions" }

// Validate implements model.Validator.
func (t TypoOptions) Validate() error {
	c := model.NewChecker(t.ModelName())
	model.CheckNullable(c, "one_typo_word_range", t.OneTypoWordRange)
	model.CheckNullable(c, "two_typo_word_range", t.TwoTypoWordRange)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TypoOptions) UnmarshalJSON(data []byte) error {
	type plain TypoOptions
	return model.Decode(data, (*plain)(t), t.ModelName())
}

// TypoRange is the word length range within which a number of typos is
// tolerated.
type TypoRange struct {
	Max nullable.Nullable[int] `json:"max,omitempty" validate:"omitnil,min=0"`
	Min int                    `json:"min" validate:"min=0"`
}

// ModelName implements model.Model.
func (TypoRange) ModelName() string { return "TypoRange" }

// Validate implements model.Validator.
func (t TypoRange) Validate() error {
	return model.NewChecker(t.ModelName()).Struct(t).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TypoRange) UnmarshalJSON(data []byte) error {
	type plain TypoRange
	return model.Decode(data, (*plain)(t), t.ModelName(), "min")
}
