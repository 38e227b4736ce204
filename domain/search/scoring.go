package search

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/model"
)

// ScoringOptions boosts chunks that match a phrase.
type ScoringOptions struct {
	FulltextBoost nullable.Nullable[FullTextBoost] `json:"fulltext_boost,omitempty"`
	SemanticBoost nullable.Nullable[SemanticBoost] `json:"semantic_boost,omitempty"`
}

// ModelName implements model.Model.
func (ScoringOptions) ModelName() string { return "ScoringOptions" }

// Validate implements model.Validator.
func (s ScoringOptions) Validate() error {
	c := model.NewChecker(s.ModelName())
	model.CheckNullable(c, "fulltext_boost", s.FulltextBoost)
	model.CheckNullable(c, "semantic_boost", s.SemanticBoost)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *ScoringOptions) UnmarshalJSON(data []byte) error {
	type plain ScoringOptions
	return model.Decode(data, (*plain)(s), s.ModelName())
}

// FullTextBoost multiplies the fulltext score of chunks matching Phrase.
type FullTextBoost struct {
	BoostFactor float64 `json:"boost_factor"`
	Phrase      string  `json:"phrase"`
}

// ModelName implements model.Model.
func (FullTextBoost) ModelName() string { return "FullTextBoost" }

// Validate implements model.Validator.
func (b FullTextBoost) Validate() error {
	return model.NewChecker(b.ModelName()).Struct(b).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *FullTextBoost) UnmarshalJSON(data []byte) error {
	type plain FullTextBoost
	return model.Decode(data, (*plain)(b), b.ModelName(), "boost_factor", "phrase")
}

// SemanticBoost moves the query embedding towards Phrase by DistanceFactor.
type SemanticBoost struct {
	DistanceFactor float64 `json:"distance_factor"`
	Phrase         string  `json:"phrase"`
}

// ModelName implements model.Model.
func (SemanticBoost) ModelName() string { return "SemanticBoost" }

// Validate implements model.Validator.
func (b SemanticBoost) Validate() error {
	return model.NewChecker(b.ModelName()).Struct(b).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *SemanticBoost) UnmarshalJSON(data []byte) error {
	type plain SemanticBoost
	return model.Decode(data, (*plain)(b), b.ModelName(), "distance_factor", "phrase")
}
