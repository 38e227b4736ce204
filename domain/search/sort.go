package search

import (
	"encoding/json"
	"errors"

	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/chunk"
	"github.com/helixml/trieve-go/domain/model"
)

// SortOptions reorders the result set after retrieval.
type SortOptions struct {
	LocationBias nullable.Nullable[GeoInfoWithBias]    `json:"location_bias,omitempty"`
	MMR          nullable.Nullable[MmrOptions]         `json:"mmr,omitempty"`
	RecencyBias  nullable.Nullable[float64]            `json:"recency_bias,omitempty"`
	SortBy       nullable.Nullable[QdrantSortBy]       `json:"sort_by,omitempty"`
	TagWeights   nullable.Nullable[map[string]float64] `json:"tag_weights,omitempty"`
	UseWeights   nullable.Nullable[bool]               `json:"use_weights,omitempty"`
}

// ModelName implements model.Model.
func (SortOptions) ModelName() string { return "SortOptions" }

// Validate implements model.Validator.
func (s SortOptions) Validate() error {
	c := model.NewChecker(s.ModelName())
	model.CheckNullable(c, "location_bias", s.LocationBias)
	model.CheckNullable(c, "mmr", s.MMR)
	model.CheckNullable(c, "sort_by", s.SortBy)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SortOptions) UnmarshalJSON(data []byte) error {
	type plain SortOptions
	return model.Decode(data, (*plain)(s), s.ModelName())
}

// GeoInfoWithBias boosts results close to Location.
type GeoInfoWithBias struct {
	Bias     float64       `json:"bias"`
	Location chunk.GeoInfo `json:"location" validate:"-"`
}

// ModelName implements model.Model.
func (GeoInfoWithBias) ModelName() string { return "GeoInfoWithBias" }

// Validate implements model.Validator.
func (g GeoInfoWithBias) Validate() error {
	return model.NewChecker(g.ModelName()).Nested("location", g.Location.Validate()).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *GeoInfoWithBias) UnmarshalJSON(data []byte) error {
	type plain GeoInfoWithBias
	return model.Decode(data, (*plain)(g), g.ModelName(), "bias", "location")
}

// MmrOptions configures maximal marginal relevance reranking.
type MmrOptions struct {
	MmrLambda nullable.Nullable[float64] `json:"mmr_lambda,omitempty"`
	UseMmr    bool                       `json:"use_mmr"`
}

// ModelName implements model.Model.
func (MmrOptions) ModelName() string { return "MmrOptions" }

// Validate implements model.Validator.
func (MmrOptions) Validate() error { return nil }

// UnmarshalJSON implements json.Unmarshaler.
func (m *MmrOptions) UnmarshalJSON(data []byte) error {
	type plain MmrOptions
	return model.Decode(data, (*plain)(m), m.ModelName(), "use_mmr")
}

// QdrantSortBy sorts either by a field or by a reranking search type.
// Exactly one member is set.
type QdrantSortBy struct {
	OfField      *SortByField
	OfSearchType *SortBySearchType
}

// SortByFieldOption wraps a SortByField.
func SortByFieldOption(f SortByField) QdrantSortBy {
	return QdrantSortBy{OfField: &f}
}

// SortBySearchTypeOption wraps a SortBySearchType.
func SortBySearchTypeOption(s SortBySearchType) QdrantSortBy {
	return QdrantSortBy{OfSearchType: &s}
}

// ModelName implements model.Model.
func (QdrantSortBy) ModelName() string { return "QdrantSortBy" }

// Validate checks that exactly one variant is set and validates it.
func (q QdrantSortBy) Validate() error {
	c := model.NewChecker(q.ModelName())
	switch {
	case q.OfField != nil && q.OfSearchType != nil:
		c.Invalid("", "exactly one of sort by field or sort by search type must be set")
	case q.OfField != nil:
		c.Nested("", q.OfField.Validate())
	case q.OfSearchType != nil:
		c.Nested("", q.OfSearchType.Validate())
	default:
		c.Invalid("", "no sort set")
	}
	return c.Err()
}

// MarshalJSON implements json.Marshaler.
func (q QdrantSortBy) MarshalJSON() ([]byte, error) {
	switch {
	case q.OfField != nil:
		return json.Marshal(q.OfField)
	case q.OfSearchType != nil:
		return json.Marshal(q.OfSearchType)
	}
	return nil, errors.New("search: no sort set")
}

// UnmarshalJSON picks the variant from the keys present: "field" selects
// SortByField, anything else is decoded as SortBySearchType.
func (q *QdrantSortBy) UnmarshalJSON(data []byte) error {
	keys, err := model.Keys(data, q.ModelName())
	if err != nil {
		return err
	}
	*q = QdrantSortBy{}
	if _, ok := keys["field"]; ok {
		var f SortByField
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		q.OfField = &f
		return nil
	}
	var s SortBySearchType
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	q.OfSearchType = &s
	return nil
}

// SortByField sorts results on a numeric field.
type SortByField struct {
	Direction      nullable.Nullable[SortOrder] `json:"direction,omitempty" validate:"omitnil,enum"`
	Field          string                       `json:"field"`
	PrefetchAmount nullable.Nullable[int64]     `json:"prefetch_amount,omitempty" validate:"omitnil,min=0"`
}

// ModelName implements model.Model.
func (SortByField) ModelName() string { return "SortByField" }

// Validate implements model.Validator.
func (s SortByField) Validate() error {
	return model.NewChecker(s.ModelName()).Struct(s).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SortByField) UnmarshalJSON(data []byte) error {
	type plain SortByField
	return model.Decode(data, (*plain)(s), s.ModelName(), "field")
}

// SortBySearchType reranks a prefetched result set.
type SortBySearchType struct {
	PrefetchAmount nullable.Nullable[int64]  `json:"prefetch_amount,omitempty" validate:"omitnil,min=0"`
	RerankQuery    nullable.Nullable[string] `json:"rerank_query,omitempty"`
	RerankType     ReRankOptions             `json:"rerank_type" validate:"enum"`
}

// ModelName implements model.Model.
func (SortBySearchType) ModelName() string { return "SortBySearchType" }

// Validate implements model.Validator.
func (s SortBySearchType) Validate() error {
	return model.NewChecker(s.ModelName()).Struct(s).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SortBySearchType) UnmarshalJSON(data []byte) error {
	type plain SortBySearchType
	return model.Decode(data, (*plain)(s), s.ModelName(), "rerank_type")
}
