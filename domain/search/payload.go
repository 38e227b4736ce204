package search

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/chunk"
	"github.com/helixml/trieve-go/domain/model"
)

// AutocompleteReqPayload is the body of POST /api/chunk/autocomplete.
type AutocompleteReqPayload struct {
	ContentOnly          nullable.Nullable[bool]              `json:"content_only,omitempty"`
	ExtendResults        nullable.Nullable[bool]              `json:"extend_results,omitempty"`
	Filters              nullable.Nullable[chunk.ChunkFilter] `json:"filters,omitempty"`
	HighlightOptions     nullable.Nullable[HighlightOptions]  `json:"highlight_options,omitempty"`
	PageSize             nullable.Nullable[int64]             `json:"page_size,omitempty" validate:"omitnil,min=0"`
	Query                string                               `json:"query"`
	RemoveStopWords      nullable.Nullable[bool]              `json:"remove_stop_words,omitempty"`
	ScoreThreshold       nullable.Nullable[float64]           `json:"score_threshold,omitempty"`
	ScoringOptions       nullable.Nullable[ScoringOptions]    `json:"scoring_options,omitempty"`
	SearchType           SearchMethod                         `json:"search_type" validate:"enum"`
	SlimChunks           nullable.Nullable[bool]              `json:"slim_chunks,omitempty"`
	SortOptions          nullable.Nullable[SortOptions]       `json:"sort_options,omitempty"`
	TypoOptions          nullable.Nullable[TypoOptions]       `json:"typo_options,omitempty"`
	UseQuoteNegatedTerms nullable.Nullable[bool]              `json:"use_quote_negated_terms,omitempty"`
	UserID               nullable.Nullable[string]            `json:"user_id,omitempty"`
}

// NewAutocompleteReqPayload returns a payload with its required fields set.
func NewAutocompleteReqPayload(query string, searchType SearchMethod) AutocompleteReqPayload {
	return AutocompleteReqPayload{Query: query, SearchType: searchType}
}

// ModelName implements model.Model.
func (AutocompleteReqPayload) ModelName() string { return "AutocompleteReqPayload" }

// Validate implements model.Validator.
func (p AutocompleteReqPayload) Validate() error {
	c := model.NewChecker(p.ModelName()).Struct(p)
	model.CheckNullable(c, "filters", p.Filters)
	model.CheckNullable(c, "highlight_options", p.HighlightOptions)
	model.CheckNullable(c, "scoring_options", p.ScoringOptions)
	model.CheckNullable(c, "sort_options", p.SortOptions)
	model.CheckNullable(c, "typo_options", p.TypoOptions)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *AutocompleteReqPayload) UnmarshalJSON(data []byte) error {
	type plain AutocompleteReqPayload
	return model.Decode(data, (*plain)(p), p.ModelName(), "query", "search_type")
}

// SearchChunksReqPayload is the body of POST /api/chunk/search.
type SearchChunksReqPayload struct {
	ContentOnly          nullable.Nullable[bool]              `json:"content_only,omitempty"`
	Filters              nullable.Nullable[chunk.ChunkFilter] `json:"filters,omitempty"`
	GetTotalPages        nullable.Nullable[bool]              `json:"get_total_pages,omitempty"`
	HighlightOptions     nullable.Nullable[HighlightOptions]  `json:"highlight_options,omitempty"`
	Page                 nullable.Nullable[int64]             `json:"page,omitempty" validate:"omitnil,min=0"`
	PageSize             nullable.Nullable[int64]             `json:"page_size,omitempty" validate:"omitnil,min=0"`
	Query                string                               `json:"query"`
	RemoveStopWords      nullable.Nullable[bool]              `json:"remove_stop_words,omitempty"`
	ScoreThreshold       nullable.Nullable[float64]           `json:"score_threshold,omitempty"`
	ScoringOptions       nullable.Nullable[ScoringOptions]    `json:"scoring_options,omitempty"`
	SearchType           SearchMethod                         `json:"search_type" validate:"enum"`
	SlimChunks           nullable.Nullable[bool]              `json:"slim_chunks,omitempty"`
	SortOptions          nullable.Nullable[SortOptions]       `json:"sort_options,omitempty"`
	TypoOptions          nullable.Nullable[TypoOptions]       `json:"typo_options,omitempty"`
	UseQuoteNegatedTerms nullable.Nullable[bool]              `json:"use_quote_negated_terms,omitempty"`
	UserID               nullable.Nullable[string]            `json:"user_id,omitempty"`
}

// NewSearchChunksReqPayload returns a payload with its required fields set.
func NewSearchChunksReqPayload(query string, searchType SearchMethod) SearchChunksReqPayload {
	return SearchChunksReqPayload{Query: query, SearchType: searchType}
}

// ModelName implements model.Model.
func (SearchChunksReqPayload) ModelName() string { return "SearchChunksReqPayload" }

// Validate implements model.Validator.
func (p SearchChunksReqPayload) Validate() error {
	c := model.NewChecker(p.ModelName()).Struct(p)
	model.CheckNullable(c, "filters", p.Filters)
	model.CheckNullable(c, "highlight_options", p.HighlightOptions)
	model.CheckNullable(c, "scoring_options", p.ScoringOptions)
	model.CheckNullable(c, "sort_options", p.SortOptions)
	model.CheckNullable(c, "typo_options", p.TypoOptions)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *SearchChunksReqPayload) UnmarshalJSON(data []byte) error {
	type plain SearchChunksReqPayload
	return model.Decode(data, (*plain)(p), p.ModelName(), "query", "search_type")
}
