// Package search provides the request payloads of the Trieve chunk search
// and autocomplete endpoints together with their option objects.
package search

import (
	"slices"

	"github.com/helixml/trieve-go/domain/model"
)

func init() {
	model.RegisterNullable[SearchMethod]()
	model.RegisterNullable[HighlightStrategy]()
	model.RegisterNullable[SortOrder]()
	model.RegisterNullable[ReRankOptions]()
}

// SearchMethod selects the retrieval strategy.
type SearchMethod string

// SearchMethod values.
const (
	SearchMethodFulltext SearchMethod = "fulltext"
	SearchMethodSemantic SearchMethod = "semantic"
	SearchMethodHybrid   SearchMethod = "hybrid"
	SearchMethodBM25     SearchMethod = "bm25"
)

var searchMethods = []string{"fulltext", "semantic", "hybrid", "bm25"}

// Valid reports whether m is a declared value.
func (m SearchMethod) Valid() bool { return slices.Contains(searchMethods, string(m)) }

// Values lists the declared values.
func (SearchMethod) Values() []string { return slices.Clone(searchMethods) }

// HighlightStrategy selects how highlights are computed.
type HighlightStrategy string

// HighlightStrategy values.
const (
	HighlightStrategyExactMatch HighlightStrategy = "exactmatch"
	HighlightStrategyV1         HighlightStrategy = "v1"
)

var highlightStrategies = []string{"exactmatch", "v1"}

// Valid reports whether s is a declared value.
func (s HighlightStrategy) Valid() bool { return slices.Contains(highlightStrategies, string(s)) }

// Values lists the declared values.
func (HighlightStrategy) Values() []string { return slices.Clone(highlightStrategies) }

// SortOrder is an ascending or descending ordering.
type SortOrder string

// SortOrder values.
const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

var sortOrders = []string{"asc", "desc"}

// Valid reports whether o is a declared value.
func (o SortOrder) Valid() bool { return slices.Contains(sortOrders, string(o)) }

// Values lists the declared values.
func (SortOrder) Values() []string { return slices.Clone(sortOrders) }

// ReRankOptions selects the reranker applied by SortBySearchType.
type ReRankOptions string

// ReRankOptions values.
const (
	ReRankSemantic     ReRankOptions = "semantic"
	ReRankFulltext     ReRankOptions = "fulltext"
	ReRankBM25         ReRankOptions = "bm25"
	ReRankCrossEncoder ReRankOptions = "cross_encoder"
)

var rerankOptions = []string{"semantic", "fulltext", "bm25", "cross_encoder"}

// Valid reports whether o is a declared value.
func (o ReRankOptions) Valid() bool { return slices.Contains(rerankOptions, string(o)) }

// Values lists the declared values.
func (ReRankOptions) Values() []string { return slices.Clone(rerankOptions) }
