package trieve

import (
	"github.com/helixml/trieve-go/domain/analytics"
	"github.com/helixml/trieve-go/domain/chunk"
	"github.com/helixml/trieve-go/domain/dataset"
	"github.com/helixml/trieve-go/domain/model"
	"github.com/helixml/trieve-go/domain/search"
)

type modelPtr[T any] interface {
	*T
	model.Model
}

// entry is a registered model: its schema name, owning package and a
// factory returning a fresh pointer to decode into.
type entry struct {
	name    string
	pkg     string
	newFunc func() model.Model
}

func register[T any, PT modelPtr[T]](pkg string) entry {
	return entry{
		name:    PT(new(T)).ModelName(),
		pkg:     pkg,
		newFunc: func() model.Model { return PT(new(T)) },
	}
}

// builtin lists every model of the Trieve API in catalog order.
func builtin() []entry {
	return []entry{
		register[chunk.ChunkFilter]("chunk"),
		register[chunk.ConditionType]("chunk"),
		register[chunk.FieldCondition]("chunk"),
		register[chunk.HasChunkIDCondition]("chunk"),
		register[chunk.MatchCondition]("chunk"),
		register[chunk.Range]("chunk"),
		register[chunk.DateRange]("chunk"),
		register[chunk.GeoInfo]("chunk"),
		register[chunk.LocationRadius]("chunk"),

		register[search.AutocompleteReqPayload]("search"),
		register[search.SearchChunksReqPayload]("search"),
		register[search.HighlightOptions]("search"),
		register[search.ScoringOptions]("search"),
		register[search.FullTextBoost]("search"),
		register[search.SemanticBoost]("search"),
		register[search.SortOptions]("search"),
		register[search.GeoInfoWithBias]("search"),
		register[search.MmrOptions]("search"),
		register[search.QdrantSortBy]("search"),
		register[search.SortByField]("search"),
		register[search.SortBySearchType]("search"),
		register[search.TypoOptions]("search"),
		register[search.TypoRange]("search"),

		register[analytics.EventAnalyticsFilter]("analytics"),
		register[analytics.GetEventsRequestBody]("analytics"),
		register[analytics.RAGAnalyticsFilter]("analytics"),
		register[analytics.RAGQueriesRequest]("analytics"),

		register[dataset.CrawlOptions]("dataset"),
		register[dataset.DatasetConfigurationDTO]("dataset"),
		register[dataset.PublicDatasetOptions]("dataset"),
		register[dataset.PublicPageParameters]("dataset"),
		register[dataset.HeroPattern]("dataset"),
		register[dataset.UpdateDatasetReqPayload]("dataset"),
	}
}
