package analytics

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/chunk"
	"github.com/helixml/trieve-go/domain/model"
	"github.com/helixml/trieve-go/domain/search"
)

// RAGQueriesType is the only accepted value of RAGQueriesRequest.Type.
const RAGQueriesType = "rag_queries"

// RAGAnalyticsFilter narrows RAG query analytics.
type RAGAnalyticsFilter struct {
	DateRange nullable.Nullable[chunk.DateRange] `json:"date_range,omitempty"`
	RagType   nullable.Nullable[RagTypes]        `json:"rag_type,omitempty" validate:"omitnil,enum"`
}

// ModelName implements model.Model.
func (RAGAnalyticsFilter) ModelName() string { return "RAGAnalyticsFilter" }

// Validate implements model.Validator.
func (f RAGAnalyticsFilter) Validate() error {
	c := model.NewChecker(f.ModelName()).Struct(f)
	model.CheckNullable(c, "date_range", f.DateRange)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *RAGAnalyticsFilter) UnmarshalJSON(data []byte) error {
	type plain RAGAnalyticsFilter
	return model.Decode(data, (*plain)(f), f.ModelName())
}

// RAGQueriesRequest lists RAG queries made against a dataset.
type RAGQueriesRequest struct {
	Filter    nullable.Nullable[RAGAnalyticsFilter] `json:"filter,omitempty"`
	Page      nullable.Nullable[int64]              `json:"page,omitempty" validate:"omitnil,min=0"`
	SortBy    nullable.Nullable[RAGSortBy]          `json:"sort_by,omitempty" validate:"omitnil,enum"`
	SortOrder nullable.Nullable[search.SortOrder]   `json:"sort_order,omitempty" validate:"omitnil,enum"`
	Type      string                                `json:"type" validate:"oneof=rag_queries"`
}

// NewRAGQueriesRequest returns a request with Type set.
func NewRAGQueriesRequest() RAGQueriesRequest {
	return RAGQueriesRequest{Type: RAGQueriesType}
}

// ModelName implements model.Model.
func (RAGQueriesRequest) ModelName() string { return "RAGQueriesRequest" }

// Validate implements model.Validator.
func (r RAGQueriesRequest) Validate() error {
	c := model.NewChecker(r.ModelName()).Struct(r)
	model.CheckNullable(c, "filter", r.Filter)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RAGQueriesRequest) UnmarshalJSON(data []byte) error {
	type plain RAGQueriesRequest
	return model.Decode(data, (*plain)(r), r.ModelName(), "type")
}
