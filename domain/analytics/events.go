package analytics

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/chunk"
	"github.com/helixml/trieve-go/domain/model"
)

// EventAnalyticsFilter narrows the events returned by GetEventsRequestBody.
type EventAnalyticsFilter struct {
	DateRange      nullable.Nullable[chunk.DateRange]  `json:"date_range,omitempty"`
	EventType      nullable.Nullable[EventTypesFilter] `json:"event_type,omitempty" validate:"omitnil,enum"`
	IsConversion   nullable.Nullable[bool]             `json:"is_conversion,omitempty"`
	MetadataFilter nullable.Nullable[string]           `json:"metadata_filter,omitempty"`
	UserID         nullable.Nullable[string]           `json:"user_id,omitempty"`
}

// ModelName implements model.Model.
func (EventAnalyticsFilter) ModelName() string { return "EventAnalyticsFilter" }

// Validate implements model.Validator.
func (f EventAnalyticsFilter) Validate() error {
	c := model.NewChecker(f.ModelName()).Struct(f)
	model.CheckNullable(c, "date_range", f.DateRange)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *EventAnalyticsFilter) UnmarshalJSON(data []byte) error {
	type plain EventAnalyticsFilter
	return model.Decode(data, (*plain)(f), f.ModelName())
}

// GetEventsRequestBody is the body of POST /api/analytics/events/all.
type GetEventsRequestBody struct {
	Filter nullable.Nullable[EventAnalyticsFilter] `json:"filter,omitempty"`
	Page   nullable.Nullable[int64]                `json:"page,omitempty" validate:"omitnil,min=0"`
}

// ModelName implements model.Model.
func (GetEventsRequestBody) ModelName() string { return "GetEventsRequestBody" }

// Validate implements model.Validator.
func (b GetEventsRequestBody) Validate() error {
	c := model.NewChecker(b.ModelName()).Struct(b)
	model.CheckNullable(c, "filter", b.Filter)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *GetEventsRequestBody) UnmarshalJSON(data []byte) error {
	type plain GetEventsRequestBody
	return model.Decode(data, (*plain)(b), b.ModelName())
}
