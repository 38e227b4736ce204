package dataset

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/model"
)

// CrawlOptions configures the site crawler feeding a dataset.
type CrawlOptions struct {
	BodyRemoveStrings    nullable.Nullable[[]string]      `json:"body_remove_strings,omitempty"`
	BoostTitles          nullable.Nullable[bool]          `json:"boost_titles,omitempty"`
	ExcludePaths         nullable.Nullable[[]string]      `json:"exclude_paths,omitempty"`
	ExcludeTags          nullable.Nullable[[]string]      `json:"exclude_tags,omitempty"`
	HeadingRemoveStrings nullable.Nullable[[]string]      `json:"heading_remove_strings,omitempty"`
	IncludePaths         nullable.Nullable[[]string]      `json:"include_paths,omitempty"`
	IncludeTags          nullable.Nullable[[]string]      `json:"include_tags,omitempty"`
	Interval             nullable.Nullable[CrawlInterval] `json:"interval,omitempty" validate:"omitnil,enum"`
	Limit                nullable.Nullable[int64]         `json:"limit,omitempty" validate:"omitnil,min=0"`
	SiteURL              nullable.Nullable[string]        `json:"site_url,omitempty"`
}

// ModelName implements model.Model.
func (CrawlOptions) ModelName() string { return "CrawlOptions" }

// Validate implements model.Validator.
func (o CrawlOptions) Validate() error {
	return model.NewChecker(o.ModelName()).Struct(o).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *CrawlOptions) UnmarshalJSON(data []byte) error {
	type plain CrawlOptions
	return model.Decode(data, (*plain)(o), o.ModelName())
}
