package dataset

import (
	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/helixml/trieve-go/domain/model"
)

// UpdateDatasetReqPayload is the body of PUT /api/dataset. The dataset is
// addressed by DatasetID or TrackingID.
type UpdateDatasetReqPayload struct {
	CrawlOptions        nullable.Nullable[CrawlOptions]            `json:"crawl_options,omitempty"`
	DatasetID           nullable.Nullable[openapi_types.UUID]      `json:"dataset_id,omitempty"`
	DatasetName         nullable.Nullable[string]                  `json:"dataset_name,omitempty"`
	NewTrackingID       nullable.Nullable[string]                  `json:"new_tracking_id,omitempty"`
	ServerConfiguration nullable.Nullable[DatasetConfigurationDTO] `json:"server_configuration,omitempty"`
	TrackingID          nullable.Nullable[string]                  `json:"tracking_id,omitempty"`
}

// ModelName implements model.Model.
func (UpdateDatasetReqPayload) ModelName() string { return "UpdateDatasetReqPayload" }

// Validate implements model.Validator.
func (p UpdateDatasetReqPayload) Validate() error {
	c := model.NewChecker(p.ModelName())
	model.CheckNullable(c, "crawl_options", p.CrawlOptions)
	model.CheckNullable(c, "server_configuration", p.ServerConfiguration)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *UpdateDatasetReqPayload) UnmarshalJSON(data []byte) error {
	type plain UpdateDatasetReqPayload
	return model.Decode(data, (*plain)(p), p.ModelName())
}
