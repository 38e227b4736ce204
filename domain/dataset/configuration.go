package dataset

import (
	"github.com/oapi-codegen/nullable"

	"github.com/helixml/trieve-go/domain/model"
)

// DatasetConfigurationDTO is the server configuration of a dataset. Keys are
// upper case on the wire.
type DatasetConfigurationDTO struct {
	BM25AvgLen              nullable.Nullable[float64]              `json:"BM25_AVG_LEN,omitempty"`
	BM25B                   nullable.Nullable[float64]              `json:"BM25_B,omitempty"`
	BM25Enabled             nullable.Nullable[bool]                 `json:"BM25_ENABLED,omitempty"`
	BM25K                   nullable.Nullable[float64]              `json:"BM25_K,omitempty"`
	DistanceMetric          nullable.Nullable[DistanceMetric]       `json:"DISTANCE_METRIC,omitempty" validate:"omitnil,enum"`
	EmbeddingBaseURL        nullable.Nullable[string]               `json:"EMBEDDING_BASE_URL,omitempty"`
	EmbeddingModelName      nullable.Nullable[string]               `json:"EMBEDDING_MODEL_NAME,omitempty"`
	EmbeddingQueryPrefix    nullable.Nullable[string]               `json:"EMBEDDING_QUERY_PREFIX,omitempty"`
	EmbeddingSize           nullable.Nullable[int64]                `json:"EMBEDDING_SIZE,omitempty" validate:"omitnil,min=0"`
	FrequencyPenalty        nullable.Nullable[float64]              `json:"FREQUENCY_PENALTY,omitempty"`
	FulltextEnabled         nullable.Nullable[bool]                 `json:"FULLTEXT_ENABLED,omitempty"`
	IndexedOnly             nullable.Nullable[bool]                 `json:"INDEXED_ONLY,omitempty"`
	LLMBaseURL              nullable.Nullable[string]               `json:"LLM_BASE_URL,omitempty"`
	LLMDefaultModel         nullable.Nullable[string]               `json:"LLM_DEFAULT_MODEL,omitempty"`
	Locked                  nullable.Nullable[bool]                 `json:"LOCKED,omitempty"`
	MaxLimit                nullable.Nullable[int64]                `json:"MAX_LIMIT,omitempty" validate:"omitnil,min=0"`
	MessageToQueryPrompt    nullable.Nullable[string]               `json:"MESSAGE_TO_QUERY_PROMPT,omitempty"`
	NRetrievalsToInclude    nullable.Nullable[int64]                `json:"N_RETRIEVALS_TO_INCLUDE,omitempty" validate:"omitnil,min=0"`
	PresencePenalty         nullable.Nullable[float64]              `json:"PRESENCE_PENALTY,omitempty"`
	PublicDataset           nullable.Nullable[PublicDatasetOptions] `json:"PUBLIC_DATASET,omitempty"`
	RAGPrompt               nullable.Nullable[string]               `json:"RAG_PROMPT,omitempty"`
	SemanticEnabled         nullable.Nullable[bool]                 `json:"SEMANTIC_ENABLED,omitempty"`
	StopTokens              nullable.Nullable[[]string]             `json:"STOP_TOKENS,omitempty"`
	SystemPrompt            nullable.Nullable[string]               `json:"SYSTEM_PROMPT,omitempty"`
	Temperature             nullable.Nullable[float64]              `json:"TEMPERATURE,omitempty"`
	UseMessageToQueryPrompt nullable.Nullable[bool]                 `json:"USE_MESSAGE_TO_QUERY_PROMPT,omitempty"`
}

// ModelName implements model.Model.
func (DatasetConfigurationDTO) ModelName() string { return "DatasetConfigurationDTO" }

// Validate implements model.Validator.
func (d DatasetConfigurationDTO) Validate() error {
	c := model.NewChecker(d.ModelName()).Struct(d)
	model.CheckNullable(c, "PUBLIC_DATASET", d.PublicDataset)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DatasetConfigurationDTO) UnmarshalJSON(data []byte) error {
	type plain DatasetConfigurationDTO
	return model.Decode(data, (*plain)(d), d.ModelName())
}

// PublicDatasetOptions toggles the public search page of a dataset.
type PublicDatasetOptions struct {
	Enabled     bool                                    `json:"enabled"`
	ExtraParams nullable.Nullable[PublicPageParameters] `json:"extra_params,omitempty"`
}

// ModelName implements model.Model.
func (PublicDatasetOptions) ModelName() string { return "PublicDatasetOptions" }

// Validate implements model.Validator.
func (o PublicDatasetOptions) Validate() error {
	c := model.NewChecker(o.ModelName())
	model.CheckNullable(c, "extra_params", o.ExtraParams)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *PublicDatasetOptions) UnmarshalJSON(data []byte) error {
	type plain PublicDatasetOptions
	return model.Decode(data, (*plain)(o), o.ModelName(), "enabled")
}
