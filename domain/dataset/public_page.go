package dataset

import (
	"encoding/json"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/helixml/trieve-go/domain/model"
)

// PublicPageParameters customises the hosted search page. Keys are camel
// case on the wire.
type PublicPageParameters struct {
	AllowSwitchingModes  nullable.Nullable[bool]                       `json:"allowSwitchingModes,omitempty"`
	Analytics            nullable.Nullable[bool]                       `json:"analytics,omitempty"`
	APIKey               nullable.Nullable[string]                     `json:"apiKey,omitempty"`
	BaseURL              nullable.Nullable[string]                     `json:"baseUrl,omitempty"`
	BrandColor           nullable.Nullable[string]                     `json:"brandColor,omitempty"`
	BrandLogoImgSrcURL   nullable.Nullable[string]                     `json:"brandLogoImgSrcUrl,omitempty"`
	BrandName            nullable.Nullable[string]                     `json:"brandName,omitempty"`
	Chat                 nullable.Nullable[bool]                       `json:"chat,omitempty"`
	CurrencyPosition     nullable.Nullable[CurrencyPosition]           `json:"currencyPosition,omitempty" validate:"omitnil,enum"`
	DatasetID            nullable.Nullable[openapi_types.UUID]         `json:"datasetId,omitempty"`
	DebounceMs           nullable.Nullable[int64]                      `json:"debounceMs,omitempty" validate:"omitnil,min=0"`
	DefaultAIQuestions   nullable.Nullable[[]string]                   `json:"defaultAiQuestions,omitempty"`
	DefaultCurrency      nullable.Nullable[string]                     `json:"defaultCurrency,omitempty"`
	DefaultSearchMode    nullable.Nullable[SearchMode]                 `json:"defaultSearchMode,omitempty" validate:"omitnil,enum"`
	DefaultSearchQueries nullable.Nullable[[]string]                   `json:"defaultSearchQueries,omitempty"`
	HeroPattern          nullable.Nullable[HeroPattern]                `json:"heroPattern,omitempty"`
	Placeholder          nullable.Nullable[string]                     `json:"placeholder,omitempty"`
	ProblemLink          nullable.Nullable[string]                     `json:"problemLink,omitempty"`
	Responsive           nullable.Nullable[bool]                       `json:"responsive,omitempty"`
	SearchOptions        nullable.Nullable[map[string]json.RawMessage] `json:"searchOptions,omitempty"`
	SuggestedQueries     nullable.Nullable[bool]                       `json:"suggestedQueries,omitempty"`
	Theme                nullable.Nullable[PublicPageTheme]            `json:"theme,omitempty" validate:"omitnil,enum"`
	Type                 nullable.Nullable[PublicPageType]             `json:"type,omitempty" validate:"omitnil,enum"`
	UseGroupSearch       nullable.Nullable[bool]                       `json:"useGroupSearch,omitempty"`
}

// ModelName implements model.Model.
func (PublicPageParameters) ModelName() string { return "PublicPageParameters" }

// Validate implements model.Validator.
func (p PublicPageParameters) Validate() error {
	c := model.NewChecker(p.ModelName()).Struct(p)
	model.CheckNullable(c, "heroPattern", p.HeroPattern)
	return c.Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PublicPageParameters) UnmarshalJSON(data []byte) error {
	type plain PublicPageParameters
	return model.Decode(data, (*plain)(p), p.ModelName())
}

// HeroPattern is the SVG background behind the search hero.
type HeroPattern struct {
	BackgroundColor   nullable.Nullable[string]  `json:"backgroundColor,omitempty"`
	ForegroundColor   nullable.Nullable[string]  `json:"foregroundColor,omitempty"`
	ForegroundOpacity nullable.Nullable[float64] `json:"foregroundOpacity,omitempty" validate:"omitnil,min=0,max=1"`
	HeroPatternName   nullable.Nullable[string]  `json:"heroPatternName,omitempty"`
	HeroPatternSvg    nullable.Nullable[string]  `json:"heroPatternSvg,omitempty"`
}

// ModelName implements model.Model.
func (HeroPattern) ModelName() string { return "HeroPattern" }

// Validate implements model.Validator.
func (h HeroPattern) Validate() error {
	return model.NewChecker(h.ModelName()).Struct(h).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HeroPattern) UnmarshalJSON(data []byte) error {
	type plain HeroPattern
	return model.Decode(data, (*plain)(h), h.ModelName())
}
