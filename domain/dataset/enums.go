// Package dataset provides the dataset update payload and the server
// configuration objects it carries.
package dataset

import (
	"slices"

	"github.com/helixml/trieve-go/domain/model"
)

func init() {
	model.RegisterNullable[CrawlInterval]()
	model.RegisterNullable[DistanceMetric]()
	model.RegisterNullable[CurrencyPosition]()
	model.RegisterNullable[SearchMode]()
	model.RegisterNullable[PublicPageTheme]()
	model.RegisterNullable[PublicPageType]()
}

// CrawlInterval is how often a crawled site is refreshed.
type CrawlInterval string

// CrawlInterval values.
const (
	CrawlDaily   CrawlInterval = "daily"
	CrawlWeekly  CrawlInterval = "weekly"
	CrawlMonthly CrawlInterval = "monthly"
)

var crawlIntervals = []string{"daily", "weekly", "monthly"}

// Valid reports whether i is a declared value.
func (i CrawlInterval) Valid() bool { return slices.Contains(crawlIntervals, string(i)) }

// Values lists the declared values.
func (CrawlInterval) Values() []string { return slices.Clone(crawlIntervals) }

// DistanceMetric is the vector distance used by a dataset.
type DistanceMetric string

// DistanceMetric values.
const (
	DistanceEuclidean DistanceMetric = "euclidean"
	DistanceCosine    DistanceMetric = "cosine"
	DistanceManhattan DistanceMetric = "manhattan"
	DistanceDot       DistanceMetric = "dot"
)

var distanceMetrics = []string{"euclidean", "cosine", "manhattan", "dot"}

// Valid reports whether m is a declared value.
func (m DistanceMetric) Valid() bool { return slices.Contains(distanceMetrics, string(m)) }

// Values lists the declared values.
func (DistanceMetric) Values() []string { return slices.Clone(distanceMetrics) }

// CurrencyPosition places the currency symbol around a price.
type CurrencyPosition string

// CurrencyPosition values.
const (
	CurrencyPrefix CurrencyPosition = "prefix"
	CurrencySuffix CurrencyPosition = "suffix"
)

var currencyPositions = []string{"prefix", "suffix"}

// Valid reports whether p is a declared value.
func (p CurrencyPosition) Valid() bool { return slices.Contains(currencyPositions, string(p)) }

// Values lists the declared values.
func (CurrencyPosition) Values() []string { return slices.Clone(currencyPositions) }

// SearchMode is the mode the public search component opens in.
type SearchMode string

// SearchMode values.
const (
	SearchModeSearch SearchMode = "search"
	SearchModeChat   SearchMode = "chat"
)

var searchModes = []string{"search", "chat"}

// Valid reports whether m is a declared value.
func (m SearchMode) Valid() bool { return slices.Contains(searchModes, string(m)) }

// Values lists the declared values.
func (SearchMode) Values() []string { return slices.Clone(searchModes) }

// PublicPageTheme is the colour scheme of the public page.
type PublicPageTheme string

// PublicPageTheme values.
const (
	ThemeLight PublicPageTheme = "light"
	ThemeDark  PublicPageTheme = "dark"
)

var themes = []string{"light", "dark"}

// Valid reports whether t is a declared value.
func (t PublicPageTheme) Valid() bool { return slices.Contains(themes, string(t)) }

// Values lists the declared values.
func (PublicPageTheme) Values() []string { return slices.Clone(themes) }

// PublicPageType selects the layout of the public page.
type PublicPageType string

// PublicPageType values.
const (
	PageEcommerce PublicPageType = "ecommerce"
	PageDocs      PublicPageType = "docs"
)

var pageTypes = []string{"ecommerce", "docs"}

// Valid reports whether t is a declared value.
func (t PublicPageType) Valid() bool { return slices.Contains(pageTypes, string(t)) }

// Values lists the declared values.
func (PublicPageType) Values() []string { return slices.Clone(pageTypes) }
