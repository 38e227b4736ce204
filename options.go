package trieve

import (
	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go/infrastructure/openapi"
	"github.com/helixml/trieve-go/internal/config"
)

// catalogConfig holds configuration for Catalog construction.
type catalogConfig struct {
	logger      *zerolog.Logger
	openAPIPath string
	document    *openapi.Document
	noDocument  bool
	workers     int
}

func newCatalogConfig() *catalogConfig {
	return &catalogConfig{
		workers: config.DefaultWorkers(),
	}
}

// Option configures the Catalog.
type Option func(*catalogConfig)

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *catalogConfig) {
		c.logger = &l
	}
}

// WithOpenAPIPath loads the OpenAPI document from a file instead of the
// embedded copy.
func WithOpenAPIPath(path string) Option {
	return func(c *catalogConfig) {
		c.openAPIPath = path
	}
}

// WithDocument uses an already loaded OpenAPI document.
func WithDocument(doc *openapi.Document) Option {
	return func(c *catalogConfig) {
		c.document = doc
	}
}

// WithoutDocument skips loading the OpenAPI document. Schema checks and
// conformance are unavailable.
func WithoutDocument() Option {
	return func(c *catalogConfig) {
		c.noDocument = true
	}
}

// WithWorkers bounds the goroutines used by Conformance.
// Values <= 0 are ignored.
func WithWorkers(n int) Option {
	return func(c *catalogConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}
