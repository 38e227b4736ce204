// Package trieve provides typed request models for the Trieve API and a
// catalog that decodes, validates and converts payloads by schema name.
//
// The models live in the domain packages and can be used directly:
//
//	req := search.NewSearchChunksReqPayload("winter jacket", search.SearchMethodHybrid)
//	req.PageSize.Set(10)
//	data, err := model.ToJSON(req)
//
// The catalog works with raw payloads when the model is only known by name:
//
//	catalog, err := trieve.New(trieve.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := catalog.Check(ctx, "SearchChunksReqPayload", data)
//	for _, v := range report.Violations {
//	    fmt.Println(v.Field, v.Reason)
//	}
package trieve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/helixml/trieve-go/domain/model"
	"github.com/helixml/trieve-go/infrastructure/openapi"
	"github.com/helixml/trieve-go/infrastructure/payload"
	"github.com/helixml/trieve-go/internal/log"
)

// Violation sources reported by Check.
const (
	SourceModel  = "model"
	SourceSchema = "schema"
)

// Catalog is the registry of every Trieve API model, keyed by schema name.
// It is safe for concurrent use.
type Catalog struct {
	entries map[string]entry
	names   []string
	doc     *openapi.Document
	logger  zerolog.Logger
	workers int
}

// Summary is a short description of one registered model.
type Summary struct {
	Name     string   `json:"name"`
	Package  string   `json:"package"`
	Union    bool     `json:"union,omitempty"`
	Fields   int      `json:"fields"`
	Required []string `json:"required"`
}

// Violation is one problem found in a payload. Field is a dotted path for
// model violations and a JSON pointer for schema violations.
type Violation struct {
	Source  string `json:"source"`
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Missing bool   `json:"missing,omitempty"`
}

// Report is the outcome of checking a payload. Normalized holds the
// re-encoded payload when it is valid.
type Report struct {
	Model      string          `json:"model"`
	Valid      bool            `json:"valid"`
	Violations []Violation     `json:"violations,omitempty"`
	Normalized json.RawMessage `json:"normalized,omitempty"`
}

// New creates a Catalog with the given options. The embedded OpenAPI document
// is loaded unless another one is configured or WithoutDocument is passed.
func New(opts ...Option) (*Catalog, error) {
	cfg := newCatalogConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := zerolog.Nop()
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	doc := cfg.document
	if doc == nil && !cfg.noDocument {
		loaded, err := openapi.Load(context.Background(), cfg.openAPIPath)
		if err != nil {
			return nil, fmt.Errorf("load openapi document: %w", err)
		}
		doc = loaded
	}

	c := &Catalog{
		entries: make(map[string]entry),
		doc:     doc,
		logger:  logger,
		workers: cfg.workers,
	}
	for _, e := range builtin() {
		if _, dup := c.entries[e.name]; dup {
			return nil, fmt.Errorf("model %s registered twice", e.name)
		}
		c.entries[e.name] = e
		c.names = append(c.names, e.name)
	}
	slices.Sort(c.names)

	ev := logger.Debug().Int("models", len(c.names))
	if doc != nil {
		ev = ev.Str("openapi_version", doc.Version())
	}
	ev.Msg("model catalog ready")
	return c, nil
}

// Logger returns the catalog's logger.
func (c *Catalog) Logger() zerolog.Logger {
	return c.logger
}

// Document returns the OpenAPI document, or nil when none was loaded.
func (c *Catalog) Document() *openapi.Document {
	return c.doc
}

// Names returns the registered model names in sorted order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Models summarizes every registered model in name order.
func (c *Catalog) Models() []Summary {
	out := make([]Summary, 0, len(c.names))
	for _, name := range c.names {
		e := c.entries[name]
		desc := model.Describe(e.newFunc())
		out = append(out, Summary{
			Name:     name,
			Package:  e.pkg,
			Union:    desc.Union,
			Fields:   len(desc.Fields),
			Required: desc.Required(),
		})
	}
	return out
}

// Describe reports the JSON fields of the named model.
func (c *Catalog) Describe(name string) (model.Description, error) {
	e, err := c.lookup(name)
	if err != nil {
		return model.Description{}, err
	}
	return model.Describe(e.newFunc()), nil
}

// Decode decodes and validates a JSON payload as the named model. The result
// is a pointer to the model type.
func (c *Catalog) Decode(ctx context.Context, name string, data []byte) (model.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	m := e.newFunc()
	if err := model.Unmarshal(data, m); err != nil {
		log.FromContext(ctx, &c.logger).Debug().Err(err).Str("model", name).Msg("payload rejected")
		return nil, err
	}
	return m, nil
}

// Normalize decodes a payload encoded in one format, validates it as the
// named model and re-encodes it in another. Unknown keys are dropped and
// absent optional fields stay absent.
func (c *Catalog) Normalize(ctx context.Context, name string, data []byte, in, out payload.Format) ([]byte, error) {
	j, err := payload.ToJSON(data, in)
	if err != nil {
		return nil, err
	}
	m, err := c.Decode(ctx, name, j)
	if err != nil {
		return nil, err
	}
	canonical, err := model.ToJSON(m)
	if err != nil {
		return nil, err
	}
	return payload.FromJSON(canonical, out)
}

// Check validates a JSON payload against the named model and, when a
// document is loaded, against its schema. Payload problems are reported in
// the Report; the error is reserved for unknown models and cancellation.
func (c *Catalog) Check(ctx context.Context, name string, data []byte) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	e, err := c.lookup(name)
	if err != nil {
		return Report{}, err
	}

	report := Report{Model: name}
	m := e.newFunc()
	err = model.Unmarshal(data, m)
	var verr *model.ValidationError
	switch {
	case err == nil:
		normalized, err := json.Marshal(m)
		if err != nil {
			return Report{}, fmt.Errorf("encode %s: %w", name, err)
		}
		report.Normalized = normalized
	case errors.As(err, &verr):
		for _, f := range verr.Fields {
			report.Violations = append(report.Violations, Violation{
				Source:  SourceModel,
				Field:   f.Field,
				Reason:  f.Reason,
				Missing: errors.Is(f, model.ErrMissingField),
			})
		}
	default:
		return Report{}, err
	}

	if c.doc != nil && json.Valid(data) {
		issues, err := c.doc.ValidatePayload(name, data)
		if err != nil && !errors.Is(err, openapi.ErrUnknownSchema) {
			return Report{}, err
		}
		for _, issue := range issues {
			report.Violations = append(report.Violations, Violation{
				Source: SourceSchema,
				Field:  issue.Pointer,
				Reason: issue.Reason,
			})
		}
	}

	report.Valid = len(report.Violations) == 0
	if !report.Valid {
		report.Normalized = nil
	}
	log.FromContext(ctx, &c.logger).Debug().
		Str("model", name).
		Bool("valid", report.Valid).
		Int("violations", len(report.Violations)).
		Msg("payload checked")
	return report, nil
}

// Conformance compares every registered model with its schema in the
// OpenAPI document and returns the disagreements in model name order.
func (c *Catalog) Conformance(ctx context.Context) ([]openapi.Finding, error) {
	if c.doc == nil {
		return nil, ErrNoDocument
	}

	results := make([][]openapi.Finding, len(c.names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, name := range c.names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.doc.Conform(model.Describe(c.entries[name].newFunc()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []openapi.Finding
	for _, r := range results {
		findings = append(findings, r...)
	}
	log.FromContext(ctx, &c.logger).Info().
		Int("models", len(c.names)).
		Int("findings", len(findings)).
		Msg("conformance checked")
	return findings, nil
}

func (c *Catalog) lookup(name string) (entry, error) {
	e, ok := c.entries[name]
	if !ok {
		return entry{}, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return e, nil
}
