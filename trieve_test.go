package trieve_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/trieve-go"
	"github.com/helixml/trieve-go/domain/chunk"
	"github.com/helixml/trieve-go/domain/model"
	"github.com/helixml/trieve-go/domain/search"
	"github.com/helixml/trieve-go/infrastructure/openapi"
	"github.com/helixml/trieve-go/infrastructure/payload"
)

func newCatalog(t *testing.T, opts ...trieve.Option) *trieve.Catalog {
	t.Helper()
	c, err := trieve.New(opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RegistersEveryModel(t *testing.T) {
	c := newCatalog(t)

	names := c.Names()
	assert.Len(t, names, 33)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "SearchChunksReqPayload")
	assert.Contains(t, names, "UpdateDatasetReqPayload")
	assert.Contains(t, names, "RAGQueriesRequest")
	require.NotNil(t, c.Document())
	assert.Equal(t, "0.12.0", c.Document().Version())
}

func TestNew_WithoutDocument(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())
	assert.Nil(t, c.Document())

	_, err := c.Conformance(context.Background())
	assert.ErrorIs(t, err, trieve.ErrNoDocument)
}

func TestNew_BadOpenAPIPath(t *testing.T) {
	_, err := trieve.New(trieve.WithOpenAPIPath(t.TempDir() + "/missing.yaml"))
	assert.Error(t, err)
}

func TestNew_WithDocument(t *testing.T) {
	doc, err := openapi.Embedded(context.Background())
	require.NoError(t, err)

	c := newCatalog(t, trieve.WithDocument(doc))
	assert.Same(t, doc, c.Document())
}

func TestModels(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())

	byName := make(map[string]trieve.Summary)
	for _, s := range c.Models() {
		byName[s.Name] = s
	}

	assert.Equal(t, trieve.Summary{Name: "GeoInfo", Package: "chunk", Fields: 2, Required: []string{"lat", "lon"}}, byName["GeoInfo"])
	assert.Equal(t, trieve.Summary{Name: "QdrantSortBy", Package: "search", Union: true}, byName["QdrantSortBy"])
	assert.Equal(t, []string{"query", "search_type"}, byName["SearchChunksReqPayload"].Required)
	assert.Equal(t, "dataset", byName["HeroPattern"].Package)
}

func TestDescribe(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())

	desc, err := c.Describe("SortByField")
	require.NoError(t, err)
	f, ok := desc.Field("direction")
	require.True(t, ok)
	assert.Equal(t, "SortOrder", f.Ref)
	assert.Equal(t, []string{"asc", "desc"}, f.Enum)
	assert.True(t, f.Nullable)

	_, err = c.Describe("Nope")
	assert.ErrorIs(t, err, trieve.ErrUnknownModel)
}

func TestDecode(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())
	ctx := context.Background()

	m, err := c.Decode(ctx, "FieldCondition", []byte(`{"field":"tag_set","match_any":["a",3]}`))
	require.NoError(t, err)
	fc, ok := m.(*chunk.FieldCondition)
	require.True(t, ok)
	assert.Equal(t, "tag_set", fc.Field)
	assert.Equal(t, []chunk.MatchCondition{chunk.MatchString("a"), chunk.MatchInt(3)}, fc.MatchAny.MustGet())

	_, err = c.Decode(ctx, "FieldCondition", []byte(`{"match_any":["a"]}`))
	assert.ErrorIs(t, err, model.ErrMissingField)

	_, err = c.Decode(ctx, "Nope", []byte(`{}`))
	assert.ErrorIs(t, err, trieve.ErrUnknownModel)
}

func TestDecode_CanceledContext(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Decode(ctx, "GeoInfo", []byte(`{"lat":1,"lon":2}`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheck_Valid(t *testing.T) {
	c := newCatalog(t)

	report, err := c.Check(context.Background(), "SearchChunksReqPayload",
		[]byte(`{"query":"jacket","search_type":"hybrid","unknown":1,"page_size":null}`))
	require.NoError(t, err)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Violations)
	assert.JSONEq(t, `{"page_size":null,"query":"jacket","search_type":"hybrid"}`, string(report.Normalized))
}

func TestCheck_Invalid(t *testing.T) {
	c := newCatalog(t)

	report, err := c.Check(context.Background(), "SearchChunksReqPayload", []byte(`{"search_type":"nope","page":-1}`))
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.Nil(t, report.Normalized)
	require.NotEmpty(t, report.Violations)
	assert.Equal(t, trieve.Violation{Source: trieve.SourceModel, Field: "query", Reason: "is required", Missing: true}, report.Violations[0])

	var schema int
	for _, v := range report.Violations {
		if v.Source == trieve.SourceSchema {
			schema++
		}
	}
	assert.GreaterOrEqual(t, schema, 2)
}

func TestCheck_ModelOnlyWithoutDocument(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())

	report, err := c.Check(context.Background(), "TypoRange", []byte(`{"min":-1,"max":2}`))
	require.NoError(t, err)
	assert.Equal(t, []trieve.Violation{{Source: trieve.SourceModel, Field: "min", Reason: "must be at least 0"}}, report.Violations)
}

func TestCheck_MalformedJSON(t *testing.T) {
	c := newCatalog(t)

	report, err := c.Check(context.Background(), "GeoInfo", []byte(`{"lat":`))
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, trieve.SourceModel, report.Violations[0].Source)
}

func TestNormalize(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())

	out, err := c.Normalize(context.Background(), "SearchChunksReqPayload",
		[]byte("query: jacket\nsearch_type: bm25\nextra: 1\n"), payload.FormatYAML, payload.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"jacket","search_type":"bm25"}`, string(out))

	_, err = c.Normalize(context.Background(), "SearchChunksReqPayload",
		[]byte(`{"query":"jacket"}`), payload.FormatJSON, payload.FormatYAML)
	assert.ErrorIs(t, err, model.ErrMissingField)
}

func TestNormalize_MatchesTypedEncoding(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())

	req := search.NewSearchChunksReqPayload("jacket", search.SearchMethodSemantic)
	req.Page.Set(2)
	req.UserID.SetNull()
	want, err := model.ToJSON(req)
	require.NoError(t, err)

	got, err := c.Normalize(context.Background(), "SearchChunksReqPayload", want, payload.FormatJSON, payload.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestConformance_EmbeddedDocumentMatchesModels(t *testing.T) {
	c := newCatalog(t, trieve.WithWorkers(4))

	findings, err := c.Conformance(context.Background())
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestConformance_Logs(t *testing.T) {
	var buf bytes.Buffer
	c := newCatalog(t, trieve.WithLogger(zerolog.New(&buf)))

	_, err := c.Conformance(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"conformance checked"`)
	assert.Contains(t, buf.String(), `"models":33`)
}

// modelFixtures holds a small valid payload for every registered model.
var modelFixtures = map[string]string{
	"ChunkFilter":         `{"must":[{"field":"tag_set","match_any":["a"]}],"jsonb_prefilter":true}`,
	"ConditionType":       `{"field":"tag_set","match_all":["a",2]}`,
	"FieldCondition":      `{"field":"num_value","range":{"gte":1}}`,
	"HasChunkIDCondition": `{"tracking_ids":["t1"]}`,
	"MatchCondition":      `"shoes"`,
	"Range":               `{"gt":1,"lte":10}`,
	"DateRange":           `{"gte":"2021-08-10T00:00:00Z"}`,
	"GeoInfo":             `{"lat":1.5,"lon":-2.25}`,
	"LocationRadius":      `{"center":{"lat":1,"lon":2},"radius":5}`,

	"AutocompleteReqPayload": `{"query":"jack","search_type":"fulltext"}`,
	"SearchChunksReqPayload": `{"query":"jacket","search_type":"hybrid","page_size":10}`,
	"HighlightOptions":       `{"highlight_results":true,"highlight_strategy":"v1"}`,
	"ScoringOptions":         `{"fulltext_boost":{"boost_factor":1.5,"phrase":"sale"}}`,
	"FullTextBoost":          `{"boost_factor":2,"phrase":"sale"}`,
	"SemanticBoost":          `{"distance_factor":0.5,"phrase":"sale"}`,
	"SortOptions":            `{"recency_bias":0.5,"tag_weights":{"a":2}}`,
	"GeoInfoWithBias":        `{"bias":0.5,"location":{"lat":1,"lon":2}}`,
	"MmrOptions":             `{"use_mmr":true,"mmr_lambda":0.5}`,
	"QdrantSortBy":           `{"rerank_type":"semantic"}`,
	"SortByField":            `{"field":"num_value","direction":"desc"}`,
	"SortBySearchType":       `{"rerank_type":"cross_encoder","rerank_query":"q"}`,
	"TypoOptions":            `{"correct_typos":true,"one_typo_word_range":{"min":5}}`,
	"TypoRange":              `{"min":5,"max":8}`,

	"EventAnalyticsFilter": `{"is_conversion":true}`,
	"GetEventsRequestBody": `{"page":1}`,
	"RAGAnalyticsFilter":   `{"date_range":{"gte":"2024-01-01T00:00:00Z"}}`,
	"RAGQueriesRequest":    `{"type":"rag_queries","sort_order":"asc"}`,

	"CrawlOptions":            `{"site_url":"https://example.com","limit":10}`,
	"DatasetConfigurationDTO": `{"BM25_ENABLED":true,"DISTANCE_METRIC":"cosine"}`,
	"PublicDatasetOptions":    `{"enabled":true}`,
	"PublicPageParameters":    `{"brandName":"Acme"}`,
	"HeroPattern":             `{"foregroundOpacity":0.5}`,
	"UpdateDatasetReqPayload": `{"dataset_name":"docs"}`,
}

// withMember returns the object fixture with key set to raw, or removed when
// raw is nil.
func withMember(t *testing.T, fixture, key string, raw json.RawMessage) []byte {
	t.Helper()
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(fixture), &obj))
	if raw == nil {
		delete(obj, key)
	} else {
		obj[key] = raw
	}
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func TestModels_Fixtures(t *testing.T) {
	c := newCatalog(t, trieve.WithoutDocument())
	ctx := context.Background()

	names := c.Names()
	require.Len(t, modelFixtures, len(names))

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			fixture, ok := modelFixtures[name]
			require.True(t, ok, "no fixture for %s", name)

			want, err := c.Decode(ctx, name, []byte(fixture))
			require.NoError(t, err)

			data, err := model.ToJSON(want)
			require.NoError(t, err)
			assert.JSONEq(t, fixture, string(data))

			again, err := c.Decode(ctx, name, data)
			require.NoError(t, err)
			if diff := cmp.Diff(want, again); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			if !bytes.HasPrefix([]byte(fixture), []byte("{")) {
				return
			}

			extra, err := c.Decode(ctx, name, withMember(t, fixture, "zz_unknown", json.RawMessage(`1`)))
			require.NoError(t, err)
			if diff := cmp.Diff(want, extra); diff != "" {
				t.Errorf("unknown key changed the model (-want +got):\n%s", diff)
			}

			desc, err := c.Describe(name)
			require.NoError(t, err)

			for _, key := range desc.Required() {
				_, err := c.Decode(ctx, name, withMember(t, fixture, key, nil))
				assert.ErrorIs(t, err, model.ErrMissingField, "%s removed", key)

				_, err = c.Decode(ctx, name, withMember(t, fixture, key, json.RawMessage(`null`)))
				assert.ErrorIs(t, err, model.ErrMissingField, "%s null", key)
			}

			for _, f := range desc.Fields {
				if !f.Nullable {
					continue
				}
				m, err := c.Decode(ctx, name, withMember(t, fixture, f.Name, json.RawMessage(`null`)))
				require.NoError(t, err, "%s null", f.Name)

				out, err := model.ToJSON(m)
				require.NoError(t, err)
				var obj map[string]json.RawMessage
				require.NoError(t, json.Unmarshal(out, &obj))
				assert.Equal(t, "null", string(obj[f.Name]), "%s", f.Name)
			}
		})
	}
}
