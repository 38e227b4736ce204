package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/trieve-go"
	"github.com/helixml/trieve-go/infrastructure/api/jsonapi"
)

type resourceDoc struct {
	Data struct {
		Type       string          `json:"type"`
		ID         string          `json:"id"`
		Attributes json.RawMessage `json:"attributes"`
		Links      *jsonapi.Links  `json:"links"`
	} `json:"data"`
}

type listDoc struct {
	Data []struct {
		Type       string                  `json:"type"`
		ID         string                  `json:"id"`
		Attributes jsonapi.ModelAttributes `json:"attributes"`
	} `json:"data"`
	Meta  map[string]any `json:"meta"`
	Links jsonapi.Links  `json:"links"`
}

func testRouter(t *testing.T, maxBody int64) http.Handler {
	t.Helper()
	catalog, err := trieve.New()
	require.NoError(t, err)
	return NewModelsRouter(catalog, maxBody).Routes()
}

func do(t *testing.T, h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestModelsRouter_List(t *testing.T) {
	rec := do(t, testRouter(t, 1<<20), http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.api+json", rec.Header().Get("Content-Type"))

	var doc listDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Len(t, doc.Data, 33)
	assert.Equal(t, float64(33), doc.Meta["count"])
	assert.Equal(t, "0.12.0", doc.Meta["openapi_version"])
	assert.Equal(t, "/api/v1/models", doc.Links.Self)

	var geo *jsonapi.ModelAttributes
	for i := range doc.Data {
		assert.Equal(t, jsonapi.ResourceTypeModel, doc.Data[i].Type)
		if doc.Data[i].ID == "GeoInfo" {
			geo = &doc.Data[i].Attributes
		}
	}
	require.NotNil(t, geo)
	assert.Equal(t, jsonapi.ModelAttributes{Package: "chunk", FieldCount: 2, Required: []string{"lat", "lon"}}, *geo)
}

func TestModelsRouter_Get(t *testing.T) {
	rec := do(t, testRouter(t, 1<<20), http.MethodGet, "/SearchChunksReqPayload", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc resourceDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "SearchChunksReqPayload", doc.Data.ID)
	assert.Equal(t, "/api/v1/models/SearchChunksReqPayload", doc.Data.Links.Self)

	var attrs struct {
		Union  bool `json:"union"`
		Fields []struct {
			Name     string `json:"name"`
			Required bool   `json:"required"`
		} `json:"fields"`
		Endpoints []struct {
			Method      string `json:"method"`
			Path        string `json:"path"`
			OperationID string `json:"operation_id"`
		} `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(doc.Data.Attributes, &attrs))
	assert.False(t, attrs.Union)
	assert.NotEmpty(t, attrs.Fields)
	require.Len(t, attrs.Endpoints, 1)
	assert.Equal(t, "POST", attrs.Endpoints[0].Method)
	assert.Equal(t, "/api/chunk/search", attrs.Endpoints[0].Path)
	assert.Equal(t, "search_chunks", attrs.Endpoints[0].OperationID)
}

func TestModelsRouter_GetUnknown(t *testing.T) {
	rec := do(t, testRouter(t, 1<<20), http.MethodGet, "/Nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var doc jsonapi.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Errors, 1)
	assert.Contains(t, doc.Errors[0].Detail, "Nope")
}

func TestModelsRouter_ValidateAccepted(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json", "application/json", `{"query":"jacket","search_type":"hybrid","extra":true}`},
		{"json with charset", "application/json; charset=utf-8", `{"query":"jacket","search_type":"hybrid"}`},
		{"no content type", "", `{"query":"jacket","search_type":"hybrid"}`},
		{"yaml", "application/yaml", "query: jacket\nsearch_type: hybrid\n"},
		{"x-yaml", "application/x-yaml", "query: jacket\nsearch_type: hybrid\n"},
	}

	h := testRouter(t, 1<<20)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/SearchChunksReqPayload/validate", tt.contentType, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var doc resourceDoc
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
			assert.Equal(t, "validation", doc.Data.Type)
			assert.Equal(t, "SearchChunksReqPayload", doc.Data.ID)

			var attrs jsonapi.ValidationAttributes
			require.NoError(t, json.Unmarshal(doc.Data.Attributes, &attrs))
			assert.True(t, attrs.Valid)
			assert.JSONEq(t, `{"query":"jacket","search_type":"hybrid"}`, string(attrs.Payload))
		})
	}
}

func TestModelsRouter_ValidateRejected(t *testing.T) {
	rec := do(t, testRouter(t, 1<<20), http.MethodPost, "/TypoRange/validate", "application/json", `{"min":-1,"max":2}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var doc jsonapi.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.NotEmpty(t, doc.Errors)

	first := doc.Errors[0]
	assert.Equal(t, "422", first.Status)
	assert.Equal(t, "invalid_field", first.Code)
	require.NotNil(t, first.Source)
	assert.Equal(t, "/min", first.Source.Pointer)
	assert.Equal(t, "must be at least 0", first.Detail)
}

func TestModelsRouter_ValidateMissingRequired(t *testing.T) {
	rec := do(t, testRouter(t, 1<<20), http.MethodPost, "/GeoInfo/validate", "application/json", `{"lat":1}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var doc jsonapi.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.NotEmpty(t, doc.Errors)
	assert.Equal(t, "missing_field", doc.Errors[0].Code)
	assert.Equal(t, "/lon", doc.Errors[0].Source.Pointer)
}

func TestModelsRouter_ValidateErrors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		maxBody     int64
		status      int
	}{
		{"unknown model", "/Nope/validate", "application/json", `{}`, 1 << 20, http.StatusNotFound},
		{"malformed json", "/GeoInfo/validate", "application/json", `{"lat":`, 1 << 20, http.StatusBadRequest},
		{"malformed yaml", "/GeoInfo/validate", "application/yaml", "lat: [1", 1 << 20, http.StatusBadRequest},
		{"unsupported type", "/GeoInfo/validate", "text/plain", `lat=1`, 1 << 20, http.StatusUnsupportedMediaType},
		{"bad content type", "/GeoInfo/validate", "application/json; =", `{}`, 1 << 20, http.StatusBadRequest},
		{"too large", "/GeoInfo/validate", "application/json", `{"lat":1,"lon":2}`, 4, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, testRouter(t, tt.maxBody), http.MethodPost, tt.path, tt.contentType, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var doc jsonapi.Document
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
			assert.Len(t, doc.Errors, 1)
		})
	}
}
