// Package v1 provides the v1 API routes.
package v1

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go"
	"github.com/helixml/trieve-go/infrastructure/api/jsonapi"
	"github.com/helixml/trieve-go/infrastructure/api/middleware"
	"github.com/helixml/trieve-go/infrastructure/openapi"
	"github.com/helixml/trieve-go/infrastructure/payload"
	"github.com/helixml/trieve-go/internal/log"
)

// ModelsRouter handles model catalog endpoints.
type ModelsRouter struct {
	catalog      *trieve.Catalog
	maxBodyBytes int64
	logger       zerolog.Logger
}

// NewModelsRouter creates a new ModelsRouter. Request bodies larger than
// maxBodyBytes are rejected.
func NewModelsRouter(catalog *trieve.Catalog, maxBodyBytes int64) *ModelsRouter {
	return &ModelsRouter{
		catalog:      catalog,
		maxBodyBytes: maxBodyBytes,
		logger:       catalog.Logger(),
	}
}

// Routes returns the chi router for model endpoints.
func (r *ModelsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/{name}", r.Get)
	router.Post("/{name}/validate", r.Validate)

	return router
}

// List handles GET /api/v1/models.
func (r *ModelsRouter) List(w http.ResponseWriter, _ *http.Request) {
	summaries := r.catalog.Models()
	resources := make([]*jsonapi.Resource, 0, len(summaries))
	for _, s := range summaries {
		resources = append(resources, jsonapi.ModelResource(s))
	}

	doc := jsonapi.NewListResponse(resources)
	meta := jsonapi.Meta{"count": len(resources)}
	if d := r.catalog.Document(); d != nil {
		meta["openapi_version"] = d.Version()
	}
	doc.Meta = &meta
	doc.Links = &jsonapi.Links{Self: "/api/v1/models"}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Get handles GET /api/v1/models/{name}.
func (r *ModelsRouter) Get(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	desc, err := r.catalog.Describe(name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var endpoints []openapi.Endpoint
	if d := r.catalog.Document(); d != nil {
		endpoints = d.Endpoints(name)
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.ModelDetailResource(desc, endpoints)))
}

// Validate handles POST /api/v1/models/{name}/validate. The body is the
// payload itself, as JSON or YAML. A valid payload is echoed back in
// normalized form; an invalid one yields 422 with one error per violation.
func (r *ModelsRouter) Validate(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	name := chi.URLParam(req, "name")

	format, err := requestFormat(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, r.maxBodyBytes))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data, err := payload.ToJSON(body, format)
	if err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "malformed request body", err), r.logger)
		return
	}

	report, err := r.catalog.Check(ctx, name, data)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	log.FromContext(ctx, &r.logger).Debug().
		Str("model", name).
		Str("format", string(format)).
		Bool("valid", report.Valid).
		Msg("payload validated")

	if !report.Valid {
		middleware.WriteJSON(w, http.StatusUnprocessableEntity, jsonapi.NewErrorResponse(jsonapi.ViolationErrors(report)...))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.ValidationResource(report)))
}

// requestFormat picks the payload format from the Content-Type header.
// A missing header means JSON.
func requestFormat(req *http.Request) (payload.Format, error) {
	ct := req.Header.Get("Content-Type")
	if ct == "" {
		return payload.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", middleware.NewAPIError(http.StatusBadRequest, "malformed Content-Type header", err)
	}
	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return payload.FormatJSON, nil
	case strings.HasSuffix(mediaType, "/yaml"), strings.HasSuffix(mediaType, "/x-yaml"), strings.HasSuffix(mediaType, "+yaml"):
		return payload.FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", payload.ErrUnsupportedFormat, mediaType)
}
