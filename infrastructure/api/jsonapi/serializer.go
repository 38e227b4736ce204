package jsonapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/helixml/trieve-go"
	"github.com/helixml/trieve-go/domain/model"
	"github.com/helixml/trieve-go/infrastructure/openapi"
)

// ResourceTypeModel is the JSON:API type of model resources.
const ResourceTypeModel = "model"

// ModelAttributes represents a model summary in JSON:API format.
type ModelAttributes struct {
	Package    string   `json:"package"`
	Union      bool     `json:"union"`
	FieldCount int      `json:"field_count"`
	Required   []string `json:"required"`
}

// ModelDetailAttributes represents the full field list of a model.
type ModelDetailAttributes struct {
	Union     bool               `json:"union"`
	Fields    []model.Field      `json:"fields"`
	Endpoints []openapi.Endpoint `json:"endpoints,omitempty"`
}

// ValidationAttributes represents an accepted payload.
type ValidationAttributes struct {
	Valid   bool            `json:"valid"`
	Payload json.RawMessage `json:"payload"`
}

// ModelResource converts a catalog summary to a resource.
func ModelResource(s trieve.Summary) *Resource {
	required := s.Required
	if required == nil {
		required = []string{}
	}
	r := NewResource(ResourceTypeModel, s.Name, ModelAttributes{
		Package:    s.Package,
		Union:      s.Union,
		FieldCount: s.Fields,
		Required:   required,
	})
	r.Links = &Links{Self: "/api/v1/models/" + s.Name}
	return r
}

// ModelDetailResource converts a model description to a resource.
func ModelDetailResource(desc model.Description, endpoints []openapi.Endpoint) *Resource {
	fields := desc.Fields
	if fields == nil {
		fields = []model.Field{}
	}
	r := NewResource(ResourceTypeModel, desc.Model, ModelDetailAttributes{
		Union:     desc.Union,
		Fields:    fields,
		Endpoints: endpoints,
	})
	r.Links = &Links{Self: "/api/v1/models/" + desc.Model}
	return r
}

// ValidationResource converts a valid report to a resource.
func ValidationResource(r trieve.Report) *Resource {
	return NewResource("validation", r.Model, ValidationAttributes{
		Valid:   r.Valid,
		Payload: r.Normalized,
	})
}

// ViolationErrors converts the violations of a report to error objects
// pointing into the submitted payload.
func ViolationErrors(r trieve.Report) []Error {
	status := strconv.Itoa(http.StatusUnprocessableEntity)
	errs := make([]Error, 0, len(r.Violations))
	for _, v := range r.Violations {
		e := Error{
			Status: status,
			Detail: v.Reason,
			Meta:   &Meta{"model": r.Model, "source": v.Source},
		}
		switch {
		case v.Source == trieve.SourceSchema:
			e.Code, e.Title = "schema_violation", "Payload does not match schema"
		case v.Missing:
			e.Code, e.Title = "missing_field", "Required field missing"
		default:
			e.Code, e.Title = "invalid_field", "Invalid field value"
		}
		if p := Pointer(v.Field); p != "" {
			e.Source = &ErrorSource{Pointer: p}
		}
		errs = append(errs, e)
	}
	return errs
}
