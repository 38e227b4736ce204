// Package jsonapi provides JSON:API specification compliant types for API responses.
package jsonapi

import (
	"strconv"
	"strings"
)

// Document represents a JSON:API top-level document.
// See: https://jsonapi.org/format/#document-structure
type Document struct {
	Data   any     `json:"data,omitempty"`
	Meta   *Meta   `json:"meta,omitempty"`
	Links  *Links  `json:"links,omitempty"`
	Errors []Error `json:"errors,omitempty"`
}

// Meta holds non-standard meta-information about a document.
type Meta map[string]any

// Links holds links associated with a document or resource.
type Links struct {
	Self    string `json:"self,omitempty"`
	Related string `json:"related,omitempty"`
}

// Resource represents a JSON:API resource object.
// See: https://jsonapi.org/format/#document-resource-objects
type Resource struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes any    `json:"attributes"`
	Links      *Links `json:"links,omitempty"`
	Meta       *Meta  `json:"meta,omitempty"`
}

// Error represents a JSON:API error object.
// See: https://jsonapi.org/format/#error-objects
type Error struct {
	ID     string       `json:"id,omitempty"`
	Status string       `json:"status,omitempty"`
	Code   string       `json:"code,omitempty"`
	Title  string       `json:"title,omitempty"`
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
	Meta   *Meta        `json:"meta,omitempty"`
}

// ErrorSource holds references to the source of an error.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Header    string `json:"header,omitempty"`
}

// NewResource creates a new resource with the given type, id and attributes.
func NewResource(resourceType, id string, attrs any) *Resource {
	return &Resource{
		Type:       resourceType,
		ID:         id,
		Attributes: attrs,
	}
}

// NewSingleResponse creates a JSON:API document with a single resource.
func NewSingleResponse(resource *Resource) *Document {
	return &Document{
		Data: resource,
	}
}

// NewListResponse creates a JSON:API document with a list of resources.
func NewListResponse(resources []*Resource) *Document {
	return &Document{
		Data: resources,
	}
}

// NewErrorResponse creates a JSON:API document with errors.
func NewErrorResponse(errors ...Error) *Document {
	return &Document{
		Errors: errors,
	}
}

// NewError creates a simple error with status, title and detail.
func NewError(status, title, detail string) Error {
	return Error{
		Status: status,
		Title:  title,
		Detail: detail,
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer converts a field path such as "filters.must[0].field" to a JSON
// pointer ("/filters/must/0/field"). Map keys that contain dots or brackets
// appear quoted, e.g. `tag_weights["v1.2"]`, and become a single segment.
// Paths that already are pointers are returned unchanged.
func Pointer(path string) string {
	if path == "" || strings.HasPrefix(path, "/") {
		return path
	}
	var b strings.Builder
	for _, seg := range segments(path) {
		b.WriteString("/")
		b.WriteString(pointerEscaper.Replace(seg))
	}
	return b.String()
}

// segments splits a field path into its member names, indexes and quoted
// keys.
func segments(path string) []string {
	var out []string
	for path != "" {
		switch {
		case path[0] == '.':
			path = path[1:]
		case strings.HasPrefix(path, `["`):
			quoted, err := strconv.QuotedPrefix(path[1:])
			if err != nil {
				return append(out, path[1:])
			}
			key, _ := strconv.Unquote(quoted)
			out = append(out, key)
			path = strings.TrimPrefix(path[1+len(quoted):], "]")
		case path[0] == '[':
			end := strings.IndexByte(path, ']')
			if end < 0 {
				return append(out, path[1:])
			}
			out = append(out, path[1:end])
			path = path[end+1:]
		default:
			end := strings.IndexAny(path, ".[")
			if end < 0 {
				end = len(path)
			}
			out = append(out, path[:end])
			path = path[end:]
		}
	}
	return out
}
