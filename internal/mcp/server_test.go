package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go"
	"github.com/helixml/trieve-go/domain/model"
)

// brokenCatalog fails every check with a non-payload error.
type brokenCatalog struct {
	*trieve.Catalog
}

func (brokenCatalog) Check(context.Context, string, []byte) (trieve.Report, error) {
	return trieve.Report{}, errors.New("disk on fire")
}

// sendMessage marshals a JSON-RPC request, sends it through HandleMessage,
// and returns the JSONRPCResponse.
func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCResponse {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	result := srv.MCPServer().HandleMessage(context.Background(), raw)

	resp, ok := result.(mcp.JSONRPCResponse)
	if !ok {
		t.Fatalf("expected JSONRPCResponse, got %T: %+v", result, result)
	}
	return resp
}

// resultJSON re-marshals the Result field through JSON into dst.
func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		t.Fatalf("unmarshal result into %T: %v", dst, err)
	}
}

func textFromContent(t *testing.T, result mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	b, err := json.Marshal(result.Content[0])
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	var tc struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &tc); err != nil {
		t.Fatalf("unmarshal text content: %v", err)
	}
	return tc.Text
}

func testCatalog(t *testing.T) *trieve.Catalog {
	t.Helper()
	c, err := trieve.New()
	if err != nil {
		t.Fatalf("create catalog: %v", err)
	}
	return c
}

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(testCatalog(t), "0.1.0-test", zerolog.Nop())
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "0.0.1",
		},
	}
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) mcp.CallToolResult {
	t.Helper()
	sendMessage(t, srv, "initialize", 1, initializeParams())
	resp := sendMessage(t, srv, "tools/call", 2, map[string]any{
		"name":      name,
		"arguments": args,
	})
	var result mcp.CallToolResult
	resultJSON(t, resp, &result)
	return result
}

func TestServer_Initialize(t *testing.T) {
	srv := testServer(t)
	resp := sendMessage(t, srv, "initialize", 1, initializeParams())

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)

	if result.ServerInfo.Name != "trieve-models" {
		t.Errorf("expected server name trieve-models, got %s", result.ServerInfo.Name)
	}
	if result.ServerInfo.Version != "0.1.0-test" {
		t.Errorf("expected version 0.1.0-test, got %s", result.ServerInfo.Version)
	}
	if result.Capabilities.Tools == nil {
		t.Error("expected tools capability to be present")
	}
}

func TestServer_ListTools(t *testing.T) {
	srv := testServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/list", 2, nil)

	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	tools := map[string]mcp.Tool{}
	for _, tool := range result.Tools {
		tools[tool.Name] = tool
	}
	for _, name := range []string{"list_models", "describe_model", "validate_payload", "get_version"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing tool: %s", name)
		}
	}
	if len(result.Tools) != 4 {
		t.Fatalf("expected 4 tools, got %d", len(result.Tools))
	}

	validate := tools["validate_payload"]
	for _, param := range []string{"name", "payload", "format"} {
		if _, ok := validate.InputSchema.Properties[param]; !ok {
			t.Errorf("validate_payload missing %s parameter", param)
		}
	}
	if !slices.Contains(validate.InputSchema.Required, "payload") {
		t.Error("payload should be required")
	}
	if slices.Contains(validate.InputSchema.Required, "format") {
		t.Error("format should be optional")
	}
}

func TestServer_ListModels(t *testing.T) {
	result := callTool(t, testServer(t), "list_models", map[string]any{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textFromContent(t, result))
	}

	var models []trieve.Summary
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &models); err != nil {
		t.Fatalf("unmarshal models: %v", err)
	}
	if len(models) != 33 {
		t.Errorf("expected 33 models, got %d", len(models))
	}
}

func TestServer_DescribeModel(t *testing.T) {
	result := callTool(t, testServer(t), "describe_model", map[string]any{"name": "TypoRange"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textFromContent(t, result))
	}

	var desc model.Description
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &desc); err != nil {
		t.Fatalf("unmarshal description: %v", err)
	}
	if desc.Model != "TypoRange" {
		t.Errorf("expected TypoRange, got %s", desc.Model)
	}
	if got := desc.Required(); !slices.Equal(got, []string{"min"}) {
		t.Errorf("expected required [min], got %v", got)
	}
}

func TestServer_DescribeUnknownModel(t *testing.T) {
	result := callTool(t, testServer(t), "describe_model", map[string]any{"name": "Nope"})
	if !result.IsError {
		t.Fatal("expected error response")
	}
	if text := textFromContent(t, result); !strings.Contains(text, "unknown model") {
		t.Errorf("expected unknown model error, got: %s", text)
	}
}

func TestServer_ValidatePayload(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantValid bool
		wantField string
	}{
		{
			name:      "valid json",
			args:      map[string]any{"name": "GeoInfo", "payload": `{"lat":1.5,"lon":2}`},
			wantValid: true,
		},
		{
			name:      "valid yaml",
			args:      map[string]any{"name": "GeoInfo", "payload": "lat: 1.5\nlon: 2\n", "format": "yaml"},
			wantValid: true,
		},
		{
			name:      "missing field",
			args:      map[string]any{"name": "GeoInfo", "payload": `{"lat":1.5}`},
			wantField: "lon",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, testServer(t), "validate_payload", tt.args)
			if result.IsError {
				t.Fatalf("expected success, got error: %s", textFromContent(t, result))
			}

			var report trieve.Report
			if err := json.Unmarshal([]byte(textFromContent(t, result)), &report); err != nil {
				t.Fatalf("unmarshal report: %v", err)
			}
			if report.Valid != tt.wantValid {
				t.Errorf("valid = %v, want %v", report.Valid, tt.wantValid)
			}
			if tt.wantField != "" && (len(report.Violations) == 0 || report.Violations[0].Field != tt.wantField) {
				t.Errorf("expected first violation on %s, got %+v", tt.wantField, report.Violations)
			}
		})
	}
}

func TestServer_ValidatePayloadErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing payload", args: map[string]any{"name": "GeoInfo"}, want: "payload is required"},
		{name: "bad format", args: map[string]any{"name": "GeoInfo", "payload": "{}", "format": "xml"}, want: "unsupported payload format"},
		{name: "bad yaml", args: map[string]any{"name": "GeoInfo", "payload": "lat: [", "format": "yaml"}, want: "payload is not valid yaml"},
		{name: "unknown model", args: map[string]any{"name": "Nope", "payload": "{}"}, want: "unknown model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, testServer(t), "validate_payload", tt.args)
			if !result.IsError {
				t.Fatal("expected error response")
			}
			if text := textFromContent(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("expected error containing %q, got: %s", tt.want, text)
			}
		})
	}
}

func TestServer_ValidatePayloadCatalogFailure(t *testing.T) {
	srv := NewServer(brokenCatalog{testCatalog(t)}, "0.1.0-test", zerolog.Nop())

	result := callTool(t, srv, "validate_payload", map[string]any{"name": "GeoInfo", "payload": "{}"})
	if !result.IsError {
		t.Fatal("expected error response")
	}
	if text := textFromContent(t, result); text != "disk on fire" {
		t.Errorf("unexpected error text: %s", text)
	}
}

func TestServer_GetVersion(t *testing.T) {
	result := callTool(t, testServer(t), "get_version", map[string]any{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textFromContent(t, result))
	}
	if text := textFromContent(t, result); text != "0.1.0-test" {
		t.Errorf("expected 0.1.0-test, got %s", text)
	}
}

// Ensure the catalog satisfies the tool interface at compile time.
var _ Catalog = (*trieve.Catalog)(nil)
