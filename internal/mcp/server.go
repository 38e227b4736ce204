// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go"
	"github.com/helixml/trieve-go/domain/model"
	"github.com/helixml/trieve-go/infrastructure/payload"
)

// Catalog provides the model operations exposed as MCP tools.
type Catalog interface {
	Models() []trieve.Summary
	Describe(name string) (model.Description, error)
	Check(ctx context.Context, name string, data []byte) (trieve.Report, error)
}

// Server wraps the MCP server with the Trieve model tools.
type Server struct {
	mcpServer *server.MCPServer
	catalog   Catalog
	version   string
	logger    zerolog.Logger
}

// NewServer creates a new MCP server backed by catalog.
func NewServer(catalog Catalog, version string, logger zerolog.Logger) *Server {
	s := &Server{
		catalog: catalog,
		version: version,
		logger:  logger,
	}

	mcpServer := server.NewMCPServer(
		"trieve-models",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List every Trieve API request model with its package and required fields"),
	), s.handleListModels)

	mcpServer.AddTool(mcp.NewTool("describe_model",
		mcp.WithDescription("Describe the JSON fields of a Trieve API model: types, enums, nested models, required and nullable flags"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Schema name, e.g. SearchChunksReqPayload"),
		),
	), s.handleDescribeModel)

	mcpServer.AddTool(mcp.NewTool("validate_payload",
		mcp.WithDescription("Validate a request payload against a Trieve API model and its OpenAPI schema. Returns the violations, or the normalized payload when valid"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Schema name of the model to validate against"),
		),
		mcp.WithString("payload",
			mcp.Required(),
			mcp.Description("The payload document"),
		),
		mcp.WithString("format",
			mcp.Description("Encoding of the payload (default: json)"),
			mcp.Enum(string(payload.FormatJSON), string(payload.FormatYAML)),
		),
	), s.handleValidatePayload)

	mcpServer.AddTool(mcp.NewTool("get_version",
		mcp.WithDescription("Get the version of the model server"),
	), s.handleGetVersion)
}

func (s *Server) handleListModels(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.catalog.Models())
}

func (s *Server) handleDescribeModel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	desc, err := s.catalog.Describe(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(desc)
}

func (s *Server) handleValidatePayload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	body, err := request.RequireString("payload")
	if err != nil {
		return mcp.NewToolResultError("payload is required"), nil
	}
	format, err := payload.ParseFormat(request.GetString("format", string(payload.FormatJSON)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := payload.ToJSON([]byte(body), format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("payload is not valid %s: %v", format, err)), nil
	}

	report, err := s.catalog.Check(ctx, name, data)
	if err != nil {
		if !errors.Is(err, model.ErrUnknownModel) {
			s.logger.Error().Err(err).Str("model", name).Msg("validate payload failed")
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(report)
}

func (s *Server) handleGetVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.version), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server for stdio serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
