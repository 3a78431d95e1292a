package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/asminfo/internal/config"
	"github.com/mvp-joe/asminfo/internal/model"
	"github.com/mvp-joe/asminfo/internal/parser"
)

const (
	// ParseToolName is the MCP name of the parse tool.
	ParseToolName = "asminfo_parse"

	// ModelToolName is the MCP name of the model tool.
	ModelToolName = "asminfo_model"
)

// ParseRequest is the argument shape of asminfo_parse.
type ParseRequest struct {
	Path string `mapstructure:"path"`
}

// ModelRequest is the argument shape of asminfo_model. Path is optional; when
// set, the parsed file provides the base settings. Attributes override both
// the parsed file and the project configuration.
type ModelRequest struct {
	Path       string                  `mapstructure:"path"`
	Attributes config.AttributesConfig `mapstructure:"attributes"`
}

// AddParseTool registers the asminfo_parse tool with an MCP server.
func AddParseTool(s *server.MCPServer, p *parser.Parser) {
	tool := mcp.NewTool(
		ParseToolName,
		mcp.WithDescription("Parse an AssemblyInfo.cs or AssemblyInfo.vb file and return the declared assembly attributes as JSON. Missing versions default to 1.0.0.0."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the assembly info file, absolute or relative to the project root")),
	)

	s.AddTool(tool, createParseHandler(p))
}

// AddModelTool registers the asminfo_model tool with an MCP server. cfg
// supplies project-level attribute settings and may be nil.
func AddModelTool(s *server.MCPServer, p *parser.Parser, cfg *config.Config) {
	tool := mcp.NewTool(
		ModelToolName,
		mcp.WithDescription("Build the assembly attribute model (attributes, custom attributes, metadata attributes and required namespaces) from project settings, optionally starting from an existing assembly info file."),
		mcp.WithString("path",
			mcp.Description("Optional assembly info file whose attributes seed the model")),
		mcp.WithObject("attributes",
			mcp.Description("Attribute settings that override the file and project config. Keys: title, description, company, product, version, file_version, informational_version, copyright, trademark, configuration, guid, com_visible, cls_compliant, internals_visible_to, custom_attributes, metadata_attributes")),
	)

	s.AddTool(tool, createModelHandler(p, cfg))
}

func createParseHandler(p *parser.Parser) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ParseRequest
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		result, err := p.Parse(args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return jsonResult(result)
	}
}

func createModelHandler(p *parser.Parser, cfg *config.Config) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ModelRequest
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		overrides := &config.Config{Attributes: args.Attributes}
		if err := config.ValidateAttributes(&overrides.Attributes); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var settings *model.Settings
		if args.Path != "" {
			result, err := p.Parse(args.Path)
			if err != nil {
				if errors.Is(err, parser.ErrSourceNotFound) {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return nil, err
			}
			settings = result.Settings()
		}

		if cfg != nil {
			settings = cfg.Merge(settings)
		}
		settings = overrides.Merge(settings)

		return jsonResult(model.Build(settings))
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
