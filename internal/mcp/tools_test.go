package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/asminfo/internal/config"
	"github.com/mvp-joe/asminfo/internal/model"
	"github.com/mvp-joe/asminfo/internal/parser"
)

// Test Plan for MCP tools:
// - asminfo_parse returns the parse result as JSON for a relative path
// - asminfo_parse reports a missing file as a tool error
// - asminfo_parse requires the path argument
// - asminfo_model builds from project config alone when no path is given
// - asminfo_model seeds from a parsed file, project config wins over the file
// - asminfo_model attributes argument wins over project config
// - asminfo_model accepts attributes sent as a JSON string
// - asminfo_model rejects an invalid guid override
// - NewServer requires a root directory

const sampleSource = `using System.Reflection;
using System.Runtime.InteropServices;

[assembly: AssemblyTitle("Cake.Common")]
[assembly: AssemblyCompany("Cake Build")]
[assembly: ComVisible(false)]
[assembly: AssemblyVersion("2.1.0.0")]
[assembly: InternalsVisibleTo("Cake.Common.Tests")]
[assembly: NeutralResourcesLanguage("en-US")]
`

type modelResponse struct {
	Attributes         map[string]string `json:"attributes"`
	CustomAttributes   map[string]string `json:"customAttributes"`
	MetadataAttributes map[string]string `json:"metadataAttributes"`
	Namespaces         []string          `json:"namespaces"`
	InternalsVisibleTo []string          `json:"internalsVisibleTo"`
}

func newTestParser(t *testing.T) *parser.Parser {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/src/Properties/AssemblyInfo.cs", []byte(sampleSource), 0644))
	return parser.New(fs, parser.FixedEnvironment("/repo"))
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func decodeModel(t *testing.T, result *mcp.CallToolResult) modelResponse {
	t.Helper()
	require.False(t, result.IsError, resultText(t, result))
	var resp modelResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	return resp
}

func TestParseTool_ReturnsResult(t *testing.T) {
	t.Parallel()

	handler := createParseHandler(newTestParser(t))
	result := callTool(t, handler, ParseToolName, map[string]interface{}{
		"path": "src/Properties/AssemblyInfo.cs",
	})
	require.False(t, result.IsError)

	var parsed parser.ParseResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &parsed))
	assert.Equal(t, "/repo/src/Properties/AssemblyInfo.cs", parsed.Path)
	assert.Equal(t, "cs", parsed.Dialect)
	assert.Equal(t, "Cake.Common", parsed.Title)
	assert.Equal(t, "2.1.0.0", parsed.Version)
	assert.Equal(t, model.DefaultVersion, parsed.FileVersion)
	assert.Equal(t, []string{"Cake.Common.Tests"}, parsed.InternalsVisibleTo)
	require.Len(t, parsed.CustomAttributes, 1)
	assert.Equal(t, "NeutralResourcesLanguage", parsed.CustomAttributes[0].Name)
}

func TestParseTool_MissingFile(t *testing.T) {
	t.Parallel()

	handler := createParseHandler(newTestParser(t))
	result := callTool(t, handler, ParseToolName, map[string]interface{}{
		"path": "missing/AssemblyInfo.cs",
	})

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "/repo/missing/AssemblyInfo.cs")
}

func TestParseTool_RequiresPath(t *testing.T) {
	t.Parallel()

	handler := createParseHandler(newTestParser(t))
	result := callTool(t, handler, ParseToolName, map[string]interface{}{})

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "path parameter is required")
}

func TestModelTool_FromProjectConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Attributes.Title = model.Ptr("Cake.Core")
	cfg.Attributes.CLSCompliant = model.Ptr(true)
	cfg.Attributes.MetadataAttributes = []config.MetadataAttributeConfig{
		{Key: model.Ptr("RepositoryUrl"), Value: model.Ptr("https://github.com/cake-build/cake")},
	}

	handler := createModelHandler(newTestParser(t), cfg)
	resp := decodeModel(t, callTool(t, handler, ModelToolName, map[string]interface{}{}))

	assert.Equal(t, `"Cake.Core"`, resp.Attributes[model.AttrTitle])
	assert.Equal(t, "true", resp.Attributes[model.AttrCLSCompliant])
	assert.Equal(t, `"https://github.com/cake-build/cake"`, resp.MetadataAttributes[`"RepositoryUrl"`])
	assert.Equal(t, []string{model.NamespaceSystem, model.NamespaceReflection}, resp.Namespaces)
}

func TestModelTool_SeedsFromFile(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Attributes.Company = model.Ptr("Cake Contributors")

	handler := createModelHandler(newTestParser(t), cfg)
	resp := decodeModel(t, callTool(t, handler, ModelToolName, map[string]interface{}{
		"path": "src/Properties/AssemblyInfo.cs",
	}))

	assert.Equal(t, `"Cake.Common"`, resp.Attributes[model.AttrTitle])
	assert.Equal(t, `"Cake Contributors"`, resp.Attributes[model.AttrCompany])
	assert.Equal(t, "false", resp.Attributes[model.AttrComVisible])
	assert.Equal(t, `"2.1.0.0"`, resp.Attributes[model.AttrVersion])
	assert.Equal(t, []string{`InternalsVisibleTo("Cake.Common.Tests")`}, resp.InternalsVisibleTo)
	assert.Contains(t, resp.Namespaces, model.NamespaceCompilerServices)
	assert.Contains(t, resp.Namespaces, model.NamespaceInteropServices)
}

func TestModelTool_AttributesOverrideConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Attributes.Title = model.Ptr("From Config")

	handler := createModelHandler(newTestParser(t), cfg)
	resp := decodeModel(t, callTool(t, handler, ModelToolName, map[string]interface{}{
		"attributes": map[string]interface{}{
			"title":       "From Request",
			"com_visible": "true",
			"custom_attributes": []interface{}{
				map[string]interface{}{
					"name":      "NeutralResourcesLanguage",
					"namespace": "System.Resources",
					"value":     "en-US",
				},
			},
		},
	}))

	assert.Equal(t, `"From Request"`, resp.Attributes[model.AttrTitle])
	assert.Equal(t, "true", resp.Attributes[model.AttrComVisible])
	assert.Equal(t, `"en-US"`, resp.CustomAttributes["NeutralResourcesLanguage"])
	assert.Contains(t, resp.Namespaces, "System.Resources")
}

func TestModelTool_AttributesAsJSONString(t *testing.T) {
	t.Parallel()

	handler := createModelHandler(newTestParser(t), nil)
	resp := decodeModel(t, callTool(t, handler, ModelToolName, map[string]interface{}{
		"attributes": `{"product": "Cake", "internals_visible_to": ["Cake.Tests", "Cake.Core.Tests"]}`,
	}))

	assert.Equal(t, `"Cake"`, resp.Attributes[model.AttrProduct])
	assert.Equal(t, []string{
		`InternalsVisibleTo("Cake.Tests")`,
		`InternalsVisibleTo("Cake.Core.Tests")`,
	}, resp.InternalsVisibleTo)
}

func TestModelTool_RejectsInvalidGuid(t *testing.T) {
	t.Parallel()

	handler := createModelHandler(newTestParser(t), nil)
	result := callTool(t, handler, ModelToolName, map[string]interface{}{
		"attributes": map[string]interface{}{"guid": "not-a-guid"},
	})

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid guid")
}

func TestNewServer_RequiresRootDir(t *testing.T) {
	t.Parallel()

	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)

	s, err := NewServer(ServerConfig{RootDir: "/repo", Fs: afero.NewMemMapFs()})
	require.NoError(t, err)
	assert.NotNil(t, s)
}
