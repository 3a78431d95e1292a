package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/asminfo/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
read and model assembly info files.

The MCP server:
- Provides asminfo_parse to read an assembly info file
- Provides asminfo_model to build the attribute model from project settings
- Communicates via stdio (standard MCP transport)

Example:
  asminfo mcp`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rootDir, err := projectRoot()
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig(rootDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "asminfo MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project Root: %s\n\n", rootDir)

	server, err := mcp.NewServer(mcp.ServerConfig{
		RootDir: rootDir,
		Project: cfg,
		Fs:      afero.NewOsFs(),
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
