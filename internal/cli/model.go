package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/asminfo/internal/config"
	"github.com/mvp-joe/asminfo/internal/model"
	"github.com/mvp-joe/asminfo/internal/parser"
)

var (
	modelFrom    string
	modelNewGuid bool
)

// modelCmd represents the model command
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Build the assembly attribute model",
	Long: `Model builds the attribute model from the attributes section of
.asminfo/config.yml: the well-known attributes, custom and metadata
attributes, InternalsVisibleTo declarations and the namespaces they need.

With --from, an existing assembly info file seeds the settings and the
project configuration overrides it.

Examples:
  # Build from project configuration
  asminfo model

  # Start from an existing file
  asminfo model --from src/App/Properties/AssemblyInfo.cs

  # Assign a fresh Guid
  asminfo model --new-guid
`,
	Args: cobra.NoArgs,
	RunE: runModel,
}

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.Flags().StringVar(&modelFrom, "from", "", "Seed settings from an existing assembly info file")
	modelCmd.Flags().BoolVar(&modelNewGuid, "new-guid", false, "Set the Guid attribute to a freshly generated value")
}

func runModel(cmd *cobra.Command, args []string) error {
	rootDir, err := projectRoot()
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig(rootDir)
	if err != nil {
		return err
	}

	p := parser.New(afero.NewOsFs(), parser.FixedEnvironment(rootDir))
	return executeModel(cmd.OutOrStdout(), p, cfg, modelFrom, modelNewGuid)
}

func executeModel(w io.Writer, p *parser.Parser, cfg *config.Config, from string, newGuid bool) error {
	var settings *model.Settings
	if from != "" {
		result, err := p.Parse(from)
		if err != nil {
			return err
		}
		settings = result.Settings()
	}

	settings = cfg.Merge(settings)
	if newGuid {
		settings.Guid = model.Ptr(uuid.NewString())
	}

	m := model.Build(settings)
	if err := writeJSON(w, m); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}
