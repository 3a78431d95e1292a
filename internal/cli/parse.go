package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/asminfo/internal/parser"
)

var parseFormat string

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one assembly info file",
	Long: `Parse reads an AssemblyInfo.cs or AssemblyInfo.vb file and prints the
assembly attributes it declares. Files ending in .vb use Visual Basic syntax;
everything else is read as C#.

Version attributes that are not declared are reported as 1.0.0.0. Attributes
other than the well-known ones are listed as custom attributes.

Examples:
  # Print the attributes as JSON
  asminfo parse src/App/Properties/AssemblyInfo.cs

  # Print a readable summary
  asminfo parse "src/Legacy/My Project/AssemblyInfo.vb" --format text
`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "Output format: json or text")
}

func runParse(cmd *cobra.Command, args []string) error {
	rootDir, err := projectRoot()
	if err != nil {
		return err
	}

	p := parser.New(afero.NewOsFs(), parser.FixedEnvironment(rootDir))
	return executeParse(cmd.OutOrStdout(), p, args[0], parseFormat)
}

func executeParse(w io.Writer, p *parser.Parser, path, format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("unknown format %q (expected json or text)", format)
	}

	result, err := p.Parse(path)
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(w, result)
	}
	formatParseResult(w, result)
	return nil
}

func formatParseResult(w io.Writer, r *parser.ParseResult) {
	fmt.Fprintf(w, "%s (%s)\n", r.Path, r.Dialect)

	fields := []struct {
		label string
		value string
	}{
		{"Title", r.Title},
		{"Description", r.Description},
		{"Company", r.Company},
		{"Product", r.Product},
		{"Version", r.Version},
		{"File version", r.FileVersion},
		{"Info version", r.InformationalVersion},
		{"Copyright", r.Copyright},
		{"Trademark", r.Trademark},
		{"Configuration", r.Configuration},
		{"Guid", r.Guid},
		{"ComVisible", r.ComVisible},
		{"CLSCompliant", r.CLSCompliant},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(w, "  %-14s %s\n", f.label+":", f.value)
	}

	if len(r.InternalsVisibleTo) > 0 {
		fmt.Fprintf(w, "  %-14s %s\n", "Friends:", strings.Join(r.InternalsVisibleTo, ", "))
	}

	if len(r.CustomAttributes) > 0 {
		fmt.Fprintf(w, "  Custom attributes (%d):\n", len(r.CustomAttributes))
		for _, ca := range r.CustomAttributes {
			fmt.Fprintf(w, "    %s(%s)\n", ca.Name, ca.Value)
		}
	}
}
