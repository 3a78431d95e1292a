package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/asminfo/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asminfo",
	Short: "asminfo - read and model .NET assembly info files",
	Long: `asminfo extracts assembly-level attributes from AssemblyInfo.cs and
AssemblyInfo.vb files and builds the attribute model used to generate them.

Project settings live in .asminfo/config.yml and can be overridden with
ASMINFO_* environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.asminfo/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reports which config file a command will use.
func initConfig() {
	if !verbose {
		return
	}
	if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", cfgFile)
		return
	}
	fmt.Fprintf(os.Stderr, "Using config directory: %s\n", config.ConfigDirName)
}

// loadProjectConfig loads configuration for rootDir, honoring --config.
func loadProjectConfig(rootDir string) (*config.Config, error) {
	loader := config.NewLoader(rootDir)
	if cfgFile != "" {
		loader = config.NewFileLoader(rootDir, cfgFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// projectRoot returns the working directory, the root for relative paths.
func projectRoot() (string, error) {
	rootDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return rootDir, nil
}
