package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/asminfo/internal/config"
	"github.com/mvp-joe/asminfo/internal/discovery"
	"github.com/mvp-joe/asminfo/internal/parser"
	"github.com/mvp-joe/asminfo/internal/watcher"
)

var (
	scanQuiet bool
	scanWatch bool
)

// ScanReport is the result of parsing every assembly info file under a root.
type ScanReport struct {
	Root   string                `json:"root"`
	Files  []*parser.ParseResult `json:"files"`
	Errors []ScanError           `json:"errors,omitempty"`
}

// ScanError records a file that was discovered but could not be parsed.
type ScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Parse every assembly info file in the project",
	Long: `Scan walks the project, finds assembly info files using the include and
ignore patterns in .asminfo/config.yml, parses each one and prints a JSON
report.

With --watch, scan keeps running after the initial report and re-parses files
as they change, printing one JSON result per changed file.

Examples:
  # Scan the current directory
  asminfo scan

  # Scan without progress output
  asminfo scan --quiet

  # Keep watching for changes
  asminfo scan --watch
`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "Disable progress bars and non-error output")
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "Watch for file changes and re-parse")
}

func runScan(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nInterrupted! Stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	rootDir, err := projectRoot()
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig(rootDir)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	fd, err := discovery.New(fs, rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("invalid path patterns: %w", err)
	}
	p := parser.New(fs, parser.FixedEnvironment(rootDir))

	progress := NewCLIProgressReporter(os.Stderr, scanQuiet)
	report, err := executeScan(fd, p, rootDir, progress)
	if err != nil {
		return err
	}
	if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if !scanWatch {
		return nil
	}

	return watchScan(ctx, cmd.OutOrStdout(), cfg, fd, p, rootDir)
}

// executeScan discovers and parses every matching file. A file that fails to
// parse is recorded in the report instead of aborting the scan.
func executeScan(fd *discovery.FileDiscovery, p *parser.Parser, rootDir string, progress ScanProgressReporter) (*ScanReport, error) {
	if progress == nil {
		progress = noopProgress{}
	}
	start := time.Now()

	progress.OnDiscoveryStart()
	files, err := fd.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	progress.OnDiscoveryComplete(len(files))

	report := &ScanReport{
		Root:  rootDir,
		Files: make([]*parser.ParseResult, 0, len(files)),
	}
	for _, path := range files {
		result, err := p.Parse(path)
		if err != nil {
			log.Printf("Warning: failed to parse %s: %v", path, err)
			report.Errors = append(report.Errors, ScanError{Path: path, Error: err.Error()})
		} else {
			report.Files = append(report.Files, result)
		}
		progress.OnFileParsed(path)
	}

	progress.OnComplete(report, time.Since(start))
	return report, nil
}

// watchScan re-parses changed files until ctx is cancelled.
func watchScan(ctx context.Context, w io.Writer, cfg *config.Config, fd *discovery.FileDiscovery, p *parser.Parser, rootDir string) error {
	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	fw, err := watcher.NewFileWatcher(rootDir, fd.MatchesAbs, debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Stop()

	if err := fw.Start(ctx, func(files []string) {
		reparse(w, p, files)
	}); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if !scanQuiet {
		fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")
	}
	<-ctx.Done()
	return nil
}

// reparse writes one JSON line per changed file. Deleted files are reported
// with a removed marker.
func reparse(w io.Writer, p *parser.Parser, files []string) {
	for _, path := range files {
		result, err := p.Parse(path)
		switch {
		case errors.Is(err, parser.ErrSourceNotFound):
			writeJSONLine(w, map[string]any{"path": path, "removed": true})
		case err != nil:
			log.Printf("Warning: failed to parse %s: %v", path, err)
		default:
			writeJSONLine(w, result)
		}
	}
}
