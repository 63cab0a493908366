package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jfenske89/go-obj-parse/pkg/objproc"
)

// inspectFlags holds command-line flags for the inspect command
type inspectFlags struct {
	objDir       string
	triangulate  bool
	withBounds   bool
	usesMaterial string
	namePattern  string
	minFaces     int
	filesIn      []string
	maxThreads   int
	pretty       bool
	logLevel     string
}

// inspectOutput represents inspect output in JSON format
type inspectOutput struct {
	Results []objproc.ScanResult `json:"results"`
	Summary summaryInfo          `json:"summary"`
}

// summaryInfo provides inspection result summary
type summaryInfo struct {
	TotalFiles int `json:"totalFiles"`
	TotalFaces int `json:"totalFaces"`
}

func main() {
	rootCmd := createRootCmd(context.Background())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// createRootCmd creates the root command with flags
func createRootCmd(ctx context.Context) *cobra.Command {
	flags := &inspectFlags{}

	rootCmd := &cobra.Command{
		Use:   "obj-inspect",
		Short: "CLI tool for inspecting Wavefront OBJ files",
		Long: `CLI tool for parsing Wavefront OBJ files into geometry summaries.
Supports single files and concurrent directory scans with material and name filtering.`,
		Example: `  # Inspect a single file
  obj-inspect inspect model.obj

  # Scan a directory of meshes
  obj-inspect inspect -d /path/to/meshes

  # Triangulate faces and report bounding boxes
  obj-inspect inspect -d /path/to/meshes --triangulate --bounds

  # Find meshes that use a material
  obj-inspect inspect -d /path/to/meshes --material Steel

  # Enable logging for debugging
  obj-inspect inspect -d /path/to/meshes --log-level info`,
	}

	inspectCmd := createInspectCmd(ctx, flags)
	rootCmd.AddCommand(inspectCmd)

	return rootCmd
}

// createInspectCmd creates the inspect command with flags
func createInspectCmd(ctx context.Context, flags *inspectFlags) *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Parse OBJ files and report geometry summaries",
		Long: `Parse Wavefront OBJ files into geometry summaries: record counts,
material usage, the derived material library path, and optionally the
bounding box. Pass file paths directly, or scan a directory with -d.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(ctx, flags, args)
		},
	}

	setupInspectFlags(inspectCmd, flags)
	return inspectCmd
}

// setupInspectFlags configures flags for the inspect command
func setupInspectFlags(cmd *cobra.Command, flags *inspectFlags) {
	// input options
	cmd.Flags().StringVarP(&flags.objDir, "directory", "d", "", "Directory to scan for OBJ files")

	// parse options
	cmd.Flags().BoolVar(&flags.triangulate, "triangulate", false, "Fan-decompose faces with more than three vertices")
	cmd.Flags().BoolVar(&flags.withBounds, "bounds", false, "Include the bounding box in each result")

	// filter options (directory mode)
	cmd.Flags().StringVar(&flags.usesMaterial, "material", "", "Filter to files declaring this material (requires --directory)")
	cmd.Flags().StringVar(&flags.namePattern, "name-pattern", "", "Filter to files whose material/object/group names match this regex (requires --directory)")
	cmd.Flags().IntVar(&flags.minFaces, "min-faces", 0, "Filter to files with at least this many faces (requires --directory)")
	cmd.Flags().StringSliceVar(&flags.filesIn, "files-in", nil, "Filter the scan to specific OBJ files")

	// performance options
	cmd.Flags().IntVarP(&flags.maxThreads, "threads", "t", runtime.NumCPU(), "Maximum number of worker threads")

	// output options
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")

	// logging options
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "Set logging level (disabled, error, warn, info, debug, trace)")
}

// runInspect executes the inspect command with the provided flags
func runInspect(ctx context.Context, flags *inspectFlags, args []string) error {
	// configure logging
	configureLogging(flags.logLevel)

	if flags.objDir == "" && len(args) == 0 {
		return fmt.Errorf("provide OBJ file paths or a directory with --directory")
	}

	// validate that directory scanning is enabled when using scan filters
	if (flags.usesMaterial != "" || flags.namePattern != "" || flags.minFaces > 0) && flags.objDir == "" {
		return fmt.Errorf("scan filters (--material, --name-pattern, --min-faces) require --directory")
	}

	startedAt := time.Now()
	log.Debug().
		Str("directory", flags.objDir).
		Int("files", len(args)).
		Bool("triangulate", flags.triangulate).
		Int("max_threads", flags.maxThreads).
		Msg("starting OBJ inspection")

	var results []objproc.ScanResult
	var err error

	if flags.objDir != "" {
		results, err = scanDirectory(ctx, flags)
	} else {
		results, err = inspectFiles(flags, args)
	}
	if err != nil {
		return err
	}

	var totalFaces int
	for _, result := range results {
		totalFaces += result.Summary.Faces
	}

	log.Debug().
		Int("files", len(results)).
		Int("total_faces", totalFaces).
		Str("duration", time.Since(startedAt).String()).
		Msg("OBJ inspection completed")

	output := inspectOutput{
		Results: results,
		Summary: summaryInfo{
			TotalFiles: len(results),
			TotalFaces: totalFaces,
		},
	}
	return outputJSON(output, flags.pretty)
}

// inspectFiles parses the explicitly listed files with one reused parser
func inspectFiles(flags *inspectFlags, paths []string) ([]objproc.ScanResult, error) {
	parser := objproc.NewParser(flags.triangulate)

	results := make([]objproc.ScanResult, 0, len(paths))
	for _, path := range paths {
		if err := parser.Parse(path); err != nil {
			return nil, fmt.Errorf("inspect failed: %w", err)
		}

		result := objproc.ScanResult{
			Path:    path,
			Summary: parser.Summarize(),
		}
		if flags.withBounds {
			result.Bounds = objproc.BoundsBoxOf(parser)
		}

		results = append(results, result)
	}
	return results, nil
}

// scanDirectory runs a concurrent scan over the configured directory
func scanDirectory(ctx context.Context, flags *inspectFlags) ([]objproc.ScanResult, error) {
	request := buildScanRequest(flags)
	scan := objproc.NewLibraryScan(flags.objDir, flags.maxThreads)

	// collect results with pre-allocated capacity
	results := make([]objproc.ScanResult, 0, 16)

	if err := scan.Scan(ctx, request, func(result *objproc.ScanResult) error {
		results = append(results, *result)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return results, nil
}

// buildScanRequest constructs a ScanRequest from command-line flags
func buildScanRequest(flags *inspectFlags) *objproc.ScanRequest {
	request := &objproc.ScanRequest{
		Triangulate: flags.triangulate,
		WithBounds:  flags.withBounds,
	}

	// configure filters
	if flags.usesMaterial != "" || flags.namePattern != "" || flags.minFaces > 0 || len(flags.filesIn) > 0 {
		request.Filters = &objproc.ScanFilters{
			UsesMaterial: flags.usesMaterial,
			NamePattern:  flags.namePattern,
			MinFaces:     flags.minFaces,
			FilesIn:      flags.filesIn,
		}
	}

	return request
}

// outputJSON marshals and outputs the inspection results as JSON
func outputJSON(output inspectOutput, pretty bool) error {
	var jsonData []byte
	var err error

	if pretty {
		jsonData, err = json.MarshalIndent(output, "", "  ")
	} else {
		jsonData, err = json.Marshal(output)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}

	fmt.Println(string(jsonData))
	return nil
}

// configureLogging sets up zerolog based on the specified level
func configureLogging(level string) {
	level = strings.ToLower(level)

	if level == "disabled" {
		// disable logging
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}

	// use a standard error console writer to keep the command output processable
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	})

	// set log level
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		log.Warn().Str("log_level", level).Msg("unknown log level - falling back to WARN")
	}
}
