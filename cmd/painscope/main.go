// -----------------------------------------------------------------------
// Last Modified: Thursday, 15th October 2026 10:00:00 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/ingest"
	"github.com/ternarybob/painscope/internal/report"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles    configPaths // Multiple -config flags supported
	recordsPath    = flag.String("records", "", "Records file (.json, .jsonl or .ndjson)")
	themesPath     = flag.String("themes", "", "Themes YAML file (optional)")
	dimensionsPath = flag.String("dimensions", "", "Market/competition/timing scores YAML file (optional)")
	outputFormat   = flag.String("format", "markdown", "Report format: json, markdown or html")
	outputPath     = flag.String("out", "", "Report output file (default stdout)")
	noPraiseFilter = flag.Bool("no-praise-filter", false, "Disable the embedding praise filter")
	logLevel       = flag.String("log-level", "", "Log level (overrides config)")
	showVersion    = flag.Bool("version", false, "Print version information")
	showVersionV   = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("%s version %s\n", common.AppName, common.GetFullVersion())
		os.Exit(0)
	}

	if *recordsPath == "" {
		fmt.Fprintln(os.Stderr, "painscope: -records is required")
		flag.Usage()
		os.Exit(2)
	}

	format, err := report.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "painscope: %v\n", err)
		os.Exit(2)
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("painscope.toml"); err == nil {
			configFiles = append(configFiles, "painscope.toml")
		}
	}

	// 1. Load configuration (default -> file1 -> file2 -> ... -> env -> CLI)
	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	// 2. Apply command-line flag overrides (highest priority)
	level := *logLevel
	toStdout := *outputPath == ""
	if toStdout && level == "" {
		// Keep stdout readable when the report is written there
		level = "warn"
	}
	common.ApplyFlagOverrides(config, *noPraiseFilter, level)

	// 3. Initialize logger with final configuration
	logger := common.InitLogger(config)

	// 4. Print banner
	if !toStdout {
		common.PrintBanner(common.GetVersion())
	}

	logger.Debug().
		Str("environment", config.Environment).
		Str("log_level", config.Logging.Level).
		Str("embedding_provider", string(config.Embeddings.Provider)).
		Str("embedding_model", config.Embeddings.Model).
		Bool("praise_filter", config.PraiseFilter.Enabled).
		Msg("Resolved configuration (sanitized)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := runOptions{
		recordsPath:    *recordsPath,
		themesPath:     *themesPath,
		dimensionsPath: *dimensionsPath,
	}

	result, err := run(ctx, config, logger, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("Evaluation failed")
		os.Exit(1)
	}

	if err := writeReport(result, format, *outputPath); err != nil {
		logger.Fatal().Err(err).Msg("Failed to write report")
		os.Exit(1)
	}

	logger.Info().
		Str("run_id", result.RunID).
		Str("verdict", string(result.Verdict.Verdict)).
		Str("format", string(format)).
		Str("out", *outputPath).
		Msg("Report written")
}

func writeReport(r *report.Report, format report.Format, path string) error {
	if path == "" {
		return report.Render(os.Stdout, r, format)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := report.Render(file, r, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// loadDimensions returns an empty set when no dimensions file was given
func loadDimensions(path string) (*ingest.DimensionsFile, error) {
	if path == "" {
		return &ingest.DimensionsFile{}, nil
	}
	return ingest.LoadDimensions(path)
}
