package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"awardeda/internal/config"
	"awardeda/internal/engine"
	"awardeda/internal/flags"
	"awardeda/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	cfg        = config.New()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "awardeda",
	Short: "Exploratory data analysis of a film-award CSV",
	Long: `awardeda loads a CSV of film-award records, cleans it, prints descriptive
statistics, writes a Markdown profiling report and renders chart images.

Running awardeda with no arguments runs the whole pipeline with the default paths:
  input:  ` + config.DefaultInput + `
  report: ` + config.DefaultReport + `
  charts: ` + config.DefaultChartsDir + `

Cleaning (see "awardeda steps list"):
  1. drop rows whose name or film is missing or blank
  2. trim surrounding whitespace from text columns
  3. drop exact duplicate rows, keeping the first

Configuration:
  Values are resolved as defaults < --config YAML file < AWARDEDA_* environment
  variables < command-line flags. The config file may also be named by
  AWARDEDA_CONFIG. Environment keys follow the file layout, for example
  AWARDEDA_INPUT_PATH, AWARDEDA_REPORT_TOP or AWARDEDA_RUNTIME_LOG_LEVEL.

Output:
  Console output is controlled by --console-format (default: text).
  - --out / --out-format: write an aggregate JSON document or NDJSON stream to a file
  - --export-csv, --export-xlsx, --export-sqlite: write the cleaned table
  - --no-console: suppress the console sink

  NDJSON mode emits one JSON object per line with a "type" field (run.started,
  load.failed, load.finished, clean.finished, profile.ready, artifact.written,
  artifact.failed, run.finished).

  Diagnostics are logged to stderr (--log-level, --log-format, --verbose).

Exit codes:
  0 = success, or the input could not be loaded ("No data to display.")
  2 = partial failure (one or more charts, exports or the report failed)
  3 = fatal error (invalid configuration or input schema)

Examples:
  # Run with the default paths
  awardeda

  # Analyze another file and also export the cleaned rows
  awardeda --input data/awards.csv --export-csv output/cleaned.csv

  # Machine-readable events only
  awardeda --no-console --out output/events.ndjson --no-charts`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		overlay, err := loadOverlay(cmd.Flags())
		if err != nil {
			return err
		}
		return applyOverlay(cmd.Flags(), overlay)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		logger := logging.Setup(os.Stderr, cfg.Runtime.LogLevel, cfg.Runtime.LogFormat)
		eng := engine.NewEngine(cmd.OutOrStdout(), logger)
		os.Exit(eng.Run(cmd.Context(), cfg))
	},
}

// loadOverlay reads the config file (from --config or AWARDEDA_CONFIG) and
// the environment. Environment values win over file values.
func loadOverlay(fs *pflag.FlagSet) (config.Overlay, error) {
	env, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	path := configPath
	if f := fs.Lookup(flags.FlagConfig); f == nil || !f.Changed {
		if p, ok := env[flags.FlagConfig]; ok {
			path = p
		}
	}

	file := config.Overlay{}
	if path != "" {
		if file, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return file.Merge(env), nil
}

// applyOverlay sets every flag the user did not pass explicitly from o.
// Keys without a matching flag on this command are ignored.
func applyOverlay(fs *pflag.FlagSet, o config.Overlay) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == flags.FlagConfig {
			return
		}
		v, ok := o[f.Name]
		if !ok {
			return
		}
		if err := f.Value.Set(v); err != nil {
			errs = append(errs, fmt.Errorf("invalid value %q for --%s: %w", v, f.Name, err))
		}
	})
	return errors.Join(errs...)
}

func init() {
	// MAINTAINER NOTE: If you add/change/remove flags here, keep the config
	// overlay schema in sync: internal/config/overlay.go.
	d := config.New()

	// Input
	rootCmd.Flags().StringVar(&cfg.Input.Path, flags.FlagInput, d.Input.Path, "CSV file to analyze")
	rootCmd.Flags().StringVar(&cfg.Input.Delimiter, flags.FlagDelimiter, d.Input.Delimiter, `Field delimiter (single character; "\t" or "tab" for tab)`)

	// Report
	rootCmd.Flags().StringVar(&cfg.Report.Path, flags.FlagReport, d.Report.Path, "Write the Markdown profiling report to this path (empty disables)")
	rootCmd.Flags().StringVar(&cfg.Report.ChartsDir, flags.FlagChartsDir, d.Report.ChartsDir, "Directory for chart images (created if absent)")
	rootCmd.Flags().BoolVar(&cfg.Report.NoCharts, flags.FlagNoCharts, false, "Skip chart rendering")
	rootCmd.Flags().IntVar(&cfg.Report.TopN, flags.FlagTop, d.Report.TopN, "Number of values in frequency tables and bar charts")

	// Output
	rootCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, d.Output.ConsoleFormat, "Console output format: text|json|ndjson")
	rootCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out/--report)")
	rootCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	rootCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	rootCmd.Flags().StringVar(&cfg.Output.ExportCSV, flags.FlagExportCSV, "", "Export the cleaned table as CSV to this path")
	rootCmd.Flags().StringVar(&cfg.Output.ExportXLSX, flags.FlagExportXLSX, "", "Export the cleaned table and summary as an Excel workbook to this path")
	rootCmd.Flags().StringVar(&cfg.Output.ExportSQLite, flags.FlagExportSQLite, "", "Export the cleaned table into a SQLite database at this path")
	rootCmd.Flags().StringVar(&cfg.Output.SQLiteTable, flags.FlagSQLiteTable, d.Output.SQLiteTable, "Table name for --export-sqlite (replaced if it exists)")

	// Runtime
	rootCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, d.Runtime.Concurrency, "Artifacts rendered in parallel (1 = sequential)")
	rootCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, d.Runtime.Timeout, "Global timeout")

	// Global
	rootCmd.PersistentFlags().StringVar(&configPath, flags.FlagConfig, "", "YAML config file (env: AWARDEDA_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable debug logging (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&cfg.Runtime.LogLevel, flags.FlagLogLevel, d.Runtime.LogLevel, "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&cfg.Runtime.LogFormat, flags.FlagLogFormat, d.Runtime.LogFormat, "Log format: text|json")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(3)
	}
}
