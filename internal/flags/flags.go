package flags

// Package flags defines canonical CLI flag names shared across the CLI and config.
// Keeping these as constants avoids drift between Cobra flag wiring and the
// config-file/environment overlay, which addresses flags by name.
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Input.Path, flags.FlagInput, "", "...")
//	arg := "--" + flags.FlagInput
const (
	// Input
	FlagInput     = "input"
	FlagDelimiter = "delimiter"

	// Report
	FlagReport    = "report"
	FlagChartsDir = "charts-dir"
	FlagNoCharts  = "no-charts"
	FlagTop       = "top"

	// Output
	FlagConsoleFormat = "console-format"
	FlagNoConsole     = "no-console"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagExportCSV     = "export-csv"
	FlagExportXLSX    = "export-xlsx"
	FlagExportSQLite  = "export-sqlite"
	FlagSQLiteTable   = "sqlite-table"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
	FlagConfig      = "config"
	FlagVerbose     = "verbose"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
)
