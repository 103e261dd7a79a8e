package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"awardeda/internal/logging"
)

const (
	DefaultInput     = "data/the_oscar_award.csv"
	DefaultReport    = "output/oscar_award_profile.md"
	DefaultChartsDir = "output/charts"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these in sync:
	// - CLI flags in internal/cli/root.go
	// - the file/env overlay in internal/config/overlay.go (schema)
	Input   Input
	Report  Report
	Output  Output
	Runtime Runtime
}

type Input struct {
	// Path is the CSV file to analyze (see --input).
	Path string

	// Delimiter is the field separator (see --delimiter). A single character.
	Delimiter string
}

type Report struct {
	// Path is where the Markdown profiling report is written (see --report).
	// Empty disables the report.
	Path string

	// ChartsDir receives the chart images (see --charts-dir). Created if absent.
	ChartsDir string

	// NoCharts skips chart rendering (see --no-charts).
	NoCharts bool

	// TopN bounds frequency tables and bar charts (see --top). Must be >= 1.
	TopN int
}

type Output struct {
	// ConsoleFormat controls the stdout console sink (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool

	// Out writes the structured event stream to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// ExportCSV, ExportXLSX and ExportSQLite write the cleaned table (see --export-*).
	ExportCSV    string
	ExportXLSX   string
	ExportSQLite string

	// SQLiteTable names the table created by --export-sqlite (see --sqlite-table).
	SQLiteTable string
}

type Runtime struct {
	// Concurrency bounds how many artifacts render at once (see --concurrency).
	// 1 keeps the run fully sequential.
	Concurrency int

	// Timeout is the global run timeout (see --timeout). Must be > 0.
	Timeout time.Duration

	// Verbose forces debug logging (see --verbose).
	Verbose bool

	// LogLevel and LogFormat configure slog on stderr (see --log-level, --log-format).
	LogLevel  string
	LogFormat string
}

func New() *Config {
	return &Config{
		Input: Input{
			Path:      DefaultInput,
			Delimiter: ",",
		},
		Report: Report{
			Path:      DefaultReport,
			ChartsDir: DefaultChartsDir,
			TopN:      10,
		},
		Output: Output{
			ConsoleFormat: "text",
			SQLiteTable:   "awards_cleaned",
		},
		Runtime: Runtime{
			Concurrency: 1,
			Timeout:     10 * time.Minute,
			LogLevel:    "info",
			LogFormat:   "text",
		},
	}
}

// DelimiterRune returns the configured delimiter. Call after Validate.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	return r
}

func (c *Config) Validate() error {
	// Input validation
	c.Input.Path = strings.TrimSpace(c.Input.Path)
	if c.Input.Path == "" {
		return errors.New("--input must not be empty")
	}
	if c.Input.Delimiter == `\t` || strings.EqualFold(c.Input.Delimiter, "tab") {
		c.Input.Delimiter = "\t"
	}
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("--delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	if d := c.DelimiterRune(); d == '"' || d == '\r' || d == '\n' || d == utf8.RuneError {
		return fmt.Errorf("unsupported --delimiter: %q", c.Input.Delimiter)
	}

	// Report validation
	c.Report.Path = strings.TrimSpace(c.Report.Path)
	c.Report.ChartsDir = strings.TrimSpace(c.Report.ChartsDir)
	if !c.Report.NoCharts && c.Report.ChartsDir == "" {
		return errors.New("--charts-dir must not be empty (use --no-charts to skip charts)")
	}
	if c.Report.TopN < 1 {
		return errors.New("--top must be >= 1")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	c.Output.SQLiteTable = strings.TrimSpace(c.Output.SQLiteTable)
	if c.Output.ExportSQLite != "" && c.Output.SQLiteTable == "" {
		return errors.New("--sqlite-table must not be empty when --export-sqlite is set")
	}

	if err := checkDistinctOutputs(c); err != nil {
		return err
	}

	// Runtime validation
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	if !logging.ValidLevel(c.Runtime.LogLevel) {
		return fmt.Errorf("unsupported --log-level: %s (must be one of: debug, info, warn, error)", c.Runtime.LogLevel)
	}
	c.Runtime.LogFormat = normalizeEnumValue(c.Runtime.LogFormat)
	if c.Runtime.LogFormat != "text" && c.Runtime.LogFormat != "json" {
		return fmt.Errorf("unsupported --log-format: %s (must be one of: text, json)", c.Runtime.LogFormat)
	}
	if c.Runtime.Verbose {
		c.Runtime.LogLevel = "debug"
	}

	return nil
}

// checkDistinctOutputs rejects two outputs pointed at the same file, or an
// output overwriting the input.
func checkDistinctOutputs(c *Config) error {
	seen := map[string]string{filepath.Clean(c.Input.Path): "--input"}
	for _, o := range []struct{ flag, path string }{
		{"--report", c.Report.Path},
		{"--out", c.Output.Out},
		{"--export-csv", c.Output.ExportCSV},
		{"--export-xlsx", c.Output.ExportXLSX},
		{"--export-sqlite", c.Output.ExportSQLite},
	} {
		if o.path == "" {
			continue
		}
		p := filepath.Clean(o.path)
		if prev, ok := seen[p]; ok {
			return fmt.Errorf("%s and %s point at the same file: %s", prev, o.flag, o.path)
		}
		seen[p] = o.flag
	}
	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
