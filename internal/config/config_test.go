package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"awardeda/internal/flags"

	"github.com/google/go-cmp/cmp"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Input.Path != DefaultInput || cfg.Report.Path != DefaultReport || cfg.Report.ChartsDir != DefaultChartsDir {
		t.Fatalf("unexpected default paths: %+v", cfg)
	}
	if cfg.Runtime.Concurrency != 1 {
		t.Fatalf("default concurrency should be 1, got %d", cfg.Runtime.Concurrency)
	}
	if cfg.DelimiterRune() != ',' {
		t.Fatalf("default delimiter should be comma, got %q", cfg.DelimiterRune())
	}
}

func TestValidate_InfersOutFormatFromExtension(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{out: "events.json", want: "json"},
		{out: "events.NDJSON", want: "ndjson"},
		{out: "events.jsonl", want: "ndjson"},
	}
	for _, tt := range tests {
		t.Run(tt.out, func(t *testing.T) {
			cfg := New()
			cfg.Output.Out = tt.out
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() returned error: %v", err)
			}
			if cfg.Output.OutFormat != tt.want {
				t.Fatalf("OutFormat = %q, want %q", cfg.Output.OutFormat, tt.want)
			}
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		substr string
	}{
		{name: "empty_input", mutate: func(c *Config) { c.Input.Path = "  " }, substr: "--input"},
		{name: "long_delimiter", mutate: func(c *Config) { c.Input.Delimiter = ";;" }, substr: "--delimiter"},
		{name: "quote_delimiter", mutate: func(c *Config) { c.Input.Delimiter = `"` }, substr: "--delimiter"},
		{name: "top_zero", mutate: func(c *Config) { c.Report.TopN = 0 }, substr: "--top"},
		{name: "charts_dir_empty", mutate: func(c *Config) { c.Report.ChartsDir = "" }, substr: "--charts-dir"},
		{name: "console_format", mutate: func(c *Config) { c.Output.ConsoleFormat = "yaml" }, substr: "--console-format"},
		{name: "out_no_ext", mutate: func(c *Config) { c.Output.Out = "events" }, substr: "missing extension"},
		{name: "out_bad_ext", mutate: func(c *Config) { c.Output.Out = "events.txt" }, substr: ".txt"},
		{name: "out_format", mutate: func(c *Config) { c.Output.Out = "e.json"; c.Output.OutFormat = "xml" }, substr: "unsupported output format"},
		{name: "sqlite_table", mutate: func(c *Config) { c.Output.ExportSQLite = "a.db"; c.Output.SQLiteTable = " " }, substr: "--sqlite-table"},
		{name: "same_file", mutate: func(c *Config) { c.Output.ExportCSV = "./" + DefaultReport }, substr: "same file"},
		{name: "overwrite_input", mutate: func(c *Config) { c.Output.ExportCSV = DefaultInput }, substr: "--input and --export-csv"},
		{name: "concurrency", mutate: func(c *Config) { c.Runtime.Concurrency = 0 }, substr: "--concurrency"},
		{name: "timeout", mutate: func(c *Config) { c.Runtime.Timeout = 0 }, substr: "--timeout"},
		{name: "log_level", mutate: func(c *Config) { c.Runtime.LogLevel = "trace" }, substr: "--log-level"},
		{name: "log_format", mutate: func(c *Config) { c.Runtime.LogFormat = "xml" }, substr: "--log-format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Fatalf("error %q does not mention %q", err, tt.substr)
			}
		})
	}
}

func TestValidate_NoChartsAllowsEmptyDir(t *testing.T) {
	cfg := New()
	cfg.Report.NoCharts = true
	cfg.Report.ChartsDir = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
}

func TestValidate_TabDelimiterAlias(t *testing.T) {
	cfg := New()
	cfg.Input.Delimiter = `\t`
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.DelimiterRune() != '\t' {
		t.Fatalf("expected tab delimiter, got %q", cfg.DelimiterRune())
	}
}

func TestValidate_VerboseForcesDebug(t *testing.T) {
	cfg := New()
	cfg.Runtime.Verbose = true
	cfg.Runtime.Timeout = time.Second
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Runtime.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.Runtime.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awardeda.yaml")
	body := `
input:
  path: data/awards.csv
  delimiter: ";"
report:
  top: 5
  no_charts: true
runtime:
  timeout: 30s
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	want := Overlay{
		flags.FlagInput:     "data/awards.csv",
		flags.FlagDelimiter: ";",
		flags.FlagTop:       "5",
		flags.FlagNoCharts:  "true",
		flags.FlagTimeout:   "30s",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("overlay mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awardeda.yaml")
	if err := os.WriteFile(path, []byte("report:\n  colour: red\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty overlay, got %v", got)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("AWARDEDA_INPUT_PATH", "env.csv")
	t.Setenv("AWARDEDA_REPORT_CHARTS_DIR", "env-charts")
	t.Setenv("AWARDEDA_RUNTIME_LOG_LEVEL", "warn")
	t.Setenv("AWARDEDA_CONFIG", "env.yaml")

	got, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	want := Overlay{
		flags.FlagInput:     "env.csv",
		flags.FlagChartsDir: "env-charts",
		flags.FlagLogLevel:  "warn",
		flags.FlagConfig:    "env.yaml",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("overlay mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlayMerge(t *testing.T) {
	file := Overlay{flags.FlagInput: "file.csv", flags.FlagTop: "5"}
	env := Overlay{flags.FlagInput: "env.csv"}

	got := file.Merge(env)
	if got[flags.FlagInput] != "env.csv" || got[flags.FlagTop] != "5" {
		t.Fatalf("unexpected merge result: %v", got)
	}
	if file[flags.FlagInput] != "file.csv" {
		t.Fatalf("Merge must not modify the receiver")
	}
}
