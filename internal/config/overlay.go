package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"awardeda/internal/flags"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by FromEnv,
// e.g. AWARDEDA_INPUT_PATH or AWARDEDA_REPORT_TOP.
const EnvPrefix = "AWARDEDA"

// Overlay maps flag names to raw flag values. The CLI applies an overlay to
// flags the user did not set explicitly, so precedence stays
// defaults < config file < environment < flags.
type Overlay map[string]string

// Merge returns a copy of o with every value of next applied on top.
func (o Overlay) Merge(next Overlay) Overlay {
	out := make(Overlay, len(o)+len(next))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range next {
		out[k] = v
	}
	return out
}

// schema is the shape shared by the YAML file and the environment.
// Unset fields stay nil and never reach the overlay.
type schema struct {
	Config *string `yaml:"-" envconfig:"CONFIG"`

	Input struct {
		Path      *string `yaml:"path" envconfig:"PATH"`
		Delimiter *string `yaml:"delimiter" envconfig:"DELIMITER"`
	} `yaml:"input" envconfig:"INPUT"`

	Report struct {
		Path      *string `yaml:"path" envconfig:"PATH"`
		ChartsDir *string `yaml:"charts_dir" envconfig:"CHARTS_DIR"`
		NoCharts  *string `yaml:"no_charts" envconfig:"NO_CHARTS"`
		Top       *string `yaml:"top" envconfig:"TOP"`
	} `yaml:"report" envconfig:"REPORT"`

	Output struct {
		ConsoleFormat *string `yaml:"console_format" envconfig:"CONSOLE_FORMAT"`
		NoConsole     *string `yaml:"no_console" envconfig:"NO_CONSOLE"`
		Out           *string `yaml:"out" envconfig:"OUT"`
		OutFormat     *string `yaml:"out_format" envconfig:"OUT_FORMAT"`
		ExportCSV     *string `yaml:"export_csv" envconfig:"EXPORT_CSV"`
		ExportXLSX    *string `yaml:"export_xlsx" envconfig:"EXPORT_XLSX"`
		ExportSQLite  *string `yaml:"export_sqlite" envconfig:"EXPORT_SQLITE"`
		SQLiteTable   *string `yaml:"sqlite_table" envconfig:"SQLITE_TABLE"`
	} `yaml:"output" envconfig:"OUTPUT"`

	Runtime struct {
		Concurrency *string `yaml:"concurrency" envconfig:"CONCURRENCY"`
		Timeout     *string `yaml:"timeout" envconfig:"TIMEOUT"`
		Verbose     *string `yaml:"verbose" envconfig:"VERBOSE"`
		LogLevel    *string `yaml:"log_level" envconfig:"LOG_LEVEL"`
		LogFormat   *string `yaml:"log_format" envconfig:"LOG_FORMAT"`
	} `yaml:"runtime" envconfig:"RUNTIME"`
}

func (s *schema) overlay() Overlay {
	o := Overlay{}
	set := func(name string, v *string) {
		if v != nil {
			o[name] = *v
		}
	}
	set(flags.FlagConfig, s.Config)

	set(flags.FlagInput, s.Input.Path)
	set(flags.FlagDelimiter, s.Input.Delimiter)

	set(flags.FlagReport, s.Report.Path)
	set(flags.FlagChartsDir, s.Report.ChartsDir)
	set(flags.FlagNoCharts, s.Report.NoCharts)
	set(flags.FlagTop, s.Report.Top)

	set(flags.FlagConsoleFormat, s.Output.ConsoleFormat)
	set(flags.FlagNoConsole, s.Output.NoConsole)
	set(flags.FlagOut, s.Output.Out)
	set(flags.FlagOutFormat, s.Output.OutFormat)
	set(flags.FlagExportCSV, s.Output.ExportCSV)
	set(flags.FlagExportXLSX, s.Output.ExportXLSX)
	set(flags.FlagExportSQLite, s.Output.ExportSQLite)
	set(flags.FlagSQLiteTable, s.Output.SQLiteTable)

	set(flags.FlagConcurrency, s.Runtime.Concurrency)
	set(flags.FlagTimeout, s.Runtime.Timeout)
	set(flags.FlagVerbose, s.Runtime.Verbose)
	set(flags.FlagLogLevel, s.Runtime.LogLevel)
	set(flags.FlagLogFormat, s.Runtime.LogFormat)
	return o
}

// LoadFile reads a YAML config file. Unknown keys are rejected.
func LoadFile(path string) (Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (Overlay, error) {
	var s schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Overlay{}, nil
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return s.overlay(), nil
}

// FromEnv reads AWARDEDA_* environment variables.
func FromEnv() (Overlay, error) {
	var s schema
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return s.overlay(), nil
}
