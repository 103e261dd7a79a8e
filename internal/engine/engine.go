package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"awardeda/internal/chart"
	"awardeda/internal/clean"
	_ "awardeda/internal/clean/steps"
	"awardeda/internal/config"
	"awardeda/internal/export"
	"awardeda/internal/loader"
	"awardeda/internal/output"
	"awardeda/internal/stats"
	"awardeda/internal/table"
)

func exitCodeForRun(fatal, partial bool) int {
	// Exit code contract:
	// 0 = clean run, or no data to display
	// 2 = partial failure (one or more artifacts failed)
	// 3 = fatal error (configuration, schema, sink setup)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	return 0
}

func setupOutputManager(cfg *config.Config, stdout io.Writer) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(stdout, cfg.Output.ConsoleFormat)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Report.Path != "" {
		rs, err := output.NewReportSink(cfg.Report.Path)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

// planArtifacts lists the files produced from the cleaned table, in output order.
func planArtifacts(cfg *config.Config, t *table.Table, p *stats.Profile) []Job {
	var jobs []Job

	if !cfg.Report.NoCharts {
		opts := chart.Options{TopN: cfg.Report.TopN}
		for _, spec := range chart.Specs() {
			jobs = append(jobs, Job{
				Kind: output.ArtifactChart,
				Path: filepath.Join(cfg.Report.ChartsDir, spec.File),
				Run: func(context.Context) error {
					_, err := chart.Write(cfg.Report.ChartsDir, spec, t, opts)
					return err
				},
			})
		}
	}

	if path := cfg.Output.ExportCSV; path != "" {
		jobs = append(jobs, Job{Kind: output.ArtifactCSV, Path: path, Run: func(context.Context) error {
			return export.WriteCSV(path, t)
		}})
	}
	if path := cfg.Output.ExportXLSX; path != "" {
		jobs = append(jobs, Job{Kind: output.ArtifactXLSX, Path: path, Run: func(context.Context) error {
			return export.WriteXLSX(path, t, p)
		}})
	}
	if path := cfg.Output.ExportSQLite; path != "" {
		jobs = append(jobs, Job{Kind: output.ArtifactSQLite, Path: path, Run: func(ctx context.Context) error {
			return export.WriteSQLite(ctx, path, t, cfg.Output.SQLiteTable)
		}})
	}
	return jobs
}

type Engine struct {
	// Stdout receives the console sink. Nil means os.Stdout.
	Stdout io.Writer

	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

func NewEngine(stdout io.Writer, logger *slog.Logger) *Engine {
	return &Engine{Stdout: stdout, Logger: logger}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e *Engine) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

// Run executes load, clean, describe and artifact rendering for cfg and
// returns the process exit code. cfg must already be validated.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	log := e.logger()

	ctx, cancel := context.WithTimeout(ctx, cfg.Runtime.Timeout)
	defer cancel()

	outMgr, err := setupOutputManager(cfg, e.stdout())
	if err != nil {
		log.Error("failed to create output sinks", "error", err)
		return exitCodeForRun(true, false)
	}

	code := e.run(ctx, cfg, outMgr)

	// The report sink writes its file on Close.
	if err := outMgr.Close(); err != nil {
		log.Error("failed to finish outputs", "error", err)
		if code == 0 {
			code = exitCodeForRun(false, true)
		}
	}
	return code
}

func (e *Engine) run(ctx context.Context, cfg *config.Config, outMgr *output.Manager) int {
	log := e.logger()

	write := func(ev output.Event) {
		if err := outMgr.Write(ev); err != nil {
			log.Warn("failed to write event", "type", ev.Type, "error", err)
		}
	}
	finish := func(code int, err error) int {
		ev := output.Event{Type: output.EventRunFinished, ExitCode: code}
		if err != nil {
			ev.Error = err.Error()
		}
		write(ev)
		log.Info("run finished", "exit_code", code)
		return code
	}

	write(output.Event{Type: output.EventRunStarted, Input: cfg.Input.Path})

	// 1. Load
	log.Info("loading input", "path", cfg.Input.Path)
	raw, err := loader.Load(cfg.Input.Path, loader.Options{Delimiter: cfg.DelimiterRune()})
	if err != nil {
		var loadErr *loader.LoadError
		if !errors.As(err, &loadErr) {
			log.Error("load failed", "error", err)
			return finish(exitCodeForRun(true, false), err)
		}
		log.Warn("input could not be loaded", "path", cfg.Input.Path, "error", err)
		write(output.Event{Type: output.EventLoadFailed, Error: err.Error()})
		return finish(exitCodeForRun(false, false), nil)
	}
	rows, cols := raw.Shape()
	log.Info("input loaded", "rows", rows, "columns", cols)
	write(output.Event{Type: output.EventLoadFinished, Load: &output.LoadInfo{Path: cfg.Input.Path, Rows: rows, Columns: cols}})

	// 2. Clean
	cleaned, summary, err := clean.NewPipeline().Run(raw)
	if err != nil {
		log.Error("cleaning failed", "error", err)
		return finish(exitCodeForRun(true, false), err)
	}
	for _, r := range summary.Steps {
		log.Debug("cleaning step applied", "step", r.StepID, "rows_dropped", r.RowsDropped(), "cells_changed", r.CellsChanged)
	}
	log.Info("cleaning finished", "rows_before", summary.Before.Rows, "rows_after", summary.After.Rows)
	write(output.Event{Type: output.EventCleanFinished, Clean: &summary})

	// 3. Describe
	profile := stats.Describe(cleaned, cfg.Report.TopN)
	write(output.Event{Type: output.EventProfileReady, Profile: &profile})

	if err := ctx.Err(); err != nil {
		log.Error("run canceled", "error", err)
		return finish(exitCodeForRun(true, false), err)
	}

	// 4. Artifacts
	sched, err := NewScheduler(cfg.Runtime.Concurrency)
	if err != nil {
		log.Error("invalid scheduler configuration", "error", err)
		return finish(exitCodeForRun(true, false), err)
	}

	var (
		mu     sync.Mutex
		failed int
	)
	jobs := planArtifacts(cfg, cleaned, &profile)
	err = sched.Execute(ctx, jobs, func(j Job, jobErr error) {
		mu.Lock()
		defer mu.Unlock()
		a := &output.Artifact{Kind: j.Kind, Path: j.Path}
		if jobErr != nil {
			failed++
			a.Error = jobErr.Error()
			log.Error("artifact failed", "kind", j.Kind, "path", j.Path, "error", jobErr)
			write(output.Event{Type: output.EventArtifactFailed, Artifact: a})
			return
		}
		log.Info("artifact written", "kind", j.Kind, "path", j.Path)
		write(output.Event{Type: output.EventArtifactWritten, Artifact: a})
	})
	if err != nil {
		return finish(exitCodeForRun(true, false), err)
	}

	return finish(exitCodeForRun(false, failed > 0), nil)
}
