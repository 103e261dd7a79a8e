package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgYellow, color.Bold)
	okColor      = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed)
)

// NoDataMessage is printed when the input cannot be loaded.
const NoDataMessage = "No data to display."

type ConsoleSink struct {
	writer io.Writer
	format string // "text", "json", "ndjson"
	mu     sync.Mutex
	emit   *EmitSink
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}
	if format == "json" || format == "ndjson" {
		s.emit, _ = NewEmitSink(w, format)
	}
	return s
}

func (s *ConsoleSink) Write(v any) error {
	switch s.format {
	case "json", "ndjson":
		return s.emit.Write(v)
	case "text":
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}

	e, ok := v.(Event)
	if !ok {
		return nil
	}

	// tablewriter cannot report write errors, so render into a buffer first.
	var b bytes.Buffer
	writeText(&b, e)
	if b.Len() == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer.Write(b.Bytes()); err != nil {
		return err
	}
	return flushBuffered(s.writer)
}

func (s *ConsoleSink) Close() error {
	switch s.format {
	case "json", "ndjson":
		return s.emit.Close()
	case "text":
		return nil
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func writeText(w io.Writer, e Event) {
	heading := func(title string) {
		_, _ = headingColor.Fprintf(w, "\n%s\n", title)
	}

	switch e.Type {
	case EventLoadFailed:
		fmt.Fprintf(w, "Error reading file: %s\n", e.Error)
		fmt.Fprintln(w, NoDataMessage)

	case EventLoadFinished:
		if e.Load == nil {
			return
		}
		fmt.Fprintf(w, "Data loaded from %s\n", e.Load.Path)
		fmt.Fprintf(w, "Total Rows: %d, Total Columns: %d\n", e.Load.Rows, e.Load.Columns)

	case EventCleanFinished:
		sum := e.Clean
		if sum == nil {
			return
		}
		heading("Info (before cleaning):")
		fmt.Fprintf(w, "Rows: %d, Columns: %d\n", sum.Before.Rows, sum.Before.Columns)
		writeNullTable(w, sum.Before.Nulls, false)

		heading("Cleaning steps:")
		writeStepTable(w, sum.Steps, false)

		heading("Info (after cleaning):")
		fmt.Fprintf(w, "Rows: %d, Columns: %d\n", sum.After.Rows, sum.After.Columns)
		writeNullTable(w, sum.After.Nulls, false)
		fmt.Fprintf(w, "Data cleaned and transformed. Shape: %s\n", shape(sum.After.Rows, sum.After.Columns))

	case EventProfileReady:
		p := e.Profile
		if p == nil {
			return
		}
		heading(fmt.Sprintf("Shape: %s", shape(p.Rows, p.Columns)))
		if len(p.Numeric) > 0 {
			heading("Numeric summary:")
			writeNumericTable(w, p.Numeric, false)
		}
		if len(p.Categorical) > 0 {
			heading("Unique values:")
			writeUniqueTable(w, p.Categorical, false)
			for _, c := range p.Categorical {
				heading(fmt.Sprintf("Top %d %s:", len(c.Top), c.Name))
				writeFrequencyTable(w, c.Top, false)
			}
		}
		if len(p.Numeric) > 0 {
			heading("Central tendency:")
			for _, n := range p.Numeric {
				fmt.Fprintln(w, centralTendency(n))
			}
		}

	case EventArtifactWritten:
		if e.Artifact != nil {
			_, _ = okColor.Fprintf(w, "Wrote %s: %s\n", e.Artifact.Kind, e.Artifact.Path)
		}

	case EventArtifactFailed:
		if e.Artifact != nil {
			_, _ = failColor.Fprintf(w, "Failed %s: %s: %s\n", e.Artifact.Kind, e.Artifact.Path, e.Artifact.Error)
		}

	case EventRunFinished:
		if e.ExitCode != 0 {
			_, _ = failColor.Fprintf(w, "\nFinished with errors (exit code %d)\n", e.ExitCode)
		}
	}
}
