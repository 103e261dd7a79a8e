package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ReportSink collects run events and writes a Markdown profiling report on
// Close. Nothing is written when the run never loaded a table.
type ReportSink struct {
	path string
	mu   sync.Mutex
	doc  Document
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}
	return &ReportSink{path: path}, nil
}

func (s *ReportSink) Path() string { return s.path }

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := v.(Event); ok {
		s.doc.Apply(e)
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.NoData || s.doc.Load == nil {
		return nil
	}
	if err := ensureParentDir(s.path); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, s.render(), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

func (s *ReportSink) render() []byte {
	d := s.doc
	var b bytes.Buffer

	b.WriteString("# Award Data Profile\n\n")

	// --- Overview ---
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- **Input:** `%s`\n", d.Load.Path)
	fmt.Fprintf(&b, "- **Loaded:** %d rows, %d columns\n", d.Load.Rows, d.Load.Columns)
	if d.Profile != nil {
		fmt.Fprintf(&b, "- **After cleaning:** %d rows, %d columns\n", d.Profile.Rows, d.Profile.Columns)
	}
	b.WriteString("\n")

	// --- Cleaning ---
	if d.Clean != nil {
		b.WriteString("## Cleaning\n\n")
		dropped := d.Clean.Before.Rows - d.Clean.After.Rows
		fmt.Fprintf(&b, "%d of %d rows removed.\n\n", dropped, d.Clean.Before.Rows)
		writeStepTable(&b, d.Clean.Steps, true)
		b.WriteString("\n### Missing values before cleaning\n\n")
		writeNullTable(&b, d.Clean.Before.Nulls, true)
		b.WriteString("\n### Missing values after cleaning\n\n")
		writeNullTable(&b, d.Clean.After.Nulls, true)
		b.WriteString("\n")
	}

	// --- Statistics ---
	if p := d.Profile; p != nil {
		if len(p.Numeric) > 0 {
			b.WriteString("## Numeric columns\n\n")
			writeNumericTable(&b, p.Numeric, true)
			b.WriteString("\n")
			for _, n := range p.Numeric {
				fmt.Fprintf(&b, "- %s\n", centralTendency(n))
			}
			b.WriteString("\n")
		}
		if len(p.Categorical) > 0 {
			b.WriteString("## Categorical columns\n\n")
			writeUniqueTable(&b, p.Categorical, true)
			for _, c := range p.Categorical {
				fmt.Fprintf(&b, "\n### Top %d `%s`\n\n", len(c.Top), c.Name)
				if len(c.Top) == 0 {
					b.WriteString("_No values._\n")
					continue
				}
				writeFrequencyTable(&b, c.Top, true)
			}
			b.WriteString("\n")
		}
	}

	// --- Charts & artifacts ---
	var charts []Artifact
	for _, a := range d.Artifacts {
		if a.Kind == ArtifactChart && a.Error == "" {
			charts = append(charts, a)
		}
	}
	if len(charts) > 0 {
		b.WriteString("## Charts\n\n")
		for _, a := range charts {
			name := strings.TrimSuffix(filepath.Base(a.Path), filepath.Ext(a.Path))
			fmt.Fprintf(&b, "![%s](%s)\n\n", name, s.relative(a.Path))
		}
	}

	if len(d.Artifacts) > 0 {
		b.WriteString("## Artifacts\n\n")
		for _, a := range d.Artifacts {
			if a.Error != "" {
				fmt.Fprintf(&b, "- %s `%s`: **failed** (%s)\n", a.Kind, a.Path, a.Error)
				continue
			}
			fmt.Fprintf(&b, "- %s `%s`\n", a.Kind, a.Path)
		}
	}
	return b.Bytes()
}

// relative returns target relative to the report's directory, slash-separated
// so the link works in Markdown viewers.
func (s *ReportSink) relative(target string) string {
	rel, err := filepath.Rel(filepath.Dir(s.path), target)
	if err != nil {
		rel = target
	}
	return filepath.ToSlash(rel)
}
