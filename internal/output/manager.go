package output

import (
	"errors"
	"fmt"
)

// Sink receives every run event. Close is called once, after run.finished;
// sinks that aggregate (the json document, the Markdown report) write there.
type Sink interface {
	Write(v any) error
	Close() error
}

// Manager fans run events out to the console, --out and report sinks.
// A failing sink never keeps the event from reaching the others.
type Manager struct {
	sinks []Sink
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddSink(s Sink) error {
	if m == nil {
		return errors.New("output manager is nil")
	}
	if s == nil {
		return errors.New("sink must not be nil")
	}
	m.sinks = append(m.sinks, s)
	return nil
}

// Write hands v to every sink and joins their errors.
func (m *Manager) Write(v any) error {
	return m.each("write", func(s Sink) error { return s.Write(v) })
}

// Close closes every sink and joins their errors. The report file is
// written here, so a failure is how the engine learns the report is missing.
func (m *Manager) Close() error {
	return m.each("close", Sink.Close)
}

func (m *Manager) each(op string, fn func(Sink) error) error {
	if m == nil {
		return errors.New("output manager is nil")
	}
	var errs []error
	for _, s := range m.sinks {
		if err := fn(s); err != nil {
			errs = append(errs, fmt.Errorf("%s %T: %w", op, s, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s sinks: %w", op, errors.Join(errs...))
	}
	return nil
}
