package output

import (
	"awardeda/internal/clean"
	"awardeda/internal/stats"
)

// Event types, in the order a run emits them. load.failed ends a run early
// with exit code 0; artifact events may interleave when artifacts render
// concurrently.
const (
	EventRunStarted      = "run.started"
	EventLoadFailed      = "load.failed"
	EventLoadFinished    = "load.finished"
	EventCleanFinished   = "clean.finished"
	EventProfileReady    = "profile.ready"
	EventArtifactWritten = "artifact.written"
	EventArtifactFailed  = "artifact.failed"
	EventRunFinished     = "run.finished"
)

// Event is a lifecycle record. Exactly one payload field is set per type.
type Event struct {
	Type     string         `json:"type"`
	Input    string         `json:"input,omitempty"`
	Load     *LoadInfo      `json:"load,omitempty"`
	Clean    *clean.Summary `json:"clean,omitempty"`
	Profile  *stats.Profile `json:"profile,omitempty"`
	Artifact *Artifact      `json:"artifact,omitempty"`
	Error    string         `json:"error,omitempty"`
	ExitCode int            `json:"exit_code,omitempty"`
}

type LoadInfo struct {
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// Artifact kinds.
const (
	ArtifactChart  = "chart"
	ArtifactCSV    = "csv"
	ArtifactXLSX   = "xlsx"
	ArtifactSQLite = "sqlite"
)

type Artifact struct {
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

// Document is the aggregate written by the json formats on Close.
type Document struct {
	Input     string         `json:"input"`
	NoData    bool           `json:"no_data,omitempty"`
	Error     string         `json:"error,omitempty"`
	Load      *LoadInfo      `json:"load,omitempty"`
	Clean     *clean.Summary `json:"clean,omitempty"`
	Profile   *stats.Profile `json:"profile,omitempty"`
	Artifacts []Artifact     `json:"artifacts"`
	ExitCode  int            `json:"exit_code"`
}

// Apply folds one event into the document.
func (d *Document) Apply(e Event) {
	switch e.Type {
	case EventRunStarted:
		d.Input = e.Input
	case EventLoadFailed:
		d.NoData = true
		d.Error = e.Error
	case EventLoadFinished:
		d.Load = e.Load
	case EventCleanFinished:
		d.Clean = e.Clean
	case EventProfileReady:
		d.Profile = e.Profile
	case EventArtifactWritten, EventArtifactFailed:
		if e.Artifact != nil {
			d.Artifacts = append(d.Artifacts, *e.Artifact)
		}
	case EventRunFinished:
		d.ExitCode = e.ExitCode
		if e.Error != "" {
			d.Error = e.Error
		}
	}
}
