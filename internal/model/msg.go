package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DatasetLoadedMsg is sent when a fetch for the given activation succeeds.
type DatasetLoadedMsg struct {
	FetchID string
	Dataset Dataset
}

// FetchFailedMsg is sent when a fetch for the given activation fails.
type FetchFailedMsg struct {
	FetchID string
	Err     error
}

// ExportedMsg is sent when the current view was written to disk.
type ExportedMsg struct {
	Path string
	Rows int
}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeFilter
)
