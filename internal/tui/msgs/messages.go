// Package msgs defines shared message types for TUI view transitions.
package msgs

import "time"

// FileSelectedMsg is sent when a recording is picked or dropped.
type FileSelectedMsg struct {
	Path string
}

// AnalysisDoneMsg is sent when a submitted upload has finished, whatever
// the outcome. The session holds the resulting state.
type AnalysisDoneMsg struct {
	Err error
}

// ResetMsg asks the app to return a failed session to idle. At is when the
// reset timer fired.
type ResetMsg struct {
	At time.Time
}

// NewUploadMsg is sent when the user discards the results to start over.
type NewUploadMsg struct{}

// ExportedMsg reports the outcome of writing the export file.
type ExportedMsg struct {
	Path string
	Err  error
}
