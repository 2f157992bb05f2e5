package pipeline

import (
	"errors"
	"fmt"
)

const (
	StageLoad   = "load"
	StageRemove = "remove"
	StageEncode = "encode"
	StageExport = "export"
)

// ErrExportBlocked marks a creative whose slogan failed compliance. It is
// kept out of every sink and archive.
var ErrExportBlocked = errors.New("export blocked by compliance verdict")

// StageError reports which step failed for which input.
type StageError struct {
	Stage  string
	Index  int
	Source string
	Cause  error
}

func (e *StageError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s #%d (%s): %v", e.Stage, e.Index+1, e.Source, e.Cause)
	}
	return fmt.Sprintf("%s #%d: %v", e.Stage, e.Index+1, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
