// Package engineerror defines the typed errors surfaced at the engine's I/O
// boundaries. Cell parsing and row normalization never produce errors; they
// fall back to safe defaults instead.
package engineerror

import "fmt"

// SourceError reports a failed batch fetch from the record source. The
// caller keeps its last-good snapshot when it sees one.
type SourceError struct {
	Endpoint string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source fetch from %s failed: %v", e.Endpoint, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// TableError reports source data that could not be reduced to a raw table
// (malformed CSV quoting, unexpected JSON shape).
type TableError struct {
	Shape  string
	Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("cannot read %s source: %s", e.Shape, e.Reason)
}

// WriteError reports a create/update/cancel payload rejected by the write
// transport. The engine never applies a write locally before confirmation,
// so a WriteError means the snapshot is unchanged.
type WriteError struct {
	Action     string
	ID         string
	StatusCode int
	Err        error
}

func (e *WriteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("write action %q for id %q rejected with status %d: %v",
			e.Action, e.ID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("write action %q for id %q failed: %v", e.Action, e.ID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
