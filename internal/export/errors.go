package export

import "fmt"

// ExportError represents a capture failure; the caller's document state is
// untouched and no partial file is produced.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// AnchorNotFoundError indicates the capture anchor is absent from the
// document. This is fatal to the export; there is no retry.
type AnchorNotFoundError struct {
	AnchorID string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("export anchor not found: #%s", e.AnchorID)
}

// BusyError indicates an export is already in flight on this Exporter.
type BusyError struct{}

func (e *BusyError) Error() string {
	return "an export is already in progress"
}
