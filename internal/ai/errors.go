package ai

import "fmt"

// GenerationError indicates a content-generation operation failed in a way
// the caller must handle rather than fall back from.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ai: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ai: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
