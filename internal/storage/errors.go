package storage

import "fmt"

// StoreError indicates a storage operation failed.
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("storage: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
