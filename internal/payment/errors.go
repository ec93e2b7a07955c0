package payment

import "fmt"

// InvalidPlanError indicates a plan that cannot be purchased.
type InvalidPlanError struct {
	Plan   string
	Reason string
}

func (e *InvalidPlanError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid plan %q: %s", e.Plan, e.Reason)
	}
	return fmt.Sprintf("invalid plan %q", e.Plan)
}

// DeclinedError indicates the provider reported a non-paid status.
type DeclinedError struct {
	Status string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment not completed: status %q", e.Status)
}

// CallbackError indicates a malformed provider callback.
type CallbackError struct {
	Message string
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("invalid payment callback: %s", e.Message)
}
