package transport

import "github.com/frahmantamala/budget-tracker/internal"

// Result is what a use case hands to presentation: a success flag, the
// operation label, and either the payload or the error message.
type Result struct {
	Success   bool   `json:"success"`
	Operation string `json:"operation"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

func NewResult(operation string, data any, err error) Result {
	if err != nil {
		return Failure(operation, err)
	}
	return Result{Success: true, Operation: operation, Data: data}
}

// Failure reports err under operation. A validation error lists every
// failing field, not only the first.
func Failure(operation string, err error) Result {
	message := err.Error()
	if appErr, ok := err.(*internal.AppError); ok && appErr.Cause == nil {
		message = appErr.GetDetailedMessage()
	}
	return Result{Success: false, Operation: operation, Error: message}
}
