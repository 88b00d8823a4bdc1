package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeRejected   ErrorType = "REJECTED"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal   ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount     ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidMonth      ErrorCode = "INVALID_MONTH"
	ErrCodeInvalidIdentifier ErrorCode = "INVALID_IDENTIFIER"
	ErrCodeInvalidDate       ErrorCode = "INVALID_DATE"

	ErrCodeCategoryNotFound ErrorCode = "CATEGORY_NOT_FOUND"
	ErrCodeItemExists       ErrorCode = "ITEM_EXISTS"
	ErrCodeItemNotFound     ErrorCode = "ITEM_NOT_FOUND"

	ErrCodeTransactionExists         ErrorCode = "TRANSACTION_EXISTS"
	ErrCodeTransactionNotFound       ErrorCode = "TRANSACTION_NOT_FOUND"
	ErrCodeTransactionUpdateRejected ErrorCode = "TRANSACTION_UPDATE_REJECTED"

	ErrCodeImportFailed      ErrorCode = "IMPORT_FAILED"
	ErrCodeDivisionUndefined ErrorCode = "DIVISION_UNDEFINED"
	ErrCodeStorageFailed     ErrorCode = "STORAGE_FAILED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {

			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError carrying the same code, so the
// package level sentinels below can be used with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewRejectedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeRejected,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeStorageFailed,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewExternalError(message string, code ErrorCode, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Sentinels for errors.Is. The constructors in the domain packages build
// errors with the same codes and a message naming the offending key.
var (
	ErrCategoryNotFound          = NewNotFoundError("budget category not found", ErrCodeCategoryNotFound)
	ErrItemExists                = NewConflictError("budget item already exists", ErrCodeItemExists)
	ErrItemNotFound              = NewNotFoundError("budget item not found", ErrCodeItemNotFound)
	ErrTransactionExists         = NewConflictError("transaction already exists", ErrCodeTransactionExists)
	ErrTransactionNotFound       = NewNotFoundError("transaction not found", ErrCodeTransactionNotFound)
	ErrTransactionUpdateRejected = NewRejectedError("transaction update rejected", ErrCodeTransactionUpdateRejected)
	ErrImportFailed              = NewExternalError("import failed", ErrCodeImportFailed, nil)
	ErrDivisionUndefined         = NewValidationError("division by zero total", ErrCodeDivisionUndefined)
	ErrInvalidMonth              = NewValidationError("month must be between 1 and 12", ErrCodeInvalidMonth)
	ErrInvalidAmount             = NewValidationError("invalid amount", ErrCodeInvalidAmount)
	ErrInvalidIdentifier         = NewValidationError("invalid identifier", ErrCodeInvalidIdentifier)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
