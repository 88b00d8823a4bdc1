package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	errors "github.com/frahmantamala/budget-tracker/internal"
)

const (
	MaxNameLength = 100
	MaxNoteLength = 500
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if v == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case *string:
			if v == nil || *v == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if utf8.RuneCountInString(v) > max {
				message := fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max)
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every field validator and folds the failures into one
// AppError whose details list each field error.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if details, ok := appErr.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
				continue
			}
			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: appErr.Message,
				Code:    string(appErr.Code),
			})
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

// NotBlank rejects a value made only of whitespace. The empty string is
// left to Required.
func (fv *FieldValidator) NotBlank() *FieldValidator {
	return fv.Custom(func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok && v != "" && strings.TrimSpace(v) == "" {
			return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s must not be blank", fv.FieldName), errors.ErrCodeValidationFailed)
		}
		return nil
	})
}

// ValidateItem checks the free text fields of a budget item. Nil fields
// are not being set and are skipped.
func ValidateItem(name, note *string) *errors.AppError {
	validator := NewValidator()
	if name != nil {
		validator.Field("name", *name).
			Required().
			NotBlank().
			MaxLength(MaxNameLength)
	}
	if note != nil {
		validator.Field("note", *note).
			MaxLength(MaxNoteLength)
	}
	return validator.Validate()
}

// ValidateProject keeps a project name usable as a single directory name.
func ValidateProject(name string) *errors.AppError {
	validator := NewValidator()
	validator.Field("project", name).
		Required().
		NotBlank().
		MaxLength(MaxNameLength).
		Custom(func(value interface{}) *errors.AppError {
			v := value.(string)
			if v == "." || v == ".." || strings.ContainsAny(v, `/\`) {
				return errors.NewValidationFieldError("project", "project must not contain path separators: "+v, errors.ErrCodeValidationFailed)
			}
			return nil
		})
	return validator.Validate()
}
