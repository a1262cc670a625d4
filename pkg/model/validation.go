package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// FieldError describes a single invalid form field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries every problem found in a request so the form can show them at once.
type ValidationError struct {
	errs *multierror.Error
}

// NewValidationError returns nil when there are no field errors.
func NewValidationError(errs ...FieldError) *ValidationError {
	if len(errs) == 0 {
		return nil
	}

	var result *multierror.Error
	for _, err := range errs {
		result = multierror.Append(result, err)
	}
	return &ValidationError{errs: result}
}

func (v *ValidationError) Error() string {
	return v.errs.Error()
}

func (v *ValidationError) Unwrap() error {
	return v.errs
}

// Fields maps form field names to their error message.
func (v *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(v.errs.Errors))
	for _, err := range v.errs.Errors {
		if fe, ok := err.(FieldError); ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}
