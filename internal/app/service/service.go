// Package service glues forms, the API client and the geo helpers into the
// operations the dashboard pages perform.
package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/form"
)

// ValidationError carries per-field messages from either local form
// validation or a backend rejection.
type ValidationError struct {
	Fields form.Errors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// asValidationError converts a backend rejection carrying field errors into
// a ValidationError so forms can render messages next to their fields.
// Errors without field detail pass through unchanged.
func asValidationError(err error) error {
	fieldErrors := api.FieldErrors(err)
	if len(fieldErrors) == 0 {
		return err
	}
	fields := form.Errors{}
	for field, messages := range fieldErrors {
		if len(messages) > 0 {
			fields[field] = messages[0]
		}
	}
	return &ValidationError{Fields: fields}
}
