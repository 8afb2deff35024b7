package domain

import (
	"errors"
	"fmt"
)

// Error categories. Callers test with errors.Is against these.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// categorized carries a human message while unwrapping to a category sentinel.
type categorized struct {
	msg      string
	category error
}

func (e *categorized) Error() string { return e.msg }
func (e *categorized) Unwrap() error { return e.category }

var (
	ErrProjectNotFound    = categorize("project not found", ErrNotFound)
	ErrCalendarNotFound   = categorize("calendar not found", ErrNotFound)
	ErrVersionNotFound    = categorize("version not found", ErrNotFound)
	ErrRuleNotFound       = categorize("rule not found", ErrNotFound)
	ErrDefinitionNotFound = categorize("definition not found", ErrNotFound)
	ErrAccessNotFound     = categorize("access code or token not found", ErrNotFound)

	ErrDayNotFound      = categorize("day not found", ErrNotFound)
	ErrNotShootDay      = categorize("can only move shoot days", ErrValidation)
	ErrNonWorkingTarget = categorize("cannot move to non-working day", ErrValidation)
	ErrUnsupportedMode  = categorize("unsupported move mode", ErrValidation)
	ErrSameDay          = categorize("cannot move a day onto itself", ErrValidation)

	ErrDuplicateVersion   = categorize("version number already exists for this project", ErrValidation)
	ErrVersionUnpublished = categorize("version is not published", ErrForbidden)
)

func categorize(msg string, category error) error {
	return &categorized{msg: msg, category: category}
}

// Validationf builds an error in the ErrValidation category.
func Validationf(format string, args ...any) error {
	return &categorized{msg: fmt.Sprintf(format, args...), category: ErrValidation}
}
