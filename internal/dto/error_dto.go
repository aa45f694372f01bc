package dto

import (
	"fmt"
	"sort"
	"strings"
)

// FetchFailureError is the single terminal error for a failed bulk load.
type FetchFailureError struct {
	Resource string
	Err      error
}

func (e *FetchFailureError) Error() string {
	return fmt.Sprintf("failed to load %s", e.Resource)
}

func (e *FetchFailureError) Unwrap() error { return e.Err }

// ValidationError reports missing or malformed request fields.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

type MismatchError struct {
	Message string
}

func (e *MismatchError) Error() string { return e.Message }

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// ConflictError is returned when a unique value such as an email is taken.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
