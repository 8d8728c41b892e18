package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// SourceError is returned when a table cannot be opened or parsed
type SourceError struct {
	Source string // path or name of the table
	Op     string // "open", "read"
	Line   int    // line where parsing failed (0 if unknown)
	Err    error
}

func (e *SourceError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("source %s", e.Source))

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Op))
	}

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("at line %d", e.Line))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, " - ")
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// KeyNotFoundError reports a lookup key with no entries in an index
type KeyNotFoundError struct {
	Index string // name of the index, usually the source table
	Key   string
}

func (e *KeyNotFoundError) Error() string {
	if e.Index == "" {
		return fmt.Sprintf("key %q not found", e.Key)
	}
	return fmt.Sprintf("key %q not found - index %s", e.Key, e.Index)
}

// InvalidIndexError reports a malformed column index configuration
type InvalidIndexError struct {
	Role     string // "key" or "value"
	Position int    // position inside the configured list (-1 if the list itself is bad)
	Value    int    // offending column index
	Reason   string
}

func (e *InvalidIndexError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("invalid %s field index", e.Role))

	if e.Position >= 0 {
		parts = append(parts, fmt.Sprintf("value=%d at position %d", e.Value, e.Position))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewKeyNotFound(index, key string) *KeyNotFoundError {
	return &KeyNotFoundError{
		Index: index,
		Key:   key,
	}
}

func NewNegativeIndex(role string, position, value int) *InvalidIndexError {
	return &InvalidIndexError{
		Role:     role,
		Position: position,
		Value:    value,
		Reason:   "column index must not be negative",
	}
}

func NewEmptyIndexList(role string) *InvalidIndexError {
	return &InvalidIndexError{
		Role:     role,
		Position: -1,
		Reason:   "at least one column index is required",
	}
}

// IsKeyNotFound reports whether err (or anything it wraps) is a KeyNotFoundError
func IsKeyNotFound(err error) bool {
	var target *KeyNotFoundError
	return stderrors.As(err, &target)
}

// IsInvalidIndex reports whether err (or anything it wraps) is an InvalidIndexError
func IsInvalidIndex(err error) bool {
	var target *InvalidIndexError
	return stderrors.As(err, &target)
}
