/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDataset is returned when an aggregate is requested over zero rows.
	ErrEmptyDataset = errors.New("dataset is empty")
	// ErrSchema is the target for errors.Is on every *SchemaError.
	ErrSchema = errors.New("schema error")
	// ErrInvalidValue is the target for errors.Is on every *InvalidValueError.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidLimit is returned when a ranking is asked for a non-positive count.
	ErrInvalidLimit = errors.New("limit must be positive")
	// ErrUnknownIndicator is returned for an Indicator outside the fixed three.
	ErrUnknownIndicator = errors.New("unknown indicator")
)

// SchemaError reports a missing or malformed required field.
//
// Missing is set when whole columns are absent from a table header. Row and
// Field locate a single malformed cell; Row is 1-based over data rows and zero
// when not applicable.
type SchemaError struct {
	Missing []string
	Row     int
	Field   string
	Reason  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required columns: " + strings.Join(e.Missing, ", ")
	}

	msg := "malformed field " + e.Field
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// InvalidValueError reports an indicator or age value outside its domain.
type InvalidValueError struct {
	Field string
	Value float64
	Row   int
}

func (e *InvalidValueError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: invalid %s value %v", e.Row, e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s value %v", e.Field, e.Value)
}

func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }
