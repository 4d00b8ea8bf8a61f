/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package dataset

import "errors"

var (
	// ErrDataFileNotFound is returned when the CSV path does not exist.
	ErrDataFileNotFound = errors.New("data file not found")
	// ErrEmptyDataFile is returned when the CSV file has no header row.
	ErrEmptyDataFile = errors.New("data file is empty")

	errNoSource   = errors.New("dataset source is not configured")
	errEmptyValue = errors.New("value is empty")

	errAgeOutOfRange = errors.New("age out of range")
)
