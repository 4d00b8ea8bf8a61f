/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	// ErrDatabaseURLRequired is returned when no connection string is given.
	ErrDatabaseURLRequired = errors.New("database URL is required")
	// ErrDatabaseNameNotSpecified is returned when the connection string has no database.
	ErrDatabaseNameNotSpecified = errors.New("database name not specified in connection string")
	// ErrDatabaseConnectionNotInitialized is returned when Init has not run.
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
)
