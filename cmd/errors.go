/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired   = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errMigrationNameRequired = errors.New("migration name is required")
	errUnknownSource         = errors.New("source must be one of: " + sourceCSV + ", " + sourcePostgres)
	errUnknownChart          = errors.New("unknown chart kind")
	errChartKindRequired     = errors.New("chart kind is required")
)
