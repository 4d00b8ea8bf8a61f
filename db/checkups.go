/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/humaidq/checkup/analysis"
	"github.com/humaidq/checkup/dataset"
)

// checkupColumns are the columns written by ImportCheckups, in copy order.
var checkupColumns = []string{
	"id", "import_id",
	analysis.ColumnPatientID, analysis.ColumnName, analysis.ColumnAge, analysis.ColumnSex,
	analysis.ColumnVisitDate, analysis.ColumnBloodPressure, analysis.ColumnBloodSugar, analysis.ColumnCholesterol,
}

// ImportResult describes one completed import.
type ImportResult struct {
	ImportID uuid.UUID
	Rows     int64
}

// checkupRow flattens a record into checkupColumns order.
func checkupRow(importID uuid.UUID, r analysis.PatientRecord) []any {
	return []any{
		uuid.New(), importID,
		r.PatientID, r.Name, r.Age, r.Sex,
		r.VisitDate, r.BloodPressure, r.BloodSugar, r.Cholesterol,
	}
}

// ImportCheckups stores raw checkup rows in one transaction. When replace is
// set, existing rows are removed first. Every row is validated before
// anything is written.
func ImportCheckups(ctx context.Context, records []analysis.PatientRecord, replace bool) (*ImportResult, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	for i, r := range records {
		if err := r.Validate(i + 1); err != nil {
			return nil, err
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("Failed to rollback checkup import", "error", err)
		}
	}()

	if replace {
		if _, err := tx.Exec(ctx, `DELETE FROM checkups`); err != nil {
			return nil, fmt.Errorf("failed to clear checkups: %w", err)
		}
	}

	importID := uuid.New()

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"checkups"}, checkupColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return checkupRow(importID, records[i]), nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to copy checkups: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit checkup import: %w", err)
	}

	logger.Info("Imported checkups", "import_id", importID, "rows", n, "replace", replace)

	return &ImportResult{ImportID: importID, Rows: n}, nil
}

// ListCheckups returns every stored checkup in insertion order.
func ListCheckups(ctx context.Context) ([]analysis.PatientRecord, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id_pasien, nama, umur, jenis_kelamin, tanggal_periksa,
		       tekanan_darah, gula_darah, kolesterol
		FROM checkups
		ORDER BY seq ASC
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkups: %w", err)
	}
	defer rows.Close()

	var records []analysis.PatientRecord
	for rows.Next() {
		var r analysis.PatientRecord
		err := rows.Scan(
			&r.PatientID, &r.Name, &r.Age, &r.Sex, &r.VisitDate,
			&r.BloodPressure, &r.BloodSugar, &r.Cholesterol,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkup: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checkups: %w", err)
	}

	return records, nil
}

// CountCheckups returns the number of stored rows.
func CountCheckups(ctx context.Context) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var n int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM checkups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count checkups: %w", err)
	}

	return n, nil
}

// Source loads the stored checkups as a dataset table.
type Source struct{}

var _ dataset.Source = Source{}

// Load implements dataset.Source.
func (Source) Load(ctx context.Context) (dataset.Table, error) {
	records, err := ListCheckups(ctx)
	if err != nil {
		return dataset.Table{}, err
	}

	logger.Info("Loaded checkups from database", "rows", len(records))

	return dataset.Table{Columns: analysis.RequiredColumns(), Records: records}, nil
}
