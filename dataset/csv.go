/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/humaidq/checkup/analysis"
)

// DefaultDataFile is the CSV read when no path is configured.
const DefaultDataFile = "data_pasien.csv"

// Table is a loaded dataset: the header as read, and the parsed rows.
type Table struct {
	Columns []string
	Records []analysis.PatientRecord
}

// Source produces a Table. Implementations are called at most once per cache
// fill.
type Source interface {
	Load(ctx context.Context) (Table, error)
}

// CSVSource reads checkups from a comma-separated file with a header row.
type CSVSource struct {
	Path string
}

// Load opens and parses the file.
func (s CSVSource) Load(ctx context.Context) (Table, error) {
	path := s.Path
	if path == "" {
		path = DefaultDataFile
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, fmt.Errorf("%w: %s", ErrDataFileNotFound, path)
		}
		return Table{}, fmt.Errorf("failed to open data file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn("Failed to close data file", "path", path, "error", err)
		}
	}()

	table, err := ReadCSV(ctx, file)
	if err != nil {
		return Table{}, err
	}

	logger.Info("Loaded data file", "path", path, "rows", len(table.Records), "columns", len(table.Columns))

	return table, nil
}

// ReadCSV parses checkup rows from r. Header names are matched after trimming
// whitespace and lowercasing; extra columns are ignored. A header lacking any
// required column yields a *analysis.SchemaError listing all missing columns.
func ReadCSV(ctx context.Context, r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, ErrEmptyDataFile
		}
		return Table{}, fmt.Errorf("failed to read header: %w", err)
	}

	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	colMap := normalizeHeaders(headers)

	var missing []string
	for _, col := range analysis.RequiredColumns() {
		if _, ok := colMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Table{}, &analysis.SchemaError{Missing: missing}
	}

	table := Table{Columns: headers}
	row := 0

	for {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}

		fields, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Table{}, fmt.Errorf("failed to parse CSV: %w", err)
		}

		if isBlank(fields) {
			continue
		}
		row++

		rec, err := parseRecord(colMap, fields, row)
		if err != nil {
			return Table{}, err
		}

		table.Records = append(table.Records, rec)
	}

	return table, nil
}

func normalizeHeaders(headers []string) map[string]int {
	result := make(map[string]int, len(headers))
	for idx, header := range headers {
		normalized := strings.ToLower(strings.TrimSpace(header))
		if _, exists := result[normalized]; !exists {
			result[normalized] = idx
		}
	}
	return result
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func getValue(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

func parseRecord(colMap map[string]int, fields []string, row int) (analysis.PatientRecord, error) {
	get := func(col string) string { return getValue(fields, colMap[col]) }

	rec := analysis.PatientRecord{
		PatientID: get(analysis.ColumnPatientID),
		Name:      get(analysis.ColumnName),
		Sex:       get(analysis.ColumnSex),
		VisitDate: get(analysis.ColumnVisitDate),
	}

	age, err := parseAge(get(analysis.ColumnAge))
	if err != nil {
		return rec, &analysis.SchemaError{Row: row, Field: analysis.ColumnAge, Reason: err.Error()}
	}
	rec.Age = age

	numeric := []struct {
		col string
		dst *float64
	}{
		{analysis.ColumnBloodPressure, &rec.BloodPressure},
		{analysis.ColumnBloodSugar, &rec.BloodSugar},
		{analysis.ColumnCholesterol, &rec.Cholesterol},
	}
	for _, n := range numeric {
		v, err := parseNumber(get(n.col))
		if err != nil {
			return rec, &analysis.SchemaError{Row: row, Field: n.col, Reason: err.Error()}
		}
		*n.dst = v
	}

	if err := rec.Validate(row); err != nil {
		return rec, err
	}

	return rec, nil
}

func parseNumber(value string) (float64, error) {
	if value == "" {
		return 0, errEmptyValue
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}

	return v, nil
}

// maxAge bounds parsed ages; larger values are rejected as malformed.
const maxAge = 150

// parseAge accepts integers and integral decimals such as "45.0" up to maxAge.
func parseAge(value string) (int, error) {
	f, err := parseNumber(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a whole number: %q", value)
	}
	if f > maxAge {
		return 0, fmt.Errorf("%w: %q", errAgeOutOfRange, value)
	}

	return int(f), nil
}
