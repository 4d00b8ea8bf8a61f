/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "math"

// Input column names. These are the data contract with dataset providers and
// are kept verbatim.
const (
	ColumnPatientID     = "id_pasien"
	ColumnName          = "nama"
	ColumnAge           = "umur"
	ColumnSex           = "jenis_kelamin"
	ColumnVisitDate     = "tanggal_periksa"
	ColumnBloodPressure = "tekanan_darah"
	ColumnBloodSugar    = "gula_darah"
	ColumnCholesterol   = "kolesterol"
)

// RequiredColumns returns the required input columns in canonical order.
func RequiredColumns() []string {
	return []string{
		ColumnPatientID, ColumnName, ColumnAge, ColumnSex,
		ColumnVisitDate, ColumnBloodPressure, ColumnBloodSugar, ColumnCholesterol,
	}
}

// PatientRecord is one checkup row. PatientID is not unique: a patient may
// have several visits. VisitDate is an ISO date string used as-is for sorting
// and grouping.
type PatientRecord struct {
	PatientID     string
	Name          string
	Age           int
	Sex           string
	VisitDate     string
	BloodPressure float64
	BloodSugar    float64
	Cholesterol   float64
}

// ClassifiedRecord is a PatientRecord with its per-indicator risk levels and
// the overall level derived from them.
type ClassifiedRecord struct {
	PatientRecord

	BloodPressureRisk RiskLevel
	BloodSugarRisk    RiskLevel
	CholesterolRisk   RiskLevel
	FinalRisk         RiskLevel
}

// Risk returns the record's level for a single indicator. An unknown
// indicator yields UnknownRisk.
func (c ClassifiedRecord) Risk(i Indicator) RiskLevel {
	return byIndicator(i, c.BloodPressureRisk, c.BloodSugarRisk, c.CholesterolRisk, UnknownRisk)
}

// Validate checks that the identifying fields are present and that age and
// indicator readings are finite and non-negative. row is used only for error
// messages.
func (r PatientRecord) Validate(row int) error {
	textFields := []struct {
		column string
		value  string
	}{
		{ColumnPatientID, r.PatientID},
		{ColumnName, r.Name},
		{ColumnVisitDate, r.VisitDate},
	}
	for _, f := range textFields {
		if f.value == "" {
			return &SchemaError{Row: row, Field: f.column, Reason: "value is empty"}
		}
	}

	if r.Age < 0 {
		return &InvalidValueError{Field: ColumnAge, Value: float64(r.Age), Row: row}
	}

	for _, ind := range Indicators() {
		v := ind.Value(r)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return &InvalidValueError{Field: indicatorDefinitions[ind].Column, Value: v, Row: row}
		}
	}

	return nil
}
