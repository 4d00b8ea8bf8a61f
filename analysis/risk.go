/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "math"

// RiskLevel is the ordinal risk category of an indicator or a whole record.
// Levels compare with the usual integer operators: Normal < Warning < High.
type RiskLevel int

// RiskLevel values in ascending order of severity.
const (
	Normal RiskLevel = iota
	Warning
	High
)

// UnknownRisk is returned where a level is asked for an unknown indicator.
const UnknownRisk RiskLevel = -1

// RiskLevels returns every level in ascending order.
func RiskLevels() []RiskLevel {
	return []RiskLevel{Normal, Warning, High}
}

func (r RiskLevel) String() string {
	switch r {
	case Normal:
		return "Normal"
	case Warning:
		return "Warning"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// Indicator identifies one of the three tracked health metrics.
type Indicator int

// Indicator values in reporting order.
const (
	BloodPressure Indicator = iota
	BloodSugar
	Cholesterol
)

// Indicators returns the tracked indicators in reporting order.
func Indicators() []Indicator {
	return []Indicator{BloodPressure, BloodSugar, Cholesterol}
}

// ThresholdTable holds the two cut points of an indicator.
//
// Values below NormalMax are Normal, values from NormalMax up to and including
// HighMinExclusive are Warning, and values strictly above HighMinExclusive are
// High.
type ThresholdTable struct {
	NormalMax        float64
	HighMinExclusive float64
}

// IndicatorDefinition describes an indicator: its input column, display
// label, unit, and thresholds.
type IndicatorDefinition struct {
	Indicator  Indicator
	Column     string
	Label      string
	Unit       string
	Thresholds ThresholdTable
}

var indicatorDefinitions = [...]IndicatorDefinition{
	BloodPressure: {
		Indicator: BloodPressure, Column: ColumnBloodPressure,
		Label: "Blood Pressure", Unit: "mmHg",
		Thresholds: ThresholdTable{NormalMax: 120, HighMinExclusive: 140},
	},
	BloodSugar: {
		Indicator: BloodSugar, Column: ColumnBloodSugar,
		Label: "Blood Sugar", Unit: "mg/dL",
		Thresholds: ThresholdTable{NormalMax: 100, HighMinExclusive: 125},
	},
	Cholesterol: {
		Indicator: Cholesterol, Column: ColumnCholesterol,
		Label: "Cholesterol", Unit: "mg/dL",
		Thresholds: ThresholdTable{NormalMax: 200, HighMinExclusive: 240},
	},
}

// Definition returns the fixed definition of the indicator. The returned value
// is a copy; callers cannot change the process-wide thresholds.
func (i Indicator) Definition() (IndicatorDefinition, error) {
	if i < BloodPressure || i > Cholesterol {
		return IndicatorDefinition{}, ErrUnknownIndicator
	}
	return indicatorDefinitions[i], nil
}

func (i Indicator) String() string {
	def, err := i.Definition()
	if err != nil {
		return "Unknown"
	}
	return def.Label
}

// Classify maps a value to the indicator's risk level.
func (i Indicator) Classify(value float64) (RiskLevel, error) {
	def, err := i.Definition()
	if err != nil {
		return Normal, err
	}

	level, err := def.Thresholds.Classify(value)
	if err != nil {
		return Normal, &InvalidValueError{Field: def.Column, Value: value}
	}

	return level, nil
}

// Value extracts the indicator's reading from a record, or NaN for an
// unknown indicator.
func (i Indicator) Value(r PatientRecord) float64 {
	return byIndicator(i, r.BloodPressure, r.BloodSugar, r.Cholesterol, math.NaN())
}

// byIndicator picks the value belonging to i. It is the one place that maps
// an Indicator onto per-indicator fields.
func byIndicator[T any](i Indicator, bloodPressure, bloodSugar, cholesterol, unknown T) T {
	switch i {
	case BloodPressure:
		return bloodPressure
	case BloodSugar:
		return bloodSugar
	case Cholesterol:
		return cholesterol
	default:
		return unknown
	}
}

// Classify maps a value to a risk level. The lower cut point belongs to the
// Warning band and the upper cut point does too; only values strictly above
// HighMinExclusive are High. NaN, infinities and negative values are rejected.
func (t ThresholdTable) Classify(value float64) (RiskLevel, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Normal, &InvalidValueError{Value: value}
	}

	switch {
	case value > t.HighMinExclusive:
		return High, nil
	case value >= t.NormalMax:
		return Warning, nil
	default:
		return Normal, nil
	}
}

// FinalCategory combines three per-indicator levels into the record's overall
// level: the maximum of the three.
func FinalCategory(bloodPressure, bloodSugar, cholesterol RiskLevel) RiskLevel {
	return max(bloodPressure, bloodSugar, cholesterol)
}
