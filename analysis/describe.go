/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// PatientSummary describes the dataset as a whole.
type PatientSummary struct {
	UniquePatients    int
	MinAge            int
	MaxAge            int
	MeanAge           float64
	TotalExaminations int
	TotalColumns      int
}

// Summarize counts distinct patients and examinations and summarises ages.
// TotalColumns is the number of required columns; providers that know about
// extra columns may overwrite it.
func Summarize(records []PatientRecord) (PatientSummary, error) {
	if len(records) == 0 {
		return PatientSummary{}, ErrEmptyDataset
	}
	if err := validateAll(records); err != nil {
		return PatientSummary{}, err
	}

	ids := make(map[string]struct{})
	summary := PatientSummary{
		MinAge:            records[0].Age,
		MaxAge:            records[0].Age,
		TotalExaminations: len(records),
		TotalColumns:      len(RequiredColumns()),
	}

	ageSum := 0
	for _, r := range records {
		ids[r.PatientID] = struct{}{}
		summary.MinAge = min(summary.MinAge, r.Age)
		summary.MaxAge = max(summary.MaxAge, r.Age)
		ageSum += r.Age
	}

	summary.UniquePatients = len(ids)
	summary.MeanAge = float64(ageSum) / float64(len(records))

	return summary, nil
}

// IndicatorDescription is the descriptive summary of one indicator column.
type IndicatorDescription struct {
	Indicator Indicator
	Count     int
	Mean      float64
	StdDev    float64
	Min       float64
	Q1        float64
	Median    float64
	Q3        float64
	Max       float64
}

// Describe returns count, mean, standard deviation, minimum, quartiles and
// maximum for every indicator, in reporting order.
func Describe(records []PatientRecord) ([]IndicatorDescription, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := validateAll(records); err != nil {
		return nil, err
	}

	out := make([]IndicatorDescription, 0, 3)
	for _, ind := range Indicators() {
		values := column(records, ind)
		sorted := slices.Clone(values)
		slices.Sort(sorted)

		st := indicatorStats(values)
		out = append(out, IndicatorDescription{
			Indicator: ind,
			Count:     len(values),
			Mean:      st.Mean,
			StdDev:    st.StdDev,
			Min:       floats.Min(values),
			Q1:        quantile(sorted, 0.25),
			Median:    quantile(sorted, 0.5),
			Q3:        quantile(sorted, 0.75),
			Max:       floats.Max(values),
		})
	}

	return out, nil
}

// quantile linearly interpolates between the two closest ranks of a sorted,
// non-empty slice.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := p * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	weight := pos - float64(lower)

	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
