/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// DefaultTopPatients is the number of patients TopRiskPatients callers show
// unless told otherwise.
const DefaultTopPatients = 5

// ========== Classification ==========

// AddIndicatorCategories classifies each record's three indicators and derives
// its final category. Output order matches input order and the input slice is
// not modified.
func AddIndicatorCategories(records []PatientRecord) ([]ClassifiedRecord, error) {
	if err := validateAll(records); err != nil {
		return nil, err
	}

	classified := make([]ClassifiedRecord, 0, len(records))

	for _, r := range records {
		c := ClassifiedRecord{PatientRecord: r}

		var err error
		if c.BloodPressureRisk, err = BloodPressure.Classify(r.BloodPressure); err != nil {
			return nil, err
		}
		if c.BloodSugarRisk, err = BloodSugar.Classify(r.BloodSugar); err != nil {
			return nil, err
		}
		if c.CholesterolRisk, err = Cholesterol.Classify(r.Cholesterol); err != nil {
			return nil, err
		}

		c.FinalRisk = FinalCategory(c.BloodPressureRisk, c.BloodSugarRisk, c.CholesterolRisk)
		classified = append(classified, c)
	}

	return classified, nil
}

// validateAll checks every row before any aggregate is computed. Rows are
// numbered from 1.
func validateAll(records []PatientRecord) error {
	for i, r := range records {
		if err := r.Validate(i + 1); err != nil {
			return err
		}
	}
	return nil
}

// ========== Statistics ==========

// IndicatorStats holds the mean and sample standard deviation of one indicator.
type IndicatorStats struct {
	Mean   float64
	StdDev float64
}

// Statistics holds IndicatorStats for each indicator.
type Statistics struct {
	BloodPressure IndicatorStats
	BloodSugar    IndicatorStats
	Cholesterol   IndicatorStats
}

// For returns the stats of a single indicator.
// An unknown indicator yields NaN for both fields.
func (s Statistics) For(i Indicator) IndicatorStats {
	unknown := IndicatorStats{Mean: math.NaN(), StdDev: math.NaN()}
	return byIndicator(i, s.BloodPressure, s.BloodSugar, s.Cholesterol, unknown)
}

// ComputeStatistics returns the mean and sample standard deviation (N-1
// denominator) of each indicator. With a single row the standard deviation is
// NaN.
func ComputeStatistics(records []PatientRecord) (Statistics, error) {
	if len(records) == 0 {
		return Statistics{}, ErrEmptyDataset
	}
	if err := validateAll(records); err != nil {
		return Statistics{}, err
	}

	return Statistics{
		BloodPressure: indicatorStats(column(records, BloodPressure)),
		BloodSugar:    indicatorStats(column(records, BloodSugar)),
		Cholesterol:   indicatorStats(column(records, Cholesterol)),
	}, nil
}

func indicatorStats(values []float64) IndicatorStats {
	if len(values) < 2 {
		return IndicatorStats{Mean: stat.Mean(values, nil), StdDev: math.NaN()}
	}

	mean, std := stat.MeanStdDev(values, nil)

	return IndicatorStats{Mean: mean, StdDev: std}
}

func column(records []PatientRecord, i Indicator) []float64 {
	values := make([]float64, len(records))
	for n, r := range records {
		values[n] = i.Value(r)
	}
	return values
}

// ========== Distributions ==========

// CategoryCounts maps each risk level to a count. Every level is present, with
// zero for levels nobody falls into.
type CategoryCounts map[RiskLevel]int

func newCategoryCounts() CategoryCounts {
	counts := make(CategoryCounts, 3)
	for _, level := range RiskLevels() {
		counts[level] = 0
	}
	return counts
}

// Total returns the sum of all counts.
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// RiskDistribution counts distinct patients per final category. A patient is
// identified by PatientID; a patient whose visits land in different final
// categories is counted once in each of them.
func RiskDistribution(classified []ClassifiedRecord) (CategoryCounts, error) {
	if len(classified) == 0 {
		return nil, ErrEmptyDataset
	}

	seen := make(map[RiskLevel]map[string]struct{}, 3)
	for _, c := range classified {
		ids, ok := seen[c.FinalRisk]
		if !ok {
			ids = make(map[string]struct{})
			seen[c.FinalRisk] = ids
		}
		ids[c.PatientID] = struct{}{}
	}

	counts := newCategoryCounts()
	for level, ids := range seen {
		counts[level] = len(ids)
	}

	return counts, nil
}

// IndicatorDistribution counts rows (visits, not distinct patients) per risk
// level of a single indicator.
func IndicatorDistribution(classified []ClassifiedRecord, i Indicator) (CategoryCounts, error) {
	if _, err := i.Definition(); err != nil {
		return nil, err
	}
	if len(classified) == 0 {
		return nil, ErrEmptyDataset
	}

	counts := newCategoryCounts()
	for _, c := range classified {
		counts[c.Risk(i)]++
	}

	return counts, nil
}

// ========== Grouped Averages ==========

// DailyAverage is the mean of each indicator over the rows of one visit date.
type DailyAverage struct {
	Date          string
	Visits        int
	BloodPressure float64
	BloodSugar    float64
	Cholesterol   float64
}

// Value returns the daily mean of a single indicator, or NaN for an unknown one.
func (d DailyAverage) Value(i Indicator) float64 {
	return byIndicator(i, d.BloodPressure, d.BloodSugar, d.Cholesterol, math.NaN())
}

// RankedPatient is a patient's mean indicators across all visits.
type RankedPatient struct {
	Name          string
	Visits        int
	BloodPressure float64
	BloodSugar    float64
	Cholesterol   float64
}

// Value returns the patient's mean for one indicator, or NaN for an unknown one.
func (p RankedPatient) Value(i Indicator) float64 {
	return byIndicator(i, p.BloodPressure, p.BloodSugar, p.Cholesterol, math.NaN())
}

type groupSums struct {
	key             string
	count           int
	bp, sugar, chol float64
}

// groupMeans sums indicators by key. Groups are returned in order of first
// appearance.
func groupMeans(records []PatientRecord, key func(PatientRecord) string) []groupSums {
	index := make(map[string]int)
	var groups []groupSums

	for _, r := range records {
		k := key(r)
		n, ok := index[k]
		if !ok {
			n = len(groups)
			index[k] = n
			groups = append(groups, groupSums{key: k})
		}

		g := &groups[n]
		g.count++
		g.bp += r.BloodPressure
		g.sugar += r.BloodSugar
		g.chol += r.Cholesterol
	}

	return groups
}

// DailyAverages groups rows by exact VisitDate string and returns the mean of
// each indicator per date, ascending by date string.
func DailyAverages(records []PatientRecord) ([]DailyAverage, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := validateAll(records); err != nil {
		return nil, err
	}

	groups := groupMeans(records, func(r PatientRecord) string { return r.VisitDate })

	daily := make([]DailyAverage, 0, len(groups))
	for _, g := range groups {
		n := float64(g.count)
		daily = append(daily, DailyAverage{
			Date:          g.key,
			Visits:        g.count,
			BloodPressure: g.bp / n,
			BloodSugar:    g.sugar / n,
			Cholesterol:   g.chol / n,
		})
	}

	slices.SortFunc(daily, func(a, b DailyAverage) int {
		return cmp.Compare(a.Date, b.Date)
	})

	return daily, nil
}

// TopRiskPatients groups rows by patient name, averages each indicator, and
// returns the n patients with the highest mean blood pressure. Ties keep the
// order in which the names first appear in records.
func TopRiskPatients(records []PatientRecord, n int) ([]RankedPatient, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := validateAll(records); err != nil {
		return nil, err
	}

	groups := groupMeans(records, func(r PatientRecord) string { return r.Name })

	ranked := make([]RankedPatient, 0, len(groups))
	for _, g := range groups {
		c := float64(g.count)
		ranked = append(ranked, RankedPatient{
			Name:          g.key,
			Visits:        g.count,
			BloodPressure: g.bp / c,
			BloodSugar:    g.sugar / c,
			Cholesterol:   g.chol / c,
		})
	}

	slices.SortStableFunc(ranked, func(a, b RankedPatient) int {
		return cmp.Compare(b.BloodPressure, a.BloodPressure)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked, nil
}
