/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package report renders analysis results as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/humaidq/checkup/analysis"
)

const width = 60

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Width(width).
			Align(lipgloss.Center).
			Border(lipgloss.DoubleBorder(), true, false)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	numberStyle      = cellStyle.Align(lipgloss.Right)
)

// Header writes a centred banner.
func Header(w io.Writer, title string) error {
	_, err := fmt.Fprintln(w, headerStyle.Render(title))
	return err
}

// newTable returns a bordered table whose columns from numericFrom onward are
// right aligned.
func newTable(numericFrom int, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col >= numericFrom:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func write(w io.Writer, t *table.Table) error {
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ========== Dataset ==========

// Summary writes the dataset overview.
func Summary(w io.Writer, s analysis.PatientSummary) error {
	t := newTable(1, "Dataset", "Value").
		Row("Unique patients", strconv.Itoa(s.UniquePatients)).
		Row("Age range", fmt.Sprintf("%d - %d years", s.MinAge, s.MaxAge)).
		Row("Mean age", fmt.Sprintf("%.1f years", s.MeanAge)).
		Row("Total examinations", strconv.Itoa(s.TotalExaminations)).
		Row("Columns", strconv.Itoa(s.TotalColumns))

	return write(w, t)
}

// ========== Statistics ==========

// Statistics writes the mean and sample standard deviation of each indicator.
func Statistics(w io.Writer, stats analysis.Statistics) error {
	t := newTable(2, "Indicator", "Unit", "Mean", "Std dev")

	for _, ind := range analysis.Indicators() {
		def, err := ind.Definition()
		if err != nil {
			return err
		}

		s := stats.For(ind)
		t.Row(def.Label, def.Unit, formatFloat(s.Mean), formatFloat(s.StdDev))
	}

	return write(w, t)
}

// Description writes the descriptive statistics of each indicator.
func Description(w io.Writer, desc []analysis.IndicatorDescription) error {
	t := newTable(1, "Indicator", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max")

	for _, d := range desc {
		t.Row(
			d.Indicator.String(),
			strconv.Itoa(d.Count),
			formatFloat(d.Mean),
			formatFloat(d.StdDev),
			formatFloat(d.Min),
			formatFloat(d.Q1),
			formatFloat(d.Median),
			formatFloat(d.Q3),
			formatFloat(d.Max),
		)
	}

	return write(w, t)
}

// Distribution writes the count per risk level, including empty levels.
func Distribution(w io.Writer, label string, counts analysis.CategoryCounts) error {
	t := newTable(1, label, "Count")

	for _, level := range analysis.RiskLevels() {
		t.Row(level.String(), strconv.Itoa(counts[level]))
	}

	t.Row("Total", strconv.Itoa(counts.Total()))

	return write(w, t)
}

// ========== Trends ==========

// DailyAverages writes the per-date indicator means.
func DailyAverages(w io.Writer, daily []analysis.DailyAverage) error {
	t := newTable(1, "Date", "Visits", "Blood Pressure", "Blood Sugar", "Cholesterol")

	for _, d := range daily {
		t.Row(
			d.Date,
			strconv.Itoa(d.Visits),
			formatFloat(d.BloodPressure),
			formatFloat(d.BloodSugar),
			formatFloat(d.Cholesterol),
		)
	}

	return write(w, t)
}

// TopPatients writes the ranked patients with their mean indicators.
func TopPatients(w io.Writer, ranked []analysis.RankedPatient) error {
	t := newTable(2, "#", "Patient", "Visits", "Blood Pressure", "Blood Sugar", "Cholesterol")
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return tableHeaderStyle
		case col == 1:
			return cellStyle
		default:
			return numberStyle
		}
	})

	for i, p := range ranked {
		t.Row(
			strconv.Itoa(i+1),
			p.Name,
			strconv.Itoa(p.Visits),
			formatFloat(p.BloodPressure),
			formatFloat(p.BloodSugar),
			formatFloat(p.Cholesterol),
		)
	}

	return write(w, t)
}
